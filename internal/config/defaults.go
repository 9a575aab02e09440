package config

import "runtime"

const (
	DefaultBatchSize = 4096
	DefaultLogLevel  = "info"
	FileVersion      = 1
)

// DefaultLogDir returns the default run log directory path.
func DefaultLogDir() string {
	return "~/.pfilter/runs"
}

// DefaultWorkers returns the number of evaluation workers used when the
// config does not set one.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}
