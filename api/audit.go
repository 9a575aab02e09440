package api

import (
	"time"
)

// QueryFilter defines criteria for querying run records.
type QueryFilter struct {
	Since  time.Time `json:"since,omitempty"`
	Until  time.Time `json:"until,omitempty"`
	Source string    `json:"source,omitempty"`
	Limit  int       `json:"limit,omitempty"`
	Offset int       `json:"offset,omitempty"`
}

// RunStats aggregates run records.
type RunStats struct {
	Runs     int            `json:"runs"`
	Total    int            `json:"total"`
	Kept     int            `json:"kept"`
	Rejected int            `json:"rejected"`
	BySource map[string]int `json:"by_source"`
}

// KeepRatio returns the fraction of evaluated particles that were kept.
func (s *RunStats) KeepRatio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Kept) / float64(s.Total)
}
