package audit

import (
	"context"

	"github.com/tkingovr/pfilter/api"
)

// Store defines the interface for run record persistence and retrieval.
type Store interface {
	// Write appends a run record.
	Write(ctx context.Context, record *api.RunRecord) error

	// Query retrieves run records matching the filter, oldest first.
	Query(ctx context.Context, filter api.QueryFilter) ([]*api.RunRecord, error)

	// Stats returns aggregate statistics.
	Stats(ctx context.Context) (*api.RunStats, error)

	// Close shuts down the store and flushes any buffers.
	Close() error
}
