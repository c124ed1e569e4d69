// Package store persists analysis results for later retrieval.
//
// Persistence is optional: the pipeline works entirely on the filesystem
// without a store configured. When a MongoDB URL is supplied, each
// completed run is recorded as a [report.Document] so results can be
// queried across runs.
package store

import (
	"context"

	"github.com/matzehuels/netplot/pkg/report"
)

// Store records completed analysis runs.
type Store interface {
	// SaveRun persists a run document.
	SaveRun(ctx context.Context, doc report.Document) error

	// LatestRun returns the most recent run for the given input name.
	// The bool reports whether any run was found.
	LatestRun(ctx context.Context, input string) (report.Document, bool, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NullStore discards everything. Used when no store is configured.
type NullStore struct{}

// NewNullStore creates a NullStore.
func NewNullStore() Store {
	return &NullStore{}
}

// SaveRun does nothing.
func (s *NullStore) SaveRun(ctx context.Context, doc report.Document) error {
	return nil
}

// LatestRun always reports no run found.
func (s *NullStore) LatestRun(ctx context.Context, input string) (report.Document, bool, error) {
	return report.Document{}, false, nil
}

// Close does nothing.
func (s *NullStore) Close(ctx context.Context) error {
	return nil
}

var _ Store = (*NullStore)(nil)
