// Package repository persists feedback entries.
package repository

import (
	"context"

	"github.com/okian/folio/internal/domain/model"
)

// Store provides create/read access to feedback entries.
type Store interface {
	// Create inserts the entry and returns it with its assigned id.
	Create(ctx context.Context, entry model.FeedbackEntry) (model.FeedbackEntry, error)

	// List returns every entry in storage order (ascending id).
	List(ctx context.Context) ([]model.FeedbackEntry, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// Ping checks the store is reachable.
	Ping(ctx context.Context) error

	Close() error
}
