package booking

import "context"

// Repository is durable key-value persistence of booking records.
// Implementations must make Put atomic from a reader's perspective: a
// concurrent GetByID never observes a partially written record.
type Repository interface {
	// Create inserts a new record. A record with the same id already
	// existing is reported as ErrAlreadyExists.
	Create(ctx context.Context, b *Booking) error

	// Put writes the full record at its id, overwriting any previous
	// version. The whole record is rewritten, so the last writer wins
	// with a self-consistent result.
	Put(ctx context.Context, b *Booking) error

	// GetByID returns the record or ErrNotFound.
	GetByID(ctx context.Context, id string) (*Booking, error)

	// ListAll returns every stored record. Order is unspecified and
	// callers must not depend on it.
	ListAll(ctx context.Context) ([]*Booking, error)
}
