package shared

import "context"

// Transactor runs a function inside a single storage transaction. Repository
// calls made with the context passed to fn join that transaction, so a
// multi-aggregate mutation either lands completely or not at all.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NopTransactor runs the function directly with no transaction, for tests
// and in-memory stores.
type NopTransactor struct{}

// WithinTransaction implements Transactor
func (NopTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
