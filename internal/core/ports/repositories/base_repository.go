package repositories

import "context"

// TransactionManager runs a unit of work atomically. Repositories called with
// the context passed to fn take part in the same transaction; an error from fn
// rolls every write back.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
