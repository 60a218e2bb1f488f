package repositories

import "context"

// TxFunc is a unit of work executed against repositories bound to a single transaction.
type TxFunc func(ctx context.Context, repos Store) error

// TransactionManager runs units of work atomically: either every write made
// through the supplied Store is committed, or none is.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}
