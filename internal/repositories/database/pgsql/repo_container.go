package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/pos_posting_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres repositories. Readers run directly
// on the pool; writes go through the TxManager.
func NewRepositoryProvider(dbPool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager: NewTxManager(dbPool, lockTimeout),
		Readers:   newStore(dbPool),
	}
}
