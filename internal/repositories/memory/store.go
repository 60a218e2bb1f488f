package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/pos_posting_engine/internal/apperrors"
	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_posting_engine/internal/core/ports/repositories"
)

// Store is an in-process storage adapter. Units of work are serialized by a
// single mutex and rolled back with an undo log, so it gives the same
// atomicity and isolation guarantees as the Postgres adapter within one process.
type Store struct {
	mu sync.Mutex

	accounts      map[string]domain.Account
	accountByCode map[string]string
	entries       map[string]domain.JournalEntry
	entryByRef    map[string]string
	transactions  map[string]domain.Transaction
	products      map[string]domain.Product
	movements     map[string][]domain.StockMovement
	loans         map[string]domain.Loan
	repayments    map[string]domain.LoanRepayment
	loanPayments  map[string][]string

	// FaultHook, when set, is consulted before every write. A non-nil error
	// aborts the write. Tests use it to simulate storage conflicts.
	FaultHook func(op string) error
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:      make(map[string]domain.Account),
		accountByCode: make(map[string]string),
		entries:       make(map[string]domain.JournalEntry),
		entryByRef:    make(map[string]string),
		transactions:  make(map[string]domain.Transaction),
		products:      make(map[string]domain.Product),
		movements:     make(map[string][]domain.StockMovement),
		loans:         make(map[string]domain.Loan),
		repayments:    make(map[string]domain.LoanRepayment),
		loanPayments:  make(map[string][]string),
	}
}

// NewRepositoryProvider exposes the store through the repository ports.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager: s,
		Readers:   (&view{s: s}).repos(),
	}
}

// WithinTx runs fn while holding the store lock. Any error or panic from fn
// undoes every write fn made.
func (s *Store) WithinTx(ctx context.Context, fn portsrepo.TxFunc) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := &unit{}
	v := &view{s: s, u: u}
	defer func() {
		if p := recover(); p != nil {
			u.rollback()
			panic(p)
		}
		if err != nil {
			u.rollback()
		}
	}()

	if err = fn(ctx, v.repos()); err != nil {
		return err
	}
	return ctx.Err()
}

// unit is the undo log of one unit of work.
type unit struct {
	undo []func()
}

func (u *unit) rollback() {
	for i := len(u.undo) - 1; i >= 0; i-- {
		u.undo[i]()
	}
	u.undo = nil
}

// view implements every repository port. Inside a unit of work u is set and
// the store lock is already held; outside, each call takes the lock itself.
type view struct {
	s *Store
	u *unit
}

func (v *view) repos() portsrepo.Store {
	return portsrepo.Store{
		Accounts:     v,
		Journals:     v,
		Transactions: v,
		Products:     v,
		Loans:        v,
	}
}

func (v *view) lock() func() {
	if v.u != nil {
		return func() {}
	}
	v.s.mu.Lock()
	return v.s.mu.Unlock
}

func (v *view) onRollback(fn func()) {
	if v.u != nil {
		v.u.undo = append(v.u.undo, fn)
	}
}

func (v *view) fault(op string) error {
	if v.s.FaultHook == nil {
		return nil
	}
	return v.s.FaultHook(op)
}

func notFound(what, id string) error {
	return apperrors.NewNotFoundError(what + " " + id + " not found")
}
