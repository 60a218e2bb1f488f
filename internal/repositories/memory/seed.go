package memory

import (
	"time"

	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
)

// now is the clock used for audit fields written by the store itself.
var now = func() time.Time { return time.Now().UTC() }

// The Put methods stand in for the collaborators that own products,
// transactions and loans. They overwrite silently.

// PutProduct stores or replaces a product.
func (s *Store) PutProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ProductID] = p
}

// PutTransaction stores or replaces a recorded transaction.
func (s *Store) PutTransaction(t domain.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[t.TransactionID] = cloneTransaction(t)
}

// PutLoan stores or replaces a loan. A zero version is bumped to 1.
func (s *Store) PutLoan(l domain.Loan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.Version == 0 {
		l.Version = 1
	}
	s.loans[l.LoanID] = cloneLoan(l)
}

// EntryCount returns how many journal entries exist.
func (s *Store) EntryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
