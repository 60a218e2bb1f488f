package repositories

// Store groups the repositories a unit of work can touch.
type Store struct {
	Accounts     AccountRepositoryFacade
	Journals     JournalRepositoryFacade
	Transactions TransactionRepositoryFacade
	Products     ProductRepositoryFacade
	Loans        LoanRepositoryFacade
}

// RepositoryProvider holds everything services need from the storage layer.
// Readers serves plain reads outside any unit of work.
type RepositoryProvider struct {
	TxManager TransactionManager
	Readers   Store
}
