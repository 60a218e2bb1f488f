package services

// ServiceContainer holds instances of all the application services.
// Handlers depend on it rather than on concrete implementations.
type ServiceContainer struct {
	ChartOfAccounts ChartOfAccountsSvc
	StockLedger     StockLedgerSvcFacade
	Journal         JournalSvcFacade
	Refund          RefundSvc
	LoanLedger      LoanLedgerSvcFacade
}
