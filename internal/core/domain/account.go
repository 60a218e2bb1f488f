package domain

import "time"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// AccountRole names the business purpose an account serves during posting.
type AccountRole string

const (
	RoleCash         AccountRole = "cash"
	RoleSalesRevenue AccountRole = "sales_revenue"
	RoleCOGS         AccountRole = "cogs"
	RoleInventory    AccountRole = "inventory"
)

// Account represents a ledger account owned by a merchant.
// Accounts are only ever created; (OwnerID, Code) is unique.
type Account struct {
	AccountID       string      `json:"accountID"`
	OwnerID         string      `json:"ownerID"`
	Code            string      `json:"code"`
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	Category        string      `json:"category"`
	IsSystemAccount bool        `json:"isSystemAccount"`
	CreatedAt       time.Time   `json:"createdAt"`
}
