package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents one entry in the chart of accounts.
type Account struct {
	AccountID   string      `json:"accountID"`   // Primary Key (UUID)
	AccountCode string      `json:"accountCode"` // User-facing code, e.g. "1-1001"
	AccountName string      `json:"accountName"`
	AccountType AccountType `json:"accountType"`
	Description string      `json:"description"` // Nullable
	IsActive    bool        `json:"isActive"`
	AuditFields
}
