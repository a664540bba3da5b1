package models

// Account is the row shape of the accounts table.
type Account struct {
	AccountID   string `json:"accountID"`
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName"`
	AccountType string `json:"accountType"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}
