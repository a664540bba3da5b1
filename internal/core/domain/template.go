package domain

import "time"

// JournalPosition indicates which side of the ledger a template line writes to.
type JournalPosition string

const (
	Debit  JournalPosition = "DEBIT"
	Credit JournalPosition = "CREDIT"
)

// TemplateCategory groups templates for filtering in the UI.
type TemplateCategory string

const (
	CategoryIncome     TemplateCategory = "INCOME"
	CategoryExpense    TemplateCategory = "EXPENSE"
	CategoryTransfer   TemplateCategory = "TRANSFER"
	CategoryAdjustment TemplateCategory = "ADJUSTMENT"
	CategoryPayroll    TemplateCategory = "PAYROLL"
	CategoryTax        TemplateCategory = "TAX"
)

// JournalTemplate is a reusable recipe that turns a driving amount into a
// balanced set of journal entries.
type JournalTemplate struct {
	TemplateID string           `json:"templateID"` // Primary Key (UUID)
	Name       string           `json:"name"`
	Category   TemplateCategory `json:"category"`
	IsActive   bool             `json:"isActive"`
	UsageCount int64            `json:"usageCount"`
	LastUsedAt *time.Time       `json:"lastUsedAt"` // Nullable
	Lines      []TemplateLine   `json:"lines"`      // Ordered by LineOrder
	AuditFields
}

// TemplateLine names an account, a debit/credit side and a formula for its amount.
type TemplateLine struct {
	LineID     string          `json:"lineID"`     // Primary Key (UUID)
	TemplateID string          `json:"templateID"` // FK -> JournalTemplate
	AccountID  string          `json:"accountID"`  // Default account, overridable per transaction
	Position   JournalPosition `json:"position"`
	Formula    string          `json:"formula"` // e.g. "amount", "amount * 0.11"
	LineOrder  int             `json:"lineOrder"`
}
