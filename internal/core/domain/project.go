package domain

// Project tags transactions and journal entries for per-project reporting.
type Project struct {
	ProjectID   string `json:"projectID"` // Primary Key (UUID)
	Name        string `json:"name"`
	Description string `json:"description"` // Nullable
	IsActive    bool   `json:"isActive"`
	AuditFields
}
