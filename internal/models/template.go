package models

import "time"

// JournalTemplate is the row shape of the journal_templates table.
type JournalTemplate struct {
	TemplateID string     `json:"templateID"`
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	IsActive   bool       `json:"isActive"`
	UsageCount int64      `json:"usageCount"`
	LastUsedAt *time.Time `json:"lastUsedAt"`
	AuditFields
}

// TemplateLine is the row shape of the journal_template_lines table.
type TemplateLine struct {
	LineID     string `json:"lineID"`
	TemplateID string `json:"templateID"`
	AccountID  string `json:"accountID"`
	Position   string `json:"position"`
	Formula    string `json:"formula"`
	LineOrder  int    `json:"lineOrder"`
}
