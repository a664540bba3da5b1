package models

// Project is the row shape of the projects table.
type Project struct {
	ProjectID   string `json:"projectID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}
