package dto

import (
	"time"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating an account.
type CreateAccountRequest struct {
	AccountCode string             `json:"accountCode" binding:"required"`
	AccountName string             `json:"accountName" binding:"required"`
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Description string             `json:"description"`
}

// UpdateAccountRequest defines the payload for editing an account.
// Nil fields are left unchanged.
type UpdateAccountRequest struct {
	AccountName *string `json:"accountName"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	ActiveOnly bool `form:"activeOnly"`
	Limit      int  `form:"limit,default=100" binding:"omitempty,min=1,max=500"`
	Offset     int  `form:"offset" binding:"omitempty,min=0"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string    `json:"accountID"`
	AccountCode string    `json:"accountCode"`
	AccountName string    `json:"accountName"`
	AccountType string    `json:"accountType"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		AccountCode: a.AccountCode,
		AccountName: a.AccountName,
		AccountType: string(a.AccountType),
		Description: a.Description,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain.Account to []AccountResponse.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		responses[i] = ToAccountResponse(&a)
	}
	return responses
}
