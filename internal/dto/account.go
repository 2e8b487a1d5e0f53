package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// CreateAccountRequest creates a new account in the directory.
type CreateAccountRequest struct {
	Code            string `json:"code" binding:"required"`
	Name            string `json:"name" binding:"required"`
	AccountType     string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentAccountID string `json:"parentAccountID,omitempty"`
	Description     string `json:"description"`
	AllowPosting    *bool  `json:"allowPosting,omitempty"` // defaults to true
}

// UpdateAccountRequest updates directory metadata of an account.
type UpdateAccountRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	IsActive     *bool   `json:"isActive,omitempty"`
	AllowPosting *bool   `json:"allowPosting,omitempty"`
}

// AccountResponse is the outward shape of an account.
type AccountResponse struct {
	AccountID       string    `json:"accountID"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	AccountType     string    `json:"accountType"`
	ParentAccountID string    `json:"parentAccountID,omitempty"`
	Description     string    `json:"description"`
	IsActive        bool      `json:"isActive"`
	AllowPosting    bool      `json:"allowPosting"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToAccountResponse converts a domain account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		Code:            a.Code,
		Name:            a.Name,
		AccountType:     string(a.AccountType),
		ParentAccountID: a.ParentAccountID,
		Description:     a.Description,
		IsActive:        a.IsActive,
		AllowPosting:    a.AllowPosting,
		CreatedAt:       a.CreatedAt,
	}
}
