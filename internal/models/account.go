package models

// AccountType categorizes an account in the chart of accounts.
type AccountType string

// Account maps to the accounts table.
type Account struct {
	AccountID       string      `json:"accountID"`
	Code            string      `json:"code"`
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	ParentAccountID string      `json:"parentAccountID,omitempty"`
	Description     string      `json:"description"`
	IsActive        bool        `json:"isActive"`
	AllowPosting    bool        `json:"allowPosting"`
	AuditFields
}
