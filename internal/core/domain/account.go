package domain

// AccountType categorizes an account in the chart of accounts.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is a node in the chart of accounts. The posting engine only needs
// to know whether an account exists and accepts postings; the rest is
// directory metadata.
type Account struct {
	AccountID       string      `json:"accountID"` // Primary key (UUID)
	Code            string      `json:"code"`      // Human-readable account code, unique
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	ParentAccountID string      `json:"parentAccountID,omitempty"`
	Description     string      `json:"description"`
	IsActive        bool        `json:"isActive"`
	AllowPosting    bool        `json:"allowPosting"` // false for summary/header accounts
	AuditFields
}

// IsPostable reports whether ledger rows may be written against the account.
func (a *Account) IsPostable() bool {
	return a.IsActive && a.AllowPosting
}
