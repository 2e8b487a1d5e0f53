package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRow maps to the general_ledger table.
type LedgerRow struct {
	RowID             string          `json:"rowID"`
	TransactionNumber string          `json:"transactionNumber"`
	TransactionType   string          `json:"transactionType"`
	AccountID         string          `json:"accountID"`
	PeriodID          string          `json:"periodID"`
	PostingDate       time.Time       `json:"postingDate"`
	TransactionDate   time.Time       `json:"transactionDate"`
	Debit             decimal.Decimal `json:"debit"`
	Credit            decimal.Decimal `json:"credit"`
	NetAmount         decimal.Decimal `json:"netAmount"`
	Description       string          `json:"description"`
	EntryID           string          `json:"entryID"`
	LineNumber        int             `json:"lineNumber"`
	Status            string          `json:"status"`
	ReversedByRowID   *string         `json:"reversedByRowID,omitempty"`
	Dimensions
	AuditFields
}
