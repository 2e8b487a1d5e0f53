package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRowStatus is the lifecycle state of a general ledger row. Rows
// created by the posting engine are always POSTED; REVERSED only marks that
// an offsetting row exists, the financial fields never change.
type LedgerRowStatus string

const (
	LedgerRowDraft    LedgerRowStatus = "DRAFT"
	LedgerRowPosted   LedgerRowStatus = "POSTED"
	LedgerRowReversed LedgerRowStatus = "REVERSED"
	LedgerRowVoid     LedgerRowStatus = "VOID"
)

// LedgerTransactionType identifies the source document of a ledger row.
type LedgerTransactionType string

const (
	LedgerSourceJournalEntry LedgerTransactionType = "JOURNAL_ENTRY"
)

// LedgerRow is an immutable historical fact: one account movement produced
// by posting a journal entry line. Corrections happen only through new
// reversing rows.
type LedgerRow struct {
	RowID             string                `json:"rowID"` // Primary key (UUID)
	TransactionNumber string                `json:"transactionNumber"`
	TransactionType   LedgerTransactionType `json:"transactionType"`
	AccountID         string                `json:"accountID"`
	PeriodID          string                `json:"periodID"`
	PostingDate       time.Time             `json:"postingDate"`
	TransactionDate   time.Time             `json:"transactionDate"`
	Debit             decimal.Decimal       `json:"debit"`
	Credit            decimal.Decimal       `json:"credit"`
	NetAmount         decimal.Decimal       `json:"netAmount"` // debit - credit
	Description       string                `json:"description"`

	// Reference back to the originating journal entry line.
	EntryID    string `json:"entryID"`
	LineNumber int    `json:"lineNumber"`

	Status          LedgerRowStatus `json:"status"`
	ReversedByRowID *string         `json:"reversedByRowID,omitempty"`
	Dimensions
	AuditFields
}
