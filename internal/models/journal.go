package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus is the stored form of a journal entry's state.
type JournalStatus string

// JournalType is the stored classification of an entry.
type JournalType string

// JournalEntry maps to the journal_entries table.
type JournalEntry struct {
	EntryID       string          `json:"entryID"`
	JournalNumber string          `json:"journalNumber"`
	JournalType   JournalType     `json:"journalType"`
	PeriodID      string          `json:"periodID"`
	JournalDate   time.Time       `json:"journalDate"`
	PostingDate   time.Time       `json:"postingDate"`
	Description   string          `json:"description"`
	Status        JournalStatus   `json:"status"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`

	RecurrencePattern   *string    `json:"recurrencePattern,omitempty"`
	RecurrenceStartDate *time.Time `json:"recurrenceStartDate,omitempty"`
	RecurrenceEndDate   *time.Time `json:"recurrenceEndDate,omitempty"`
	NextRunDate         *time.Time `json:"nextRunDate,omitempty"`

	IsReversed      bool       `json:"isReversed"`
	ReversedBy      *string    `json:"reversedBy,omitempty"`
	ReversedAt      *time.Time `json:"reversedAt,omitempty"`
	ReversalEntryID *string    `json:"reversalEntryID,omitempty"`
	ReversesEntryID *string    `json:"reversesEntryID,omitempty"`

	SubmittedBy     *string    `json:"submittedBy,omitempty"`
	SubmittedAt     *time.Time `json:"submittedAt,omitempty"`
	ApprovedBy      *string    `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	PostedBy        *string    `json:"postedBy,omitempty"`
	PostedAt        *time.Time `json:"postedAt,omitempty"`
	RejectedBy      *string    `json:"rejectedBy,omitempty"`
	RejectedAt      *time.Time `json:"rejectedAt,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`

	AuditFields
}

// JournalLine maps to the journal_lines table.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	LineNumber  int             `json:"lineNumber"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	Dimensions
	LedgerRowID *string `json:"ledgerRowID,omitempty"`
	AuditFields
}
