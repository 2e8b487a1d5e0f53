package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus is the closed set of states a journal entry moves through.
// Transitions are guarded by CanTransitionTo; nothing else may assign a
// posted entry a new status.
type JournalStatus string

const (
	StatusDraft           JournalStatus = "DRAFT"
	StatusPendingApproval JournalStatus = "PENDING_APPROVAL"
	StatusApproved        JournalStatus = "APPROVED"
	StatusPosted          JournalStatus = "POSTED"
	StatusRejected        JournalStatus = "REJECTED"
)

// Valid reports whether s is one of the known statuses.
func (s JournalStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingApproval, StatusApproved, StatusPosted, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine allows moving from s to
// next. POSTED and REJECTED are terminal; reversal does not change status,
// it only sets the reversal linkage on the entry.
func (s JournalStatus) CanTransitionTo(next JournalStatus) bool {
	switch s {
	case StatusDraft:
		return next == StatusPendingApproval
	case StatusPendingApproval:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved:
		return next == StatusPosted
	case StatusPosted, StatusRejected:
		return false
	default:
		return false
	}
}

// Terminal reports whether no further status transition is possible.
func (s JournalStatus) Terminal() bool {
	return s == StatusPosted || s == StatusRejected
}

// JournalType classifies the business intent of an entry.
type JournalType string

const (
	TypeStandard  JournalType = "STANDARD"
	TypeAdjusting JournalType = "ADJUSTING"
	TypeClosing   JournalType = "CLOSING"
	TypeReversing JournalType = "REVERSING"
	TypeAccrual   JournalType = "ACCRUAL"
	TypeRecurring JournalType = "RECURRING"
)

// Valid reports whether t is one of the known journal types.
func (t JournalType) Valid() bool {
	switch t {
	case TypeStandard, TypeAdjusting, TypeClosing, TypeReversing, TypeAccrual, TypeRecurring:
		return true
	}
	return false
}

// RecurrencePattern is the cadence of a recurring template entry.
type RecurrencePattern string

const (
	RecurDaily     RecurrencePattern = "DAILY"
	RecurWeekly    RecurrencePattern = "WEEKLY"
	RecurMonthly   RecurrencePattern = "MONTHLY"
	RecurQuarterly RecurrencePattern = "QUARTERLY"
	RecurYearly    RecurrencePattern = "YEARLY"
)

// Recurrence holds the template metadata for recurring entries.
type Recurrence struct {
	Pattern     RecurrencePattern `json:"pattern"`
	StartDate   time.Time         `json:"startDate"`
	EndDate     *time.Time        `json:"endDate,omitempty"`
	NextRunDate *time.Time        `json:"nextRunDate,omitempty"`
}

// NextRunAfter returns the run date following from, per the pattern.
func (r Recurrence) NextRunAfter(from time.Time) time.Time {
	switch r.Pattern {
	case RecurDaily:
		return from.AddDate(0, 0, 1)
	case RecurWeekly:
		return from.AddDate(0, 0, 7)
	case RecurMonthly:
		return from.AddDate(0, 1, 0)
	case RecurQuarterly:
		return from.AddDate(0, 3, 0)
	case RecurYearly:
		return from.AddDate(1, 0, 0)
	default:
		return from.AddDate(0, 1, 0)
	}
}

// JournalEntry is the aggregate root: a proposed, balanced set of debit and
// credit lines. Once posted it is append-only; only the reversal linkage may
// change afterwards.
type JournalEntry struct {
	EntryID       string          `json:"entryID"` // Primary key (UUID)
	JournalNumber string          `json:"journalNumber"`
	JournalType   JournalType     `json:"journalType"`
	PeriodID      string          `json:"periodID"`
	JournalDate   time.Time       `json:"journalDate"`
	PostingDate   time.Time       `json:"postingDate"`
	Description   string          `json:"description"`
	Status        JournalStatus   `json:"status"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`

	// Set only on recurring templates.
	Recurrence *Recurrence `json:"recurrence,omitempty"`

	// Reversal linkage. ReversalEntryID points at the reversing entry;
	// ReversesEntryID is set on the reversing entry and points back.
	IsReversed      bool       `json:"isReversed"`
	ReversedBy      *string    `json:"reversedBy,omitempty"`
	ReversedAt      *time.Time `json:"reversedAt,omitempty"`
	ReversalEntryID *string    `json:"reversalEntryID,omitempty"`
	ReversesEntryID *string    `json:"reversesEntryID,omitempty"`

	// Workflow audit stamps.
	SubmittedBy     *string    `json:"submittedBy,omitempty"`
	SubmittedAt     *time.Time `json:"submittedAt,omitempty"`
	ApprovedBy      *string    `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	PostedBy        *string    `json:"postedBy,omitempty"`
	PostedAt        *time.Time `json:"postedAt,omitempty"`
	RejectedBy      *string    `json:"rejectedBy,omitempty"`
	RejectedAt      *time.Time `json:"rejectedAt,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`

	Lines []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// IsBalanced reports whether total debits equal total credits within the
// rounding tolerance.
func (e *JournalEntry) IsBalanced() bool {
	return e.TotalDebit.Sub(e.TotalCredit).Abs().LessThanOrEqual(BalanceTolerance)
}

// IsEditable reports whether header and lines may still be mutated.
func (e *JournalEntry) IsEditable() bool {
	return e.Status == StatusDraft
}

// IsRecurringTemplate reports whether the entry can seed recurring generation.
func (e *JournalEntry) IsRecurringTemplate() bool {
	return e.JournalType == TypeRecurring && e.Recurrence != nil
}

// BalanceTolerance is the maximum absolute difference between total debits
// and total credits that still counts as balanced.
var BalanceTolerance = decimal.RequireFromString("0.01")

// JournalLine is a single debit or credit against one account. Lines are
// owned by their entry and ordered by LineNumber.
type JournalLine struct {
	LineID      string          `json:"lineID"` // Primary key (UUID)
	EntryID     string          `json:"entryID"`
	LineNumber  int             `json:"lineNumber"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	Dimensions

	// LedgerRowID links back to the general ledger row produced when the
	// entry was posted. Nil until then.
	LedgerRowID *string `json:"ledgerRowID,omitempty"`
	AuditFields
}

// IsUnusual reports whether the line carries both a debit and a credit.
// Legal for corrections, but worth surfacing to callers.
func (l *JournalLine) IsUnusual() bool {
	return l.Debit.IsPositive() && l.Credit.IsPositive()
}
