package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalLineRequest is one proposed debit/credit line.
type CreateJournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`

	CostCenterID *string `json:"costCenterID,omitempty"`
	DepartmentID *string `json:"departmentID,omitempty"`
	ProjectID    *string `json:"projectID,omitempty"`
	LocationID   *string `json:"locationID,omitempty"`
	PartyID      *string `json:"partyID,omitempty"`
}

// RecurrenceRequest is the recurring-template metadata on a create request.
type RecurrenceRequest struct {
	Pattern   string     `json:"pattern" binding:"required,oneof=DAILY WEEKLY MONTHLY QUARTERLY YEARLY"`
	StartDate time.Time  `json:"startDate" binding:"required"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// CreateJournalEntryRequest creates a new DRAFT journal entry.
type CreateJournalEntryRequest struct {
	JournalType string                     `json:"journalType" binding:"required,oneof=STANDARD ADJUSTING CLOSING REVERSING ACCRUAL RECURRING"`
	PeriodID    string                     `json:"periodID" binding:"required"`
	JournalDate time.Time                  `json:"journalDate" binding:"required"`
	PostingDate time.Time                  `json:"postingDate" binding:"required"`
	Description string                     `json:"description" binding:"required"`
	Lines       []CreateJournalLineRequest `json:"lines" binding:"required,min=1,dive"`
	Recurrence  *RecurrenceRequest         `json:"recurrence,omitempty"`
}

// UpdateJournalEntryRequest updates a DRAFT entry. Nil fields are left as-is;
// when Lines is present the full line set is replaced and re-validated.
type UpdateJournalEntryRequest struct {
	JournalDate *time.Time                 `json:"journalDate,omitempty"`
	PostingDate *time.Time                 `json:"postingDate,omitempty"`
	Description *string                    `json:"description,omitempty"`
	Lines       []CreateJournalLineRequest `json:"lines,omitempty" binding:"omitempty,min=1,dive"`
}

// RejectJournalEntryRequest carries the mandatory rejection reason.
type RejectJournalEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ReverseJournalEntryRequest carries the reversal date and reason.
type ReverseJournalEntryRequest struct {
	ReversalDate time.Time `json:"reversalDate" binding:"required"`
	Reason       string    `json:"reason" binding:"required"`
}

// ListEntriesParams holds parameters for listing journal entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
	Status    *string `form:"status"`
}

// JournalLineResponse is the outward shape of a journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	LineNumber  int             `json:"lineNumber"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	LedgerRowID *string         `json:"ledgerRowID,omitempty"`
}

// JournalEntryResponse is the outward shape of a journal entry.
type JournalEntryResponse struct {
	EntryID         string                `json:"entryID"`
	JournalNumber   string                `json:"journalNumber"`
	JournalType     string                `json:"journalType"`
	PeriodID        string                `json:"periodID"`
	JournalDate     time.Time             `json:"journalDate"`
	PostingDate     time.Time             `json:"postingDate"`
	Description     string                `json:"description"`
	Status          string                `json:"status"`
	TotalDebit      decimal.Decimal       `json:"totalDebit"`
	TotalCredit     decimal.Decimal       `json:"totalCredit"`
	IsBalanced      bool                  `json:"isBalanced"`
	IsReversed      bool                  `json:"isReversed"`
	ReversalEntryID *string               `json:"reversalEntryID,omitempty"`
	ReversesEntryID *string               `json:"reversesEntryID,omitempty"`
	Lines           []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
}

// ListEntriesResponse is a page of entries plus the token for the next page.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain line to its response DTO.
func ToJournalLineResponse(l *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:      l.LineID,
		LineNumber:  l.LineNumber,
		AccountID:   l.AccountID,
		Debit:       l.Debit,
		Credit:      l.Credit,
		Description: l.Description,
		LedgerRowID: l.LedgerRowID,
	}
}

// ToJournalEntryResponse converts a domain entry (with any loaded lines) to
// its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:         e.EntryID,
		JournalNumber:   e.JournalNumber,
		JournalType:     string(e.JournalType),
		PeriodID:        e.PeriodID,
		JournalDate:     e.JournalDate,
		PostingDate:     e.PostingDate,
		Description:     e.Description,
		Status:          string(e.Status),
		TotalDebit:      e.TotalDebit,
		TotalCredit:     e.TotalCredit,
		IsBalanced:      e.IsBalanced(),
		IsReversed:      e.IsReversed,
		ReversalEntryID: e.ReversalEntryID,
		ReversesEntryID: e.ReversesEntryID,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToJournalLineResponse(&e.Lines[i])
		}
	}
	return resp
}
