package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListLedgerRowsParams holds parameters for listing ledger rows.
type ListLedgerRowsParams struct {
	AccountID string  `form:"accountID" binding:"required"`
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// LedgerRowResponse is the outward shape of a general ledger row.
type LedgerRowResponse struct {
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
}

// ListLedgerRowsResponse is a page of ledger rows plus the next page token.
type ListLedgerRowsResponse struct {
	Rows      []LedgerRowResponse `json:"rows"`
	NextToken *string             `json:"nextToken,omitempty"`
}

// ToLedgerRowResponse converts a domain ledger row to its response DTO.
func ToLedgerRowResponse(r *domain.LedgerRow) LedgerRowResponse {
	return LedgerRowResponse{
		RowID:             r.RowID,
		TransactionNumber: r.TransactionNumber,
		TransactionType:   string(r.TransactionType),
		AccountID:         r.AccountID,
		PeriodID:          r.PeriodID,
		PostingDate:       r.PostingDate,
		TransactionDate:   r.TransactionDate,
		Debit:             r.Debit,
		Credit:            r.Credit,
		NetAmount:         r.NetAmount,
		Description:       r.Description,
		EntryID:           r.EntryID,
		LineNumber:        r.LineNumber,
		Status:            string(r.Status),
		ReversedByRowID:   r.ReversedByRowID,
	}
}

// ToLedgerRowResponses converts a slice of domain rows to response DTOs.
func ToLedgerRowResponses(rows []domain.LedgerRow) []LedgerRowResponse {
	responses := make([]LedgerRowResponse, len(rows))
	for i := range rows {
		responses[i] = ToLedgerRowResponse(&rows[i])
	}
	return responses
}
