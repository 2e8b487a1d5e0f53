package mapping

import (
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/models"
)

// ToModelLedgerRow converts a domain LedgerRow to a model LedgerRow
func ToModelLedgerRow(d domain.LedgerRow) models.LedgerRow {
	return models.LedgerRow{
		RowID:             d.RowID,
		TransactionNumber: d.TransactionNumber,
		TransactionType:   string(d.TransactionType),
		AccountID:         d.AccountID,
		PeriodID:          d.PeriodID,
		PostingDate:       d.PostingDate,
		TransactionDate:   d.TransactionDate,
		Debit:             d.Debit,
		Credit:            d.Credit,
		NetAmount:         d.NetAmount,
		Description:       d.Description,
		EntryID:           d.EntryID,
		LineNumber:        d.LineNumber,
		Status:            string(d.Status),
		ReversedByRowID:   d.ReversedByRowID,
		Dimensions:        ToModelDimensions(d.Dimensions),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerRow converts a model LedgerRow to a domain LedgerRow
func ToDomainLedgerRow(m models.LedgerRow) domain.LedgerRow {
	return domain.LedgerRow{
		RowID:             m.RowID,
		TransactionNumber: m.TransactionNumber,
		TransactionType:   domain.LedgerTransactionType(m.TransactionType),
		AccountID:         m.AccountID,
		PeriodID:          m.PeriodID,
		PostingDate:       m.PostingDate,
		TransactionDate:   m.TransactionDate,
		Debit:             m.Debit,
		Credit:            m.Credit,
		NetAmount:         m.NetAmount,
		Description:       m.Description,
		EntryID:           m.EntryID,
		LineNumber:        m.LineNumber,
		Status:            domain.LedgerRowStatus(m.Status),
		ReversedByRowID:   m.ReversedByRowID,
		Dimensions:        ToDomainDimensions(m.Dimensions),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerRowSlice converts a slice of model rows to domain rows
func ToDomainLedgerRowSlice(ms []models.LedgerRow) []domain.LedgerRow {
	ds := make([]domain.LedgerRow, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerRow(m)
	}
	return ds
}
