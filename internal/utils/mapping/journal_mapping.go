package mapping

import (
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	m := models.JournalEntry{
		EntryID:         d.EntryID,
		JournalNumber:   d.JournalNumber,
		JournalType:     models.JournalType(d.JournalType),
		PeriodID:        d.PeriodID,
		JournalDate:     d.JournalDate,
		PostingDate:     d.PostingDate,
		Description:     d.Description,
		Status:          models.JournalStatus(d.Status),
		TotalDebit:      d.TotalDebit,
		TotalCredit:     d.TotalCredit,
		IsReversed:      d.IsReversed,
		ReversedBy:      d.ReversedBy,
		ReversedAt:      d.ReversedAt,
		ReversalEntryID: d.ReversalEntryID,
		ReversesEntryID: d.ReversesEntryID,
		SubmittedBy:     d.SubmittedBy,
		SubmittedAt:     d.SubmittedAt,
		ApprovedBy:      d.ApprovedBy,
		ApprovedAt:      d.ApprovedAt,
		PostedBy:        d.PostedBy,
		PostedAt:        d.PostedAt,
		RejectedBy:      d.RejectedBy,
		RejectedAt:      d.RejectedAt,
		RejectionReason: d.RejectionReason,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
	if d.Recurrence != nil {
		pattern := string(d.Recurrence.Pattern)
		start := d.Recurrence.StartDate
		m.RecurrencePattern = &pattern
		m.RecurrenceStartDate = &start
		m.RecurrenceEndDate = d.Recurrence.EndDate
		m.NextRunDate = d.Recurrence.NextRunDate
	}
	return m
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	d := domain.JournalEntry{
		EntryID:         m.EntryID,
		JournalNumber:   m.JournalNumber,
		JournalType:     domain.JournalType(m.JournalType),
		PeriodID:        m.PeriodID,
		JournalDate:     m.JournalDate,
		PostingDate:     m.PostingDate,
		Description:     m.Description,
		Status:          domain.JournalStatus(m.Status),
		TotalDebit:      m.TotalDebit,
		TotalCredit:     m.TotalCredit,
		IsReversed:      m.IsReversed,
		ReversedBy:      m.ReversedBy,
		ReversedAt:      m.ReversedAt,
		ReversalEntryID: m.ReversalEntryID,
		ReversesEntryID: m.ReversesEntryID,
		SubmittedBy:     m.SubmittedBy,
		SubmittedAt:     m.SubmittedAt,
		ApprovedBy:      m.ApprovedBy,
		ApprovedAt:      m.ApprovedAt,
		PostedBy:        m.PostedBy,
		PostedAt:        m.PostedAt,
		RejectedBy:      m.RejectedBy,
		RejectedAt:      m.RejectedAt,
		RejectionReason: m.RejectionReason,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	if m.RecurrencePattern != nil && m.RecurrenceStartDate != nil {
		d.Recurrence = &domain.Recurrence{
			Pattern:     domain.RecurrencePattern(*m.RecurrencePattern),
			StartDate:   *m.RecurrenceStartDate,
			EndDate:     m.RecurrenceEndDate,
			NextRunDate: m.NextRunDate,
		}
	}
	return d
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		LineNumber:  d.LineNumber,
		AccountID:   d.AccountID,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
		Dimensions:  ToModelDimensions(d.Dimensions),
		LedgerRowID: d.LedgerRowID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		LineNumber:  m.LineNumber,
		AccountID:   m.AccountID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
		Dimensions:  ToDomainDimensions(m.Dimensions),
		LedgerRowID: m.LedgerRowID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model lines to domain lines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
