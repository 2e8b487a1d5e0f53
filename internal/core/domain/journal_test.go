package domain_test

import (
	"testing"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestJournalStatus_CanTransitionTo(t *testing.T) {
	all := []domain.JournalStatus{
		domain.StatusDraft,
		domain.StatusPendingApproval,
		domain.StatusApproved,
		domain.StatusPosted,
		domain.StatusRejected,
	}

	allowed := map[domain.JournalStatus]map[domain.JournalStatus]bool{
		domain.StatusDraft:           {domain.StatusPendingApproval: true},
		domain.StatusPendingApproval: {domain.StatusApproved: true, domain.StatusRejected: true},
		domain.StatusApproved:        {domain.StatusPosted: true},
		domain.StatusPosted:          {},
		domain.StatusRejected:        {},
	}

	// Every (from, to) pair, including self-transitions, must match the table.
	for _, from := range all {
		for _, to := range all {
			got := from.CanTransitionTo(to)
			want := allowed[from][to]
			assert.Equal(t, want, got, "transition %s -> %s", from, to)
		}
	}
}

func TestJournalStatus_Terminal(t *testing.T) {
	assert.True(t, domain.StatusPosted.Terminal())
	assert.True(t, domain.StatusRejected.Terminal())
	assert.False(t, domain.StatusDraft.Terminal())
	assert.False(t, domain.StatusPendingApproval.Terminal())
	assert.False(t, domain.StatusApproved.Terminal())
}

func TestJournalStatus_Valid(t *testing.T) {
	assert.True(t, domain.StatusDraft.Valid())
	assert.True(t, domain.StatusPosted.Valid())
	assert.False(t, domain.JournalStatus("CANCELLED").Valid())
	assert.False(t, domain.JournalStatus("").Valid())
}

func TestJournalEntry_IsBalanced(t *testing.T) {
	tests := []struct {
		name        string
		totalDebit  string
		totalCredit string
		want        bool
	}{
		{"exactly equal", "100.00", "100.00", true},
		{"within tolerance", "100.00", "100.01", true},
		{"at negative tolerance", "99.99", "100.00", true},
		{"just over tolerance", "100.00", "100.02", false},
		{"wildly off", "100.00", "250.00", false},
		{"zero totals", "0", "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := domain.JournalEntry{
				TotalDebit:  decimal.RequireFromString(tt.totalDebit),
				TotalCredit: decimal.RequireFromString(tt.totalCredit),
			}
			assert.Equal(t, tt.want, e.IsBalanced())
		})
	}
}

func TestJournalEntry_IsEditable(t *testing.T) {
	e := domain.JournalEntry{Status: domain.StatusDraft}
	assert.True(t, e.IsEditable())

	for _, status := range []domain.JournalStatus{
		domain.StatusPendingApproval,
		domain.StatusApproved,
		domain.StatusPosted,
		domain.StatusRejected,
	} {
		e.Status = status
		assert.False(t, e.IsEditable(), "status %s should not be editable", status)
	}
}

func TestJournalEntry_IsRecurringTemplate(t *testing.T) {
	recurrence := &domain.Recurrence{
		Pattern:   domain.RecurMonthly,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	template := domain.JournalEntry{JournalType: domain.TypeRecurring, Recurrence: recurrence}
	assert.True(t, template.IsRecurringTemplate())

	// Recurring type without metadata is not a usable template.
	assert.False(t, (&domain.JournalEntry{JournalType: domain.TypeRecurring}).IsRecurringTemplate())
	assert.False(t, (&domain.JournalEntry{JournalType: domain.TypeStandard, Recurrence: recurrence}).IsRecurringTemplate())
}

func TestRecurrence_NextRunAfter(t *testing.T) {
	from := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		pattern domain.RecurrencePattern
		want    time.Time
	}{
		{domain.RecurDaily, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{domain.RecurWeekly, time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)},
		{domain.RecurMonthly, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)}, // Jan 31 + 1 month normalizes past Feb
		{domain.RecurQuarterly, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		{domain.RecurYearly, time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.pattern), func(t *testing.T) {
			r := domain.Recurrence{Pattern: tt.pattern, StartDate: from}
			assert.Equal(t, tt.want, r.NextRunAfter(from))
		})
	}
}

func TestJournalLine_IsUnusual(t *testing.T) {
	both := domain.JournalLine{Debit: decimal.NewFromInt(10), Credit: decimal.NewFromInt(5)}
	assert.True(t, both.IsUnusual())

	debitOnly := domain.JournalLine{Debit: decimal.NewFromInt(10), Credit: decimal.Zero}
	assert.False(t, debitOnly.IsUnusual())

	creditOnly := domain.JournalLine{Debit: decimal.Zero, Credit: decimal.NewFromInt(10)}
	assert.False(t, creditOnly.IsUnusual())
}
