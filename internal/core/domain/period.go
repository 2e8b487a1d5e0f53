package domain

import "time"

// PeriodStatus controls whether a financial period accepts postings.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
	PeriodLocked PeriodStatus = "LOCKED"
)

// FinancialPeriod is a bounded accounting window. Postings are rejected
// unless the period is OPEN. LOCKED periods cannot be reopened.
type FinancialPeriod struct {
	PeriodID  string       `json:"periodID"` // Primary key (UUID)
	Name      string       `json:"name"`     // e.g. "2026-08"
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"`
	Status    PeriodStatus `json:"status"`
	AuditFields
}

// IsOpen reports whether the period accepts postings.
func (p *FinancialPeriod) IsOpen() bool {
	return p.Status == PeriodOpen
}
