package models

import "time"

// PeriodStatus is the stored posting gate of a financial period.
type PeriodStatus string

// FinancialPeriod maps to the financial_periods table.
type FinancialPeriod struct {
	PeriodID  string       `json:"periodID"`
	Name      string       `json:"name"`
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"`
	Status    PeriodStatus `json:"status"`
	AuditFields
}
