package services

import "fmt"

// Document number prefixes. One sequence per prefix per year.
const (
	journalNumberPrefix = "JE"
	ledgerNumberPrefix  = "GL"
)

// formatDocumentNumber renders a sequence value as e.g. JE-2026-000042.
func formatDocumentNumber(prefix string, year int, value int64) string {
	return fmt.Sprintf("%s-%d-%06d", prefix, year, value)
}
