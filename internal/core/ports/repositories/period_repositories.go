package repositories

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PeriodReader defines read operations for financial periods
type PeriodReader interface {
	// FindPeriodByID retrieves a period by its ID.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.FinancialPeriod, error)

	// ListPeriods retrieves all periods ordered by start date descending.
	ListPeriods(ctx context.Context, limit int, offset int) ([]domain.FinancialPeriod, error)

	// GetPeriodStatusInTx reads a period's status inside tx with a share
	// lock, so a concurrent close cannot commit before the posting
	// transaction does.
	GetPeriodStatusInTx(ctx context.Context, tx pgx.Tx, periodID string) (domain.PeriodStatus, error)
}

// PeriodWriter defines write operations for financial periods
type PeriodWriter interface {
	// SavePeriod inserts a new period.
	SavePeriod(ctx context.Context, period domain.FinancialPeriod) error

	// UpdatePeriodStatus performs a conditional status change (e.g. OPEN ->
	// CLOSED). Returns rows affected; 0 means the period was not in the
	// expected state.
	UpdatePeriodStatus(ctx context.Context, periodID string, from, to domain.PeriodStatus, actor string) (int64, error)
}

// PeriodRepositoryFacade combines period repository interfaces
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
