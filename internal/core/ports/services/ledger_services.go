package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade defines read-only access to the general ledger.
// Writing ledger rows is the posting engine's job alone.
type LedgerSvcFacade interface {
	// ListRowsByAccount retrieves a paginated list of ledger rows for an account.
	ListRowsByAccount(ctx context.Context, params dto.ListLedgerRowsParams) (*dto.ListLedgerRowsResponse, error)

	// GetRowsForEntry retrieves the rows produced by posting one entry.
	GetRowsForEntry(ctx context.Context, entryID string) ([]domain.LedgerRow, error)

	// GetAccountBalance sums an account's rows using the accounting sign
	// convention for its type.
	GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
}
