package repositories

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations for general ledger rows
type LedgerReader interface {
	// FindRowsByEntryID retrieves the ledger rows produced by posting an
	// entry, ordered by line number.
	FindRowsByEntryID(ctx context.Context, entryID string) ([]domain.LedgerRow, error)

	// ListRowsByAccountID retrieves a paginated list of ledger rows for an
	// account using token-based pagination.
	ListRowsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerRow, *string, error)

	// SumAmountsByAccountID returns the account's total debits and credits
	// across all its ledger rows.
	SumAmountsByAccountID(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error)
}

// LedgerWriter defines write operations for general ledger rows. Rows are
// append-only: there is deliberately no update primitive for financial
// fields, only the reversal back-link.
type LedgerWriter interface {
	// AppendRowsInTx inserts ledger rows inside the posting transaction.
	AppendRowsInTx(ctx context.Context, tx pgx.Tx, rows []domain.LedgerRow) error

	// MarkRowsReversedInTx sets the reversed-by back-link and REVERSED status
	// on the original entry's rows inside the reversal posting transaction.
	MarkRowsReversedInTx(ctx context.Context, tx pgx.Tx, entryID string, reversedBy map[int]string) error
}

// LedgerRepositoryFacade combines ledger repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
