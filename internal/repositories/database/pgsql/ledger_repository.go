package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	"github.com/finbooks/finbooks_backend/internal/models"
	"github.com/finbooks/finbooks_backend/internal/utils/mapping"
	"github.com/finbooks/finbooks_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for general ledger rows.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerColumns = `row_id, transaction_number, transaction_type, account_id, period_id, posting_date, transaction_date, debit, credit, net_amount, description, entry_id, line_number, status, reversed_by_row_id, cost_center_id, department_id, project_id, location_id, party_id, created_at, created_by, last_updated_at, last_updated_by`

func scanLedgerRow(row pgx.Row) (*models.LedgerRow, error) {
	var m models.LedgerRow
	err := row.Scan(
		&m.RowID,
		&m.TransactionNumber,
		&m.TransactionType,
		&m.AccountID,
		&m.PeriodID,
		&m.PostingDate,
		&m.TransactionDate,
		&m.Debit,
		&m.Credit,
		&m.NetAmount,
		&m.Description,
		&m.EntryID,
		&m.LineNumber,
		&m.Status,
		&m.ReversedByRowID,
		&m.CostCenterID,
		&m.DepartmentID,
		&m.ProjectID,
		&m.LocationID,
		&m.PartyID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// AppendRowsInTx inserts ledger rows inside the posting transaction.
// There is no update counterpart for financial fields anywhere in this
// repository: rows are historical facts once committed.
func (r *PgxLedgerRepository) AppendRowsInTx(ctx context.Context, tx pgx.Tx, rows []domain.LedgerRow) error {
	query := `
		INSERT INTO general_ledger (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);
	`

	batch := &pgx.Batch{}
	for _, row := range rows {
		m := mapping.ToModelLedgerRow(row)
		batch.Queue(query,
			m.RowID,
			m.TransactionNumber,
			m.TransactionType,
			m.AccountID,
			m.PeriodID,
			m.PostingDate,
			m.TransactionDate,
			m.Debit,
			m.Credit,
			m.NetAmount,
			m.Description,
			m.EntryID,
			m.LineNumber,
			m.Status,
			m.ReversedByRowID,
			m.CostCenterID,
			m.DepartmentID,
			m.ProjectID,
			m.LocationID,
			m.PartyID,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to append general ledger rows", err)
	}
	return nil
}

// MarkRowsReversedInTx sets the reversed-by back-link on the original
// entry's rows. reversedBy maps original line number to the reversing row ID.
func (r *PgxLedgerRepository) MarkRowsReversedInTx(ctx context.Context, tx pgx.Tx, entryID string, reversedBy map[int]string) error {
	query := `
		UPDATE general_ledger
		SET status = 'REVERSED',
		    reversed_by_row_id = $3
		WHERE entry_id = $1 AND line_number = $2;
	`

	batch := &pgx.Batch{}
	for lineNumber, rowID := range reversedBy {
		batch.Queue(query, entryID, lineNumber, rowID)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to mark ledger rows reversed for entry "+entryID, err)
	}
	return nil
}

// FindRowsByEntryID retrieves the rows produced by posting an entry.
func (r *PgxLedgerRepository) FindRowsByEntryID(ctx context.Context, entryID string) ([]domain.LedgerRow, error) {
	query := `SELECT ` + ledgerColumns + ` FROM general_ledger WHERE entry_id = $1 ORDER BY line_number;`

	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger rows for entry "+entryID, err)
	}
	defer rows.Close()

	modelRows := []models.LedgerRow{}
	for rows.Next() {
		m, err := scanLedgerRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger row for entry "+entryID, err)
		}
		modelRows = append(modelRows, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger rows for entry "+entryID, err)
	}

	return mapping.ToDomainLedgerRowSlice(modelRows), nil
}

// SumAmountsByAccountID returns the account's total debits and credits.
func (r *PgxLedgerRepository) SumAmountsByAccountID(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM general_ledger
		WHERE account_id = $1;
	`
	var totalDebit, totalCredit decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&totalDebit, &totalCredit); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum ledger amounts for account "+accountID, err)
	}
	return totalDebit, totalCredit, nil
}

// ListRowsByAccountID retrieves a paginated list of ledger rows for an
// account using token-based pagination on (posting_date, created_at).
func (r *PgxLedgerRepository) ListRowsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerRow, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + ledgerColumns + ` FROM general_ledger WHERE account_id = $1`
	orderByClause := `ORDER BY posting_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{accountID}

	if nextToken != nil && *nextToken != "" {
		lastPostingDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (posting_date, created_at) < ($2, $3)`
		args = append(args, lastPostingDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger rows for account "+accountID, err)
	}
	defer rows.Close()

	modelRows := make([]models.LedgerRow, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanLedgerRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger row for account "+accountID, scanErr)
		}
		modelRows = append(modelRows, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, fmt.Sprintf("error iterating ledger rows for account %s", accountID), err)
	}

	var nextTokenVal *string
	results := modelRows
	if len(modelRows) > limit {
		lastRow := modelRows[limit-1]
		token := pagination.EncodeToken(lastRow.PostingDate, lastRow.CreatedAt)
		nextTokenVal = &token
		results = modelRows[:limit]
	}

	return mapping.ToDomainLedgerRowSlice(results), nextTokenVal, nil
}
