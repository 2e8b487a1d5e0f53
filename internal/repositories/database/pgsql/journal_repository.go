package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	"github.com/finbooks/finbooks_backend/internal/models"
	"github.com/finbooks/finbooks_backend/internal/utils/mapping"
	"github.com/finbooks/finbooks_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, journal_number, journal_type, period_id, journal_date, posting_date, description, status, total_debit, total_credit, recurrence_pattern, recurrence_start_date, recurrence_end_date, next_run_date, is_reversed, reversed_by, reversed_at, reversal_entry_id, reverses_entry_id, submitted_by, submitted_at, approved_by, approved_at, posted_by, posted_at, rejected_by, rejected_at, rejection_reason, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, line_number, account_id, debit, credit, description, cost_center_id, department_id, project_id, location_id, party_id, ledger_row_id, created_at, created_by, last_updated_at, last_updated_by`

func scanJournalEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.JournalNumber,
		&m.JournalType,
		&m.PeriodID,
		&m.JournalDate,
		&m.PostingDate,
		&m.Description,
		&m.Status,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.RecurrencePattern,
		&m.RecurrenceStartDate,
		&m.RecurrenceEndDate,
		&m.NextRunDate,
		&m.IsReversed,
		&m.ReversedBy,
		&m.ReversedAt,
		&m.ReversalEntryID,
		&m.ReversesEntryID,
		&m.SubmittedBy,
		&m.SubmittedAt,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.PostedBy,
		&m.PostedAt,
		&m.RejectedBy,
		&m.RejectedAt,
		&m.RejectionReason,
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

func scanJournalLine(row pgx.Row) (*models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.LineNumber,
		&m.AccountID,
		&m.Debit,
		&m.Credit,
		&m.Description,
		&m.CostCenterID,
		&m.DepartmentID,
		&m.ProjectID,
		&m.LocationID,
		&m.PartyID,
		&m.LedgerRowID,
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

func queueLineInsert(batch *pgx.Batch, line models.JournalLine) {
	query := `
		INSERT INTO journal_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	batch.Queue(query,
		line.LineID,
		line.EntryID,
		line.LineNumber,
		line.AccountID,
		line.Debit,
		line.Credit,
		line.Description,
		line.CostCenterID,
		line.DepartmentID,
		line.ProjectID,
		line.LocationID,
		line.PartyID,
		line.LedgerRowID,
		line.CreatedAt,
		line.CreatedBy,
		line.LastUpdatedAt,
		line.LastUpdatedBy,
	)
}

// SaveEntry persists a new entry and its lines in one transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	if err = r.SaveEntryInTx(ctx, tx, entry, lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveEntryInTx persists a new entry and its lines inside the caller's
// transaction. The posting engine uses this to create reversing entries in
// the same transaction that posts them.
func (r *PgxJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error {
	m := mapping.ToModelJournalEntry(entry)

	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32);
	`
	_, err := tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.JournalNumber,
		m.JournalType,
		m.PeriodID,
		m.JournalDate,
		m.PostingDate,
		m.Description,
		m.Status,
		m.TotalDebit,
		m.TotalCredit,
		m.RecurrencePattern,
		m.RecurrenceStartDate,
		m.RecurrenceEndDate,
		m.NextRunDate,
		m.IsReversed,
		m.ReversedBy,
		m.ReversedAt,
		m.ReversalEntryID,
		m.ReversesEntryID,
		m.SubmittedBy,
		m.SubmittedAt,
		m.ApprovedBy,
		m.ApprovedAt,
		m.PostedBy,
		m.PostedAt,
		m.RejectedBy,
		m.RejectedAt,
		m.RejectionReason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: journal number %s already exists", apperrors.ErrDuplicate, m.JournalNumber)
		}
		return apperrors.NewAppError(500, "failed to save journal entry "+m.EntryID, err)
	}

	batch := &pgx.Batch{}
	for _, line := range lines {
		queueLineInsert(batch, mapping.ToModelJournalLine(line))
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to save journal lines for entry "+m.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves a journal entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+entryID, err)
	}

	d := mapping.ToDomainJournalEntry(*m)
	return &d, nil
}

// FindLinesByEntryID retrieves an entry's lines ordered by line number.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = $1 ORDER BY line_number;`

	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines for entry "+entryID, err)
	}
	defer rows.Close()

	modelLines := []models.JournalLine{}
	for rows.Next() {
		m, err := scanJournalLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line for entry "+entryID, err)
		}
		modelLines = append(modelLines, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal lines for entry "+entryID, err)
	}

	return mapping.ToDomainJournalLineSlice(modelLines), nil
}

// ListEntries retrieves a paginated list of entries, newest first, optionally
// filtered by status. Token-based pagination on (journal_date, created_at).
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string, status *domain.JournalStatus) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM journal_entries`
	orderByClause := `ORDER BY journal_date DESC, created_at DESC`

	conditions := []string{}
	args := []interface{}{}

	if status != nil {
		args = append(args, string(*status))
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}

	if nextToken != nil && *nextToken != "" {
		lastJournalDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastJournalDate, lastCreatedAt)
		conditions = append(conditions, fmt.Sprintf("(journal_date, created_at) < ($%d, $%d)", len(args)-1, len(args)))
	}

	query := baseQuery
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	args = append(args, fetchLimit)
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanJournalEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", scanErr)
		}
		modelEntries = append(modelEntries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.JournalDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextTokenVal, nil
}

// UpdateEntryHeader updates mutable header fields of a DRAFT entry.
func (r *PgxJournalRepository) UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)

	query := `
		UPDATE journal_entries
		SET journal_type = $2,
		    period_id = $3,
		    journal_date = $4,
		    posting_date = $5,
		    description = $6,
		    total_debit = $7,
		    total_credit = $8,
		    recurrence_pattern = $9,
		    recurrence_start_date = $10,
		    recurrence_end_date = $11,
		    next_run_date = $12,
		    last_updated_at = $13,
		    last_updated_by = $14
		WHERE entry_id = $1 AND status = 'DRAFT';
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.JournalType,
		m.PeriodID,
		m.JournalDate,
		m.PostingDate,
		m.Description,
		m.TotalDebit,
		m.TotalCredit,
		m.RecurrencePattern,
		m.RecurrenceStartDate,
		m.RecurrenceEndDate,
		m.NextRunDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+m.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is not editable", apperrors.ErrImmutableEntry, m.EntryID)
	}
	return nil
}

// ReplaceLines swaps out a draft entry's lines together with its header
// (dates, description, totals) in one transaction, so a failure can never
// leave the header describing lines that were not written. The header update
// doubles as the draft guard: when the entry is no longer DRAFT nothing is
// touched and the transaction rolls back.
func (r *PgxJournalRepository) ReplaceLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	m := mapping.ToModelJournalEntry(entry)

	headerQuery := `
		UPDATE journal_entries
		SET journal_date = $2,
		    posting_date = $3,
		    description = $4,
		    total_debit = $5,
		    total_credit = $6,
		    last_updated_at = $7,
		    last_updated_by = $8
		WHERE entry_id = $1 AND status = 'DRAFT';
	`
	cmdTag, err := tx.Exec(ctx, headerQuery, m.EntryID, m.JournalDate, m.PostingDate, m.Description, m.TotalDebit, m.TotalCredit, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update header for entry "+m.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		err = fmt.Errorf("%w: entry %s is not editable", apperrors.ErrImmutableEntry, m.EntryID)
		return err
	}

	if _, err = tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete journal lines for entry "+m.EntryID, err)
	}

	batch := &pgx.Batch{}
	for _, line := range lines {
		queueLineInsert(batch, mapping.ToModelJournalLine(line))
	}
	br := tx.SendBatch(ctx, batch)
	if err = br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert journal lines for entry "+m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteEntry removes a DRAFT entry and its lines. Returns entry rows deleted.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID string) (deleted int64, err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete journal lines for entry "+entryID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1 AND status = 'DRAFT';`, entryID)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete journal entry "+entryID, err)
	}
	deleted = cmdTag.RowsAffected()
	if deleted == 0 {
		// Nothing removed: rolling back restores any lines deleted above.
		err = r.Rollback(ctx, tx)
		return 0, err
	}

	err = r.Commit(ctx, tx)
	return deleted, err
}

// TransitionStatus performs a conditional workflow transition and records the
// actor/time stamp for the target state. Rows affected 0 means the entry was
// not in the expected state (or does not exist).
func (r *PgxJournalRepository) TransitionStatus(ctx context.Context, entryID string, from, to domain.JournalStatus, stamp portsrepo.StatusStamp) (int64, error) {
	var stampClause string
	args := []interface{}{entryID, string(from), string(to), stamp.At, stamp.Actor}

	switch to {
	case domain.StatusPendingApproval:
		stampClause = `submitted_by = $5, submitted_at = $4,`
	case domain.StatusApproved:
		stampClause = `approved_by = $5, approved_at = $4,`
	case domain.StatusPosted:
		stampClause = `posted_by = $5, posted_at = $4,`
	case domain.StatusRejected:
		stampClause = `rejected_by = $5, rejected_at = $4, rejection_reason = $6,`
		args = append(args, stamp.Reason)
	default:
		return 0, fmt.Errorf("%w: no transition records status %s", apperrors.ErrStateConflict, to)
	}

	query := `
		UPDATE journal_entries
		SET status = $3,
		    ` + stampClause + `
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE entry_id = $1 AND status = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to transition journal entry "+entryID, err)
	}
	return cmdTag.RowsAffected(), nil
}

// MarkEntryReversedInTx flips the reversal linkage on a posted entry inside
// the reversal's posting transaction, guarded by is_reversed = false so a
// concurrent reversal affects zero rows and rolls back everything it wrote.
func (r *PgxJournalRepository) MarkEntryReversedInTx(ctx context.Context, tx pgx.Tx, entryID string, reversalEntryID string, actor string, at time.Time) (int64, error) {
	query := `
		UPDATE journal_entries
		SET is_reversed = TRUE,
		    reversed_by = $3,
		    reversed_at = $4,
		    reversal_entry_id = $2,
		    last_updated_at = $4,
		    last_updated_by = $3
		WHERE entry_id = $1 AND is_reversed = FALSE;
	`
	cmdTag, err := tx.Exec(ctx, query, entryID, reversalEntryID, actor, at)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to mark journal entry reversed "+entryID, err)
	}
	return cmdTag.RowsAffected(), nil
}

// MarkEntryPostedInTx performs the APPROVED -> POSTED compare-and-swap inside
// the posting transaction. Only one of two concurrent postings can win.
func (r *PgxJournalRepository) MarkEntryPostedInTx(ctx context.Context, tx pgx.Tx, entryID string, actor string, at time.Time) (int64, error) {
	query := `
		UPDATE journal_entries
		SET status = 'POSTED',
		    posted_by = $2,
		    posted_at = $3,
		    last_updated_at = $3,
		    last_updated_by = $2
		WHERE entry_id = $1 AND status = 'APPROVED';
	`
	cmdTag, err := tx.Exec(ctx, query, entryID, actor, at)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to mark journal entry posted "+entryID, err)
	}
	return cmdTag.RowsAffected(), nil
}

// SetLineLedgerRefsInTx writes each line's ledger row ID back onto the line.
func (r *PgxJournalRepository) SetLineLedgerRefsInTx(ctx context.Context, tx pgx.Tx, refs map[string]string) error {
	query := `UPDATE journal_lines SET ledger_row_id = $2 WHERE line_id = $1;`

	batch := &pgx.Batch{}
	for lineID, rowID := range refs {
		batch.Queue(query, lineID, rowID)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to set ledger references on journal lines", err)
	}
	return nil
}
