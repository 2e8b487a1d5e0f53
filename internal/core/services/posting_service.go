package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/finbooks/finbooks_backend/internal/utils/accounting"
)

// postingService is the posting engine. It is the only component that writes
// general_ledger rows, and it does so in exactly one transaction per entry.
type postingService struct {
	journalRepo  portsrepo.JournalRepositoryWithTx
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	periodRepo   portsrepo.PeriodRepositoryFacade
	sequenceRepo portsrepo.SequenceRepository
	accountSvc   portssvc.AccountDirectorySvc
}

// NewPostingService creates the posting engine.
func NewPostingService(
	journalRepo portsrepo.JournalRepositoryWithTx,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	periodRepo portsrepo.PeriodRepositoryFacade,
	sequenceRepo portsrepo.SequenceRepository,
	accountSvc portssvc.AccountDirectorySvc,
) portssvc.PostingSvc {
	return &postingService{
		journalRepo:  journalRepo,
		ledgerRepo:   ledgerRepo,
		periodRepo:   periodRepo,
		sequenceRepo: sequenceRepo,
		accountSvc:   accountSvc,
	}
}

var _ portssvc.PostingSvc = (*postingService)(nil)

// Post turns an APPROVED entry into immutable general ledger rows.
//
// Cheap pre-checks run outside the transaction; the transaction itself
// re-checks the period under a share lock and claims the entry with an
// APPROVED -> POSTED compare-and-swap, so of two concurrent posters exactly
// one commits ledger rows.
func (s *postingService) Post(ctx context.Context, entryID string, posterUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	switch entry.Status {
	case domain.StatusPosted:
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyPosted, entryID)
	case domain.StatusApproved:
		// proceed
	default:
		return nil, fmt.Errorf("%w: entry %s is %s, posting requires %s", apperrors.ErrStateConflict, entryID, entry.Status, domain.StatusApproved)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: entry %s has no lines", apperrors.ErrValidation, entryID)
	}

	// The balance invariant was checked at create and update; posting is the
	// last gate, so check again rather than trust the stored totals.
	result := accounting.ValidateBalance(lines)
	if !result.Balanced {
		return nil, fmt.Errorf("%w: debits %s, credits %s", apperrors.ErrUnbalanced, result.TotalDebit, result.TotalCredit)
	}

	if err := s.checkAccountsPostable(ctx, lines); err != nil {
		return nil, err
	}

	open, err := s.periodGuard(ctx, entry.PeriodID)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, fmt.Errorf("%w: period %s", apperrors.ErrPeriodClosed, entry.PeriodID)
	}

	now := time.Now().UTC()

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.journalRepo.Rollback(ctx, tx)
	}()

	// Re-check under a share lock: a concurrent period close now blocks until
	// this transaction finishes, or has already won and we abort.
	status, err := s.periodRepo.GetPeriodStatusInTx(ctx, tx, entry.PeriodID)
	if err != nil {
		return nil, err
	}
	if status != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: period %s is %s", apperrors.ErrPeriodClosed, entry.PeriodID, status)
	}

	affected, err := s.journalRepo.MarkEntryPostedInTx(ctx, tx, entryID, posterUserID, now)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Lost the race: someone else posted (or otherwise moved) the entry
		// between our read and the CAS.
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyPosted, entryID)
	}

	rows, refs, err := s.appendLedgerRows(ctx, tx, entry, lines, posterUserID, now)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Journal entry posted",
		slog.String("entry_id", entryID),
		slog.String("journal_number", entry.JournalNumber),
		slog.Int("row_count", len(rows)))

	entry.Status = domain.StatusPosted
	entry.PostedBy = &posterUserID
	entry.PostedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = posterUserID
	for i := range lines {
		rowID := refs[lines[i].LineID]
		lines[i].LedgerRowID = &rowID
	}
	entry.Lines = lines
	return entry, nil
}

// PostReversal persists an APPROVED reversing entry and posts it in the same
// transaction that claims the original, so the reversal is all-or-nothing:
// a failed post leaves no free-standing reversing entry behind, and of two
// concurrent reversals the loser's is_reversed compare-and-swap rolls back
// every row the loser wrote.
func (s *postingService) PostReversal(ctx context.Context, original *domain.JournalEntry, reversal domain.JournalEntry, lines []domain.JournalLine, posterUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: entry %s has no lines", apperrors.ErrValidation, reversal.EntryID)
	}
	result := accounting.ValidateBalance(lines)
	if !result.Balanced {
		return nil, fmt.Errorf("%w: debits %s, credits %s", apperrors.ErrUnbalanced, result.TotalDebit, result.TotalCredit)
	}
	if err := s.checkAccountsPostable(ctx, lines); err != nil {
		return nil, err
	}
	open, err := s.periodGuard(ctx, reversal.PeriodID)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, fmt.Errorf("%w: period %s", apperrors.ErrPeriodClosed, reversal.PeriodID)
	}

	now := time.Now().UTC()

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.journalRepo.Rollback(ctx, tx)
	}()

	status, err := s.periodRepo.GetPeriodStatusInTx(ctx, tx, reversal.PeriodID)
	if err != nil {
		return nil, err
	}
	if status != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: period %s is %s", apperrors.ErrPeriodClosed, reversal.PeriodID, status)
	}

	if err := s.journalRepo.SaveEntryInTx(ctx, tx, reversal, lines); err != nil {
		return nil, err
	}

	affected, err := s.journalRepo.MarkEntryReversedInTx(ctx, tx, original.EntryID, reversal.EntryID, posterUserID, now)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Lost the race: another reversal claimed the original first. The
		// rollback discards the reversing entry we just saved.
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyReversed, original.EntryID)
	}

	if _, err := s.journalRepo.MarkEntryPostedInTx(ctx, tx, reversal.EntryID, posterUserID, now); err != nil {
		return nil, err
	}

	rows, refs, err := s.appendLedgerRows(ctx, tx, &reversal, lines, posterUserID, now)
	if err != nil {
		return nil, err
	}

	// Stamp the original's rows with the reversing row that offsets each of
	// them, matched by line number.
	reversedBy := make(map[int]string, len(rows))
	for _, row := range rows {
		reversedBy[row.LineNumber] = row.RowID
	}
	if err := s.ledgerRepo.MarkRowsReversedInTx(ctx, tx, original.EntryID, reversedBy); err != nil {
		return nil, err
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Journal entry reversed",
		slog.String("entry_id", original.EntryID),
		slog.String("reversal_entry_id", reversal.EntryID),
		slog.String("reversal_number", reversal.JournalNumber),
		slog.Int("row_count", len(rows)))

	reversal.Status = domain.StatusPosted
	reversal.PostedBy = &posterUserID
	reversal.PostedAt = &now
	reversal.LastUpdatedAt = now
	reversal.LastUpdatedBy = posterUserID
	for i := range lines {
		rowID := refs[lines[i].LineID]
		lines[i].LedgerRowID = &rowID
	}
	reversal.Lines = lines
	return &reversal, nil
}

// appendLedgerRows writes one immutable ledger row per line inside tx, each
// with its own transaction number from the atomic sequence, and links the
// rows back onto the lines. Returns the rows and the line ID -> row ID map.
func (s *postingService) appendLedgerRows(ctx context.Context, tx pgx.Tx, entry *domain.JournalEntry, lines []domain.JournalLine, posterUserID string, now time.Time) ([]domain.LedgerRow, map[string]string, error) {
	rows := make([]domain.LedgerRow, len(lines))
	refs := make(map[string]string, len(lines))
	for i, line := range lines {
		seq, err := s.sequenceRepo.NextValueInTx(ctx, tx, ledgerNumberPrefix, entry.PostingDate.Year())
		if err != nil {
			return nil, nil, err
		}

		rowID := uuid.NewString()
		rows[i] = domain.LedgerRow{
			RowID:             rowID,
			TransactionNumber: formatDocumentNumber(ledgerNumberPrefix, entry.PostingDate.Year(), seq),
			TransactionType:   domain.LedgerSourceJournalEntry,
			AccountID:         line.AccountID,
			PeriodID:          entry.PeriodID,
			PostingDate:       entry.PostingDate,
			TransactionDate:   entry.JournalDate,
			Debit:             line.Debit,
			Credit:            line.Credit,
			NetAmount:         line.Debit.Sub(line.Credit),
			Description:       line.Description,
			EntryID:           entry.EntryID,
			LineNumber:        line.LineNumber,
			Status:            domain.LedgerRowPosted,
			Dimensions:        line.Dimensions,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     posterUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: posterUserID,
			},
		}
		refs[line.LineID] = rowID
	}

	if err := s.ledgerRepo.AppendRowsInTx(ctx, tx, rows); err != nil {
		return nil, nil, err
	}
	if err := s.journalRepo.SetLineLedgerRefsInTx(ctx, tx, refs); err != nil {
		return nil, nil, err
	}
	return rows, refs, nil
}

// checkAccountsPostable loads every account referenced by the lines and
// rejects the posting if any is missing, inactive or non-posting.
func (s *postingService) checkAccountsPostable(ctx context.Context, lines []domain.JournalLine) error {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		ids = append(ids, line.AccountID)
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !acc.IsPostable() {
			return fmt.Errorf("%w: account %s (%s)", apperrors.ErrAccountNotPostable, acc.Code, id)
		}
	}
	return nil
}

// periodGuard is the out-of-tx period check. The in-tx FOR SHARE re-check is
// what actually protects the commit; this one just fails fast.
func (s *postingService) periodGuard(ctx context.Context, periodID string) (bool, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return false, err
	}
	return period.IsOpen(), nil
}
