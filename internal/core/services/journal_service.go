package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/finbooks/finbooks_backend/internal/utils/accounting"
)

// journalService drives journal entries through their lifecycle. Everything
// that touches the general ledger is delegated to the posting engine.
type journalService struct {
	journalRepo  portsrepo.JournalRepositoryWithTx
	sequenceRepo portsrepo.SequenceRepository
	accountSvc   portssvc.AccountDirectorySvc
	periodSvc    portssvc.PeriodGuardSvc
	postingSvc   portssvc.PostingSvc
}

// NewJournalService creates a new journal service.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryWithTx,
	sequenceRepo portsrepo.SequenceRepository,
	accountSvc portssvc.AccountDirectorySvc,
	periodSvc portssvc.PeriodGuardSvc,
	postingSvc portssvc.PostingSvc,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:  journalRepo,
		sequenceRepo: sequenceRepo,
		accountSvc:   accountSvc,
		periodSvc:    periodSvc,
		postingSvc:   postingSvc,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildLines converts request lines to domain lines, numbering them in
// request order starting at 1.
func buildLines(entryID string, reqLines []dto.CreateJournalLineRequest, userID string, now time.Time) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(reqLines))
	for i, rl := range reqLines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			LineNumber:  i + 1,
			AccountID:   rl.AccountID,
			Debit:       rl.Debit,
			Credit:      rl.Credit,
			Description: rl.Description,
			Dimensions: domain.Dimensions{
				CostCenterID: rl.CostCenterID,
				DepartmentID: rl.DepartmentID,
				ProjectID:    rl.ProjectID,
				LocationID:   rl.LocationID,
				PartyID:      rl.PartyID,
			},
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	return lines
}

// validateLines runs amount checks and the balance check, returning the
// computed totals.
func (s *journalService) validateLines(ctx context.Context, lines []domain.JournalLine) (accounting.BalanceResult, error) {
	if err := accounting.ValidateLineAmounts(lines); err != nil {
		return accounting.BalanceResult{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}
	result := accounting.ValidateBalance(lines)
	if !result.Balanced {
		return result, fmt.Errorf("%w: debits %s, credits %s, delta %s",
			apperrors.ErrUnbalanced, result.TotalDebit, result.TotalCredit, result.Delta)
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	for i := range lines {
		if lines[i].IsUnusual() {
			logger.Warn("Journal line carries both debit and credit",
				slog.String("entry_id", lines[i].EntryID),
				slog.Int("line_number", lines[i].LineNumber))
		}
	}
	return result, nil
}

// checkAccountsExist verifies every referenced account exists and accepts
// postings. Rejecting bad accounts at create keeps garbage out of drafts.
func (s *journalService) checkAccountsExist(ctx context.Context, lines []domain.JournalLine) error {
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

// CreateEntry validates and persists a new DRAFT entry with its lines.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	journalType := domain.JournalType(req.JournalType)
	if journalType == domain.TypeRecurring && req.Recurrence == nil {
		return nil, fmt.Errorf("%w: recurring entries require recurrence metadata", apperrors.ErrValidation)
	}
	if journalType != domain.TypeRecurring && req.Recurrence != nil {
		return nil, fmt.Errorf("%w: recurrence metadata is only valid on RECURRING entries", apperrors.ErrValidation)
	}

	// The period must exist; whether it is open only matters at posting time.
	if _, err := s.periodSvc.IsOpen(ctx, req.PeriodID); err != nil {
		return nil, err
	}

	entryID := uuid.NewString()
	lines := buildLines(entryID, req.Lines, creatorUserID, now)

	result, err := s.validateLines(ctx, lines)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccountsExist(ctx, lines); err != nil {
		return nil, err
	}

	seq, err := s.sequenceRepo.NextValue(ctx, journalNumberPrefix, req.JournalDate.Year())
	if err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryID:       entryID,
		JournalNumber: formatDocumentNumber(journalNumberPrefix, req.JournalDate.Year(), seq),
		JournalType:   journalType,
		PeriodID:      req.PeriodID,
		JournalDate:   req.JournalDate,
		PostingDate:   req.PostingDate,
		Description:   req.Description,
		Status:        domain.StatusDraft,
		TotalDebit:    result.TotalDebit,
		TotalCredit:   result.TotalCredit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if req.Recurrence != nil {
		start := req.Recurrence.StartDate
		entry.Recurrence = &domain.Recurrence{
			Pattern:     domain.RecurrencePattern(req.Recurrence.Pattern),
			StartDate:   start,
			EndDate:     req.Recurrence.EndDate,
			NextRunDate: &start,
		}
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}

	logger.Info("Journal entry created",
		slog.String("entry_id", entryID),
		slog.String("journal_number", entry.JournalNumber),
		slog.Int("line_count", len(lines)))

	entry.Lines = lines
	return &entry, nil
}

// GetEntryByID retrieves an entry together with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a page of entries, optionally filtered by status.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	var status *domain.JournalStatus
	if params.Status != nil && *params.Status != "" {
		st := domain.JournalStatus(*params.Status)
		if !st.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *params.Status)
		}
		status = &st
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, params.Limit, params.NextToken, status)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListEntriesResponse{
		Entries:   make([]dto.JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return resp, nil
}

// UpdateEntry mutates a DRAFT entry. When lines are supplied, the full set is
// replaced and the balance re-validated.
func (s *journalService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.IsEditable() {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrImmutableEntry, entryID, entry.Status)
	}

	if req.JournalDate != nil {
		entry.JournalDate = *req.JournalDate
	}
	if req.PostingDate != nil {
		entry.PostingDate = *req.PostingDate
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	var newLines []domain.JournalLine
	if req.Lines != nil {
		newLines = buildLines(entryID, req.Lines, userID, now)
		result, err := s.validateLines(ctx, newLines)
		if err != nil {
			return nil, err
		}
		if err := s.checkAccountsExist(ctx, newLines); err != nil {
			return nil, err
		}
		entry.TotalDebit = result.TotalDebit
		entry.TotalCredit = result.TotalCredit
	}

	// ReplaceLines writes the header and the new lines in one transaction, so
	// the stored totals can never describe lines that were not written.
	if newLines != nil {
		if err := s.journalRepo.ReplaceLines(ctx, *entry, newLines); err != nil {
			return nil, err
		}
		entry.Lines = newLines
	} else {
		if err := s.journalRepo.UpdateEntryHeader(ctx, *entry); err != nil {
			return nil, err
		}
		lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
		if err != nil {
			return nil, err
		}
		entry.Lines = lines
	}

	logger.Info("Journal entry updated", slog.String("entry_id", entryID), slog.Bool("lines_replaced", newLines != nil))
	return entry, nil
}

// DeleteEntry removes a DRAFT entry and its lines.
func (s *journalService) DeleteEntry(ctx context.Context, entryID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	deleted, err := s.journalRepo.DeleteEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		entry, findErr := s.journalRepo.FindEntryByID(ctx, entryID)
		if findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: entry %s is %s", apperrors.ErrImmutableEntry, entryID, entry.Status)
	}

	logger.Info("Journal entry deleted", slog.String("entry_id", entryID), slog.String("user_id", userID))
	return nil
}

// transition performs a guarded workflow transition and returns the refreshed entry.
func (s *journalService) transition(ctx context.Context, entryID string, from, to domain.JournalStatus, stamp portsrepo.StatusStamp) (*domain.JournalEntry, error) {
	if !from.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrStateConflict, from, to)
	}

	affected, err := s.journalRepo.TransitionStatus(ctx, entryID, from, to, stamp)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: entry %s is no longer %s", apperrors.ErrStateConflict, entryID, from)
	}
	return s.GetEntryByID(ctx, entryID)
}

// SubmitEntry moves DRAFT -> PENDING_APPROVAL. The entry must balance.
func (s *journalService) SubmitEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.StatusDraft {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrStateConflict, entryID, entry.Status)
	}
	if !entry.IsBalanced() {
		return nil, fmt.Errorf("%w: debits %s, credits %s", apperrors.ErrUnbalanced, entry.TotalDebit, entry.TotalCredit)
	}

	return s.transition(ctx, entryID, domain.StatusDraft, domain.StatusPendingApproval, portsrepo.StatusStamp{
		Actor: userID,
		At:    time.Now().UTC(),
	})
}

// ApproveEntry moves PENDING_APPROVAL -> APPROVED.
func (s *journalService) ApproveEntry(ctx context.Context, entryID string, approverUserID string) (*domain.JournalEntry, error) {
	return s.transition(ctx, entryID, domain.StatusPendingApproval, domain.StatusApproved, portsrepo.StatusStamp{
		Actor: approverUserID,
		At:    time.Now().UTC(),
	})
}

// RejectEntry moves PENDING_APPROVAL -> REJECTED, recording the reason.
func (s *journalService) RejectEntry(ctx context.Context, entryID string, rejectorUserID string, reason string) (*domain.JournalEntry, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
	}
	return s.transition(ctx, entryID, domain.StatusPendingApproval, domain.StatusRejected, portsrepo.StatusStamp{
		Actor:  rejectorUserID,
		At:     time.Now().UTC(),
		Reason: &reason,
	})
}

// PostEntry hands the entry to the posting engine.
func (s *journalService) PostEntry(ctx context.Context, entryID string, posterUserID string) (*domain.JournalEntry, error) {
	return s.postingSvc.Post(ctx, entryID, posterUserID)
}

// ReverseEntry builds a mirror entry for a posted one and hands it to the
// posting engine, which persists it, claims the original and posts it in one
// transaction. The status and is_reversed checks here only fail fast; the
// engine's in-transaction compare-and-swap is what makes a second concurrent
// reversal lose without leaving anything behind.
func (s *journalService) ReverseEntry(ctx context.Context, entryID string, req dto.ReverseJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	original, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.StatusPosted {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrNotPosted, entryID, original.Status)
	}
	if original.IsReversed {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyReversed, entryID)
	}

	reversalID := uuid.NewString()
	seq, err := s.sequenceRepo.NextValue(ctx, journalNumberPrefix, req.ReversalDate.Year())
	if err != nil {
		return nil, err
	}

	// The reversal is born APPROVED: reversing a posted entry is itself the
	// authorization, so it skips the draft/approval workflow.
	reversal := domain.JournalEntry{
		EntryID:         reversalID,
		JournalNumber:   formatDocumentNumber(journalNumberPrefix, req.ReversalDate.Year(), seq),
		JournalType:     domain.TypeReversing,
		PeriodID:        original.PeriodID,
		JournalDate:     req.ReversalDate,
		PostingDate:     req.ReversalDate,
		Description:     fmt.Sprintf("Reversal of %s. %s", original.JournalNumber, req.Reason),
		Status:          domain.StatusApproved,
		TotalDebit:      original.TotalCredit,
		TotalCredit:     original.TotalDebit,
		ReversesEntryID: &entryID,
		SubmittedBy:     &userID,
		SubmittedAt:     &now,
		ApprovedBy:      &userID,
		ApprovedAt:      &now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	reversalLines := make([]domain.JournalLine, len(original.Lines))
	for i, line := range original.Lines {
		reversalLines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     reversalID,
			LineNumber:  line.LineNumber,
			AccountID:   line.AccountID,
			Debit:       line.Credit,
			Credit:      line.Debit,
			Description: "Reversal: " + line.Description,
			Dimensions:  line.Dimensions,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	posted, err := s.postingSvc.PostReversal(ctx, original, reversal, reversalLines, userID)
	if err != nil {
		return nil, err
	}

	logger.Info("Journal entry reversed",
		slog.String("entry_id", entryID),
		slog.String("reversal_entry_id", reversalID),
		slog.String("reversal_number", reversal.JournalNumber))
	return posted, nil
}

// GenerateRecurringEntry clones a recurring template into a brand-new DRAFT
// entry dated now and advances the template's next-run date.
func (s *journalService) GenerateRecurringEntry(ctx context.Context, templateEntryID string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	template, err := s.GetEntryByID(ctx, templateEntryID)
	if err != nil {
		return nil, err
	}
	if !template.IsRecurringTemplate() {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrNotRecurring, templateEntryID)
	}
	if template.Recurrence.EndDate != nil && now.After(*template.Recurrence.EndDate) {
		return nil, fmt.Errorf("%w: recurrence ended %s", apperrors.ErrValidation, template.Recurrence.EndDate.Format(time.DateOnly))
	}

	entryID := uuid.NewString()
	seq, err := s.sequenceRepo.NextValue(ctx, journalNumberPrefix, now.Year())
	if err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryID:       entryID,
		JournalNumber: formatDocumentNumber(journalNumberPrefix, now.Year(), seq),
		JournalType:   domain.TypeStandard,
		PeriodID:      template.PeriodID,
		JournalDate:   now,
		PostingDate:   now,
		Description:   template.Description + " (Auto-generated)",
		Status:        domain.StatusDraft,
		TotalDebit:    template.TotalDebit,
		TotalCredit:   template.TotalCredit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	lines := make([]domain.JournalLine, len(template.Lines))
	for i, line := range template.Lines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			LineNumber:  line.LineNumber,
			AccountID:   line.AccountID,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
			Dimensions:  line.Dimensions,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		return nil, err
	}

	// Advance the template's next-run date. The template stays a DRAFT, so
	// the header update's draft guard always holds for it.
	nextRun := template.Recurrence.NextRunAfter(now)
	template.Recurrence.NextRunDate = &nextRun
	template.LastUpdatedAt = now
	template.LastUpdatedBy = userID
	if err := s.journalRepo.UpdateEntryHeader(ctx, *template); err != nil {
		logger.Warn("Failed to advance recurring template next-run date",
			slog.String("template_entry_id", templateEntryID),
			slog.String("error", err.Error()))
	}

	logger.Info("Recurring entry generated",
		slog.String("template_entry_id", templateEntryID),
		slog.String("entry_id", entryID),
		slog.String("journal_number", entry.JournalNumber))

	entry.Lines = lines
	return &entry, nil
}
