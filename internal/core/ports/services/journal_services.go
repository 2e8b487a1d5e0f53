package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// JournalWriterSvc defines the aggregate operations that drive an entry
// through its lifecycle.
type JournalWriterSvc interface {
	// CreateEntry validates balance and persists a new DRAFT entry with lines.
	CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// UpdateEntry updates a DRAFT entry; replacing lines re-runs the balance check.
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// DeleteEntry removes a DRAFT entry and its lines.
	DeleteEntry(ctx context.Context, entryID string, userID string) error

	// SubmitEntry moves DRAFT -> PENDING_APPROVAL.
	SubmitEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)

	// ApproveEntry moves PENDING_APPROVAL -> APPROVED.
	ApproveEntry(ctx context.Context, entryID string, approverUserID string) (*domain.JournalEntry, error)

	// RejectEntry moves PENDING_APPROVAL -> REJECTED (terminal).
	RejectEntry(ctx context.Context, entryID string, rejectorUserID string, reason string) (*domain.JournalEntry, error)

	// PostEntry posts an APPROVED entry to the general ledger.
	PostEntry(ctx context.Context, entryID string, posterUserID string) (*domain.JournalEntry, error)

	// ReverseEntry creates and posts a mirror entry, flagging the original in
	// the same transaction.
	ReverseEntry(ctx context.Context, entryID string, req dto.ReverseJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// GenerateRecurringEntry clones a recurring template into a new DRAFT
	// entry dated now.
	GenerateRecurringEntry(ctx context.Context, templateEntryID string, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}

// PostingSvc is the posting engine: the only component allowed to write
// general ledger rows. Post atomically creates one ledger row per line,
// links the rows back onto the lines, and flips the entry to POSTED.
type PostingSvc interface {
	Post(ctx context.Context, entryID string, posterUserID string) (*domain.JournalEntry, error)

	// PostReversal persists the given APPROVED reversing entry, claims the
	// original via its is_reversed compare-and-swap, posts the reversal and
	// back-links the original's ledger rows, all in one transaction. A failed
	// or lost reversal therefore leaves no trace: no free-standing reversing
	// entry, no ledger rows.
	PostReversal(ctx context.Context, original *domain.JournalEntry, reversal domain.JournalEntry, lines []domain.JournalLine, posterUserID string) (*domain.JournalEntry, error)
}
