package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// StatusStamp carries the actor and time of a workflow transition, plus the
// rejection reason when the target state is REJECTED.
type StatusStamp struct {
	Actor  string
	At     time.Time
	Reason *string
}

// JournalEntryReader defines read operations for journal entry data
type JournalEntryReader interface {
	// FindEntryByID retrieves a specific journal entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines of an entry ordered by line number.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntries retrieves a paginated list of entries using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, limit int, nextToken *string, status *domain.JournalStatus) ([]domain.JournalEntry, *string, error)
}

// JournalEntryWriter defines write operations for journal entry data
type JournalEntryWriter interface {
	// SaveEntry persists a new entry and its lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// UpdateEntryHeader updates mutable header fields (dates, description,
	// totals) of a DRAFT entry.
	UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error

	// ReplaceLines deletes an entry's lines and inserts the given set, updating
	// the header (dates, description, totals) in the same transaction. Draft
	// entries only; the precondition is enforced in the WHERE clause.
	ReplaceLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// DeleteEntry removes a DRAFT entry and its lines (lines first, then the
	// entry) within one transaction. Returns the number of entry rows deleted
	// so callers can distinguish "not draft" from "not found".
	DeleteEntry(ctx context.Context, entryID string) (int64, error)

	// TransitionStatus performs a conditional status update: the row changes
	// only if its current status equals from. Returns the number of rows
	// affected; 0 means the entry was not in the expected state.
	TransitionStatus(ctx context.Context, entryID string, from, to domain.JournalStatus, stamp StatusStamp) (int64, error)
}

// JournalPostingWriter defines the in-transaction primitives the posting
// engine composes into its atomic unit.
type JournalPostingWriter interface {
	// SaveEntryInTx persists a new entry and its lines inside tx.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error

	// MarkEntryPostedInTx performs the APPROVED -> POSTED compare-and-swap
	// inside tx. Returns rows affected; 0 means the entry was not APPROVED.
	MarkEntryPostedInTx(ctx context.Context, tx pgx.Tx, entryID string, actor string, at time.Time) (int64, error)

	// MarkEntryReversedInTx flips the reversal linkage on a posted entry inside
	// tx, guarded by is_reversed = false. Returns rows affected; 0 means the
	// entry was already reversed (or missing), in which case the caller rolls
	// the transaction back.
	MarkEntryReversedInTx(ctx context.Context, tx pgx.Tx, entryID string, reversalEntryID string, actor string, at time.Time) (int64, error)

	// SetLineLedgerRefsInTx writes each line's resulting ledger row ID back
	// onto the line inside tx.
	SetLineLedgerRefsInTx(ctx context.Context, tx pgx.Tx, refs map[string]string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
	JournalPostingWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
