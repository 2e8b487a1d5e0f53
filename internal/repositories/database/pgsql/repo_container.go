package pgsql

import (
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	journalRepo := newPgxJournalRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	periodRepo := newPgxPeriodRepository(dbPool)
	sequenceRepo := newPgxSequenceRepository(dbPool)

	return portsrepo.RepositoryProvider{
		JournalRepo:  journalRepo,
		LedgerRepo:   ledgerRepo,
		AccountRepo:  accountRepo,
		PeriodRepo:   periodRepo,
		SequenceRepo: sequenceRepo,
	}
}
