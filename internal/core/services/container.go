package services

import (
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
)

// NewContainer wires the services together. The account directory feeds the
// posting engine, which in turn feeds the journal service.
func NewContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.AccountRepo)
	periodSvc := NewPeriodService(repos.PeriodRepo)

	postingSvc := NewPostingService(
		repos.JournalRepo,
		repos.LedgerRepo,
		repos.PeriodRepo,
		repos.SequenceRepo,
		accountSvc,
	)

	journalSvc := NewJournalService(
		repos.JournalRepo,
		repos.SequenceRepo,
		accountSvc,
		periodSvc,
		postingSvc,
	)

	ledgerSvc := NewLedgerService(repos.LedgerRepo, accountSvc)

	return &portssvc.ServiceContainer{
		Journal: journalSvc,
		Posting: postingSvc,
		Account: accountSvc,
		Period:  periodSvc,
		Ledger:  ledgerSvc,
	}
}
