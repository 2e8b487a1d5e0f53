package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/utils/accounting"
)

// ledgerService is the read side of the general ledger.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	accountSvc portssvc.AccountDirectorySvc
}

// NewLedgerService creates a new ledger query service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountSvc portssvc.AccountDirectorySvc) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo, accountSvc: accountSvc}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// ListRowsByAccount retrieves a page of ledger rows for an account.
func (s *ledgerService) ListRowsByAccount(ctx context.Context, params dto.ListLedgerRowsParams) (*dto.ListLedgerRowsResponse, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, params.AccountID); err != nil {
		return nil, err
	}

	rows, nextToken, err := s.ledgerRepo.ListRowsByAccountID(ctx, params.AccountID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	return &dto.ListLedgerRowsResponse{
		Rows:      dto.ToLedgerRowResponses(rows),
		NextToken: nextToken,
	}, nil
}

// GetRowsForEntry retrieves the rows produced by posting one entry.
func (s *ledgerService) GetRowsForEntry(ctx context.Context, entryID string) ([]domain.LedgerRow, error) {
	return s.ledgerRepo.FindRowsByEntryID(ctx, entryID)
}

// GetAccountBalance sums an account's ledger rows using the accounting sign
// convention for its type.
func (s *ledgerService) GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	totalDebit, totalCredit, err := s.ledgerRepo.SumAmountsByAccountID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	return accounting.SignedAmount(domain.LedgerRow{
		AccountID: accountID,
		Debit:     totalDebit,
		Credit:    totalCredit,
	}, account.AccountType)
}
