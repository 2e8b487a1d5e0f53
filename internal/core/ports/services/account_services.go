package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
)

// AccountReaderSvc defines read operations on the account directory
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account by ID.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts with offset pagination.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations on the account directory
type AccountWriterSvc interface {
	// CreateAccount adds an account to the directory.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount updates directory metadata.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
}

// AccountDirectorySvc is the collaborator view the posting engine needs:
// do these accounts exist and accept postings. The engine batch-loads them
// with GetAccountsByIDs and checks each with domain.Account.IsPostable.
type AccountDirectorySvc interface {
	AccountReaderSvc
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountDirectorySvc
	AccountWriterSvc
}
