package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
)

// PeriodGuardSvc is the collaborator view posting needs: is this period
// open for postings right now.
type PeriodGuardSvc interface {
	// IsOpen reports whether the period accepts postings. Returns
	// apperrors.ErrNotFound when the period does not exist.
	IsOpen(ctx context.Context, periodID string) (bool, error)
}

// PeriodSvcFacade combines period administration with the guard.
type PeriodSvcFacade interface {
	PeriodGuardSvc

	// CreatePeriod creates a new OPEN financial period.
	CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.FinancialPeriod, error)

	// GetPeriodByID retrieves a period by ID.
	GetPeriodByID(ctx context.Context, periodID string) (*domain.FinancialPeriod, error)

	// ListPeriods retrieves periods with offset pagination.
	ListPeriods(ctx context.Context, limit int, offset int) ([]domain.FinancialPeriod, error)

	// ClosePeriod moves OPEN -> CLOSED.
	ClosePeriod(ctx context.Context, periodID string, userID string) error

	// ReopenPeriod moves CLOSED -> OPEN. Locked periods stay locked.
	ReopenPeriod(ctx context.Context, periodID string, userID string) error

	// LockPeriod moves CLOSED -> LOCKED (terminal).
	LockPeriod(ctx context.Context, periodID string, userID string) error
}
