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
)

// periodService administers financial periods and answers the posting
// engine's open/closed question.
type periodService struct {
	periodRepo portsrepo.PeriodRepositoryFacade
}

// NewPeriodService creates a new period service.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade) portssvc.PeriodSvcFacade {
	return &periodService{periodRepo: periodRepo}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// CreatePeriod creates a new OPEN financial period.
func (s *periodService) CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.FinancialPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: period end date must be after start date", apperrors.ErrValidation)
	}

	period := domain.FinancialPeriod{
		PeriodID:  uuid.NewString(),
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    domain.PeriodOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		logger.Error("Failed to save period", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, err
	}

	logger.Info("Financial period created", slog.String("period_id", period.PeriodID), slog.String("name", period.Name))
	return &period, nil
}

// GetPeriodByID retrieves a period by ID.
func (s *periodService) GetPeriodByID(ctx context.Context, periodID string) (*domain.FinancialPeriod, error) {
	return s.periodRepo.FindPeriodByID(ctx, periodID)
}

// ListPeriods retrieves periods with offset pagination.
func (s *periodService) ListPeriods(ctx context.Context, limit int, offset int) ([]domain.FinancialPeriod, error) {
	return s.periodRepo.ListPeriods(ctx, limit, offset)
}

// IsOpen reports whether the period accepts postings.
func (s *periodService) IsOpen(ctx context.Context, periodID string) (bool, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return false, err
	}
	return period.IsOpen(), nil
}

// changeStatus performs a guarded period status change.
func (s *periodService) changeStatus(ctx context.Context, periodID string, from, to domain.PeriodStatus, userID string) error {
	affected, err := s.periodRepo.UpdatePeriodStatus(ctx, periodID, from, to, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		period, findErr := s.periodRepo.FindPeriodByID(ctx, periodID)
		if findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: period %s is %s, expected %s", apperrors.ErrStateConflict, periodID, period.Status, from)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Financial period status changed",
		slog.String("period_id", periodID),
		slog.String("from", string(from)),
		slog.String("to", string(to)))
	return nil
}

// ClosePeriod moves OPEN -> CLOSED. Postings in flight hold a share lock on
// the period row, so the close waits for them rather than racing them.
func (s *periodService) ClosePeriod(ctx context.Context, periodID string, userID string) error {
	return s.changeStatus(ctx, periodID, domain.PeriodOpen, domain.PeriodClosed, userID)
}

// ReopenPeriod moves CLOSED -> OPEN. Locked periods stay locked.
func (s *periodService) ReopenPeriod(ctx context.Context, periodID string, userID string) error {
	return s.changeStatus(ctx, periodID, domain.PeriodClosed, domain.PeriodOpen, userID)
}

// LockPeriod moves CLOSED -> LOCKED, the terminal state.
func (s *periodService) LockPeriod(ctx context.Context, periodID string, userID string) error {
	return s.changeStatus(ctx, periodID, domain.PeriodClosed, domain.PeriodLocked, userID)
}
