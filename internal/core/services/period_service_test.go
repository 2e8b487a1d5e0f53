package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/core/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PeriodServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo *MockPeriodRepository
	service        portssvc.PeriodSvcFacade
	ctx            context.Context
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.service = services.NewPeriodService(suite.mockPeriodRepo)
	suite.ctx = context.Background()
}

func TestPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_Success() {
	req := dto.CreatePeriodRequest{
		Name:      "2026-03",
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.mockPeriodRepo.On("SavePeriod", suite.ctx, mock.MatchedBy(func(p domain.FinancialPeriod) bool {
		return p.Name == "2026-03" && p.Status == domain.PeriodOpen
	})).Return(nil).Once()

	period, err := suite.service.CreatePeriod(suite.ctx, req, testUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(period)
	suite.Equal(domain.PeriodOpen, period.Status)
	suite.NotEmpty(period.PeriodID)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_EndBeforeStart() {
	req := dto.CreatePeriodRequest{
		Name:      "backwards",
		StartDate: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	period, err := suite.service.CreatePeriod(suite.ctx, req, testUserID)

	suite.Require().Error(err)
	suite.Nil(period)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestIsOpen() {
	open := &domain.FinancialPeriod{PeriodID: testPeriodID, Status: domain.PeriodOpen}
	closed := &domain.FinancialPeriod{PeriodID: "period-closed", Status: domain.PeriodClosed}

	suite.mockPeriodRepo.On("FindPeriodByID", suite.ctx, testPeriodID).Return(open, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", suite.ctx, "period-closed").Return(closed, nil).Once()

	got, err := suite.service.IsOpen(suite.ctx, testPeriodID)
	suite.Require().NoError(err)
	suite.True(got)

	got, err = suite.service.IsOpen(suite.ctx, "period-closed")
	suite.Require().NoError(err)
	suite.False(got)
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_Success() {
	suite.mockPeriodRepo.On("UpdatePeriodStatus", suite.ctx, testPeriodID, domain.PeriodOpen, domain.PeriodClosed, testUserID).
		Return(int64(1), nil).Once()

	err := suite.service.ClosePeriod(suite.ctx, testPeriodID, testUserID)

	suite.Require().NoError(err)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_AlreadyClosed() {
	closed := &domain.FinancialPeriod{PeriodID: testPeriodID, Status: domain.PeriodClosed}

	suite.mockPeriodRepo.On("UpdatePeriodStatus", suite.ctx, testPeriodID, domain.PeriodOpen, domain.PeriodClosed, testUserID).
		Return(int64(0), nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", suite.ctx, testPeriodID).Return(closed, nil).Once()

	err := suite.service.ClosePeriod(suite.ctx, testPeriodID, testUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateConflict)
}

func (suite *PeriodServiceTestSuite) TestReopenPeriod_LockedStaysLocked() {
	locked := &domain.FinancialPeriod{PeriodID: testPeriodID, Status: domain.PeriodLocked}

	suite.mockPeriodRepo.On("UpdatePeriodStatus", suite.ctx, testPeriodID, domain.PeriodClosed, domain.PeriodOpen, testUserID).
		Return(int64(0), nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", suite.ctx, testPeriodID).Return(locked, nil).Once()

	err := suite.service.ReopenPeriod(suite.ctx, testPeriodID, testUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateConflict)
}

func (suite *PeriodServiceTestSuite) TestLockPeriod_RequiresClosed() {
	open := &domain.FinancialPeriod{PeriodID: testPeriodID, Status: domain.PeriodOpen}

	suite.mockPeriodRepo.On("UpdatePeriodStatus", suite.ctx, testPeriodID, domain.PeriodClosed, domain.PeriodLocked, testUserID).
		Return(int64(0), nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", suite.ctx, testPeriodID).Return(open, nil).Once()

	err := suite.service.LockPeriod(suite.ctx, testPeriodID, testUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateConflict)
}
