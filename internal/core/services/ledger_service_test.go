package services_test

import (
	"context"
	"testing"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/core/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	mockAccountSvc *MockAccountDirectorySvc
	service        portssvc.LedgerSvcFacade
	ctx            context.Context
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountSvc = new(MockAccountDirectorySvc)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, suite.mockAccountSvc)
	suite.ctx = context.Background()
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (suite *LedgerServiceTestSuite) TestListRowsByAccount() {
	account := &domain.Account{AccountID: testCashAccountID, AccountType: domain.Asset, IsActive: true, AllowPosting: true}
	rows := []domain.LedgerRow{
		{RowID: "row-1", AccountID: testCashAccountID, Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		{RowID: "row-2", AccountID: testCashAccountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(40)},
	}
	token := "next-page"

	suite.mockAccountSvc.On("GetAccountByID", suite.ctx, testCashAccountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("ListRowsByAccountID", suite.ctx, testCashAccountID, 20, (*string)(nil)).
		Return(rows, token, nil).Once()

	resp, err := suite.service.ListRowsByAccount(suite.ctx, dto.ListLedgerRowsParams{AccountID: testCashAccountID, Limit: 20})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Rows, 2)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(token, *resp.NextToken)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetAccountBalance_AssetConvention() {
	account := &domain.Account{AccountID: testCashAccountID, AccountType: domain.Asset, IsActive: true, AllowPosting: true}

	suite.mockAccountSvc.On("GetAccountByID", suite.ctx, testCashAccountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("SumAmountsByAccountID", suite.ctx, testCashAccountID).
		Return(decimal.NewFromInt(500), decimal.NewFromInt(120), nil).Once()

	balance, err := suite.service.GetAccountBalance(suite.ctx, testCashAccountID)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(380).Equal(balance), "want 380, got %s", balance)
}

func (suite *LedgerServiceTestSuite) TestGetAccountBalance_RevenueConvention() {
	account := &domain.Account{AccountID: testRevAccountID, AccountType: domain.Revenue, IsActive: true, AllowPosting: true}

	suite.mockAccountSvc.On("GetAccountByID", suite.ctx, testRevAccountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("SumAmountsByAccountID", suite.ctx, testRevAccountID).
		Return(decimal.NewFromInt(30), decimal.NewFromInt(900), nil).Once()

	balance, err := suite.service.GetAccountBalance(suite.ctx, testRevAccountID)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(870).Equal(balance), "want 870, got %s", balance)
}

func (suite *LedgerServiceTestSuite) TestGetRowsForEntry() {
	rows := []domain.LedgerRow{{RowID: "row-1", EntryID: "entry-1", LineNumber: 1}}

	suite.mockLedgerRepo.On("FindRowsByEntryID", suite.ctx, "entry-1").Return(rows, nil).Once()

	got, err := suite.service.GetRowsForEntry(suite.ctx, "entry-1")

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.Equal("row-1", got[0].RowID)
}
