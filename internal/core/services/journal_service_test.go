package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/core/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testUserID        = "user-1"
	testPeriodID      = "period-2026-03"
	testCashAccountID = "acc-cash"
	testRevAccountID  = "acc-revenue"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo  *MockJournalRepository
	mockSequenceRepo *MockSequenceRepository
	mockAccountSvc   *MockAccountDirectorySvc
	mockPeriodSvc    *MockPeriodGuardSvc
	mockPostingSvc   *MockPostingSvc
	service          portssvc.JournalSvcFacade
	ctx              context.Context
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockSequenceRepo = new(MockSequenceRepository)
	suite.mockAccountSvc = new(MockAccountDirectorySvc)
	suite.mockPeriodSvc = new(MockPeriodGuardSvc)
	suite.mockPostingSvc = new(MockPostingSvc)
	suite.service = services.NewJournalService(
		suite.mockJournalRepo,
		suite.mockSequenceRepo,
		suite.mockAccountSvc,
		suite.mockPeriodSvc,
		suite.mockPostingSvc,
	)
	suite.ctx = context.Background()
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func (suite *JournalServiceTestSuite) postableAccounts() map[string]domain.Account {
	return map[string]domain.Account{
		testCashAccountID: {AccountID: testCashAccountID, Code: "1000", AccountType: domain.Asset, IsActive: true, AllowPosting: true},
		testRevAccountID:  {AccountID: testRevAccountID, Code: "4000", AccountType: domain.Revenue, IsActive: true, AllowPosting: true},
	}
}

func (suite *JournalServiceTestSuite) createRequest() dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		JournalType: "STANDARD",
		PeriodID:    testPeriodID,
		JournalDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		PostingDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Cash sale",
		Lines:       balancedLineRequests(testCashAccountID, testRevAccountID, decimal.NewFromInt(250)),
	}
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	req := suite.createRequest()

	suite.mockPeriodSvc.On("IsOpen", suite.ctx, testPeriodID).Return(true, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", suite.ctx, []string{testCashAccountID, testRevAccountID}).
		Return(suite.postableAccounts(), nil).Once()
	suite.mockSequenceRepo.On("NextValue", suite.ctx, "JE", 2026).Return(int64(42), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).
		Return(nil).Once()

	entry, err := suite.service.CreateEntry(suite.ctx, req, testUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal("JE-2026-000042", entry.JournalNumber)
	suite.Equal(domain.StatusDraft, entry.Status)
	suite.Equal(domain.TypeStandard, entry.JournalType)
	suite.True(decimal.NewFromInt(250).Equal(entry.TotalDebit))
	suite.True(decimal.NewFromInt(250).Equal(entry.TotalCredit))
	suite.Len(entry.Lines, 2)
	suite.Equal(1, entry.Lines[0].LineNumber)
	suite.Equal(2, entry.Lines[1].LineNumber)
	suite.Equal(testUserID, entry.CreatedBy)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockSequenceRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	req := suite.createRequest()
	req.Lines[1].Credit = decimal.NewFromInt(249) // off by a full unit

	suite.mockPeriodSvc.On("IsOpen", suite.ctx, testPeriodID).Return(true, nil).Once()

	entry, err := suite.service.CreateEntry(suite.ctx, req, testUserID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrUnbalanced)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
	suite.mockSequenceRepo.AssertNotCalled(suite.T(), "NextValue", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_PennyToleranceAccepted() {
	req := suite.createRequest()
	req.Lines[0].Debit = decimal.RequireFromString("100.00")
	req.Lines[1].Credit = decimal.RequireFromString("100.01")

	suite.mockPeriodSvc.On("IsOpen", suite.ctx, testPeriodID).Return(true, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", suite.ctx, mock.Anything).Return(suite.postableAccounts(), nil).Once()
	suite.mockSequenceRepo.On("NextValue", suite.ctx, "JE", 2026).Return(int64(1), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.CreateEntry(suite.ctx, req, testUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.True(entry.IsBalanced())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_RecurringWithoutMetadata() {
	req := suite.createRequest()
	req.JournalType = "RECURRING"

	entry, err := suite.service.CreateEntry(suite.ctx, req, testUserID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_RecurrenceOnStandardType() {
	req := suite.createRequest()
	req.Recurrence = &dto.RecurrenceRequest{
		Pattern:   "MONTHLY",
		StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}

	entry, err := suite.service.CreateEntry(suite.ctx, req, testUserID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_RecurringTemplate() {
	req := suite.createRequest()
	req.JournalType = "RECURRING"
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	req.Recurrence = &dto.RecurrenceRequest{Pattern: "MONTHLY", StartDate: start}

	suite.mockPeriodSvc.On("IsOpen", suite.ctx, testPeriodID).Return(true, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", suite.ctx, mock.Anything).Return(suite.postableAccounts(), nil).Once()
	suite.mockSequenceRepo.On("NextValue", suite.ctx, "JE", 2026).Return(int64(7), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.CreateEntry(suite.ctx, req, testUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.TypeRecurring, entry.JournalType)
	suite.Require().NotNil(entry.Recurrence)
	suite.Equal(domain.RecurMonthly, entry.Recurrence.Pattern)
	suite.Require().NotNil(entry.Recurrence.NextRunDate)
	suite.Equal(start, *entry.Recurrence.NextRunDate)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_NonPostableAccount() {
	req := suite.createRequest()
	accounts := suite.postableAccounts()
	summary := accounts[testRevAccountID]
	summary.AllowPosting = false
	accounts[testRevAccountID] = summary

	suite.mockPeriodSvc.On("IsOpen", suite.ctx, testPeriodID).Return(true, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", suite.ctx, mock.Anything).Return(accounts, nil).Once()

	entry, err := suite.service.CreateEntry(suite.ctx, req, testUserID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrAccountNotPostable)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnknownAccount() {
	req := suite.createRequest()
	accounts := suite.postableAccounts()
	delete(accounts, testRevAccountID)

	suite.mockPeriodSvc.On("IsOpen", suite.ctx, testPeriodID).Return(true, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", suite.ctx, mock.Anything).Return(accounts, nil).Once()

	entry, err := suite.service.CreateEntry(suite.ctx, req, testUserID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) draftEntry(entryID string) *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:       entryID,
		JournalNumber: "JE-2026-000010",
		JournalType:   domain.TypeStandard,
		PeriodID:      testPeriodID,
		JournalDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		PostingDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Description:   "Cash sale",
		Status:        domain.StatusDraft,
		TotalDebit:    decimal.NewFromInt(250),
		TotalCredit:   decimal.NewFromInt(250),
	}
}

func (suite *JournalServiceTestSuite) entryLines(entryID string) []domain.JournalLine {
	return []domain.JournalLine{
		{LineID: "line-1", EntryID: entryID, LineNumber: 1, AccountID: testCashAccountID, Debit: decimal.NewFromInt(250), Credit: decimal.Zero, Description: "Cash in"},
		{LineID: "line-2", EntryID: entryID, LineNumber: 2, AccountID: testRevAccountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(250), Description: "Revenue"},
	}
}

func (suite *JournalServiceTestSuite) TestSubmitEntry_Success() {
	entryID := "entry-1"
	draft := suite.draftEntry(entryID)
	submitted := suite.draftEntry(entryID)
	submitted.Status = domain.StatusPendingApproval

	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, entryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("TransitionStatus", suite.ctx, entryID, domain.StatusDraft, domain.StatusPendingApproval, mock.MatchedBy(func(stamp portsrepo.StatusStamp) bool {
		return stamp.Actor == testUserID && stamp.Reason == nil
	})).Return(int64(1), nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, entryID).Return(submitted, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", suite.ctx, entryID).Return(suite.entryLines(entryID), nil).Once()

	entry, err := suite.service.SubmitEntry(suite.ctx, entryID, testUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPendingApproval, entry.Status)
	suite.Len(entry.Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestSubmitEntry_NotDraft() {
	entryID := "entry-1"
	posted := suite.draftEntry(entryID)
	posted.Status = domain.StatusPosted

	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, entryID).Return(posted, nil).Once()

	entry, err := suite.service.SubmitEntry(suite.ctx, entryID, testUserID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrStateConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestSubmitEntry_Unbalanced() {
	entryID := "entry-1"
	draft := suite.draftEntry(entryID)
	draft.TotalCredit = decimal.NewFromInt(100)

	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, entryID).Return(draft, nil).Once()

	entry, err := suite.service.SubmitEntry(suite.ctx, entryID, testUserID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrUnbalanced)
}

func (suite *JournalServiceTestSuite) TestApproveEntry_Success() {
	entryID := "entry-1"
	approved := suite.draftEntry(entryID)
	approved.Status = domain.StatusApproved

	suite.mockJournalRepo.On("TransitionStatus", suite.ctx, entryID, domain.StatusPendingApproval, domain.StatusApproved, mock.AnythingOfType("repositories.StatusStamp")).
		Return(int64(1), nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, entryID).Return(approved, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", suite.ctx, entryID).Return(suite.entryLines(entryID), nil).Once()

	entry, err := suite.service.ApproveEntry(suite.ctx, entryID, "approver-1")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, entry.Status)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestApproveEntry_LostRace() {
	entryID := "entry-1"

	suite.mockJournalRepo.On("TransitionStatus", suite.ctx, entryID, domain.StatusPendingApproval, domain.StatusApproved, mock.AnythingOfType("repositories.StatusStamp")).
		Return(int64(0), nil).Once()

	entry, err := suite.service.ApproveEntry(suite.ctx, entryID, "approver-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrStateConflict)
}

func (suite *JournalServiceTestSuite) TestRejectEntry_Success() {
	entryID := "entry-1"
	reason := "Wrong period"
	rejected := suite.draftEntry(entryID)
	rejected.Status = domain.StatusRejected
	rejected.RejectionReason = &reason

	suite.mockJournalRepo.On("TransitionStatus", suite.ctx, entryID, domain.StatusPendingApproval, domain.StatusRejected, mock.MatchedBy(func(stamp portsrepo.StatusStamp) bool {
		return stamp.Reason != nil && *stamp.Reason == reason
	})).Return(int64(1), nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, entryID).Return(rejected, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", suite.ctx, entryID).Return(suite.entryLines(entryID), nil).Once()

	entry, err := suite.service.RejectEntry(suite.ctx, entryID, "approver-1", reason)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejected, entry.Status)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestRejectEntry_EmptyReason() {
	entry, err := suite.service.RejectEntry(suite.ctx, "entry-1", "approver-1", "")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateEntry_NotEditable() {
	entryID := "entry-1"
	approved := suite.draftEntry(entryID)
	approved.Status = domain.StatusApproved
	newDescription := "Edited"

	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, entryID).Return(approved, nil).Once()

	entry, err := suite.service.UpdateEntry(suite.ctx, entryID, dto.UpdateJournalEntryRequest{Description: &newDescription}, testUserID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrImmutableEntry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateEntryHeader", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateEntry_ReplacesLines() {
	entryID := "entry-1"
	draft := suite.draftEntry(entryID)
	newLines := balancedLineRequests(testCashAccountID, testRevAccountID, decimal.NewFromInt(400))

	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, entryID).Return(draft, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", suite.ctx, mock.Anything).Return(suite.postableAccounts(), nil).Once()
	suite.mockJournalRepo.On("ReplaceLines", suite.ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return decimal.NewFromInt(400).Equal(e.TotalDebit) && decimal.NewFromInt(400).Equal(e.TotalCredit)
	}), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	entry, err := suite.service.UpdateEntry(suite.ctx, entryID, dto.UpdateJournalEntryRequest{Lines: newLines}, testUserID)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(400).Equal(entry.TotalDebit))
	suite.True(decimal.NewFromInt(400).Equal(entry.TotalCredit))
	suite.Len(entry.Lines, 2)
	// Header and lines travel through ReplaceLines as one transaction; there
	// is no separate header write that could land without the lines.
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateEntryHeader", mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_Success() {
	suite.mockJournalRepo.On("DeleteEntry", suite.ctx, "entry-1").Return(int64(1), nil).Once()

	err := suite.service.DeleteEntry(suite.ctx, "entry-1", testUserID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_NotDraft() {
	entryID := "entry-1"
	posted := suite.draftEntry(entryID)
	posted.Status = domain.StatusPosted

	suite.mockJournalRepo.On("DeleteEntry", suite.ctx, entryID).Return(int64(0), nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, entryID).Return(posted, nil).Once()

	err := suite.service.DeleteEntry(suite.ctx, entryID, testUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrImmutableEntry)
}

func (suite *JournalServiceTestSuite) TestListEntries_UnknownStatus() {
	bogus := "CANCELLED"

	resp, err := suite.service.ListEntries(suite.ctx, dto.ListEntriesParams{Limit: 20, Status: &bogus})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ListEntries", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_DelegatesToEngine() {
	entryID := "entry-1"
	posted := suite.draftEntry(entryID)
	posted.Status = domain.StatusPosted

	suite.mockPostingSvc.On("Post", suite.ctx, entryID, testUserID).Return(posted, nil).Once()

	entry, err := suite.service.PostEntry(suite.ctx, entryID, testUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPosted, entry.Status)
	suite.mockPostingSvc.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) postedOriginal(entryID string) *domain.JournalEntry {
	entry := suite.draftEntry(entryID)
	entry.Status = domain.StatusPosted
	return entry
}

func (suite *JournalServiceTestSuite) TestReverseEntry_Success() {
	entryID := "entry-1"
	original := suite.postedOriginal(entryID)
	reversalDate := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	req := dto.ReverseJournalEntryRequest{ReversalDate: reversalDate, Reason: "Duplicate billing"}

	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, entryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", suite.ctx, entryID).Return(suite.entryLines(entryID), nil).Once()
	suite.mockSequenceRepo.On("NextValue", suite.ctx, "JE", 2026).Return(int64(99), nil).Once()

	var builtReversal domain.JournalEntry
	var builtLines []domain.JournalLine
	suite.mockPostingSvc.On("PostReversal", suite.ctx, original, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine"), testUserID).
		Run(func(args mock.Arguments) {
			builtReversal = args.Get(2).(domain.JournalEntry)
			builtLines = args.Get(3).([]domain.JournalLine)
		}).Return(&domain.JournalEntry{Status: domain.StatusPosted}, nil).Once()

	posted, err := suite.service.ReverseEntry(suite.ctx, entryID, req, testUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(posted)
	suite.Equal(domain.StatusPosted, posted.Status)

	suite.Equal("JE-2026-000099", builtReversal.JournalNumber)
	suite.Equal(domain.TypeReversing, builtReversal.JournalType)
	suite.Equal(domain.StatusApproved, builtReversal.Status)
	suite.Equal(original.PeriodID, builtReversal.PeriodID)
	suite.Require().NotNil(builtReversal.ReversesEntryID)
	suite.Equal(entryID, *builtReversal.ReversesEntryID)
	suite.Contains(builtReversal.Description, "Reversal of JE-2026-000010")
	suite.Contains(builtReversal.Description, "Duplicate billing")
	suite.NotNil(builtReversal.ApprovedBy)
	suite.NotNil(builtReversal.ApprovedAt)

	// Debits and credits are swapped line for line.
	suite.Require().Len(builtLines, 2)
	suite.True(builtLines[0].Debit.IsZero())
	suite.True(decimal.NewFromInt(250).Equal(builtLines[0].Credit))
	suite.True(decimal.NewFromInt(250).Equal(builtLines[1].Debit))
	suite.True(builtLines[1].Credit.IsZero())
	suite.Equal("Reversal: Cash in", builtLines[0].Description)

	// The engine persists the reversal inside its own transaction; the
	// journal service never writes it separately.
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockPostingSvc.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseEntry_NotPosted() {
	entryID := "entry-1"
	draft := suite.draftEntry(entryID)
	req := dto.ReverseJournalEntryRequest{ReversalDate: time.Now().UTC(), Reason: "Wrong amount"}

	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, entryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", suite.ctx, entryID).Return(suite.entryLines(entryID), nil).Once()

	entry, err := suite.service.ReverseEntry(suite.ctx, entryID, req, testUserID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotPosted)
	suite.mockPostingSvc.AssertNotCalled(suite.T(), "PostReversal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	entryID := "entry-1"
	original := suite.postedOriginal(entryID)
	original.IsReversed = true
	req := dto.ReverseJournalEntryRequest{ReversalDate: time.Now().UTC(), Reason: "Again"}

	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, entryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", suite.ctx, entryID).Return(suite.entryLines(entryID), nil).Once()

	entry, err := suite.service.ReverseEntry(suite.ctx, entryID, req, testUserID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrAlreadyReversed)
	suite.mockPostingSvc.AssertNotCalled(suite.T(), "PostReversal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_LostReversalRace() {
	entryID := "entry-1"
	original := suite.postedOriginal(entryID)
	req := dto.ReverseJournalEntryRequest{ReversalDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), Reason: "Duplicate"}

	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, entryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", suite.ctx, entryID).Return(suite.entryLines(entryID), nil).Once()
	suite.mockSequenceRepo.On("NextValue", suite.ctx, "JE", 2026).Return(int64(100), nil).Once()
	// A concurrent reversal claimed the original first; the engine rolled
	// everything back and surfaced the conflict.
	suite.mockPostingSvc.On("PostReversal", suite.ctx, original, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine"), testUserID).
		Return(nil, apperrors.ErrAlreadyReversed).Once()

	entry, err := suite.service.ReverseEntry(suite.ctx, entryID, req, testUserID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrAlreadyReversed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_PostingFailureLeavesNoEntry() {
	entryID := "entry-1"
	original := suite.postedOriginal(entryID)
	req := dto.ReverseJournalEntryRequest{ReversalDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), Reason: "Duplicate"}

	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, entryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", suite.ctx, entryID).Return(suite.entryLines(entryID), nil).Once()
	suite.mockSequenceRepo.On("NextValue", suite.ctx, "JE", 2026).Return(int64(100), nil).Once()
	suite.mockPostingSvc.On("PostReversal", suite.ctx, original, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine"), testUserID).
		Return(nil, apperrors.ErrPeriodClosed).Once()

	entry, err := suite.service.ReverseEntry(suite.ctx, entryID, req, testUserID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
	// The engine's transaction rolled back, so no approved reversing entry
	// was ever persisted for the generic post endpoint to pick up.
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkEntryReversedInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) recurringTemplate(entryID string) *domain.JournalEntry {
	template := suite.draftEntry(entryID)
	template.JournalType = domain.TypeRecurring
	template.Description = "Monthly rent"
	template.Recurrence = &domain.Recurrence{
		Pattern:   domain.RecurMonthly,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	return template
}

func (suite *JournalServiceTestSuite) TestGenerateRecurringEntry_Success() {
	templateID := "template-1"
	template := suite.recurringTemplate(templateID)

	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, templateID).Return(template, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", suite.ctx, templateID).Return(suite.entryLines(templateID), nil).Once()
	suite.mockSequenceRepo.On("NextValue", suite.ctx, "JE", time.Now().UTC().Year()).Return(int64(55), nil).Once()

	var savedEntry domain.JournalEntry
	var savedLines []domain.JournalLine
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).
		Run(func(args mock.Arguments) {
			savedEntry = args.Get(1).(domain.JournalEntry)
			savedLines = args.Get(2).([]domain.JournalLine)
		}).Return(nil).Once()
	suite.mockJournalRepo.On("UpdateEntryHeader", suite.ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.EntryID == templateID && e.Recurrence != nil && e.Recurrence.NextRunDate != nil
	})).Return(nil).Once()

	entry, err := suite.service.GenerateRecurringEntry(suite.ctx, templateID, testUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.TypeStandard, savedEntry.JournalType)
	suite.Equal(domain.StatusDraft, savedEntry.Status)
	suite.Equal("Monthly rent (Auto-generated)", savedEntry.Description)
	suite.NotEqual(templateID, savedEntry.EntryID)
	suite.Require().Len(savedLines, 2)
	suite.Nil(savedLines[0].LedgerRowID)
	suite.True(decimal.NewFromInt(250).Equal(savedLines[0].Debit))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGenerateRecurringEntry_NotATemplate() {
	entryID := "entry-1"
	standard := suite.draftEntry(entryID)

	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, entryID).Return(standard, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", suite.ctx, entryID).Return(suite.entryLines(entryID), nil).Once()

	entry, err := suite.service.GenerateRecurringEntry(suite.ctx, entryID, testUserID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotRecurring)
}

func (suite *JournalServiceTestSuite) TestGenerateRecurringEntry_RecurrenceEnded() {
	templateID := "template-1"
	template := suite.recurringTemplate(templateID)
	ended := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	template.Recurrence.EndDate = &ended

	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, templateID).Return(template, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", suite.ctx, templateID).Return(suite.entryLines(templateID), nil).Once()

	entry, err := suite.service.GenerateRecurringEntry(suite.ctx, templateID, testUserID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}
