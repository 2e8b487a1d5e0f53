package services_test

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryWithTx = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, tx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string, status *domain.JournalStatus) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken, status)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) ReplaceLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteEntry(ctx context.Context, entryID string) (int64, error) {
	args := m.Called(ctx, entryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) TransitionStatus(ctx context.Context, entryID string, from, to domain.JournalStatus, stamp portsrepo.StatusStamp) (int64, error) {
	args := m.Called(ctx, entryID, from, to, stamp)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) MarkEntryReversedInTx(ctx context.Context, tx pgx.Tx, entryID string, reversalEntryID string, actor string, at time.Time) (int64, error) {
	args := m.Called(ctx, tx, entryID, reversalEntryID, actor, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) MarkEntryPostedInTx(ctx context.Context, tx pgx.Tx, entryID string, actor string, at time.Time) (int64, error) {
	args := m.Called(ctx, tx, entryID, actor, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) SetLineLedgerRefsInTx(ctx context.Context, tx pgx.Tx, refs map[string]string) error {
	args := m.Called(ctx, tx, refs)
	return args.Error(0)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindRowsByEntryID(ctx context.Context, entryID string) ([]domain.LedgerRow, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerRow), args.Error(1)
}

func (m *MockLedgerRepository) ListRowsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerRow, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerRow), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) SumAmountsByAccountID(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockLedgerRepository) AppendRowsInTx(ctx context.Context, tx pgx.Tx, rows []domain.LedgerRow) error {
	args := m.Called(ctx, tx, rows)
	return args.Error(0)
}

func (m *MockLedgerRepository) MarkRowsReversedInTx(ctx context.Context, tx pgx.Tx, entryID string, reversedBy map[int]string) error {
	args := m.Called(ctx, tx, entryID, reversedBy)
	return args.Error(0)
}

// --- Mock PeriodRepository ---

type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepositoryFacade = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.FinancialPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FinancialPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context, limit int, offset int) ([]domain.FinancialPeriod, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialPeriod), args.Error(1)
}

func (m *MockPeriodRepository) GetPeriodStatusInTx(ctx context.Context, tx pgx.Tx, periodID string) (domain.PeriodStatus, error) {
	args := m.Called(ctx, tx, periodID)
	return args.Get(0).(domain.PeriodStatus), args.Error(1)
}

func (m *MockPeriodRepository) UpdatePeriodStatus(ctx context.Context, periodID string, from, to domain.PeriodStatus, actor string) (int64, error) {
	args := m.Called(ctx, periodID, from, to, actor)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock SequenceRepository ---

type MockSequenceRepository struct {
	mock.Mock
}

var _ portsrepo.SequenceRepository = (*MockSequenceRepository)(nil)

func (m *MockSequenceRepository) NextValue(ctx context.Context, prefix string, year int) (int64, error) {
	args := m.Called(ctx, prefix, year)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSequenceRepository) NextValueInTx(ctx context.Context, tx pgx.Tx, prefix string, year int) (int64, error) {
	args := m.Called(ctx, tx, prefix, year)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock AccountDirectorySvc ---

type MockAccountDirectorySvc struct {
	mock.Mock
}

var _ portssvc.AccountDirectorySvc = (*MockAccountDirectorySvc)(nil)

func (m *MockAccountDirectorySvc) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountDirectorySvc) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountDirectorySvc) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock PeriodGuardSvc ---

type MockPeriodGuardSvc struct {
	mock.Mock
}

var _ portssvc.PeriodGuardSvc = (*MockPeriodGuardSvc)(nil)

func (m *MockPeriodGuardSvc) IsOpen(ctx context.Context, periodID string) (bool, error) {
	args := m.Called(ctx, periodID)
	return args.Bool(0), args.Error(1)
}

// --- Mock PostingSvc ---

type MockPostingSvc struct {
	mock.Mock
}

var _ portssvc.PostingSvc = (*MockPostingSvc)(nil)

func (m *MockPostingSvc) Post(ctx context.Context, entryID string, posterUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, posterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingSvc) PostReversal(ctx context.Context, original *domain.JournalEntry, reversal domain.JournalEntry, lines []domain.JournalLine, posterUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, original, reversal, lines, posterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// balancedLineRequests builds a minimal balanced debit/credit line pair.
func balancedLineRequests(debitAccount, creditAccount string, amount decimal.Decimal) []dto.CreateJournalLineRequest {
	return []dto.CreateJournalLineRequest{
		{AccountID: debitAccount, Debit: amount, Credit: decimal.Zero},
		{AccountID: creditAccount, Debit: decimal.Zero, Credit: amount},
	}
}
