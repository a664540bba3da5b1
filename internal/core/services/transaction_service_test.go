package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/apperrors"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	portsrepo "github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/ports/repositories"
	portssvc "github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/ports/services"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/services"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryWithTx = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTransactionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) MarkPosted(ctx context.Context, transactionID string, entries []domain.JournalEntry, postedBy string, postedAt time.Time) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, transactionID, entries, postedBy, postedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockTransactionRepository) MarkVoided(ctx context.Context, transactionID string, reversals []domain.JournalEntry, reason domain.VoidReason, voidNotes string, voidedBy string, voidedAt time.Time) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, transactionID, reversals, reason, voidNotes, voidedBy, voidedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByNumber(ctx context.Context, transactionNumber string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter, limit int, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockTransactionRepository) ListEntriesByAccountID(ctx context.Context, accountID string, from time.Time, to time.Time, limit int, offset int) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, accountID, from, to, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockTransactionRepository) FindSequence(ctx context.Context, sequenceType string, year int) (*domain.TransactionSequence, error) {
	args := m.Called(ctx, sequenceType, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionSequence), args.Error(1)
}

// --- Mock TemplateRepository ---
type MockTemplateRepository struct {
	mock.Mock
}

var _ portsrepo.TemplateRepositoryFacade = (*MockTemplateRepository)(nil)

func (m *MockTemplateRepository) FindTemplateByID(ctx context.Context, templateID string) (*domain.JournalTemplate, error) {
	args := m.Called(ctx, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalTemplate), args.Error(1)
}

func (m *MockTemplateRepository) ListTemplates(ctx context.Context, category domain.TemplateCategory, activeOnly bool, limit int, offset int) ([]domain.JournalTemplate, error) {
	args := m.Called(ctx, category, activeOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalTemplate), args.Error(1)
}

func (m *MockTemplateRepository) SaveTemplate(ctx context.Context, template domain.JournalTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) RecordTemplateUsage(ctx context.Context, templateID string, usedAt time.Time) error {
	args := m.Called(ctx, templateID, usedAt)
	return args.Error(0)
}

func (m *MockTemplateRepository) DeactivateTemplate(ctx context.Context, templateID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, templateID, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

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

func (m *MockAccountRepository) ListAccounts(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, activeOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Mock ProjectRepository ---
type MockProjectRepository struct {
	mock.Mock
}

var _ portsrepo.ProjectRepositoryFacade = (*MockProjectRepository)(nil)

func (m *MockProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) ListProjects(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.Project, error) {
	args := m.Called(ctx, activeOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

// --- Mock FiscalPeriodReaderSvc ---
type MockFiscalPeriodReader struct {
	mock.Mock
}

var _ portssvc.FiscalPeriodReaderSvc = (*MockFiscalPeriodReader)(nil)

func (m *MockFiscalPeriodReader) GetPeriod(ctx context.Context, year int, month int) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalPeriodReader) ListPeriodsByYear(ctx context.Context, year int) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalPeriodReader) IsOpenForPosting(ctx context.Context, date time.Time) (bool, error) {
	args := m.Called(ctx, date)
	return args.Bool(0), args.Error(1)
}

// --- Test Suite Setup ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockTemplateRepo *MockTemplateRepository
	mockAccountRepo  *MockAccountRepository
	mockProjectRepo  *MockProjectRepository
	mockFiscalSvc    *MockFiscalPeriodReader
	service          portssvc.TransactionSvcFacade
	template         domain.JournalTemplate
	cashAccount      domain.Account
	revenueAccount   domain.Account
	taxAccount       domain.Account
	userID           string
	txnDate          time.Time
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockTemplateRepo = new(MockTemplateRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockFiscalSvc = new(MockFiscalPeriodReader)
	suite.service = services.NewTransactionService(
		suite.mockTxnRepo,
		suite.mockTemplateRepo,
		suite.mockAccountRepo,
		suite.mockProjectRepo,
		suite.mockFiscalSvc,
	)

	suite.userID = uuid.NewString()
	suite.txnDate = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	suite.cashAccount = domain.Account{AccountID: uuid.NewString(), AccountType: domain.Asset, IsActive: true}
	suite.revenueAccount = domain.Account{AccountID: uuid.NewString(), AccountType: domain.Revenue, IsActive: true}
	suite.taxAccount = domain.Account{AccountID: uuid.NewString(), AccountType: domain.Liability, IsActive: true}

	templateID := uuid.NewString()
	suite.template = domain.JournalTemplate{
		TemplateID: templateID,
		Name:       "Sales with VAT",
		Category:   domain.CategoryIncome,
		IsActive:   true,
		Lines: []domain.TemplateLine{
			{LineID: uuid.NewString(), TemplateID: templateID, AccountID: suite.cashAccount.AccountID, Position: domain.Debit, Formula: "amount", LineOrder: 1},
			{LineID: uuid.NewString(), TemplateID: templateID, AccountID: suite.revenueAccount.AccountID, Position: domain.Credit, Formula: "amount / 1.11", LineOrder: 2},
			{LineID: uuid.NewString(), TemplateID: templateID, AccountID: suite.taxAccount.AccountID, Position: domain.Credit, Formula: "amount - (amount / 1.11)", LineOrder: 3},
		},
	}
}

func (suite *TransactionServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
		suite.taxAccount.AccountID:     suite.taxAccount,
	}
}

// --- CreateTransaction ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		TemplateID:      suite.template.TemplateID,
		TransactionDate: suite.txnDate,
		Amount:          decimal.NewFromInt(1110),
		Description:     "Invoice 42",
	}

	suite.mockTemplateRepo.On("FindTemplateByID", ctx, suite.template.TemplateID).Return(&suite.template, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsMap(), nil).Once()
	suite.mockTxnRepo.On("CreateTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Run(func(args mock.Arguments) {
		txn := args.Get(1).(domain.Transaction)
		suite.Equal(domain.StatusDraft, txn.Status)
		suite.Equal(suite.userID, txn.CreatedBy)
		suite.Empty(txn.TransactionNumber) // assigned by the repository
	}).Return(&domain.Transaction{
		TransactionID:     uuid.NewString(),
		TransactionNumber: "TRX-2025-0001",
		Status:            domain.StatusDraft,
	}, nil).Once()
	suite.mockTemplateRepo.On("RecordTemplateUsage", ctx, suite.template.TemplateID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	created, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal("TRX-2025-0001", created.TransactionNumber)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockTemplateRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		TemplateID:      suite.template.TemplateID,
		TransactionDate: suite.txnDate,
		Amount:          decimal.Zero,
	}

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InactiveTemplate() {
	ctx := context.Background()
	inactive := suite.template
	inactive.IsActive = false
	req := dto.CreateTransactionRequest{
		TemplateID:      inactive.TemplateID,
		TransactionDate: suite.txnDate,
		Amount:          decimal.NewFromInt(100),
	}

	suite.mockTemplateRepo.On("FindTemplateByID", ctx, inactive.TemplateID).Return(&inactive, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownOverrideLine() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		TemplateID:      suite.template.TemplateID,
		TransactionDate: suite.txnDate,
		Amount:          decimal.NewFromInt(100),
		AccountOverrides: []dto.AccountOverride{
			{TemplateLineID: uuid.NewString(), AccountID: suite.cashAccount.AccountID},
		},
	}

	suite.mockTemplateRepo.On("FindTemplateByID", ctx, suite.template.TemplateID).Return(&suite.template, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ReservedVariable() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		TemplateID:      suite.template.TemplateID,
		TransactionDate: suite.txnDate,
		Amount:          decimal.NewFromInt(100),
		Variables:       map[string]decimal.Decimal{"amount": decimal.NewFromInt(999)},
	}

	suite.mockTemplateRepo.On("FindTemplateByID", ctx, suite.template.TemplateID).Return(&suite.template, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnbalancedTemplate() {
	ctx := context.Background()
	templateID := uuid.NewString()
	lopsided := domain.JournalTemplate{
		TemplateID: templateID,
		IsActive:   true,
		Lines: []domain.TemplateLine{
			{LineID: uuid.NewString(), TemplateID: templateID, AccountID: suite.cashAccount.AccountID, Position: domain.Debit, Formula: "amount", LineOrder: 1},
			{LineID: uuid.NewString(), TemplateID: templateID, AccountID: suite.revenueAccount.AccountID, Position: domain.Credit, Formula: "amount * 0.5", LineOrder: 2},
		},
	}
	req := dto.CreateTransactionRequest{
		TemplateID:      templateID,
		TransactionDate: suite.txnDate,
		Amount:          decimal.NewFromInt(100),
	}

	suite.mockTemplateRepo.On("FindTemplateByID", ctx, templateID).Return(&lopsided, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalanced)
	suite.Contains(err.Error(), "debit=100")
	suite.Contains(err.Error(), "credit=50")
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InactiveAccount() {
	ctx := context.Background()
	accounts := suite.accountsMap()
	frozen := accounts[suite.cashAccount.AccountID]
	frozen.IsActive = false
	accounts[suite.cashAccount.AccountID] = frozen

	req := dto.CreateTransactionRequest{
		TemplateID:      suite.template.TemplateID,
		TransactionDate: suite.txnDate,
		Amount:          decimal.NewFromInt(100),
	}

	suite.mockTemplateRepo.On("FindTemplateByID", ctx, suite.template.TemplateID).Return(&suite.template, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accounts, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- PostTransaction ---

func (suite *TransactionServiceTestSuite) draftTransaction() *domain.Transaction {
	return &domain.Transaction{
		TransactionID:     uuid.NewString(),
		TransactionNumber: "TRX-2025-0007",
		TemplateID:        suite.template.TemplateID,
		TransactionDate:   suite.txnDate,
		Amount:            decimal.NewFromInt(1110),
		Description:       "Invoice 42",
		Status:            domain.StatusDraft,
	}
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_Success() {
	ctx := context.Background()
	txn := suite.draftTransaction()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Twice()
	suite.mockFiscalSvc.On("IsOpenForPosting", ctx, txn.TransactionDate).Return(true, nil).Once()
	suite.mockTemplateRepo.On("FindTemplateByID", ctx, suite.template.TemplateID).Return(&suite.template, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsMap(), nil).Once()
	suite.mockTxnRepo.On("MarkPosted", ctx, txn.TransactionID, mock.AnythingOfType("[]domain.JournalEntry"), suite.userID, mock.AnythingOfType("time.Time")).Run(func(args mock.Arguments) {
		entries := args.Get(2).([]domain.JournalEntry)
		suite.Require().Len(entries, 3)
		var debit, credit decimal.Decimal
		for _, e := range entries {
			debit = debit.Add(e.DebitAmount)
			credit = credit.Add(e.CreditAmount)
			suite.False(e.IsReversal)
			suite.True(e.EntryDate.Equal(txn.TransactionDate))
		}
		suite.True(debit.Equal(credit), "entries must balance: debit=%s credit=%s", debit, credit)
	}).Return([]domain.JournalEntry{}, nil).Once()
	suite.mockTxnRepo.On("FindEntriesByTransactionID", ctx, txn.TransactionID).Return([]domain.JournalEntry{}, nil).Once()

	posted, err := suite.service.PostTransaction(ctx, txn.TransactionID, dto.PostTransactionRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(posted)
	// Usage stats were already recorded when the draft was created.
	suite.mockTemplateRepo.AssertNotCalled(suite.T(), "RecordTemplateUsage", mock.Anything, mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockFiscalSvc.AssertExpectations(suite.T())
	suite.mockTemplateRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_NotDraft() {
	ctx := context.Background()
	txn := suite.draftTransaction()
	txn.Status = domain.StatusPosted

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.PostTransaction(ctx, txn.TransactionID, dto.PostTransactionRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), "only draft transactions can be posted")
	suite.mockFiscalSvc.AssertNotCalled(suite.T(), "IsOpenForPosting", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "MarkPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_PeriodClosed() {
	ctx := context.Background()
	txn := suite.draftTransaction()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockFiscalSvc.On("IsOpenForPosting", ctx, txn.TransactionDate).Return(false, nil).Once()

	_, err := suite.service.PostTransaction(ctx, txn.TransactionID, dto.PostTransactionRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
	suite.Contains(err.Error(), "2025-06")
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "MarkPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UsageRecordingFailureIsNotFatal() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		TemplateID:      suite.template.TemplateID,
		TransactionDate: suite.txnDate,
		Amount:          decimal.NewFromInt(1110),
		Description:     "Invoice 42",
	}

	suite.mockTemplateRepo.On("FindTemplateByID", ctx, suite.template.TemplateID).Return(&suite.template, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsMap(), nil).Once()
	suite.mockTxnRepo.On("CreateTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(&domain.Transaction{
		TransactionID:     uuid.NewString(),
		TransactionNumber: "TRX-2025-0002",
		Status:            domain.StatusDraft,
	}, nil).Once()
	suite.mockTemplateRepo.On("RecordTemplateUsage", ctx, suite.template.TemplateID, mock.Anything).Return(apperrors.ErrConflict).Once()

	created, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(created)
	suite.mockTemplateRepo.AssertExpectations(suite.T())
}

// --- VoidTransaction ---

func (suite *TransactionServiceTestSuite) postedTransactionWithEntries() (*domain.Transaction, []domain.JournalEntry) {
	txn := suite.draftTransaction()
	txn.Status = domain.StatusPosted

	entries := []domain.JournalEntry{
		{
			EntryID:       uuid.NewString(),
			TransactionID: txn.TransactionID,
			JournalNumber: "JE-2025-0007-01",
			EntryDate:     suite.txnDate,
			AccountID:     suite.cashAccount.AccountID,
			DebitAmount:   decimal.NewFromInt(1110),
			CreditAmount:  decimal.Zero,
			Description:   "Invoice 42",
		},
		{
			EntryID:       uuid.NewString(),
			TransactionID: txn.TransactionID,
			JournalNumber: "JE-2025-0007-02",
			EntryDate:     suite.txnDate,
			AccountID:     suite.revenueAccount.AccountID,
			DebitAmount:   decimal.Zero,
			CreditAmount:  decimal.NewFromInt(1110),
			Description:   "Invoice 42",
		},
	}
	return txn, entries
}

func (suite *TransactionServiceTestSuite) TestVoidTransaction_Success() {
	ctx := context.Background()
	txn, entries := suite.postedTransactionWithEntries()
	req := dto.VoidTransactionRequest{Reason: domain.VoidInputError, Notes: "typo in amount"}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Twice()
	suite.mockFiscalSvc.On("IsOpenForPosting", ctx, txn.TransactionDate).Return(true, nil).Once()
	suite.mockTxnRepo.On("FindEntriesByTransactionID", ctx, txn.TransactionID).Return(entries, nil).Twice()
	suite.mockTxnRepo.On("MarkVoided", ctx, txn.TransactionID, mock.AnythingOfType("[]domain.JournalEntry"), domain.VoidInputError, "typo in amount", suite.userID, mock.AnythingOfType("time.Time")).Run(func(args mock.Arguments) {
		reversals := args.Get(2).([]domain.JournalEntry)
		suite.Require().Len(reversals, 2)
		// Sides swap, dates stay, descriptions get the reversal prefix.
		suite.True(reversals[0].CreditAmount.Equal(decimal.NewFromInt(1110)))
		suite.True(reversals[0].DebitAmount.IsZero())
		suite.True(reversals[1].DebitAmount.Equal(decimal.NewFromInt(1110)))
		for _, rev := range reversals {
			suite.True(rev.IsReversal)
			suite.True(rev.EntryDate.Equal(suite.txnDate))
			suite.Contains(rev.Description, "Reversal: ")
			suite.NotEmpty(rev.EntryID)
		}
	}).Return([]domain.JournalEntry{}, nil).Once()

	voided, err := suite.service.VoidTransaction(ctx, txn.TransactionID, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(voided)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestVoidTransaction_NotPosted() {
	ctx := context.Background()
	txn := suite.draftTransaction()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.VoidTransaction(ctx, txn.TransactionID, dto.VoidTransactionRequest{Reason: domain.VoidOther}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), "only posted transactions can be voided")
}

func (suite *TransactionServiceTestSuite) TestVoidTransaction_PeriodClosed() {
	ctx := context.Background()
	txn, _ := suite.postedTransactionWithEntries()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockFiscalSvc.On("IsOpenForPosting", ctx, txn.TransactionDate).Return(false, nil).Once()

	_, err := suite.service.VoidTransaction(ctx, txn.TransactionID, dto.VoidTransactionRequest{Reason: domain.VoidDuplicate}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "MarkVoided", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Update / Delete ---

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_ReplacesStateWholesale() {
	ctx := context.Background()
	txn := suite.draftTransaction()
	txn.ReferenceNumber = "REF-OLD"
	txn.Notes = "old notes"
	txn.AccountMappings = []domain.AccountMapping{
		{MappingID: uuid.NewString(), TransactionID: txn.TransactionID, TemplateLineID: suite.template.Lines[0].LineID, AccountID: suite.cashAccount.AccountID},
	}

	newDate := suite.txnDate.AddDate(0, 0, 3)
	req := dto.UpdateTransactionRequest{
		TransactionDate: newDate,
		Amount:          decimal.NewFromInt(2220),
		Description:     "Invoice 42 corrected",
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Twice()
	suite.mockTemplateRepo.On("FindTemplateByID", ctx, suite.template.TemplateID).Return(&suite.template, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsMap(), nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Run(func(args mock.Arguments) {
		saved := args.Get(1).(domain.Transaction)
		suite.True(saved.TransactionDate.Equal(newDate))
		suite.True(saved.Amount.Equal(decimal.NewFromInt(2220)))
		suite.Equal("Invoice 42 corrected", saved.Description)
		// Fields absent from the request are cleared, not kept.
		suite.Empty(saved.ReferenceNumber)
		suite.Empty(saved.Notes)
		suite.Nil(saved.ProjectID)
		suite.Empty(saved.AccountMappings)
		suite.Equal(suite.userID, saved.LastUpdatedBy)
	}).Return(nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, txn.TransactionID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NotDraft() {
	ctx := context.Background()
	txn := suite.draftTransaction()
	txn.Status = domain.StatusVoid

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, txn.TransactionID, dto.UpdateTransactionRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), "only draft transactions can be edited")
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_Success() {
	ctx := context.Background()
	txn := suite.draftTransaction()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("DeleteTransaction", ctx, txn.TransactionID).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, txn.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotDraft() {
	ctx := context.Background()
	txn := suite.draftTransaction()
	txn.Status = domain.StatusPosted

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	err := suite.service.DeleteTransaction(ctx, txn.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), "only draft transactions can be deleted")
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_DefaultsLimit() {
	ctx := context.Background()

	suite.mockTxnRepo.On("ListTransactions", ctx, mock.AnythingOfType("domain.TransactionFilter"), 50, 0).Return([]domain.Transaction{}, nil).Once()

	resp, err := suite.service.ListTransactions(ctx, dto.ListTransactionsParams{})

	suite.Require().NoError(err)
	suite.Equal(50, resp.Limit)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListEntriesByAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	entries := []domain.JournalEntry{
		{EntryID: uuid.NewString(), AccountID: accountID, DebitAmount: decimal.NewFromInt(100), CreditAmount: decimal.Zero},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, IsActive: true}, nil).Once()
	suite.mockTxnRepo.On("ListEntriesByAccountID", ctx, accountID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), 50, 0).
		Return(entries, nil).Once()

	resp, err := suite.service.ListEntriesByAccount(ctx, accountID, dto.ListAccountEntriesParams{})

	suite.Require().NoError(err)
	suite.Equal(accountID, resp.AccountID)
	suite.Len(resp.Entries, 1)
	suite.Equal(50, resp.Limit)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListEntriesByAccount_UnknownAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListEntriesByAccount(ctx, accountID, dto.ListAccountEntriesParams{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListEntriesByAccountID",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestGetSequenceStatus_ReportsCounters() {
	ctx := context.Background()

	suite.mockTxnRepo.On("FindSequence", ctx, domain.SequenceTransaction, 2025).
		Return(&domain.TransactionSequence{SequenceType: domain.SequenceTransaction, Prefix: "TRX", Year: 2025, LastNumber: 12}, nil).Once()
	suite.mockTxnRepo.On("FindSequence", ctx, domain.SequenceJournal, 2025).
		Return(&domain.TransactionSequence{SequenceType: domain.SequenceJournal, Prefix: "JE", Year: 2025, LastNumber: 8}, nil).Once()

	sequences, err := suite.service.GetSequenceStatus(ctx, 2025)

	suite.Require().NoError(err)
	suite.Require().Len(sequences, 2)
	suite.Equal(int64(12), sequences[0].LastNumber)
	suite.Equal(int64(8), sequences[1].LastNumber)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestGetSequenceStatus_UnseededYearReportsZero() {
	ctx := context.Background()

	suite.mockTxnRepo.On("FindSequence", ctx, domain.SequenceTransaction, 2030).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTxnRepo.On("FindSequence", ctx, domain.SequenceJournal, 2030).Return(nil, apperrors.ErrNotFound).Once()

	sequences, err := suite.service.GetSequenceStatus(ctx, 2030)

	suite.Require().NoError(err)
	suite.Require().Len(sequences, 2)
	suite.Equal("TRX", sequences[0].Prefix)
	suite.Equal("JE", sequences[1].Prefix)
	suite.Equal(int64(0), sequences[0].LastNumber)
	suite.Equal(int64(0), sequences[1].LastNumber)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
