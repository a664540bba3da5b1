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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock DraftRepository ---
type MockDraftRepository struct {
	mock.Mock
}

var _ portsrepo.DraftRepositoryFacade = (*MockDraftRepository)(nil)

func (m *MockDraftRepository) FindDraftByID(ctx context.Context, draftID string) (*domain.DraftTransaction, error) {
	args := m.Called(ctx, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DraftTransaction), args.Error(1)
}

func (m *MockDraftRepository) ListDrafts(ctx context.Context, status domain.DraftStatus, limit int, offset int) ([]domain.DraftTransaction, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DraftTransaction), args.Error(1)
}

func (m *MockDraftRepository) SaveDraft(ctx context.Context, draft domain.DraftTransaction) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockDraftRepository) UpdateDraftStatus(ctx context.Context, draftID string, status domain.DraftStatus, updatedBy string) error {
	args := m.Called(ctx, draftID, status, updatedBy)
	return args.Error(0)
}

// --- Mock TransactionWriterSvc ---
type MockTransactionWriter struct {
	mock.Mock
}

var _ portssvc.TransactionWriterSvc = (*MockTransactionWriter)(nil)

func (m *MockTransactionWriter) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionWriter) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionWriter) PostTransaction(ctx context.Context, transactionID string, req dto.PostTransactionRequest, requestingUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionWriter) VoidTransaction(ctx context.Context, transactionID string, req dto.VoidTransactionRequest, requestingUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionWriter) DeleteTransaction(ctx context.Context, transactionID string, requestingUserID string) error {
	args := m.Called(ctx, transactionID, requestingUserID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type DraftServiceTestSuite struct {
	suite.Suite
	mockDraftRepo *MockDraftRepository
	mockTxnSvc    *MockTransactionWriter
	service       portssvc.DraftSvcFacade
	userID        string
}

func (suite *DraftServiceTestSuite) SetupTest() {
	suite.mockDraftRepo = new(MockDraftRepository)
	suite.mockTxnSvc = new(MockTransactionWriter)
	suite.service = services.NewDraftService(suite.mockDraftRepo, suite.mockTxnSvc)
	suite.userID = uuid.NewString()
}

func (suite *DraftServiceTestSuite) pendingDraft() *domain.DraftTransaction {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	return &domain.DraftTransaction{
		DraftID:         uuid.NewString(),
		MerchantName:    "Toko Sinar Jaya",
		Amount:          decimal.NewFromInt(75000),
		TransactionDate: &date,
		SourceReference: "bank-feed-8812",
		Status:          domain.DraftPending,
	}
}

func (suite *DraftServiceTestSuite) TestCreateDraft_Success() {
	ctx := context.Background()
	req := dto.CreateDraftRequest{
		MerchantName: "Toko Sinar Jaya",
		Amount:       decimal.NewFromInt(75000),
	}

	suite.mockDraftRepo.On("SaveDraft", ctx, mock.AnythingOfType("domain.DraftTransaction")).Run(func(args mock.Arguments) {
		draft := args.Get(1).(domain.DraftTransaction)
		suite.Equal(domain.DraftPending, draft.Status)
		suite.Equal(suite.userID, draft.CreatedBy)
	}).Return(nil).Once()

	draft, err := suite.service.CreateDraft(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.DraftPending, draft.Status)
	suite.mockDraftRepo.AssertExpectations(suite.T())
}

func (suite *DraftServiceTestSuite) TestCreateDraft_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateDraftRequest{MerchantName: "Toko Sinar Jaya", Amount: decimal.Zero}

	_, err := suite.service.CreateDraft(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDraftRepo.AssertNotCalled(suite.T(), "SaveDraft", mock.Anything, mock.Anything)
}

func (suite *DraftServiceTestSuite) TestConvertDraft_Success() {
	ctx := context.Background()
	draft := suite.pendingDraft()
	templateID := uuid.NewString()
	req := dto.ConvertDraftRequest{TemplateID: templateID}

	created := &domain.Transaction{TransactionID: uuid.NewString(), TransactionNumber: "TRX-2025-0042", Status: domain.StatusDraft}

	suite.mockDraftRepo.On("FindDraftByID", ctx, draft.DraftID).Return(draft, nil).Once()
	suite.mockTxnSvc.On("CreateTransaction", ctx, mock.AnythingOfType("dto.CreateTransactionRequest"), suite.userID).Run(func(args mock.Arguments) {
		txnReq := args.Get(1).(dto.CreateTransactionRequest)
		suite.Equal(templateID, txnReq.TemplateID)
		suite.True(txnReq.Amount.Equal(draft.Amount))
		suite.True(txnReq.TransactionDate.Equal(*draft.TransactionDate))
		suite.Equal(draft.MerchantName, txnReq.Description)
		suite.Equal(draft.SourceReference, txnReq.ReferenceNumber)
	}).Return(created, nil).Once()
	suite.mockDraftRepo.On("UpdateDraftStatus", ctx, draft.DraftID, domain.DraftConverted, suite.userID).Return(nil).Once()

	txn, err := suite.service.ConvertDraft(ctx, draft.DraftID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("TRX-2025-0042", txn.TransactionNumber)
	suite.mockDraftRepo.AssertExpectations(suite.T())
	suite.mockTxnSvc.AssertExpectations(suite.T())
}

func (suite *DraftServiceTestSuite) TestConvertDraft_OverridesWin() {
	ctx := context.Background()
	draft := suite.pendingDraft()
	overrideAmount := decimal.NewFromInt(80000)
	overrideDate := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	req := dto.ConvertDraftRequest{
		TemplateID:      uuid.NewString(),
		Amount:          &overrideAmount,
		TransactionDate: &overrideDate,
		Description:     "Restock gudang",
	}

	suite.mockDraftRepo.On("FindDraftByID", ctx, draft.DraftID).Return(draft, nil).Once()
	suite.mockTxnSvc.On("CreateTransaction", ctx, mock.AnythingOfType("dto.CreateTransactionRequest"), suite.userID).Run(func(args mock.Arguments) {
		txnReq := args.Get(1).(dto.CreateTransactionRequest)
		suite.True(txnReq.Amount.Equal(overrideAmount))
		suite.True(txnReq.TransactionDate.Equal(overrideDate))
		suite.Equal("Restock gudang", txnReq.Description)
	}).Return(&domain.Transaction{TransactionID: uuid.NewString()}, nil).Once()
	suite.mockDraftRepo.On("UpdateDraftStatus", ctx, draft.DraftID, domain.DraftConverted, suite.userID).Return(nil).Once()

	_, err := suite.service.ConvertDraft(ctx, draft.DraftID, req, suite.userID)

	suite.Require().NoError(err)
}

func (suite *DraftServiceTestSuite) TestConvertDraft_NotPending() {
	ctx := context.Background()
	draft := suite.pendingDraft()
	draft.Status = domain.DraftConverted

	suite.mockDraftRepo.On("FindDraftByID", ctx, draft.DraftID).Return(draft, nil).Once()

	_, err := suite.service.ConvertDraft(ctx, draft.DraftID, dto.ConvertDraftRequest{TemplateID: uuid.NewString()}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), "only pending drafts can be converted")
	suite.mockTxnSvc.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DraftServiceTestSuite) TestConvertDraft_TransactionCreationFails() {
	ctx := context.Background()
	draft := suite.pendingDraft()

	suite.mockDraftRepo.On("FindDraftByID", ctx, draft.DraftID).Return(draft, nil).Once()
	suite.mockTxnSvc.On("CreateTransaction", ctx, mock.Anything, suite.userID).Return(nil, apperrors.ErrUnbalanced).Once()

	_, err := suite.service.ConvertDraft(ctx, draft.DraftID, dto.ConvertDraftRequest{TemplateID: uuid.NewString()}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalanced)
	suite.mockDraftRepo.AssertNotCalled(suite.T(), "UpdateDraftStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DraftServiceTestSuite) TestDismissDraft_Success() {
	ctx := context.Background()
	draft := suite.pendingDraft()

	suite.mockDraftRepo.On("FindDraftByID", ctx, draft.DraftID).Return(draft, nil).Once()
	suite.mockDraftRepo.On("UpdateDraftStatus", ctx, draft.DraftID, domain.DraftDismissed, suite.userID).Return(nil).Once()

	err := suite.service.DismissDraft(ctx, draft.DraftID, suite.userID)

	suite.Require().NoError(err)
	suite.mockDraftRepo.AssertExpectations(suite.T())
}

func (suite *DraftServiceTestSuite) TestDismissDraft_NotPending() {
	ctx := context.Background()
	draft := suite.pendingDraft()
	draft.Status = domain.DraftDismissed

	suite.mockDraftRepo.On("FindDraftByID", ctx, draft.DraftID).Return(draft, nil).Once()

	err := suite.service.DismissDraft(ctx, draft.DraftID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *DraftServiceTestSuite) TestListDrafts_DefaultsLimit() {
	ctx := context.Background()

	suite.mockDraftRepo.On("ListDrafts", ctx, domain.DraftStatus(""), 50, 0).Return([]domain.DraftTransaction{}, nil).Once()

	drafts, err := suite.service.ListDrafts(ctx, dto.ListDraftsParams{})

	suite.Require().NoError(err)
	suite.Empty(drafts)
	suite.mockDraftRepo.AssertExpectations(suite.T())
}

func TestDraftServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DraftServiceTestSuite))
}
