package services_test

import (
	"context"
	"testing"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/apperrors"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	portssvc "github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/ports/services"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/services"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type TemplateServiceTestSuite struct {
	suite.Suite
	mockTemplateRepo *MockTemplateRepository
	mockAccountRepo  *MockAccountRepository
	service          portssvc.TemplateSvcFacade
	debitAccount     domain.Account
	creditAccount    domain.Account
	userID           string
}

func (suite *TemplateServiceTestSuite) SetupTest() {
	suite.mockTemplateRepo = new(MockTemplateRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewTemplateService(suite.mockTemplateRepo, suite.mockAccountRepo)

	suite.userID = uuid.NewString()
	suite.debitAccount = domain.Account{AccountID: uuid.NewString(), AccountType: domain.Expense, IsActive: true}
	suite.creditAccount = domain.Account{AccountID: uuid.NewString(), AccountType: domain.Asset, IsActive: true}
}

func (suite *TemplateServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		suite.debitAccount.AccountID:  suite.debitAccount,
		suite.creditAccount.AccountID: suite.creditAccount,
	}
}

func (suite *TemplateServiceTestSuite) validCreateRequest() dto.CreateTemplateRequest {
	return dto.CreateTemplateRequest{
		Name:     "Office Supplies",
		Category: domain.CategoryExpense,
		Lines: []dto.TemplateLineRequest{
			{AccountID: suite.debitAccount.AccountID, Position: "DEBIT", Formula: "amount", LineOrder: 1},
			{AccountID: suite.creditAccount.AccountID, Position: "CREDIT", Formula: "amount", LineOrder: 2},
		},
	}
}

// --- CreateTemplate ---

func (suite *TemplateServiceTestSuite) TestCreateTemplate_Success() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsMap(), nil).Once()
	suite.mockTemplateRepo.On("SaveTemplate", ctx, mock.AnythingOfType("domain.JournalTemplate")).Run(func(args mock.Arguments) {
		template := args.Get(1).(domain.JournalTemplate)
		suite.True(template.IsActive)
		suite.Len(template.Lines, 2)
		suite.Equal(suite.userID, template.CreatedBy)
	}).Return(nil).Once()

	created, err := suite.service.CreateTemplate(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.TemplateID)
	suite.Equal(req.Name, created.Name)
	suite.mockTemplateRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TemplateServiceTestSuite) TestCreateTemplate_MissingCreditSide() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.Lines[1].Position = "DEBIT"

	_, err := suite.service.CreateTemplate(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "at least one debit and one credit")
	suite.mockTemplateRepo.AssertNotCalled(suite.T(), "SaveTemplate", mock.Anything, mock.Anything)
}

func (suite *TemplateServiceTestSuite) TestCreateTemplate_DuplicateLineOrder() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.Lines[1].LineOrder = 1

	_, err := suite.service.CreateTemplate(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "duplicate line order")
}

func (suite *TemplateServiceTestSuite) TestCreateTemplate_MalformedFormula() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.Lines[0].Formula = "amount * * 0.11"

	_, err := suite.service.CreateTemplate(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.mockTemplateRepo.AssertNotCalled(suite.T(), "SaveTemplate", mock.Anything, mock.Anything)
}

func (suite *TemplateServiceTestSuite) TestCreateTemplate_UnknownVariableIsAllowed() {
	// Template-time validation cannot know which variables a posting will
	// supply, so unknown identifiers parse fine.
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.Lines[0].Formula = "amount - withholding"

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsMap(), nil).Once()
	suite.mockTemplateRepo.On("SaveTemplate", ctx, mock.AnythingOfType("domain.JournalTemplate")).Return(nil).Once()

	_, err := suite.service.CreateTemplate(ctx, req, suite.userID)

	suite.Require().NoError(err)
}

func (suite *TemplateServiceTestSuite) TestCreateTemplate_InactiveAccount() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	accounts := suite.accountsMap()
	closed := accounts[suite.debitAccount.AccountID]
	closed.IsActive = false
	accounts[suite.debitAccount.AccountID] = closed

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accounts, nil).Once()

	_, err := suite.service.CreateTemplate(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTemplateRepo.AssertNotCalled(suite.T(), "SaveTemplate", mock.Anything, mock.Anything)
}

// --- UpdateTemplate ---

func (suite *TemplateServiceTestSuite) existingTemplate() *domain.JournalTemplate {
	templateID := uuid.NewString()
	return &domain.JournalTemplate{
		TemplateID: templateID,
		Name:       "Office Supplies",
		Category:   domain.CategoryExpense,
		IsActive:   true,
		Lines: []domain.TemplateLine{
			{LineID: uuid.NewString(), TemplateID: templateID, AccountID: suite.debitAccount.AccountID, Position: domain.Debit, Formula: "amount", LineOrder: 1},
			{LineID: uuid.NewString(), TemplateID: templateID, AccountID: suite.creditAccount.AccountID, Position: domain.Credit, Formula: "amount", LineOrder: 2},
		},
	}
}

func (suite *TemplateServiceTestSuite) TestUpdateTemplate_RenameOnlyKeepsLines() {
	ctx := context.Background()
	template := suite.existingTemplate()
	newName := "Stationery"
	req := dto.UpdateTemplateRequest{Name: &newName}

	suite.mockTemplateRepo.On("FindTemplateByID", ctx, template.TemplateID).Return(template, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsMap(), nil).Once()
	suite.mockTemplateRepo.On("SaveTemplate", ctx, mock.AnythingOfType("domain.JournalTemplate")).Run(func(args mock.Arguments) {
		saved := args.Get(1).(domain.JournalTemplate)
		suite.Equal("Stationery", saved.Name)
		suite.Len(saved.Lines, 2)
		suite.Equal(template.Lines[0].LineID, saved.Lines[0].LineID)
	}).Return(nil).Once()

	updated, err := suite.service.UpdateTemplate(ctx, template.TemplateID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Stationery", updated.Name)
	suite.mockTemplateRepo.AssertExpectations(suite.T())
}

func (suite *TemplateServiceTestSuite) TestUpdateTemplate_ReplaceLines() {
	ctx := context.Background()
	template := suite.existingTemplate()
	req := dto.UpdateTemplateRequest{
		Lines: &[]dto.TemplateLineRequest{
			{AccountID: suite.debitAccount.AccountID, Position: "DEBIT", Formula: "amount * 0.9", LineOrder: 1},
			{AccountID: suite.debitAccount.AccountID, Position: "DEBIT", Formula: "amount * 0.1", LineOrder: 2},
			{AccountID: suite.creditAccount.AccountID, Position: "CREDIT", Formula: "amount", LineOrder: 3},
		},
	}

	suite.mockTemplateRepo.On("FindTemplateByID", ctx, template.TemplateID).Return(template, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsMap(), nil).Once()
	suite.mockTemplateRepo.On("SaveTemplate", ctx, mock.AnythingOfType("domain.JournalTemplate")).Run(func(args mock.Arguments) {
		saved := args.Get(1).(domain.JournalTemplate)
		suite.Len(saved.Lines, 3)
		for _, line := range saved.Lines {
			suite.Equal(template.TemplateID, line.TemplateID)
			suite.NotEmpty(line.LineID)
		}
	}).Return(nil).Once()

	updated, err := suite.service.UpdateTemplate(ctx, template.TemplateID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Len(updated.Lines, 3)
}

func (suite *TemplateServiceTestSuite) TestUpdateTemplate_NotFound() {
	ctx := context.Background()
	templateID := uuid.NewString()

	suite.mockTemplateRepo.On("FindTemplateByID", ctx, templateID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateTemplate(ctx, templateID, dto.UpdateTemplateRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- PreviewTemplate ---

func (suite *TemplateServiceTestSuite) TestPreviewTemplate_Balanced() {
	ctx := context.Background()
	template := suite.existingTemplate()
	req := dto.PreviewTemplateRequest{Amount: decimal.NewFromInt(250)}

	suite.mockTemplateRepo.On("FindTemplateByID", ctx, template.TemplateID).Return(template, nil).Once()

	preview, err := suite.service.PreviewTemplate(ctx, template.TemplateID, req)

	suite.Require().NoError(err)
	suite.Require().Len(preview.Lines, 2)
	suite.True(preview.Balanced)
	suite.True(preview.TotalDebit.Equal(decimal.NewFromInt(250)))
	suite.True(preview.TotalCredit.Equal(decimal.NewFromInt(250)))
}

func (suite *TemplateServiceTestSuite) TestPreviewTemplate_UnbalancedReported() {
	ctx := context.Background()
	templateID := uuid.NewString()
	template := &domain.JournalTemplate{
		TemplateID: templateID,
		IsActive:   true,
		Lines: []domain.TemplateLine{
			{LineID: uuid.NewString(), TemplateID: templateID, AccountID: suite.debitAccount.AccountID, Position: domain.Debit, Formula: "amount", LineOrder: 1},
			{LineID: uuid.NewString(), TemplateID: templateID, AccountID: suite.creditAccount.AccountID, Position: domain.Credit, Formula: "amount * 0.8", LineOrder: 2},
		},
	}
	req := dto.PreviewTemplateRequest{Amount: decimal.NewFromInt(100)}

	suite.mockTemplateRepo.On("FindTemplateByID", ctx, templateID).Return(template, nil).Once()

	preview, err := suite.service.PreviewTemplate(ctx, templateID, req)

	suite.Require().NoError(err)
	suite.False(preview.Balanced)
	suite.True(preview.TotalDebit.GreaterThan(preview.TotalCredit))
}

func (suite *TemplateServiceTestSuite) TestPreviewTemplate_ZeroLineDropped() {
	ctx := context.Background()
	templateID := uuid.NewString()
	template := &domain.JournalTemplate{
		TemplateID: templateID,
		IsActive:   true,
		Lines: []domain.TemplateLine{
			{LineID: uuid.NewString(), TemplateID: templateID, AccountID: suite.debitAccount.AccountID, Position: domain.Debit, Formula: "amount", LineOrder: 1},
			{LineID: uuid.NewString(), TemplateID: templateID, AccountID: suite.debitAccount.AccountID, Position: domain.Debit, Formula: "amount * 0", LineOrder: 2},
			{LineID: uuid.NewString(), TemplateID: templateID, AccountID: suite.creditAccount.AccountID, Position: domain.Credit, Formula: "amount", LineOrder: 3},
		},
	}
	req := dto.PreviewTemplateRequest{Amount: decimal.NewFromInt(100)}

	suite.mockTemplateRepo.On("FindTemplateByID", ctx, templateID).Return(template, nil).Once()

	preview, err := suite.service.PreviewTemplate(ctx, templateID, req)

	suite.Require().NoError(err)
	suite.Len(preview.Lines, 2)
	suite.True(preview.Balanced)
}

func (suite *TemplateServiceTestSuite) TestPreviewTemplate_NonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.service.PreviewTemplate(ctx, uuid.NewString(), dto.PreviewTemplateRequest{Amount: decimal.Zero})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTemplateRepo.AssertNotCalled(suite.T(), "FindTemplateByID", mock.Anything, mock.Anything)
}

func (suite *TemplateServiceTestSuite) TestPreviewTemplate_UnknownOverrideLine() {
	ctx := context.Background()
	template := suite.existingTemplate()
	req := dto.PreviewTemplateRequest{
		Amount: decimal.NewFromInt(100),
		AccountOverrides: []dto.AccountOverride{
			{TemplateLineID: uuid.NewString(), AccountID: suite.creditAccount.AccountID},
		},
	}

	suite.mockTemplateRepo.On("FindTemplateByID", ctx, template.TemplateID).Return(template, nil).Once()

	_, err := suite.service.PreviewTemplate(ctx, template.TemplateID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- DeactivateTemplate ---

func (suite *TemplateServiceTestSuite) TestDeactivateTemplate_Success() {
	ctx := context.Background()
	templateID := uuid.NewString()

	suite.mockTemplateRepo.On("DeactivateTemplate", ctx, templateID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateTemplate(ctx, templateID, suite.userID)

	suite.Require().NoError(err)
	suite.mockTemplateRepo.AssertExpectations(suite.T())
}

func TestTemplateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TemplateServiceTestSuite))
}
