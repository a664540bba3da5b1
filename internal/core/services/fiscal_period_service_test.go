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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock FiscalPeriodRepository ---
type MockFiscalPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.FiscalPeriodRepositoryFacade = (*MockFiscalPeriodRepository)(nil)

func (m *MockFiscalPeriodRepository) FindPeriod(ctx context.Context, year int, month int) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalPeriodRepository) ListPeriodsByYear(ctx context.Context, year int) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockFiscalPeriodRepository) UpdatePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

// --- Test Suite Setup ---
type FiscalPeriodServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo *MockFiscalPeriodRepository
	service        portssvc.FiscalPeriodSvcFacade
	userID         string
}

func (suite *FiscalPeriodServiceTestSuite) SetupTest() {
	suite.mockPeriodRepo = new(MockFiscalPeriodRepository)
	suite.service = services.NewFiscalPeriodService(suite.mockPeriodRepo)
	suite.userID = uuid.NewString()
}

func (suite *FiscalPeriodServiceTestSuite) openPeriod(year, month int) *domain.FiscalPeriod {
	return &domain.FiscalPeriod{
		PeriodID: uuid.NewString(),
		Year:     year,
		Month:    month,
		Status:   domain.PeriodOpen,
	}
}

func (suite *FiscalPeriodServiceTestSuite) TestCreatePeriod_Success() {
	ctx := context.Background()
	req := dto.CreateFiscalPeriodRequest{Year: 2025, Month: 6}

	suite.mockPeriodRepo.On("SavePeriod", ctx, mock.AnythingOfType("domain.FiscalPeriod")).Run(func(args mock.Arguments) {
		period := args.Get(1).(domain.FiscalPeriod)
		suite.Equal(domain.PeriodOpen, period.Status)
		suite.Equal(2025, period.Year)
		suite.Equal(6, period.Month)
	}).Return(nil).Once()

	period, err := suite.service.CreatePeriod(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodOpen, period.Status)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *FiscalPeriodServiceTestSuite) TestIsOpenForPosting_OpenPeriod() {
	ctx := context.Background()
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	suite.mockPeriodRepo.On("FindPeriod", ctx, 2025, 6).Return(suite.openPeriod(2025, 6), nil).Once()

	open, err := suite.service.IsOpenForPosting(ctx, date)

	suite.Require().NoError(err)
	suite.True(open)
}

func (suite *FiscalPeriodServiceTestSuite) TestIsOpenForPosting_ClosedPeriod() {
	ctx := context.Background()
	date := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
	period := suite.openPeriod(2025, 5)
	period.Status = domain.PeriodMonthClosed

	suite.mockPeriodRepo.On("FindPeriod", ctx, 2025, 5).Return(period, nil).Once()

	open, err := suite.service.IsOpenForPosting(ctx, date)

	suite.Require().NoError(err)
	suite.False(open)
}

func (suite *FiscalPeriodServiceTestSuite) TestIsOpenForPosting_MissingPeriodCountsAsClosed() {
	ctx := context.Background()
	date := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	suite.mockPeriodRepo.On("FindPeriod", ctx, 2030, 1).Return(nil, apperrors.ErrNotFound).Once()

	open, err := suite.service.IsOpenForPosting(ctx, date)

	suite.Require().NoError(err)
	suite.False(open)
}

func (suite *FiscalPeriodServiceTestSuite) TestCloseMonth_Success() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindPeriod", ctx, 2025, 6).Return(suite.openPeriod(2025, 6), nil).Once()
	suite.mockPeriodRepo.On("UpdatePeriod", ctx, mock.AnythingOfType("domain.FiscalPeriod")).Run(func(args mock.Arguments) {
		period := args.Get(1).(domain.FiscalPeriod)
		suite.Equal(domain.PeriodMonthClosed, period.Status)
		suite.Require().NotNil(period.MonthClosedAt)
		suite.Equal(suite.userID, period.MonthClosedBy)
	}).Return(nil).Once()

	period, err := suite.service.CloseMonth(ctx, 2025, 6, dto.CloseMonthRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodMonthClosed, period.Status)
}

func (suite *FiscalPeriodServiceTestSuite) TestCloseMonth_AlreadyClosed() {
	ctx := context.Background()
	period := suite.openPeriod(2025, 6)
	period.Status = domain.PeriodMonthClosed

	suite.mockPeriodRepo.On("FindPeriod", ctx, 2025, 6).Return(period, nil).Once()

	_, err := suite.service.CloseMonth(ctx, 2025, 6, dto.CloseMonthRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "UpdatePeriod", mock.Anything, mock.Anything)
}

func (suite *FiscalPeriodServiceTestSuite) TestFileTax_Success() {
	ctx := context.Background()
	period := suite.openPeriod(2025, 6)
	period.Status = domain.PeriodMonthClosed

	suite.mockPeriodRepo.On("FindPeriod", ctx, 2025, 6).Return(period, nil).Once()
	suite.mockPeriodRepo.On("UpdatePeriod", ctx, mock.AnythingOfType("domain.FiscalPeriod")).Run(func(args mock.Arguments) {
		saved := args.Get(1).(domain.FiscalPeriod)
		suite.Equal(domain.PeriodTaxFiled, saved.Status)
		suite.Require().NotNil(saved.TaxFiledAt)
		suite.Equal(suite.userID, saved.TaxFiledBy)
	}).Return(nil).Once()

	filed, err := suite.service.FileTax(ctx, 2025, 6, dto.FileTaxRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodTaxFiled, filed.Status)
}

func (suite *FiscalPeriodServiceTestSuite) TestFileTax_RequiresClosedMonth() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindPeriod", ctx, 2025, 6).Return(suite.openPeriod(2025, 6), nil).Once()

	_, err := suite.service.FileTax(ctx, 2025, 6, dto.FileTaxRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "UpdatePeriod", mock.Anything, mock.Anything)
}

func (suite *FiscalPeriodServiceTestSuite) TestReopenMonth_Success() {
	ctx := context.Background()
	now := time.Now().UTC()
	period := suite.openPeriod(2025, 6)
	period.Status = domain.PeriodMonthClosed
	period.MonthClosedAt = &now
	period.MonthClosedBy = suite.userID

	suite.mockPeriodRepo.On("FindPeriod", ctx, 2025, 6).Return(period, nil).Once()
	suite.mockPeriodRepo.On("UpdatePeriod", ctx, mock.AnythingOfType("domain.FiscalPeriod")).Run(func(args mock.Arguments) {
		saved := args.Get(1).(domain.FiscalPeriod)
		suite.Equal(domain.PeriodOpen, saved.Status)
		suite.Nil(saved.MonthClosedAt)
		suite.Empty(saved.MonthClosedBy)
	}).Return(nil).Once()

	reopened, err := suite.service.ReopenMonth(ctx, 2025, 6, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodOpen, reopened.Status)
}

func (suite *FiscalPeriodServiceTestSuite) TestReopenMonth_TaxFiledIsFinal() {
	ctx := context.Background()
	period := suite.openPeriod(2025, 6)
	period.Status = domain.PeriodTaxFiled

	suite.mockPeriodRepo.On("FindPeriod", ctx, 2025, 6).Return(period, nil).Once()

	_, err := suite.service.ReopenMonth(ctx, 2025, 6, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "UpdatePeriod", mock.Anything, mock.Anything)
}

func TestFiscalPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FiscalPeriodServiceTestSuite))
}
