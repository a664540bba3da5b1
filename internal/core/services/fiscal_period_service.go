package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/apperrors"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	portsrepo "github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/ports/repositories"
	portssvc "github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/ports/services"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/dto"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/middleware"
)

// fiscalPeriodService manages the month close lifecycle and the posting gate.
type fiscalPeriodService struct {
	periodRepo portsrepo.FiscalPeriodRepositoryFacade
}

// NewFiscalPeriodService creates a new FiscalPeriodService.
func NewFiscalPeriodService(periodRepo portsrepo.FiscalPeriodRepositoryFacade) portssvc.FiscalPeriodSvcFacade {
	return &fiscalPeriodService{periodRepo: periodRepo}
}

var _ portssvc.FiscalPeriodSvcFacade = (*fiscalPeriodService)(nil)

// CreatePeriod opens a fiscal period row for a month.
func (s *fiscalPeriodService) CreatePeriod(ctx context.Context, req dto.CreateFiscalPeriodRequest, creatorUserID string) (*domain.FiscalPeriod, error) {
	now := time.Now().UTC()
	period := domain.FiscalPeriod{
		PeriodID: uuid.NewString(),
		Year:     req.Year,
		Month:    req.Month,
		Status:   domain.PeriodOpen,
		Notes:    req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Fiscal period opened",
		slog.Int("year", req.Year), slog.Int("month", req.Month), slog.String("user_id", creatorUserID))
	return &period, nil
}

// GetPeriod retrieves the fiscal period for a year and month.
func (s *fiscalPeriodService) GetPeriod(ctx context.Context, year int, month int) (*domain.FiscalPeriod, error) {
	return s.periodRepo.FindPeriod(ctx, year, month)
}

// ListPeriodsByYear retrieves all fiscal periods of a year.
func (s *fiscalPeriodService) ListPeriodsByYear(ctx context.Context, year int) ([]domain.FiscalPeriod, error) {
	return s.periodRepo.ListPeriodsByYear(ctx, year)
}

// IsOpenForPosting reports whether entries may be written into the month of a
// date. A month with no period row counts as closed: books must be explicitly
// opened before they accept postings.
func (s *fiscalPeriodService) IsOpenForPosting(ctx context.Context, date time.Time) (bool, error) {
	period, err := s.periodRepo.FindPeriod(ctx, date.Year(), int(date.Month()))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return period.IsOpen(), nil
}

// CloseMonth transitions an OPEN period to MONTH_CLOSED.
func (s *fiscalPeriodService) CloseMonth(ctx context.Context, year int, month int, req dto.CloseMonthRequest, requestingUserID string) (*domain.FiscalPeriod, error) {
	period, err := s.periodRepo.FindPeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}
	if !period.CanCloseMonth() {
		return nil, fmt.Errorf("%w: fiscal period %d-%02d is %s, only open months can be closed",
			apperrors.ErrConflict, year, month, period.Status)
	}

	now := time.Now().UTC()
	period.Status = domain.PeriodMonthClosed
	period.MonthClosedAt = &now
	period.MonthClosedBy = requestingUserID
	if req.Notes != "" {
		period.Notes = req.Notes
	}
	period.LastUpdatedAt = now
	period.LastUpdatedBy = requestingUserID

	if err := s.periodRepo.UpdatePeriod(ctx, *period); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Fiscal month closed",
		slog.Int("year", year), slog.Int("month", month), slog.String("user_id", requestingUserID))
	return period, nil
}

// FileTax transitions a MONTH_CLOSED period to TAX_FILED. This is final.
func (s *fiscalPeriodService) FileTax(ctx context.Context, year int, month int, req dto.FileTaxRequest, requestingUserID string) (*domain.FiscalPeriod, error) {
	period, err := s.periodRepo.FindPeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}
	if !period.CanFileTax() {
		return nil, fmt.Errorf("%w: fiscal period %d-%02d is %s, taxes can only be filed for closed months",
			apperrors.ErrConflict, year, month, period.Status)
	}

	now := time.Now().UTC()
	period.Status = domain.PeriodTaxFiled
	period.TaxFiledAt = &now
	period.TaxFiledBy = requestingUserID
	if req.Notes != "" {
		period.Notes = req.Notes
	}
	period.LastUpdatedAt = now
	period.LastUpdatedBy = requestingUserID

	if err := s.periodRepo.UpdatePeriod(ctx, *period); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Fiscal month tax filed",
		slog.Int("year", year), slog.Int("month", month), slog.String("user_id", requestingUserID))
	return period, nil
}

// ReopenMonth transitions a MONTH_CLOSED period back to OPEN. TAX_FILED
// periods never reopen.
func (s *fiscalPeriodService) ReopenMonth(ctx context.Context, year int, month int, requestingUserID string) (*domain.FiscalPeriod, error) {
	period, err := s.periodRepo.FindPeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}
	if period.Status != domain.PeriodMonthClosed {
		return nil, fmt.Errorf("%w: fiscal period %d-%02d is %s, only closed months can be reopened",
			apperrors.ErrConflict, year, month, period.Status)
	}

	now := time.Now().UTC()
	period.Status = domain.PeriodOpen
	period.MonthClosedAt = nil
	period.MonthClosedBy = ""
	period.LastUpdatedAt = now
	period.LastUpdatedBy = requestingUserID

	if err := s.periodRepo.UpdatePeriod(ctx, *period); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Fiscal month reopened",
		slog.Int("year", year), slog.Int("month", month), slog.String("user_id", requestingUserID))
	return period, nil
}
