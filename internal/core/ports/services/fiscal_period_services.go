package services

import (
	"context"
	"time"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/dto"
)

// FiscalPeriodReaderSvc defines read operations for fiscal periods
type FiscalPeriodReaderSvc interface {
	// GetPeriod retrieves the fiscal period for a year and month.
	GetPeriod(ctx context.Context, year int, month int) (*domain.FiscalPeriod, error)

	// ListPeriodsByYear retrieves all fiscal periods of a year.
	ListPeriodsByYear(ctx context.Context, year int) ([]domain.FiscalPeriod, error)

	// IsOpenForPosting reports whether entries may be written into the month of a date.
	// Months without a period row count as closed.
	IsOpenForPosting(ctx context.Context, date time.Time) (bool, error)
}

// FiscalPeriodWriterSvc defines lifecycle operations for fiscal periods
type FiscalPeriodWriterSvc interface {
	// CreatePeriod opens a fiscal period row for a month.
	CreatePeriod(ctx context.Context, req dto.CreateFiscalPeriodRequest, creatorUserID string) (*domain.FiscalPeriod, error)

	// CloseMonth transitions an OPEN period to MONTH_CLOSED.
	CloseMonth(ctx context.Context, year int, month int, req dto.CloseMonthRequest, requestingUserID string) (*domain.FiscalPeriod, error)

	// FileTax transitions a MONTH_CLOSED period to TAX_FILED.
	FileTax(ctx context.Context, year int, month int, req dto.FileTaxRequest, requestingUserID string) (*domain.FiscalPeriod, error)

	// ReopenMonth transitions a MONTH_CLOSED period back to OPEN. TAX_FILED is final.
	ReopenMonth(ctx context.Context, year int, month int, requestingUserID string) (*domain.FiscalPeriod, error)
}

// FiscalPeriodSvcFacade combines all fiscal-period-related service interfaces
type FiscalPeriodSvcFacade interface {
	FiscalPeriodReaderSvc
	FiscalPeriodWriterSvc
}
