package repositories

import (
	"context"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
)

// FiscalPeriodReader defines read operations for fiscal period data
type FiscalPeriodReader interface {
	// FindPeriod retrieves the fiscal period row for a year and month, if one exists.
	FindPeriod(ctx context.Context, year int, month int) (*domain.FiscalPeriod, error)

	// ListPeriodsByYear retrieves all period rows of a year in month order.
	ListPeriodsByYear(ctx context.Context, year int) ([]domain.FiscalPeriod, error)
}

// FiscalPeriodWriter defines write operations for fiscal period data
type FiscalPeriodWriter interface {
	// SavePeriod inserts a fiscal period row.
	SavePeriod(ctx context.Context, period domain.FiscalPeriod) error

	// UpdatePeriod persists status transitions and close/file audit stamps.
	UpdatePeriod(ctx context.Context, period domain.FiscalPeriod) error
}

// FiscalPeriodRepositoryFacade combines all fiscal-period-related repository interfaces
type FiscalPeriodRepositoryFacade interface {
	FiscalPeriodReader
	FiscalPeriodWriter
}
