package pgsql

import (
	portsrepo "github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	transactionRepo := newPgxTransactionRepository(dbPool)
	templateRepo := newPgxTemplateRepository(dbPool)
	fiscalPeriodRepo := newPgxFiscalPeriodRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	projectRepo := newPgxProjectRepository(dbPool)
	draftRepo := newPgxDraftRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TransactionRepo:  transactionRepo,
		TemplateRepo:     templateRepo,
		FiscalPeriodRepo: fiscalPeriodRepo,
		AccountRepo:      accountRepo,
		ProjectRepo:      projectRepo,
		DraftRepo:        draftRepo,
	}
}
