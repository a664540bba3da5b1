package services

import (
	portsrepo "github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/ports/repositories"
	portssvc "github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/ports/services"
)

// NewServiceContainer wires all services over the repository provider.
// Construction order matters: the fiscal period service gates posting, so the
// transaction service depends on it, and draft conversion goes through the
// transaction service.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.FiscalPeriod = NewFiscalPeriodService(repos.FiscalPeriodRepo)
	container.Account = NewAccountService(repos.AccountRepo)
	container.Project = NewProjectService(repos.ProjectRepo)
	container.Template = NewTemplateService(repos.TemplateRepo, repos.AccountRepo)
	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.TemplateRepo,
		repos.AccountRepo,
		repos.ProjectRepo,
		container.FiscalPeriod,
	)
	container.Draft = NewDraftService(repos.DraftRepo, container.Transaction)

	return container
}

// Compile-time checks that each implementation satisfies its facade.
var (
	_ portssvc.TransactionSvcFacade  = (*transactionService)(nil)
	_ portssvc.TemplateSvcFacade     = (*templateService)(nil)
	_ portssvc.FiscalPeriodSvcFacade = (*fiscalPeriodService)(nil)
	_ portssvc.AccountSvcFacade      = (*accountService)(nil)
	_ portssvc.ProjectSvcFacade      = (*projectService)(nil)
	_ portssvc.DraftSvcFacade        = (*draftService)(nil)
)
