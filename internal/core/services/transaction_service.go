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
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/utils/accounting"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/utils/numbering"
	"github.com/shopspring/decimal"
)

// transactionService drives the transaction lifecycle: template execution,
// draft management, posting into the ledger and reversal-based voiding.
type transactionService struct {
	txnRepo      portsrepo.TransactionRepositoryWithTx
	templateRepo portsrepo.TemplateRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	projectRepo  portsrepo.ProjectRepositoryFacade
	fiscalSvc    portssvc.FiscalPeriodReaderSvc
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryWithTx,
	templateRepo portsrepo.TemplateRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	projectRepo portsrepo.ProjectRepositoryFacade,
	fiscalSvc portssvc.FiscalPeriodReaderSvc,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:      txnRepo,
		templateRepo: templateRepo,
		accountRepo:  accountRepo,
		projectRepo:  projectRepo,
		fiscalSvc:    fiscalSvc,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// resolveOverrides validates requested account overrides against the template
// lines and returns them keyed by template line ID. Overrides naming a line
// the template does not have are rejected rather than ignored.
func resolveOverrides(template *domain.JournalTemplate, overrides []dto.AccountOverride) (map[string]string, error) {
	lineIDs := make(map[string]bool, len(template.Lines))
	for _, line := range template.Lines {
		lineIDs[line.LineID] = true
	}

	resolved := make(map[string]string, len(overrides))
	for _, o := range overrides {
		if !lineIDs[o.TemplateLineID] {
			return nil, fmt.Errorf("%w: template %s has no line %s to override",
				apperrors.ErrValidation, template.TemplateID, o.TemplateLineID)
		}
		if _, dup := resolved[o.TemplateLineID]; dup {
			return nil, fmt.Errorf("%w: duplicate override for template line %s",
				apperrors.ErrValidation, o.TemplateLineID)
		}
		resolved[o.TemplateLineID] = o.AccountID
	}
	return resolved, nil
}

// validateExecution dry-runs the template against the amount and variables and
// checks that the touched accounts exist and are active. It returns the
// executed lines for reuse by the caller.
func (s *transactionService) validateExecution(ctx context.Context, template *domain.JournalTemplate, overrides map[string]string, amount decimal.Decimal, vars map[string]decimal.Decimal) ([]executedLine, error) {
	executed, err := executeTemplateLines(template.Lines, overrides, amount, vars)
	if err != nil {
		return nil, err
	}
	if len(executed) < 2 {
		return nil, fmt.Errorf("%w: template execution produced %d ledger lines, at least 2 required",
			apperrors.ErrValidation, len(executed))
	}

	debit, credit := entriesTotals(executed)
	if !debit.Equal(credit) {
		return nil, fmt.Errorf("%w: debit=%s, credit=%s", apperrors.ErrUnbalanced, debit.String(), credit.String())
	}

	accountIDs := make([]string, 0, len(executed))
	seen := make(map[string]bool)
	for _, ex := range executed {
		if !seen[ex.AccountID] {
			seen[ex.AccountID] = true
			accountIDs = append(accountIDs, ex.AccountID)
		}
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}
	for id, acc := range accounts {
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}

	return executed, nil
}

func (s *transactionService) validateProject(ctx context.Context, projectID *string) error {
	if projectID == nil {
		return nil
	}
	project, err := s.projectRepo.FindProjectByID(ctx, *projectID)
	if err != nil {
		return err
	}
	if !project.IsActive {
		return fmt.Errorf("%w: project %s is inactive", apperrors.ErrValidation, project.ProjectID)
	}
	return nil
}

// CreateTransaction validates a template execution and persists a DRAFT
// transaction. The draft carries no ledger entries; those materialize at post
// time.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transaction amount must be positive", apperrors.ErrValidation)
	}

	template, err := s.templateRepo.FindTemplateByID(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}
	if !template.IsActive {
		return nil, fmt.Errorf("%w: template %s is inactive", apperrors.ErrValidation, template.TemplateID)
	}

	overrides, err := resolveOverrides(template, req.AccountOverrides)
	if err != nil {
		return nil, err
	}
	if _, err := s.validateExecution(ctx, template, overrides, req.Amount, req.Variables); err != nil {
		return nil, err
	}
	if err := s.validateProject(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	transactionID := uuid.NewString()

	mappings := make([]domain.AccountMapping, 0, len(req.AccountOverrides))
	for lineID, accountID := range overrides {
		mappings = append(mappings, domain.AccountMapping{
			MappingID:      uuid.NewString(),
			TransactionID:  transactionID,
			TemplateLineID: lineID,
			AccountID:      accountID,
		})
	}

	txn := domain.Transaction{
		TransactionID:   transactionID,
		TemplateID:      req.TemplateID,
		TransactionDate: req.TransactionDate,
		Amount:          req.Amount,
		Description:     req.Description,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
		Status:          domain.StatusDraft,
		ProjectID:       req.ProjectID,
		AccountMappings: mappings,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	created, err := s.txnRepo.CreateTransaction(ctx, txn)
	if err != nil {
		logger.Error("Failed to create transaction", slog.String("error", err.Error()), slog.String("template_id", req.TemplateID))
		return nil, err
	}

	// Usage stats are best effort; the draft already exists.
	if err := s.templateRepo.RecordTemplateUsage(ctx, req.TemplateID, now); err != nil {
		logger.Warn("Failed to record template usage", slog.String("error", err.Error()), slog.String("template_id", req.TemplateID))
	}

	logger.Info("Transaction created",
		slog.String("transaction_id", created.TransactionID),
		slog.String("transaction_number", created.TransactionNumber),
		slog.String("user_id", creatorUserID))
	return created, nil
}

// UpdateTransaction replaces a DRAFT transaction's editable state wholesale.
// Posted and voided transactions are immutable.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.IsDraft() {
		return nil, fmt.Errorf("%w: only draft transactions can be edited", apperrors.ErrConflict)
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transaction amount must be positive", apperrors.ErrValidation)
	}

	txn.TransactionDate = req.TransactionDate
	txn.Amount = req.Amount
	txn.Description = req.Description
	txn.ReferenceNumber = req.ReferenceNumber
	txn.Notes = req.Notes
	txn.ProjectID = req.ProjectID
	if err := s.validateProject(ctx, txn.ProjectID); err != nil {
		return nil, err
	}

	template, err := s.templateRepo.FindTemplateByID(ctx, txn.TemplateID)
	if err != nil {
		return nil, err
	}

	overrides, err := resolveOverrides(template, req.AccountOverrides)
	if err != nil {
		return nil, err
	}
	mappings := make([]domain.AccountMapping, 0, len(overrides))
	for lineID, accountID := range overrides {
		mappings = append(mappings, domain.AccountMapping{
			MappingID:      uuid.NewString(),
			TransactionID:  txn.TransactionID,
			TemplateLineID: lineID,
			AccountID:      accountID,
		})
	}
	txn.AccountMappings = mappings

	if _, err := s.validateExecution(ctx, template, overrides, txn.Amount, req.Variables); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = requestingUserID

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Transaction updated",
		slog.String("transaction_id", transactionID), slog.String("user_id", requestingUserID))
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

// buildEntries turns executed template lines into unsaved journal entries.
func buildEntries(txn *domain.Transaction, executed []executedLine, now time.Time, userID string) []domain.JournalEntry {
	entries := make([]domain.JournalEntry, len(executed))
	for i, ex := range executed {
		entry := domain.JournalEntry{
			EntryID:       uuid.NewString(),
			TransactionID: txn.TransactionID,
			EntryDate:     txn.TransactionDate,
			AccountID:     ex.AccountID,
			DebitAmount:   decimal.Zero,
			CreditAmount:  decimal.Zero,
			Description:   txn.Description,
			ProjectID:     txn.ProjectID,
			IsReversal:    false,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if ex.Line.Position == domain.Debit {
			entry.DebitAmount = ex.Amount
		} else {
			entry.CreditAmount = ex.Amount
		}
		entries[i] = entry
	}
	return entries
}

// PostTransaction executes the template, verifies balance and the fiscal
// period gate, and writes the journal entries atomically.
func (s *transactionService) PostTransaction(ctx context.Context, transactionID string, req dto.PostTransactionRequest, requestingUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.IsDraft() {
		return nil, fmt.Errorf("%w: only draft transactions can be posted", apperrors.ErrConflict)
	}

	open, err := s.fiscalSvc.IsOpenForPosting(ctx, txn.TransactionDate)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, fmt.Errorf("%w: %s is not open for posting",
			apperrors.ErrPeriodClosed, txn.TransactionDate.Format("2006-01"))
	}

	template, err := s.templateRepo.FindTemplateByID(ctx, txn.TemplateID)
	if err != nil {
		return nil, err
	}

	overrideMap := make(map[string]string, len(txn.AccountMappings))
	for _, m := range txn.AccountMappings {
		overrideMap[m.TemplateLineID] = m.AccountID
	}
	executed, err := s.validateExecution(ctx, template, overrideMap, txn.Amount, req.Variables)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entries := buildEntries(txn, executed, now, requestingUserID)
	if err := accounting.ValidateBalanced(entries); err != nil {
		return nil, err
	}

	if _, err := s.txnRepo.MarkPosted(ctx, transactionID, entries, requestingUserID, now); err != nil {
		logger.Error("Failed to post transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, err
	}

	logger.Info("Transaction posted",
		slog.String("transaction_id", transactionID),
		slog.String("transaction_number", txn.TransactionNumber),
		slog.String("user_id", requestingUserID))
	return s.GetTransactionByID(ctx, transactionID)
}

// VoidTransaction appends reversal entries and marks the transaction VOID.
// The original entries stay untouched; the reversals are dated like the
// originals, so voiding requires that fiscal period to still be open.
func (s *transactionService) VoidTransaction(ctx context.Context, transactionID string, req dto.VoidTransactionRequest, requestingUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.IsPosted() {
		return nil, fmt.Errorf("%w: only posted transactions can be voided", apperrors.ErrConflict)
	}

	open, err := s.fiscalSvc.IsOpenForPosting(ctx, txn.TransactionDate)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, fmt.Errorf("%w: %s is not open for posting",
			apperrors.ErrPeriodClosed, txn.TransactionDate.Format("2006-01"))
	}

	entries, err := s.txnRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var reversals []domain.JournalEntry
	for _, e := range entries {
		if e.IsReversal {
			continue
		}
		rev := e.Reversed()
		rev.EntryID = uuid.NewString()
		rev.AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		}
		reversals = append(reversals, rev)
	}
	if len(reversals) == 0 {
		return nil, fmt.Errorf("%w: transaction %s has no entries to reverse", apperrors.ErrConflict, transactionID)
	}

	if _, err := s.txnRepo.MarkVoided(ctx, transactionID, reversals, req.Reason, req.Notes, requestingUserID, now); err != nil {
		logger.Error("Failed to void transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, err
	}

	logger.Info("Transaction voided",
		slog.String("transaction_id", transactionID),
		slog.String("reason", string(req.Reason)),
		slog.String("user_id", requestingUserID))
	return s.GetTransactionByID(ctx, transactionID)
}

// DeleteTransaction removes a DRAFT transaction. Posted transactions are part
// of the ledger and can only be voided.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, requestingUserID string) error {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if !txn.IsDraft() {
		return fmt.Errorf("%w: only draft transactions can be deleted", apperrors.ErrConflict)
	}

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		return err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Transaction deleted",
		slog.String("transaction_id", transactionID), slog.String("user_id", requestingUserID))
	return nil
}

// GetTransactionByID retrieves a transaction with its journal entries.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	entries, err := s.txnRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	txn.Entries = entries
	return txn, nil
}

// ListTransactions retrieves a paginated list of transactions.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	filter := domain.TransactionFilter{
		Status:     domain.TransactionStatus(params.Status),
		TemplateID: params.TemplateID,
		ProjectID:  params.ProjectID,
		DateFrom:   params.DateFrom,
		DateTo:     params.DateTo,
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	txns, err := s.txnRepo.ListTransactions(ctx, filter, limit, params.Offset)
	if err != nil {
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		Limit:        limit,
		Offset:       params.Offset,
	}, nil
}

// ListEntriesByAccount retrieves the ledger lines touching one account,
// oldest first. The account must exist; an unbounded date range is allowed.
func (s *transactionService) ListEntriesByAccount(ctx context.Context, accountID string, params dto.ListAccountEntriesParams) (*dto.ListAccountEntriesResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	from := time.Time{}
	if params.DateFrom != nil {
		from = *params.DateFrom
	}
	to := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	if params.DateTo != nil {
		to = *params.DateTo
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	entries, err := s.txnRepo.ListEntriesByAccountID(ctx, accountID, from, to, limit, params.Offset)
	if err != nil {
		return nil, err
	}

	return &dto.ListAccountEntriesResponse{
		AccountID: accountID,
		Entries:   dto.ToJournalEntryResponses(entries),
		Limit:     limit,
		Offset:    params.Offset,
	}, nil
}

// GetSequenceStatus reports the numbering counters for a year. A counter whose
// row has not been seeded yet is reported at zero.
func (s *transactionService) GetSequenceStatus(ctx context.Context, year int) ([]domain.TransactionSequence, error) {
	kinds := []struct {
		sequenceType string
		prefix       string
	}{
		{domain.SequenceTransaction, numbering.TransactionPrefix},
		{domain.SequenceJournal, numbering.JournalPrefix},
	}

	sequences := make([]domain.TransactionSequence, 0, len(kinds))
	for _, k := range kinds {
		seq, err := s.txnRepo.FindSequence(ctx, k.sequenceType, year)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				sequences = append(sequences, domain.TransactionSequence{
					SequenceType: k.sequenceType,
					Prefix:       k.prefix,
					Year:         year,
				})
				continue
			}
			return nil, err
		}
		sequences = append(sequences, *seq)
	}
	return sequences, nil
}
