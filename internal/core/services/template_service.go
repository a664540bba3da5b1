package services

import (
	"context"
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
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/utils/formula"
	"github.com/shopspring/decimal"
)

// templateService manages reusable journal templates and their dry-run preview.
type templateService struct {
	templateRepo portsrepo.TemplateRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
}

// NewTemplateService creates a new TemplateService.
func NewTemplateService(templateRepo portsrepo.TemplateRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.TemplateSvcFacade {
	return &templateService{templateRepo: templateRepo, accountRepo: accountRepo}
}

var _ portssvc.TemplateSvcFacade = (*templateService)(nil)

// validateLines checks structure the binding layer cannot: both ledger sides
// present, unique line order, parseable formulas, existing active accounts.
func (s *templateService) validateLines(ctx context.Context, lines []domain.TemplateLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: template needs at least 2 lines", apperrors.ErrValidation)
	}

	hasDebit, hasCredit := false, false
	orders := make(map[int]bool, len(lines))
	accountIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		switch line.Position {
		case domain.Debit:
			hasDebit = true
		case domain.Credit:
			hasCredit = true
		default:
			return fmt.Errorf("%w: invalid position %q on line %d", apperrors.ErrValidation, line.Position, line.LineOrder)
		}
		if orders[line.LineOrder] {
			return fmt.Errorf("%w: duplicate line order %d", apperrors.ErrValidation, line.LineOrder)
		}
		orders[line.LineOrder] = true

		if err := formula.Validate(line.Formula); err != nil {
			return fmt.Errorf("line %d: %w", line.LineOrder, err)
		}
		accountIDs = append(accountIDs, line.AccountID)
	}
	if !hasDebit || !hasCredit {
		return fmt.Errorf("%w: template needs at least one debit and one credit line", apperrors.ErrValidation)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		return err
	}
	for id, acc := range accounts {
		if !acc.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}
	return nil
}

func linesFromRequests(templateID string, reqs []dto.TemplateLineRequest) []domain.TemplateLine {
	lines := make([]domain.TemplateLine, len(reqs))
	for i, lr := range reqs {
		lines[i] = domain.TemplateLine{
			LineID:     uuid.NewString(),
			TemplateID: templateID,
			AccountID:  lr.AccountID,
			Position:   domain.JournalPosition(lr.Position),
			Formula:    lr.Formula,
			LineOrder:  lr.LineOrder,
		}
	}
	return lines
}

// CreateTemplate validates line formulas and persists a template with its lines.
func (s *templateService) CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest, creatorUserID string) (*domain.JournalTemplate, error) {
	now := time.Now().UTC()
	templateID := uuid.NewString()
	lines := linesFromRequests(templateID, req.Lines)

	if err := s.validateLines(ctx, lines); err != nil {
		return nil, err
	}

	template := domain.JournalTemplate{
		TemplateID: templateID,
		Name:       req.Name,
		Category:   req.Category,
		IsActive:   true,
		Lines:      lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.templateRepo.SaveTemplate(ctx, template); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Template created",
		slog.String("template_id", templateID), slog.String("name", req.Name), slog.String("user_id", creatorUserID))
	return &template, nil
}

// UpdateTemplate edits template details or replaces its lines. Transactions
// already posted keep the entries they were posted with; template edits only
// affect future executions.
func (s *templateService) UpdateTemplate(ctx context.Context, templateID string, req dto.UpdateTemplateRequest, requestingUserID string) (*domain.JournalTemplate, error) {
	template, err := s.templateRepo.FindTemplateByID(ctx, templateID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		template.Name = *req.Name
	}
	if req.Category != nil {
		template.Category = *req.Category
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}
	if req.Lines != nil {
		template.Lines = linesFromRequests(templateID, *req.Lines)
	}

	if err := s.validateLines(ctx, template.Lines); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	template.LastUpdatedAt = now
	template.LastUpdatedBy = requestingUserID

	if err := s.templateRepo.SaveTemplate(ctx, *template); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Template updated",
		slog.String("template_id", templateID), slog.String("user_id", requestingUserID))
	return template, nil
}

// DeactivateTemplate marks a template inactive so it cannot back new transactions.
func (s *templateService) DeactivateTemplate(ctx context.Context, templateID string, requestingUserID string) error {
	if err := s.templateRepo.DeactivateTemplate(ctx, templateID, requestingUserID, time.Now().UTC()); err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Template deactivated",
		slog.String("template_id", templateID), slog.String("user_id", requestingUserID))
	return nil
}

// GetTemplateByID retrieves a template with its lines.
func (s *templateService) GetTemplateByID(ctx context.Context, templateID string) (*domain.JournalTemplate, error) {
	return s.templateRepo.FindTemplateByID(ctx, templateID)
}

// ListTemplates retrieves a paginated list of templates.
func (s *templateService) ListTemplates(ctx context.Context, params dto.ListTemplatesParams) (*dto.ListTemplatesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	templates, err := s.templateRepo.ListTemplates(ctx, domain.TemplateCategory(params.Category), params.ActiveOnly, limit, params.Offset)
	if err != nil {
		return nil, err
	}

	return &dto.ListTemplatesResponse{
		Templates: dto.ToTemplateResponses(templates),
		Limit:     limit,
		Offset:    params.Offset,
	}, nil
}

// PreviewTemplate evaluates all line formulas against an amount without
// persisting anything. The response reports both sides so a caller can see
// whether the execution would balance before creating a transaction.
func (s *templateService) PreviewTemplate(ctx context.Context, templateID string, req dto.PreviewTemplateRequest) (*dto.PreviewTemplateResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: preview amount must be positive", apperrors.ErrValidation)
	}

	template, err := s.templateRepo.FindTemplateByID(ctx, templateID)
	if err != nil {
		return nil, err
	}

	overrides := make(map[string]string, len(req.AccountOverrides))
	lineIDs := make(map[string]bool, len(template.Lines))
	for _, line := range template.Lines {
		lineIDs[line.LineID] = true
	}
	for _, o := range req.AccountOverrides {
		if !lineIDs[o.TemplateLineID] {
			return nil, fmt.Errorf("%w: template %s has no line %s to override",
				apperrors.ErrValidation, templateID, o.TemplateLineID)
		}
		overrides[o.TemplateLineID] = o.AccountID
	}

	executed, err := executeTemplateLines(template.Lines, overrides, req.Amount, req.Variables)
	if err != nil {
		return nil, err
	}

	lines := make([]dto.PreviewLineResponse, len(executed))
	for i, ex := range executed {
		line := dto.PreviewLineResponse{
			AccountID:    ex.AccountID,
			Position:     string(ex.Line.Position),
			Formula:      ex.Line.Formula,
			Amount:       ex.Amount,
			DebitAmount:  decimal.Zero,
			CreditAmount: decimal.Zero,
			LineOrder:    ex.Line.LineOrder,
		}
		if ex.Line.Position == domain.Debit {
			line.DebitAmount = ex.Amount
		} else {
			line.CreditAmount = ex.Amount
		}
		lines[i] = line
	}

	debit, credit := entriesTotals(executed)
	return &dto.PreviewTemplateResponse{
		Lines:       lines,
		TotalDebit:  debit,
		TotalCredit: credit,
		Balanced:    debit.Equal(credit) && len(executed) >= 2,
	}, nil
}

// uniqueStrings deduplicates while preserving first-seen order.
func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
