package services

import (
	"fmt"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/apperrors"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/utils/formula"
	"github.com/shopspring/decimal"
)

// amountVariable is the reserved formula variable carrying the transaction amount.
const amountVariable = "amount"

// executedLine is one template line with its formula resolved to a value.
type executedLine struct {
	Line      domain.TemplateLine
	AccountID string
	Amount    decimal.Decimal
}

// buildFormulaVars merges caller-supplied variables with the reserved amount
// variable. The amount always wins; a caller variable named "amount" is a
// mistake and is rejected rather than silently shadowed.
func buildFormulaVars(amount decimal.Decimal, extra map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	vars := make(map[string]decimal.Decimal, len(extra)+1)
	for name, value := range extra {
		if name == amountVariable {
			return nil, fmt.Errorf("%w: variable %q is reserved", apperrors.ErrValidation, amountVariable)
		}
		vars[name] = value
	}
	vars[amountVariable] = amount
	return vars, nil
}

// executeTemplateLines evaluates every line formula against the amount and
// extra variables. Lines that resolve to zero are dropped; they would
// otherwise produce ledger lines with no nonzero side. A negative result is
// rejected because ledger amounts are unsigned.
func executeTemplateLines(lines []domain.TemplateLine, overrides map[string]string, amount decimal.Decimal, extra map[string]decimal.Decimal) ([]executedLine, error) {
	vars, err := buildFormulaVars(amount, extra)
	if err != nil {
		return nil, err
	}

	executed := make([]executedLine, 0, len(lines))
	for _, line := range lines {
		value, err := formula.Evaluate(line.Formula, vars)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line.LineOrder, err)
		}
		if value.IsNegative() {
			return nil, fmt.Errorf("%w: formula %q resolved to negative amount %s on line %d",
				apperrors.ErrValidation, line.Formula, value.String(), line.LineOrder)
		}
		if value.IsZero() {
			continue
		}

		accountID := line.AccountID
		if override, ok := overrides[line.LineID]; ok {
			accountID = override
		}
		executed = append(executed, executedLine{Line: line, AccountID: accountID, Amount: value})
	}
	return executed, nil
}

// entriesTotals sums the debit and credit sides of executed lines.
func entriesTotals(executed []executedLine) (debit decimal.Decimal, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, ex := range executed {
		if ex.Line.Position == domain.Debit {
			debit = debit.Add(ex.Amount)
		} else {
			credit = credit.Add(ex.Amount)
		}
	}
	return debit, credit
}
