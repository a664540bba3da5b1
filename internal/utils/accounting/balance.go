// Package accounting holds the pure double-entry calculations shared by
// services and repositories.
package accounting

import (
	"fmt"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/apperrors"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Totals sums the debit and credit sides of a candidate entry set.
func Totals(entries []domain.JournalEntry) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, e := range entries {
		debit = debit.Add(e.DebitAmount)
		credit = credit.Add(e.CreditAmount)
	}
	return debit, credit
}

// ValidateBalanced asserts that a candidate entry set forms a legal journal:
// at least two lines, exactly one nonzero non-negative side per line, and
// total debit exactly equal to total credit. Monetary values are exact
// decimals; there is no tolerance.
func ValidateBalanced(entries []domain.JournalEntry) error {
	if len(entries) < 2 {
		return fmt.Errorf("%w: journal must have at least two entries, got %d", apperrors.ErrValidation, len(entries))
	}

	for _, e := range entries {
		if e.DebitAmount.IsNegative() || e.CreditAmount.IsNegative() {
			return fmt.Errorf("%w: entry %s has a negative amount", apperrors.ErrValidation, e.JournalNumber)
		}
		debitSet := e.DebitAmount.GreaterThan(decimal.Zero)
		creditSet := e.CreditAmount.GreaterThan(decimal.Zero)
		if debitSet == creditSet {
			return fmt.Errorf("%w: entry %s must have exactly one of debit/credit set", apperrors.ErrValidation, e.JournalNumber)
		}
	}

	debit, credit := Totals(entries)
	if !debit.Equal(credit) {
		return fmt.Errorf("%w: debit=%s, credit=%s", apperrors.ErrUnbalanced, debit.String(), credit.String())
	}
	return nil
}

// NetByAccount computes the per-account net (debit minus credit) across an
// entry set. A voided transaction's originals plus reversals net to zero for
// every account.
func NetByAccount(entries []domain.JournalEntry) map[string]decimal.Decimal {
	net := make(map[string]decimal.Decimal)
	for _, e := range entries {
		net[e.AccountID] = net[e.AccountID].Add(e.DebitAmount).Sub(e.CreditAmount)
	}
	return net
}
