package formula_test

import (
	"testing"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/apperrors"
	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/utils/formula"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vars(amount string) map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"amount": decimal.RequireFromString(amount),
	}
}

func TestEvaluate_Success(t *testing.T) {
	testCases := []struct {
		name     string
		expr     string
		vars     map[string]decimal.Decimal
		expected string
	}{
		{"plain variable", "amount", vars("1000000"), "1000000"},
		{"literal", "2500.5", nil, "2500.5"},
		{"percentage", "amount * 0.11", vars("1000000"), "110000"},
		{"subtraction", "amount - amount * 0.1", vars("1000"), "900"},
		{"division", "amount / 2", vars("1001"), "500.5"},
		{"parentheses", "(amount + 100) * 2", vars("400"), "1000"},
		{"unary minus", "-amount + 1000", vars("400"), "600"},
		{"precedence", "amount + amount * 2", vars("10"), "30"},
		{"rounds to minor units", "amount / 3", vars("100"), "33.33"},
		{"extra variable", "grossSalary * 0.02", map[string]decimal.Decimal{
			"grossSalary": decimal.RequireFromString("5000000"),
		}, "100000"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := formula.Evaluate(tc.expr, tc.vars)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.expected)),
				"got %s, expected %s", got, tc.expected)
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	testCases := []struct {
		name string
		expr string
		vars map[string]decimal.Decimal
	}{
		{"empty formula", "", nil},
		{"blank formula", "   ", nil},
		{"unknown variable", "amount * rate", vars("100")},
		{"trailing garbage", "amount 5", vars("100")},
		{"dangling operator", "amount *", vars("100")},
		{"unclosed parenthesis", "(amount + 1", vars("100")},
		{"division by zero", "amount / 0", vars("100")},
		{"double dot literal", "1.2.3", nil},
		{"unexpected character", "amount $ 2", vars("100")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := formula.Evaluate(tc.expr, tc.vars)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestEvaluate_Stateless(t *testing.T) {
	v := vars("100")
	first, err := formula.Evaluate("amount * 2", v)
	require.NoError(t, err)
	second, err := formula.Evaluate("amount * 2", v)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.True(t, v["amount"].Equal(decimal.RequireFromString("100")), "context must not be mutated")
}
