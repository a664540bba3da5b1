// Package formula evaluates the small arithmetic expressions carried by
// journal template lines. The vocabulary is deliberately closed: named
// variables, numeric literals, the four operators and parentheses. Keeping
// the evaluator this small keeps financial calculations auditable; there is
// no general scripting engine behind template formulas.
package formula

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/SemmiDev/aplikasi-akunting-sub002/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Scale is the currency minor-unit scale every result is rounded to.
const Scale = 2

// Evaluate parses expr and computes its value against the named variables.
// Unknown variables and malformed expressions fail with a descriptive error
// wrapping apperrors.ErrValidation; they never default to zero.
func Evaluate(expr string, vars map[string]decimal.Decimal) (decimal.Decimal, error) {
	if strings.TrimSpace(expr) == "" {
		return decimal.Zero, fmt.Errorf("%w: formula is empty", apperrors.ErrValidation)
	}

	p := &parser{input: expr, vars: vars}
	result, err := p.parseExpression()
	if err != nil {
		return decimal.Zero, err
	}
	p.skipSpaces()
	if p.pos < len(p.input) {
		return decimal.Zero, fmt.Errorf("%w: unexpected %q at position %d in formula %q",
			apperrors.ErrValidation, p.input[p.pos:], p.pos, p.input)
	}
	return result.Round(Scale), nil
}

// Validate parses expr without resolving variables, so template lines can be
// syntax-checked before any transaction supplies values. Unknown variables
// are accepted here; Evaluate still rejects them at execution time.
func Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return fmt.Errorf("%w: formula is empty", apperrors.ErrValidation)
	}

	p := &parser{input: expr, lenient: true}
	if _, err := p.parseExpression(); err != nil {
		return err
	}
	p.skipSpaces()
	if p.pos < len(p.input) {
		return fmt.Errorf("%w: unexpected %q at position %d in formula %q",
			apperrors.ErrValidation, p.input[p.pos:], p.pos, p.input)
	}
	return nil
}

// parser is a recursive-descent parser over the formula grammar:
//
//	expression = term   { ("+" | "-") term }
//	term       = factor { ("*" | "/") factor }
//	factor     = number | variable | "(" expression ")" | "-" factor
type parser struct {
	input   string
	pos     int
	vars    map[string]decimal.Decimal
	lenient bool
}

func (p *parser) parseExpression() (decimal.Decimal, error) {
	left, err := p.parseTerm()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Add(right)
		case '-':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Sub(right)
		default:
			return left, nil
		}
	}
}

func (p *parser) parseTerm() (decimal.Decimal, error) {
	left, err := p.parseFactor()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Mul(right)
		case '/':
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return decimal.Zero, err
			}
			if right.IsZero() {
				return decimal.Zero, fmt.Errorf("%w: division by zero in formula %q", apperrors.ErrValidation, p.input)
			}
			// DivisionPrecision default (16) is plenty before the final rounding.
			left = left.Div(right)
		default:
			return left, nil
		}
	}
}

func (p *parser) parseFactor() (decimal.Decimal, error) {
	p.skipSpaces()
	c := p.peek()
	switch {
	case c == '(':
		p.pos++
		inner, err := p.parseExpression()
		if err != nil {
			return decimal.Zero, err
		}
		p.skipSpaces()
		if p.peek() != ')' {
			return decimal.Zero, fmt.Errorf("%w: missing closing parenthesis in formula %q", apperrors.ErrValidation, p.input)
		}
		p.pos++
		return inner, nil
	case c == '-':
		p.pos++
		inner, err := p.parseFactor()
		if err != nil {
			return decimal.Zero, err
		}
		return inner.Neg(), nil
	case unicode.IsDigit(rune(c)) || c == '.':
		return p.parseNumber()
	case unicode.IsLetter(rune(c)) || c == '_':
		return p.parseVariable()
	case c == 0:
		return decimal.Zero, fmt.Errorf("%w: formula %q ends unexpectedly", apperrors.ErrValidation, p.input)
	default:
		return decimal.Zero, fmt.Errorf("%w: unexpected character %q at position %d in formula %q",
			apperrors.ErrValidation, c, p.pos, p.input)
	}
}

func (p *parser) parseNumber() (decimal.Decimal, error) {
	start := p.pos
	for p.pos < len(p.input) && (unicode.IsDigit(rune(p.input[p.pos])) || p.input[p.pos] == '.') {
		p.pos++
	}
	lit := p.input[start:p.pos]
	d, err := decimal.NewFromString(lit)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid numeric literal %q in formula %q", apperrors.ErrValidation, lit, p.input)
	}
	return d, nil
}

func (p *parser) parseVariable() (decimal.Decimal, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := rune(p.input[p.pos])
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' {
			break
		}
		p.pos++
	}
	name := p.input[start:p.pos]
	value, ok := p.vars[name]
	if !ok {
		if p.lenient {
			// Syntax-only pass: stand in a neutral value for the variable.
			return decimal.NewFromInt(1), nil
		}
		return decimal.Zero, fmt.Errorf("%w: unknown variable %q in formula %q", apperrors.ErrValidation, name, p.input)
	}
	return value, nil
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

// peek returns the current byte or 0 at end of input.
func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}
