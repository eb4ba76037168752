// Package calc implements the calculator mini-language behind amount input:
// digits, a single decimal point per operand, and the four binary operators,
// edited one keypress at a time. Malformed input never errors out to the
// caller; it yields "no change" so the raw expression stays editable.
package calc

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Operator runes accepted by the evaluator.
const (
	OpAdd = '+'
	OpSub = '-'
	OpMul = '×'
	OpDiv = '÷'
)

func isOperator(r rune) bool {
	return r == OpAdd || r == OpSub || r == OpMul || r == OpDiv
}

// Press applies a single digit, decimal point, or operator keypress to the
// expression and returns the next expression. Rejected keys leave the
// expression unchanged.
func Press(expr string, key rune) string {
	switch {
	case key >= '0' && key <= '9':
		return expr + string(key)

	case key == '.':
		if strings.ContainsRune(currentOperand(expr), '.') {
			return expr
		}
		return expr + "."

	case isOperator(key):
		if expr == "" {
			// Only a sign may start an expression.
			if key == OpSub {
				return string(OpSub)
			}
			return expr
		}

		runes := []rune(expr)
		if isOperator(runes[len(runes)-1]) {
			// Consecutive operators collapse: the new key replaces the old,
			// except a leading minus never turns into another operator.
			if len(runes) == 1 && key != OpSub {
				return expr
			}
			runes[len(runes)-1] = key
			return string(runes)
		}

		return expr + string(key)
	}

	return expr
}

// Backspace removes the last keypress. A no-op on the empty expression.
func Backspace(expr string) string {
	if expr == "" {
		return ""
	}

	runes := []rune(expr)

	return string(runes[:len(runes)-1])
}

// Equals evaluates the expression and returns the formatted result, or the
// expression unchanged when evaluation fails (trailing operator, division by
// zero, malformed operand).
func Equals(expr string) string {
	result, err := Evaluate(expr)
	if err != nil {
		return expr
	}

	return result.String()
}

// HasOperator reports whether the expression contains a binary operator,
// i.e. whether pressing equals would do anything. A leading minus alone does
// not count: an already-evaluated result needs no second evaluation.
func HasOperator(expr string) bool {
	for i, r := range expr {
		if i == 0 && r == OpSub {
			continue
		}
		if isOperator(r) {
			return true
		}
	}

	return false
}

// currentOperand returns the text typed since the last operator, excluding a
// leading sign.
func currentOperand(expr string) string {
	runes := []rune(expr)
	for i := len(runes) - 1; i >= 0; i-- {
		if isOperator(runes[i]) && i > 0 {
			return string(runes[i+1:])
		}
	}

	return strings.TrimPrefix(expr, string(OpSub))
}

type evalError string

func (e evalError) Error() string { return string(e) }

const (
	errMalformed  = evalError("malformed expression")
	errDivideZero = evalError("division by zero")
)

// Evaluate parses and evaluates the full expression with standard operator
// precedence: × and ÷ bind tighter than + and -.
func Evaluate(expr string) (decimal.Decimal, error) {
	operands, operators, err := tokenize(expr)
	if err != nil {
		return decimal.Zero, err
	}

	// First pass: multiplication and division, left to right.
	values := []decimal.Decimal{operands[0]}
	ops := make([]rune, 0, len(operators))

	for i, op := range operators {
		next := operands[i+1]
		switch op {
		case OpMul:
			values[len(values)-1] = values[len(values)-1].Mul(next)
		case OpDiv:
			if next.IsZero() {
				return decimal.Zero, errDivideZero
			}
			values[len(values)-1] = values[len(values)-1].Div(next)
		default:
			values = append(values, next)
			ops = append(ops, op)
		}
	}

	// Second pass: addition and subtraction.
	result := values[0]
	for i, op := range ops {
		if op == OpAdd {
			result = result.Add(values[i+1])
		} else {
			result = result.Sub(values[i+1])
		}
	}

	return result, nil
}

// tokenize splits the expression into operands and the operators between
// them. A leading minus is folded into the first operand's sign.
func tokenize(expr string) ([]decimal.Decimal, []rune, error) {
	if expr == "" {
		return nil, nil, errMalformed
	}

	var (
		operands  []decimal.Decimal
		operators []rune
		current   strings.Builder
	)

	flush := func() error {
		d, err := decimal.NewFromString(current.String())
		if err != nil {
			return errMalformed
		}
		operands = append(operands, d)
		current.Reset()
		return nil
	}

	for i, r := range expr {
		if i == 0 && r == OpSub {
			current.WriteRune('-')
			continue
		}

		if isOperator(r) {
			if err := flush(); err != nil {
				return nil, nil, err
			}
			operators = append(operators, r)
			continue
		}

		current.WriteRune(r)
	}

	if err := flush(); err != nil {
		return nil, nil, err
	}

	if len(operands) != len(operators)+1 {
		return nil, nil, errMalformed
	}

	return operands, operators, nil
}
