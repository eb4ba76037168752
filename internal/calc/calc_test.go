package calc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneta-app/moneta/internal/calc"
)

func TestPress(t *testing.T) {
	tests := []struct {
		name string
		expr string
		key  rune
		want string
	}{
		{"digit appends", "12", '3', "123"},
		{"digit on empty", "", '7', "7"},
		{"point appends", "12", '.', "12."},
		{"second point in operand rejected", "1.5", '.', "1.5"},
		{"point allowed after operator", "1.5+2", '.', "1.5+2."},
		{"second point in second operand rejected", "1.5+2.25", '.', "1.5+2.25"},
		{"operator appends", "12", '+', "12+"},
		{"leading minus allowed", "", '-', "-"},
		{"leading plus rejected", "", '+', ""},
		{"leading multiply rejected", "", '×', ""},
		{"trailing operator replaced", "12+", '×', "12×"},
		{"lone minus keeps its sign", "-", '+', "-"},
		{"lone minus replaced by minus is a no-op", "-", '-', "-"},
		{"operator after point", "12.", '+', "12.+"},
		{"unknown key ignored", "12", 'x', "12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calc.Press(tt.expr, tt.key))
		})
	}
}

func TestBackspace(t *testing.T) {
	assert.Equal(t, "12", calc.Backspace("123"))
	assert.Equal(t, "12+", calc.Backspace("12+3"))
	assert.Equal(t, "", calc.Backspace("1"))
	assert.Equal(t, "", calc.Backspace(""))
	assert.Equal(t, "12", calc.Backspace("12×"))
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"addition", "1+2", "3"},
		{"subtraction", "10-4", "6"},
		{"multiplication binds tighter", "2+3×4", "14"},
		{"division binds tighter", "10-6÷2", "7"},
		{"left to right within precedence", "20÷2÷5", "2"},
		{"leading minus", "-5+3", "-2"},
		{"decimal operands", "1.5×2", "3"},
		{"single operand", "42", "42"},
		{"negative single operand", "-42", "-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.Evaluate(tt.expr)
			require.NoError(t, err)
			assert.True(t, got.String() == tt.want, "want %s, got %s", tt.want, got)
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	for _, expr := range []string{"", "1+", "+1", "1++2", "÷", "-", "1÷0", "10÷(5-5)"} {
		t.Run(expr, func(t *testing.T) {
			_, err := calc.Evaluate(expr)
			assert.Error(t, err)
		})
	}
}

func TestEquals(t *testing.T) {
	assert.Equal(t, "14", calc.Equals("2+3×4"))

	// Failure leaves the expression unchanged so the user can keep editing.
	assert.Equal(t, "2+", calc.Equals("2+"))
	assert.Equal(t, "5÷0", calc.Equals("5÷0"))
	assert.Equal(t, "", calc.Equals(""))
}

func TestHasOperator(t *testing.T) {
	assert.True(t, calc.HasOperator("1+2"))
	assert.True(t, calc.HasOperator("-1×2"))
	assert.False(t, calc.HasOperator("123"))
	assert.False(t, calc.HasOperator("-123"))
	assert.False(t, calc.HasOperator(""))
}

// Evaluating a result again must not change it: the equals key is idempotent
// once the expression holds no operator.
func TestEquals_Idempotent(t *testing.T) {
	result := calc.Equals("7×3")
	require.Equal(t, "21", result)
	assert.False(t, calc.HasOperator(result))
	assert.Equal(t, "21", calc.Equals(result))
}
