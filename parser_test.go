package mathsinterp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mathsinterp"
)

func TestParse_Rendering(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2+3*4", "2 + 3*4"},
		{"(2+3)*4", "(2 + 3)*4"},
		{"2^3^2", "2^3^2"},
		{"(2^3)^2", "(2^3)^2"},
		{"a-b-c", "a - b - c"},
		{"a-(b-c)", "a - (b - c)"},
		{"a/b/c", "a/b/c"},
		{"a/(b*c)", "a/(b*c)"},
		{"-2^2", "(-2)^2"},
		{"-(x+1)", "-(x + 1)"},
		{"--x", "-(-x)"},
		{"2*-3", "2*(-3)"},
		{"x^-1", "x^(-1)"},
		{"sin(x)^2", "sin(x)^2"},
		{"sqrt(1 + x^2)", "sqrt(1 + x^2)"},
		{"  rate * 2 ", "rate*2"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e, err := mathsinterp.ParseExprString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.String())

			// Rendering parses back to the same tree.
			again, err := mathsinterp.ParseExprString(e.String())
			require.NoError(t, err)
			assert.True(t, e.Equal(again), "re-parsed %q as %q", e.String(), again.String())
		})
	}
}

func TestParse_Associativity(t *testing.T) {
	e, err := mathsinterp.ParseExprString("2^3^2")
	require.NoError(t, err)
	pow, ok := e.(*mathsinterp.Binary)
	require.True(t, ok)
	assert.Equal(t, mathsinterp.OpPow, pow.Op)
	assert.True(t, pow.Left.Equal(mathsinterp.N(2)))
	_, rightIsPow := pow.Right.(*mathsinterp.Binary)
	assert.True(t, rightIsPow, "'^' must be right associative")

	e, err = mathsinterp.ParseExprString("8-4-2")
	require.NoError(t, err)
	sub := e.(*mathsinterp.Binary)
	assert.True(t, sub.Right.Equal(mathsinterp.N(2)), "'-' must be left associative")
}

func TestParse_Assignment(t *testing.T) {
	stmt, err := mathsinterp.ParseString("x = 3 + 4")
	require.NoError(t, err)
	assert.True(t, stmt.IsAssignment())
	assert.Equal(t, "x", stmt.Target)
	assert.Equal(t, "3 + 4", stmt.Value.String())
	assert.Equal(t, "x = 3 + 4", stmt.String())

	stmt, err = mathsinterp.ParseString("x + 4")
	require.NoError(t, err)
	assert.False(t, stmt.IsAssignment())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		input   string
		wantErr error
	}{
		{"", mathsinterp.ErrEmptyExpression},
		{"   ", mathsinterp.ErrEmptyExpression},
		{"x =", mathsinterp.ErrEmptyExpression},
		{"()", mathsinterp.ErrEmptyExpression},
		{"sqrt()", mathsinterp.ErrEmptyExpression},
		{"(1+2", mathsinterp.ErrUnbalancedParens},
		{"1+2)", mathsinterp.ErrUnbalancedParens},
		{"((1)", mathsinterp.ErrUnbalancedParens},
		{")", mathsinterp.ErrUnbalancedParens},
		{"1+", mathsinterp.ErrUnexpectedToken},
		{"2x", mathsinterp.ErrUnexpectedToken},
		{"1 = 2", mathsinterp.ErrUnexpectedToken},
		{"x = y = 2", mathsinterp.ErrUnexpectedToken},
		{"sin x", mathsinterp.ErrUnexpectedToken},
		{"f(1,2)", mathsinterp.ErrUnexpectedToken},
		{"*3", mathsinterp.ErrUnexpectedToken},
		{"2 ^", mathsinterp.ErrUnexpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := mathsinterp.ParseString(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, mathsinterp.ErrParse)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseExpr_RejectsAssignment(t *testing.T) {
	_, err := mathsinterp.ParseExprString("x = 1")
	assert.ErrorIs(t, err, mathsinterp.ErrUnexpectedToken)
}

func TestParse_LexErrorPassesThrough(t *testing.T) {
	_, err := mathsinterp.ParseString("2 $ 3")
	assert.ErrorIs(t, err, mathsinterp.ErrLex)
	assert.NotErrorIs(t, err, mathsinterp.ErrParse)
}
