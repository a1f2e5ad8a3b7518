package mathsinterp_test

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mathsinterp"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"2+3*4", 14},
		{"2^3^2", 512},
		{"(2+3)*4", 20},
		{"10/4", 2.5},
		{"7-2-1", 4},
		{"-3+1", -2},
		{"-2^2", 4},
		{"--2", 2},
		{"2^-1", 0.5},
		{"4^0.5", 2},
		{".5*4", 2},
		{"sqrt(16)", 4},
		{"abs(-3)", 3},
		{"exp(0)", 1},
		{"cos(0)", 1},
		{"ln(e)", 1},
		{"log(1000)", 3},
		{"atan(1)*4", math.Pi},
		{"2*pi", 2 * math.Pi},
		{"sinh(0) + cosh(0) + tanh(0)", 1},
		{"asin(1) - acos(0)", 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ip := mathsinterp.New(nil)
			got, err := ip.Evaluate(tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		input   string
		wantErr error
	}{
		{"y + 1", mathsinterp.ErrUndefinedVariable},
		{"1/0", mathsinterp.ErrDivisionByZero},
		{"1/(2-2)", mathsinterp.ErrDivisionByZero},
		{"0^-1", mathsinterp.ErrDivisionByZero},
		{"sqrt(-1)", mathsinterp.ErrDomain},
		{"ln(0)", mathsinterp.ErrDomain},
		{"log(-1)", mathsinterp.ErrDomain},
		{"asin(2)", mathsinterp.ErrDomain},
		{"acos(-1.5)", mathsinterp.ErrDomain},
		{"(-8)^(1/3)", mathsinterp.ErrDomain},
		{"10^400", mathsinterp.ErrNonFinite},
		{"exp(1000)", mathsinterp.ErrNonFinite},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ip := mathsinterp.New(nil)
			_, err := ip.Evaluate(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, mathsinterp.ErrEval)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEvaluate_UndefinedVariableNamesIt(t *testing.T) {
	ip := mathsinterp.New(nil)
	_, err := ip.Evaluate("rate * 2")

	var evalErr *mathsinterp.EvalError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, "rate", evalErr.Name)
	assert.True(t, strings.Contains(err.Error(), "rate"), err.Error())
}

func TestEvaluate_DomainErrorNamesFunction(t *testing.T) {
	ip := mathsinterp.New(nil)
	_, err := ip.Evaluate("asin(3)")

	var evalErr *mathsinterp.EvalError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, "asin", evalErr.Name)
}

func TestEvaluate_Assignment(t *testing.T) {
	ip := mathsinterp.New(nil)

	v, err := ip.Evaluate("x = 5")
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	v, err = ip.Evaluate("x + 1")
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	v, err = ip.Evaluate("y = x * 2")
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)

	assert.Equal(t, []mathsinterp.Entry{
		{Name: "x", Value: 5, Type: mathsinterp.SymbolNumber},
		{Name: "y", Value: 10, Type: mathsinterp.SymbolExpression, Source: "x*2"},
	}, ip.Symbols())
}

func TestEvaluate_NegativeLiteralIsNumber(t *testing.T) {
	ip := mathsinterp.New(nil)
	_, err := ip.Evaluate("k = -4")
	require.NoError(t, err)

	entries := ip.Symbols()
	require.Len(t, entries, 1)
	assert.Equal(t, mathsinterp.SymbolNumber, entries[0].Type)
	assert.Equal(t, -4.0, entries[0].Value)
}

func TestEvaluate_ReassignKeepsOrder(t *testing.T) {
	ip := mathsinterp.New(nil)
	for _, line := range []string{"a = 1", "b = 2", "a = a + 2"} {
		_, err := ip.Evaluate(line)
		require.NoError(t, err, line)
	}

	entries := ip.Symbols()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Name)
	assert.Equal(t, 3.0, entries[0].Value)
	assert.Equal(t, "b", entries[1].Name)
}

func TestEvaluate_AssignmentShadowsConstant(t *testing.T) {
	ip := mathsinterp.New(nil)
	_, err := ip.Evaluate("e = 2")
	require.NoError(t, err)

	v, err := ip.Evaluate("e + 1")
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
}

func TestEvaluate_FailureLeavesTableUnchanged(t *testing.T) {
	ip := mathsinterp.New(nil)
	_, err := ip.Evaluate("x = 5")
	require.NoError(t, err)
	before := ip.Symbols()

	for _, line := range []string{
		"x = 1/0",
		"x = y + 1",
		"z = sqrt(-1)",
		"z = (1",
		"z = 2 # 3",
		"w = 10^400",
	} {
		_, err := ip.Evaluate(line)
		assert.Error(t, err, line)
		assert.Equal(t, before, ip.Symbols(), "table changed after %q", line)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	ip := mathsinterp.New(nil)
	_, err := ip.Evaluate("x = 3")
	require.NoError(t, err)

	first, err := ip.Evaluate("x^2 - 2*x + 1")
	require.NoError(t, err)
	second, err := ip.Evaluate("x^2 - 2*x + 1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, ip.Symbols(), 1)
}

func TestEvaluate_ClearSymbols(t *testing.T) {
	ip := mathsinterp.New(nil)
	_, err := ip.Evaluate("x = 1")
	require.NoError(t, err)

	ip.ClearSymbols()
	assert.Empty(t, ip.Symbols())

	_, err = ip.Evaluate("x")
	assert.ErrorIs(t, err, mathsinterp.ErrUndefinedVariable)
}

func TestEvaluate_Concurrent(t *testing.T) {
	ip := mathsinterp.New(nil)
	_, err := ip.Evaluate("n = 0")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := ip.Evaluate("n = n + 1"); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	v, err := ip.Evaluate("n")
	require.NoError(t, err)
	assert.Equal(t, 400.0, v)
}

func TestEval_CustomEnv(t *testing.T) {
	table := mathsinterp.NewSymbolTable()
	table.Set("a", 2, mathsinterp.SymbolNumber)

	e, err := mathsinterp.ParseExprString("a * x + 1")
	require.NoError(t, err)

	v, err := mathsinterp.Eval(e, mathsinterp.With(table, "x", 4))
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)

	_, ok := table.Get("x")
	assert.False(t, ok, "scoped binding leaked into the table")
}

func TestExec_NilEnvUsesConstants(t *testing.T) {
	e, err := mathsinterp.ParseExprString("pi")
	if err != nil {
		t.Fatal(err)
	}
	v, err := mathsinterp.Eval(e, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v != math.Pi {
		t.Errorf("pi = %v, want %v", v, math.Pi)
	}
}
