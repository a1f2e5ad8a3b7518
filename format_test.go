package mathsinterp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/njchilds90/mathsinterp"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name      string
		v         float64
		precision int
		want      string
	}{
		{name: "integer", v: 14, precision: 10, want: "14"},
		{name: "float noise hidden", v: 0.1 + 0.2, precision: 10, want: "0.3"},
		{name: "rounded", v: 1.0 / 3, precision: 4, want: "0.3333"},
		{name: "negative", v: -2.5, precision: 10, want: "-2.5"},
		{name: "zero precision", v: 2.5, precision: 0, want: "3"},
		{name: "large", v: 1e20, precision: 10, want: "100000000000000000000"},
		{name: "negative zero", v: math.Copysign(0, -1), precision: 10, want: "0"},
		{name: "rounds to zero", v: -1e-12, precision: 10, want: "0"},
		{name: "NaN", v: math.NaN(), precision: 10, want: "NaN"},
		{name: "+Inf", v: math.Inf(1), precision: 10, want: "+Inf"},
		{name: "-Inf", v: math.Inf(-1), precision: 10, want: "-Inf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mathsinterp.FormatValue(tt.v, tt.precision))
		})
	}
}

func TestFormatEntry(t *testing.T) {
	assert.Equal(t, "x = 0.3", mathsinterp.FormatEntry(mathsinterp.Entry{Name: "x", Value: 0.1 + 0.2}, 10))
	assert.Equal(t, "u = undefined", mathsinterp.FormatEntry(mathsinterp.Entry{Name: "u", Type: mathsinterp.SymbolUndefined}, 10))
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{2, "2"},
		{0.5, "0.5"},
		{-3, "-3"},
		{1e-7, "0.0000001"},
		{1e21, "1000000000000000000000"},
	}
	for _, tt := range tests {
		if got := mathsinterp.FormatNumber(tt.v); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
