package mathsinterp

import (
	"math"

	"github.com/shopspring/decimal"
)

// FormatValue renders v rounded to precision decimal places with trailing zeros dropped,
// so 0.1+0.2 displays as 0.3. Rounding is for display only.
func FormatValue(v float64, precision int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	d := decimal.NewFromFloat(v).Round(int32(precision))
	if d.IsZero() {
		return "0"
	}
	return d.String()
}

// FormatEntry renders a symbol table entry as "name = value".
func FormatEntry(e Entry, precision int) string {
	if e.Type == SymbolUndefined {
		return e.Name + " = undefined"
	}
	return e.Name + " = " + FormatValue(e.Value, precision)
}
