package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/njchilds90/mathsinterp"
)

var (
	resultFmt = color.New(color.FgBlue, color.Bold).SprintFunc()
	nameFmt   = color.New(color.FgGreen).SprintFunc()
	typeFmt   = color.New(color.FgHiBlack).SprintFunc()
	errorFmt  = color.New(color.FgRed).SprintfFunc()
	headerFmt = color.New(color.FgBlue, color.Bold).SprintfFunc()
)

func printResult(w io.Writer, s string) {
	fmt.Fprintln(w, resultFmt(s))
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorFmt("Error: %v", err))
}

func printSymbols(w io.Writer, entries []mathsinterp.Entry, precision int) {
	if len(entries) == 0 {
		fmt.Fprintln(w, typeFmt("(no variables)"))
		return
	}
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Name))
	}
	for _, e := range entries {
		value := "undefined"
		if e.Type != mathsinterp.SymbolUndefined {
			value = mathsinterp.FormatValue(e.Value, precision)
		}
		line := fmt.Sprintf("%s = %s  %s", nameFmt(padRight(e.Name, width)), resultFmt(value), typeFmt(e.Type.String()))
		if e.Source != "" {
			line += typeFmt("  (" + e.Source + ")")
		}
		fmt.Fprintln(w, line)
	}
}

func printPoints(w io.Writer, points []mathsinterp.Point, format string, precision int) error {
	switch format {
	case "csv":
		fmt.Fprintln(w, "x,y")
		for _, p := range points {
			fmt.Fprintf(w, "%s,%s\n", mathsinterp.FormatNumber(p.X), mathsinterp.FormatNumber(p.Y))
		}
	case "json":
		return writeJSON(w, points)
	default:
		fmt.Fprintln(w, headerFmt("%-16s %s", "x", "y"))
		for _, p := range points {
			fmt.Fprintf(w, "%-16s %s\n", mathsinterp.FormatValue(p.X, precision), mathsinterp.FormatValue(p.Y, precision))
		}
	}
	return nil
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
