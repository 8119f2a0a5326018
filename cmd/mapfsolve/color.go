package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgHiBlack)
)

// printGlyph writes a colored symbol-prefixed line to w.
func printGlyph(c *color.Color, w io.Writer, symbol, msg string) {
	_, _ = c.Fprintf(w, "%s %s\n", symbol, msg)
}

func printSection(title string) {
	fmt.Println()
	_, _ = headerColor.Printf("▸ %s\n", title)
}

func printSuccess(msg string) { printGlyph(successColor, os.Stdout, "✓", msg) }
func printWarning(msg string) { printGlyph(warningColor, os.Stdout, "⚠", msg) }
func printError(msg string)   { printGlyph(errorColor, os.Stderr, "✗", msg) }

func printLabelValue(label, value string) {
	_, _ = labelColor.Printf("  %s: ", label)
	_, _ = valueColor.Println(value)
}
