package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	// fatih/color disables these when output is not a TTY
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgHiBlack)
	dimColor     = color.New(color.FgHiBlack)
	hintColor    = color.New(color.FgYellow)
)

// printSection prints a section header
func printSection(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w)
	_, _ = headerColor.Fprintf(w, "▸ %s\n", title)
	_, _ = fmt.Fprintln(w)
}

// printSuccess prints a success message with a checkmark
func printSuccess(w io.Writer, msg string) {
	_, _ = successColor.Fprintf(w, "✓ %s\n", msg)
}

// printWarning prints a warning message with a warning symbol
func printWarning(w io.Writer, msg string) {
	_, _ = warningColor.Fprintf(w, "⚠ %s\n", msg)
}

// PrintError prints an error message, normally to stderr
func PrintError(w io.Writer, msg string) {
	_, _ = errorColor.Fprintf(w, "✗ %s\n", msg)
}

// printInfo prints an informational message
func printInfo(w io.Writer, msg string) {
	_, _ = fmt.Fprintln(w, msg)
}

// printDim prints a de-emphasized line
func printDim(w io.Writer, msg string) {
	_, _ = dimColor.Fprintf(w, "%s\n", msg)
}

// printLabelValue prints a label-value pair with proper formatting
func printLabelValue(w io.Writer, label, value string) {
	printLabelValueWithColor(w, label, value, valueColor)
}

// printLabelValueWithColor prints a label-value pair with a custom value color
func printLabelValueWithColor(w io.Writer, label, value string, valueClr *color.Color) {
	_, _ = labelColor.Fprintf(w, "  %-10s ", label+":")
	_, _ = valueClr.Fprintln(w, value)
}

// printList prints a list of items with bullet points
func printList(w io.Writer, items []string, indent int, clr *color.Color) {
	indentStr := strings.Repeat("  ", indent)
	for _, item := range items {
		_, _ = clr.Fprintf(w, "%s• %s\n", indentStr, item)
	}
}

// printNumberedList prints a numbered list
func printNumberedList(w io.Writer, items []string, indent int) {
	indentStr := strings.Repeat("  ", indent)
	for i, item := range items {
		_, _ = infoColor.Fprintf(w, "%s%d. %s\n", indentStr, i+1, item)
	}
}
