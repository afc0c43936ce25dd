package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"redline/token"
)

// ErrorLevel represents the severity of a diagnostic
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
)

// CompilerError is a diagnostic ready to be rendered
type CompilerError struct {
	Level       ErrorLevel
	Code        string         // Error code like L0001
	Message     string         // Primary error message
	Position    token.Position // Location in source
	Length      int            // Width of the marked region, in runes
	Suggestions []Suggestion
	Notes       []string
	HelpText    string
}

// Suggestion is a possible fix shown under the marked line. Replacement, when
// set, is the text to put in place of the marked region.
type Suggestion struct {
	Message     string
	Replacement string
}

// ErrorReporter renders diagnostics against one source file
type ErrorReporter struct {
	filename string
	lines    []string
}

func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatError renders err as a header, a location arrow, the offending line
// with one line of context on each side, a caret marker, and any suggestions,
// notes and help text.
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var b strings.Builder

	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	b.WriteString(Summary(err))
	b.WriteString("\n")

	width := lineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", width)
	gutter := dim("│")

	fmt.Fprintf(&b, "%s %s %s:%d:%d\n", indent, dim("-->"), er.filename, err.Position.Line, err.Position.Column)
	fmt.Fprintf(&b, "%s %s\n", indent, gutter)

	line := err.Position.Line
	if line > 1 && line-1 <= len(er.lines) {
		fmt.Fprintf(&b, "%s %s %s\n", dim(fmt.Sprintf("%*d", width, line-1)), gutter, er.lines[line-2])
	}

	if line > 0 && line <= len(er.lines) {
		fmt.Fprintf(&b, "%s %s %s\n", bold(fmt.Sprintf("%*d", width, line)), gutter, er.lines[line-1])
		fmt.Fprintf(&b, "%s %s %s\n", indent, gutter, er.createMarker(err.Position.Column, err.Length, err.Level))
	}

	if line > 0 && line < len(er.lines) {
		fmt.Fprintf(&b, "%s %s %s\n", dim(fmt.Sprintf("%*d", width, line+1)), gutter, er.lines[line])
	}

	if len(err.Suggestions) > 0 {
		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Fprintf(&b, "%s %s\n", indent, gutter)
		for i, s := range err.Suggestions {
			if i == 0 {
				fmt.Fprintf(&b, "%s %s %s: %s\n", indent, cyan("help"), cyan("try"), s.Message)
			} else {
				fmt.Fprintf(&b, "%s %s %s\n", indent, cyan("    "), s.Message)
			}
			if s.Replacement != "" {
				fmt.Fprintf(&b, "%s %s %s\n", indent, cyan("│"), cyan(s.Replacement))
			}
		}
	}

	for _, note := range err.Notes {
		fmt.Fprintf(&b, "%s %s %s %s\n", indent, gutter, color.New(color.FgBlue).Sprint("note:"), note)
	}

	if err.HelpText != "" {
		fmt.Fprintf(&b, "%s %s %s %s\n", indent, gutter, color.New(color.FgGreen).Sprint("help:"), err.HelpText)
	}

	b.WriteString("\n")
	return b.String()
}

// Summary renders only the header line of err. It is used on its own for
// failures that have no source location, such as an unreadable file.
func Summary(err CompilerError) string {
	lvl := levelColor(err.Level)
	if err.Code != "" {
		return fmt.Sprintf("%s[%s]: %s", lvl(string(err.Level)), err.Code, err.Message)
	}
	return fmt.Sprintf("%s: %s", lvl(string(err.Level)), err.Message)
}

func levelColor(level ErrorLevel) func(...interface{}) string {
	if level == Warning {
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	}
	return color.New(color.FgRed, color.Bold).SprintFunc()
}

// createMarker underlines length runes starting at column
func (er *ErrorReporter) createMarker(column, length int, level ErrorLevel) string {
	length = max(1, length)
	spaces := strings.Repeat(" ", max(0, column-1))

	markerColor := color.New(color.FgRed, color.Bold).SprintFunc()
	if level == Warning {
		markerColor = color.New(color.FgYellow, color.Bold).SprintFunc()
	}

	return spaces + markerColor(strings.Repeat("^", length))
}

func lineNumberWidth(line int) int {
	return max(3, len(fmt.Sprintf("%d", line))) // minimum width for visual alignment
}
