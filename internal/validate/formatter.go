package validate

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Formatter formats validation results for output.
type Formatter interface {
	Format(w io.Writer, result *Result) error
}

// NewFormatter returns the formatter for the given name ("text" or "json").
func NewFormatter(format string, useColor bool) Formatter {
	if format == "json" {
		return &JSONFormatter{}
	}
	return NewTextFormatter(useColor)
}

var (
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("167"))
	styleWarning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
)

// TextFormatter formats results as human-readable text.
type TextFormatter struct {
	useColor bool
}

// NewTextFormatter creates a text formatter.
func NewTextFormatter(useColor bool) *TextFormatter {
	return &TextFormatter{useColor: useColor}
}

func (f *TextFormatter) paint(style lipgloss.Style, s string) string {
	if !f.useColor {
		return s
	}
	return style.Render(s)
}

func (f *TextFormatter) severity(s Severity) string {
	switch s {
	case SeverityError:
		return f.paint(styleError, s.String())
	case SeverityWarning:
		return f.paint(styleWarning, s.String())
	default:
		return f.paint(styleInfo, s.String())
	}
}

// Format outputs results in human-readable text format.
func (f *TextFormatter) Format(w io.Writer, result *Result) error {
	var b strings.Builder
	for _, issue := range result.Issues {
		fmt.Fprintf(&b, "%s [%s] %s\n  %s\n", f.severity(issue.Severity), issue.Rule, issue.Subject, issue.Message)
		if issue.Fix != "" {
			fmt.Fprintf(&b, "  fix: %s\n", issue.Fix)
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("━", 60) + "\n")
	fmt.Fprintf(&b, "%d links checked, %d pages indexed\n", result.LinksChecked, result.PagesIndexed)

	errs, warns, infos := result.Count(SeverityError), result.Count(SeverityWarning), result.Count(SeverityInfo)
	if errs > 0 {
		fmt.Fprintf(&b, "  %d error%s (blocks publication)\n", errs, pluralize(errs))
	}
	if warns > 0 {
		fmt.Fprintf(&b, "  %d warning%s (should fix)\n", warns, pluralize(warns))
	}
	if infos > 0 {
		fmt.Fprintf(&b, "  %d info\n", infos)
	}
	if errs == 0 && warns == 0 {
		b.WriteString(f.paint(styleOK, "Navigation is valid") + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// JSONFormatter formats results as indented JSON.
type JSONFormatter struct{}

// Format writes the result as JSON.
func (f *JSONFormatter) Format(w io.Writer, result *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
