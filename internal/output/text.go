package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/maxvaer/smokecheck/internal/report"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// ColorEnabled reports whether ANSI colours should be written to f.
func ColorEnabled(f *os.File, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// SummaryWriter prints the end-of-run summary block.
type SummaryWriter struct {
	w     io.Writer
	color bool
}

// NewSummaryWriter creates a summary writer on w.
func NewSummaryWriter(w io.Writer, color bool) *SummaryWriter {
	return &SummaryWriter{w: w, color: color}
}

func (s *SummaryWriter) paint(color, text string) string {
	if !s.color {
		return text
	}
	return color + text + colorReset
}

// Write prints totals, success rate, duration, critical issues and the
// report paths.
func (s *SummaryWriter) Write(r *report.Report, paths Paths) error {
	rule := strings.Repeat("=", 60)
	sum := r.Summary

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n%s\n%s\n", rule, s.paint(colorBold, "TEST SUMMARY"), rule)
	fmt.Fprintf(&b, "Total Tests:  %d\n", sum.TotalTests)
	fmt.Fprintf(&b, "Successful:   %s\n", s.paint(colorGreen, fmt.Sprint(sum.Successful)))
	fmt.Fprintf(&b, "Failed:       %s\n", s.paint(colorYellow, fmt.Sprint(sum.Failed)))
	fmt.Fprintf(&b, "Errors:       %s\n", s.paint(colorRed, fmt.Sprint(sum.Errors)))
	fmt.Fprintf(&b, "Success Rate: %s\n", sum.SuccessRate)
	fmt.Fprintf(&b, "Duration:     %s\n", r.Metadata.Duration)

	if n := len(r.CriticalIssues); n > 0 {
		fmt.Fprintf(&b, "\n%s\n", s.paint(colorRed, fmt.Sprintf("Critical issues: %d", n)))
		for _, issue := range r.CriticalIssues {
			fmt.Fprintf(&b, "   [%s] %s: %s\n", issue.Severity, issue.Endpoint, issue.Error)
		}
	}

	if paths.JSON != "" {
		fmt.Fprintf(&b, "\nReports saved:\n   - JSON: %s\n   - Markdown: %s\n", paths.JSON, paths.Markdown)
	}

	_, err := io.WriteString(s.w, b.String())
	return err
}
