// Package output writes smoke run reports and console summaries.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"

	"github.com/maxvaer/smokecheck/internal/report"
)

// TimestampLayout is the YYYYMMDD-HHMMSS stamp used in report file names.
const TimestampLayout = "20060102-150405"

// Paths are the two files written for one run.
type Paths struct {
	JSON     string
	Markdown string
}

// ReportPaths returns test-report-<stamp>.json and .md inside dir.
func ReportPaths(dir string, t time.Time) Paths {
	base := filepath.Join(dir, "test-report-"+t.Format(TimestampLayout))
	return Paths{JSON: base + ".json", Markdown: base + ".md"}
}

// WriteReports writes the JSON and Markdown reports for r. Both writes are
// attempted even if the first one fails.
func WriteReports(dir string, t time.Time, r *report.Report) (Paths, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("creating output directory: %w", err)
	}

	paths := ReportPaths(dir, t)
	var err error
	if e := WriteJSON(paths.JSON, r); e != nil {
		err = multierr.Append(err, fmt.Errorf("writing JSON report: %w", e))
	}
	if e := WriteMarkdown(paths.Markdown, r); e != nil {
		err = multierr.Append(err, fmt.Errorf("writing Markdown report: %w", e))
	}
	return paths, err
}
