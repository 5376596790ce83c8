package output

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/maxvaer/smokecheck/internal/invoker"
	"github.com/maxvaer/smokecheck/internal/report"
)

// MaxFailedRows caps the failed endpoints table.
const MaxFailedRows = 20

const maxErrorCell = 50

var markdownTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"timestamp": func(t time.Time) string { return t.Format(time.RFC3339) },
	"rate":      report.FormatRate,
	"cell":      cell,
	"code":      statusCell,
	"errcell":   errorCell,
	"failures":  failedRows,
}).Parse(markdownTemplate))

// WriteMarkdown renders r as a Markdown document at path.
func WriteMarkdown(path string, r *report.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := markdownTmpl.Execute(f, r); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}

func failedRows(r *report.Report) []invoker.Result {
	rows := r.Failures()
	if len(rows) > MaxFailedRows {
		rows = rows[:MaxFailedRows]
	}
	return rows
}

// cell makes s safe inside a table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

func statusCell(code int) string {
	if code == 0 {
		return "N/A"
	}
	return strconv.Itoa(code)
}

func errorCell(msg string) string {
	if msg == "" {
		return "N/A"
	}
	if r := []rune(msg); len(r) > maxErrorCell {
		msg = string(r[:maxErrorCell])
	}
	return cell(msg)
}

const markdownTemplate = `# Smoke Test Report

**Generated:** {{ timestamp .Metadata.Timestamp }}  
**Duration:** {{ .Metadata.Duration }}  
**Base URL:** {{ .Metadata.BaseURL }}  
**Run ID:** {{ .Metadata.RunID }}

## Summary

| Metric | Value |
|--------|-------|
| Total Tests | {{ .Summary.TotalTests }} |
| Successful | {{ .Summary.Successful }} |
| Failed | {{ .Summary.Failed }} |
| Errors | {{ .Summary.Errors }} |
| Success Rate | {{ .Summary.SuccessRate }} |

## Category Breakdown

| Category | Total | Success | Failed | Success Rate |
|----------|-------|---------|--------|--------------|
{{ range .Categories }}| {{ .Name }} | {{ .Total }} | {{ .Success }} | {{ .Failed }} | {{ rate .Rate }} |
{{ end }}
{{- if .CriticalIssues }}
## Critical Issues

{{ range .CriticalIssues }}- **[{{ .Severity }}]** {{ cell .Endpoint }}: {{ cell .Error }}
{{ end }}
{{- else }}
## No Critical Issues Found
{{ end }}
{{- if .Recommendations }}
## Recommendations

{{ range .Recommendations }}- {{ . }}
{{ end }}
{{- end }}
{{- with failures . }}
## Failed Endpoints

| Method | Endpoint | Status Code | Error |
|--------|----------|-------------|-------|
{{ range . }}| {{ .Method }} | {{ cell .Endpoint }} | {{ code .StatusCode }} | {{ errcell .Error }} |
{{ end }}
{{- end }}`
