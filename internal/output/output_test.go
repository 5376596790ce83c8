package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/maxvaer/smokecheck/internal/invoker"
	"github.com/maxvaer/smokecheck/internal/report"
)

var stamp = time.Date(2026, 10, 17, 9, 5, 7, 0, time.UTC)

func buildReport(results []invoker.Result) *report.Report {
	return report.Build(results, report.Meta{
		RunID:    "run-1",
		BaseURL:  "http://localhost:3000",
		Started:  stamp.Add(-2 * time.Second),
		Finished: stamp,
	})
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestReportPaths(t *testing.T) {
	p := ReportPaths("out", stamp)
	if want := filepath.Join("out", "test-report-20261017-090507.json"); p.JSON != want {
		t.Errorf("JSON = %q, want %q", p.JSON, want)
	}
	if want := filepath.Join("out", "test-report-20261017-090507.md"); p.Markdown != want {
		t.Errorf("Markdown = %q, want %q", p.Markdown, want)
	}
}

func TestWriteReports(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	r := buildReport([]invoker.Result{
		{Method: "GET", Endpoint: "/api/health", Status: invoker.OutcomeSuccess, StatusCode: 200,
			ResponseData: map[string]any{"status": "ok"}},
	})

	paths, err := WriteReports(dir, stamp, r)
	if err != nil {
		t.Fatalf("WriteReports: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(readFile(t, paths.JSON)), &decoded); err != nil {
		t.Fatalf("JSON report does not parse: %v", err)
	}
	for _, key := range []string{"metadata", "summary", "categories", "results", "critical_issues", "recommendations"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("JSON report missing %q", key)
		}
	}
	summary := decoded["summary"].(map[string]any)
	if summary["success_rate"] != "100.0%" {
		t.Errorf("success_rate = %v, want 100.0%%", summary["success_rate"])
	}

	md := readFile(t, paths.Markdown)
	if !strings.HasPrefix(md, "# Smoke Test Report\n") {
		t.Errorf("markdown starts with %q", md[:min(len(md), 40)])
	}
}

func TestWriteReportsUnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteReports(filepath.Join(file, "sub"), stamp, buildReport(nil)); err == nil {
		t.Error("expected error for output dir below a regular file")
	}
}

func TestMarkdownNoIssues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.md")
	r := buildReport([]invoker.Result{
		{Method: "GET", Endpoint: "/api/health", Status: invoker.OutcomeSuccess, StatusCode: 200},
		{Method: "GET", Endpoint: "/dashboard", Status: invoker.OutcomeSuccess, StatusCode: 200},
	})
	if err := WriteMarkdown(path, r); err != nil {
		t.Fatal(err)
	}
	md := readFile(t, path)

	for _, want := range []string{
		"**Base URL:** http://localhost:3000",
		"**Duration:** 2.00s",
		"| Total Tests | 2 |",
		"| Success Rate | 100.0% |",
		"| Core API | 1 | 1 | 0 | 100.0% |",
		"| Dashboard | 1 | 1 | 0 | 100.0% |",
		"## No Critical Issues Found",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	for _, unwanted := range []string{"## Critical Issues", "## Recommendations", "## Failed Endpoints"} {
		if strings.Contains(md, unwanted) {
			t.Errorf("markdown unexpectedly contains %q", unwanted)
		}
	}
}

func TestMarkdownFailures(t *testing.T) {
	var results []invoker.Result
	for i := 0; i < 25; i++ {
		results = append(results, invoker.Result{
			Method: "GET", Endpoint: fmt.Sprintf("/api/x/%d", i), Status: invoker.OutcomeFailure, StatusCode: 404,
		})
	}
	results[0] = invoker.Result{Method: "GET", Endpoint: "/api/health/database", Status: invoker.OutcomeFailure, StatusCode: 500}
	results[1] = invoker.Result{
		Method: "POST", Endpoint: "/api/chat", Status: invoker.OutcomeError,
		Error: strings.Repeat("x", 60) + "|tail",
	}

	path := filepath.Join(t.TempDir(), "r.md")
	if err := WriteMarkdown(path, buildReport(results)); err != nil {
		t.Fatal(err)
	}
	md := readFile(t, path)

	for _, want := range []string{
		"## Critical Issues",
		"- **[CRITICAL]** /api/health/database: Internal Server Error",
		"## Recommendations",
		"- " + report.RecommendErrorRate,
		"## Failed Endpoints",
		"| GET | /api/health/database | 500 | N/A |",
		"| POST | /api/chat | N/A | " + strings.Repeat("x", 50) + " |",
		"| GET | /api/x/19 | 404 | N/A |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "/api/x/20 |") {
		t.Error("failed table has more than 20 rows")
	}
	if strings.Contains(md, "No Critical Issues Found") {
		t.Error("markdown claims no critical issues")
	}
}

func TestErrorCell(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", "N/A"},
		{"dial tcp: connection refused", "dial tcp: connection refused"},
		{"a|b\nc", `a\|b c`},
		{strings.Repeat("é", 60), strings.Repeat("é", 50)},
	}
	for _, tt := range tests {
		if got := errorCell(tt.in); got != tt.want {
			t.Errorf("errorCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSummaryWriter(t *testing.T) {
	r := buildReport([]invoker.Result{
		{Method: "GET", Endpoint: "/api/health", Status: invoker.OutcomeSuccess, StatusCode: 200},
		{Method: "GET", Endpoint: "/api/tasks", Status: invoker.OutcomeError, Error: "refused"},
	})

	var buf bytes.Buffer
	if err := NewSummaryWriter(&buf, false).Write(r, Paths{JSON: "a.json", Markdown: "a.md"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"TEST SUMMARY",
		"Total Tests:  2",
		"Errors:       1",
		"Success Rate: 50.0%",
		"Critical issues: 1",
		"[HIGH] /api/tasks: refused",
		"   - JSON: a.json",
		"   - Markdown: a.md",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("colour codes written with colour disabled")
	}
}
