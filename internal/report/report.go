// Package report reduces the results of a smoke run into summary counts,
// per-category counts, critical issues and recommendations.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/maxvaer/smokecheck/internal/invoker"
)

// Thresholds used by the recommendation rules.
const (
	SlowResponseMs     = 3000.0
	ErrorRateThreshold = 0.2
)

// Severity of a critical issue.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
)

// Issue is one entry of the critical issues list.
type Issue struct {
	Severity Severity `json:"severity"`
	Endpoint string   `json:"endpoint"`
	Error    string   `json:"error"`
}

// Meta describes the run a report is built for.
type Meta struct {
	RunID    string
	BaseURL  string
	Started  time.Time
	Finished time.Time
}

// Metadata is the report header.
type Metadata struct {
	RunID     string    `json:"run_id"`
	Timestamp time.Time `json:"timestamp"`
	Duration  string    `json:"duration"`
	BaseURL   string    `json:"base_url"`
}

// Summary holds the outcome counts of a run.
type Summary struct {
	TotalTests  int    `json:"total_tests"`
	Successful  int    `json:"successful"`
	Failed      int    `json:"failed"`
	Errors      int    `json:"errors"`
	SuccessRate string `json:"success_rate"`
}

// CategoryStats counts results of one category. Failed includes errors.
type CategoryStats struct {
	Name    string `json:"-"`
	Total   int    `json:"total"`
	Success int    `json:"success"`
	Failed  int    `json:"failed"`
}

// Rate returns the category success percentage, 0 for an empty category.
func (c CategoryStats) Rate() float64 {
	return SuccessRate(c.Success, c.Total)
}

// Categories keeps categories in first-seen order and encodes as a JSON
// object keyed by category name.
type Categories []CategoryStats

func (c Categories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cat.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(cat)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Report is the aggregate of one run.
type Report struct {
	Metadata        Metadata         `json:"metadata"`
	Summary         Summary          `json:"summary"`
	Categories      Categories       `json:"categories"`
	Results         []invoker.Result `json:"results"`
	CriticalIssues  []Issue          `json:"critical_issues"`
	Recommendations []string         `json:"recommendations"`
}

// Build aggregates results. It is deterministic for a given input.
func Build(results []invoker.Result, meta Meta) *Report {
	if results == nil {
		results = []invoker.Result{}
	}

	var sum Summary
	sum.TotalTests = len(results)
	for i := range results {
		switch results[i].Status {
		case invoker.OutcomeSuccess:
			sum.Successful++
		case invoker.OutcomeFailure:
			sum.Failed++
		case invoker.OutcomeError:
			sum.Errors++
		}
	}
	sum.SuccessRate = FormatRate(SuccessRate(sum.Successful, sum.TotalTests))

	return &Report{
		Metadata: Metadata{
			RunID:     meta.RunID,
			Timestamp: meta.Finished,
			Duration:  fmt.Sprintf("%.2fs", meta.Finished.Sub(meta.Started).Seconds()),
			BaseURL:   meta.BaseURL,
		},
		Summary:         sum,
		Categories:      GroupByCategory(results),
		Results:         results,
		CriticalIssues:  CriticalIssues(results),
		Recommendations: Recommendations(results),
	}
}

// Failures returns the results that did not succeed, in order.
func (r *Report) Failures() []invoker.Result {
	var out []invoker.Result
	for _, res := range r.Results {
		if !res.Succeeded() {
			out = append(out, res)
		}
	}
	return out
}

// SuccessRate returns successful/total as a percentage, or 0 when total
// is 0.
func SuccessRate(successful, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(successful) / float64(total) * 100
}

// FormatRate renders a percentage with one decimal, e.g. "87.5%".
func FormatRate(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// GroupByCategory counts results per category in first-seen order.
func GroupByCategory(results []invoker.Result) Categories {
	var cats Categories
	index := make(map[string]int)
	for i := range results {
		name := Categorize(results[i].Endpoint)
		idx, ok := index[name]
		if !ok {
			idx = len(cats)
			index[name] = idx
			cats = append(cats, CategoryStats{Name: name})
		}
		cats[idx].Total++
		if results[i].Succeeded() {
			cats[idx].Success++
		} else {
			cats[idx].Failed++
		}
	}
	if cats == nil {
		cats = Categories{}
	}
	return cats
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
