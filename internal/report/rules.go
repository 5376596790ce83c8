package report

import (
	"net/http"
	"strings"

	"github.com/maxvaer/smokecheck/internal/invoker"
)

// Category names.
const (
	CategoryAuth         = "Authentication"
	CategoryDashboard    = "Dashboard"
	CategoryIntegrations = "Integrations"
	CategoryAI           = "AI Features"
	CategoryCore         = "Core API"
)

// First matching rule wins; anything else is Core API.
var categoryRules = []struct {
	name    string
	needles []string
}{
	{CategoryAuth, []string{"/api/auth"}},
	{CategoryDashboard, []string{"/dashboard"}},
	{CategoryIntegrations, []string{"/api/zoho", "/api/linkedin", "/api/microsoft", "/api/twilio", "/api/zoom"}},
	{CategoryAI, []string{"/api/gemini", "/api/agents", "/api/chat", "/firecrawl"}},
}

var integrationNeedles = []string{"/zoho", "/linkedin", "/microsoft", "/twilio", "/zoom"}

// Recommendation texts.
const (
	RecommendAuth        = "Review authentication configuration - multiple auth endpoints failing"
	RecommendIntegration = "Check external integration configurations and API keys"
	RecommendSlow        = "Optimize slow endpoints (>3s response time)"
	RecommendErrorRate   = "High error rate detected - review application logs"
)

// Categorize assigns an endpoint path to a category.
func Categorize(path string) string {
	for _, rule := range categoryRules {
		if containsAny(path, rule.needles) {
			return rule.name
		}
	}
	return CategoryCore
}

// CriticalIssues flags failed results: a 500 is CRITICAL, a call without
// a response is HIGH, and a 401 on an auth path is HIGH. Each result
// yields at most one issue.
func CriticalIssues(results []invoker.Result) []Issue {
	issues := []Issue{}
	for _, r := range results {
		if r.Succeeded() {
			continue
		}
		switch {
		case r.StatusCode == http.StatusInternalServerError:
			issues = append(issues, Issue{SeverityCritical, r.Endpoint, "Internal Server Error"})
		case r.Status == invoker.OutcomeError:
			msg := r.Error
			if msg == "" {
				msg = "Unknown error"
			}
			issues = append(issues, Issue{SeverityHigh, r.Endpoint, msg})
		case strings.Contains(r.Endpoint, "/auth") && r.StatusCode == http.StatusUnauthorized:
			issues = append(issues, Issue{SeverityHigh, r.Endpoint, "Authentication failure"})
		}
	}
	return issues
}

// Recommendations applies four independent threshold rules.
func Recommendations(results []invoker.Result) []string {
	var authFail, integrationFail, slow bool
	notOK := 0
	for _, r := range results {
		if !r.Succeeded() {
			notOK++
			if strings.Contains(r.Endpoint, "/auth") {
				authFail = true
			}
			if containsAny(r.Endpoint, integrationNeedles) {
				integrationFail = true
			}
		}
		if r.ResponseTime > SlowResponseMs {
			slow = true
		}
	}

	recs := []string{}
	if authFail {
		recs = append(recs, RecommendAuth)
	}
	if integrationFail {
		recs = append(recs, RecommendIntegration)
	}
	if slow {
		recs = append(recs, RecommendSlow)
	}
	if len(results) > 0 && float64(notOK)/float64(len(results)) > ErrorRateThreshold {
		recs = append(recs, RecommendErrorRate)
	}
	return recs
}
