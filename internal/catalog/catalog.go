// Package catalog holds the list of endpoints a smoke run exercises.
package catalog

// Entry describes one endpoint call.
type Entry struct {
	Method      string `yaml:"method"`
	Path        string `yaml:"path"`
	Description string `yaml:"description"`
	Body        any    `yaml:"body,omitempty"`   // sent as JSON for POST/PUT
	Accept      []int  `yaml:"accept,omitempty"` // empty = run default
}

// Group is a named feature area of the catalog.
type Group struct {
	Key     string  `yaml:"key,omitempty"` // short name used by --group
	Name    string  `yaml:"name"`
	Entries []Entry `yaml:"entries"`
}

// Catalog is an ordered list of groups.
type Catalog struct {
	Groups []Group `yaml:"groups"`
}

// Entries flattens the catalog in group order.
func (c Catalog) Entries() []Entry {
	var out []Entry
	for _, g := range c.Groups {
		out = append(out, g.Entries...)
	}
	return out
}

// Len returns the total number of entries.
func (c Catalog) Len() int {
	n := 0
	for _, g := range c.Groups {
		n += len(g.Entries)
	}
	return n
}

func get(path, description string) Entry {
	return Entry{Method: "GET", Path: path, Description: description}
}

func post(path, description string, body any) Entry {
	return Entry{Method: "POST", Path: path, Description: description, Body: body}
}

var dashboardPages = [][2]string{
	{"", "Main Dashboard"},
	{"analytics", "Analytics"},
	{"calls", "Calls"},
	{"competitor-analysis", "Competitor Analysis"},
	{"content-studio", "Content Studio"},
	{"deals", "Deals"},
	{"documents", "Documents"},
	{"email-templates", "Email Templates"},
	{"eva-voice", "EVA Voice"},
	{"files", "Files"},
	{"firecrawl", "Firecrawl"},
	{"lead-generation", "Lead Generation"},
	{"linkedin", "LinkedIn"},
	{"messages", "Messages"},
	{"monitoring", "Monitoring"},
	{"orchestrator", "Orchestrator"},
	{"outreach", "Outreach"},
	{"performance", "Performance"},
	{"post-predictor", "Post Predictor"},
	{"recruiter-intel", "Recruiter Intel"},
	{"settings", "Settings"},
	{"sharepoint", "SharePoint"},
	{"tasks", "Tasks"},
	{"teams", "Teams"},
	{"twilio", "Twilio"},
	{"workflows", "Workflows"},
	{"zoho", "Zoho"},
	{"zoom", "Zoom"},
}

// Default returns the built-in catalog. Each call returns a fresh copy.
func Default() Catalog {
	pages := make([]Entry, 0, len(dashboardPages))
	for _, p := range dashboardPages {
		path := "/dashboard"
		if p[0] != "" {
			path += "/" + p[0]
		}
		pages = append(pages, get(path, "Dashboard - "+p[1]))
	}

	return Catalog{Groups: []Group{
		{Key: "health", Name: "Health Endpoints", Entries: []Entry{
			get("/api/health", "General Health Check"),
			get("/api/health/database", "Database Health Check"),
			get("/api/test/integration-health", "Integration Health"),
		}},
		{Key: "auth", Name: "Authentication Endpoints", Entries: []Entry{
			get("/api/auth-status", "Auth Status"),
			get("/api/verify-session", "Verify Session"),
			get("/api/test-session", "Test Session"),
			get("/api/csrf", "CSRF Token"),
			get("/api/auth/microsoft/check-config", "Microsoft Auth Config"),
		}},
		{Key: "dashboard", Name: "Dashboard Pages", Entries: pages},
		{Key: "core", Name: "Core API Endpoints", Entries: []Entry{
			get("/api/tasks", "Get Tasks"),
			post("/api/tasks", "Create Task", map[string]any{
				"title":       "Test Task",
				"description": "Automated test",
				"status":      "todo",
			}),
			get("/api/recruiters", "Get Recruiters"),
			get("/api/recruiters/metrics", "Recruiter Metrics"),
			get("/api/recruiters/insights", "Recruiter Insights"),
			get("/api/deals/metrics", "Deal Metrics"),
			get("/api/email-templates", "Email Templates"),
		}},
		{Key: "integrations", Name: "Integration Endpoints", Entries: []Entry{
			get("/api/zoho/queue", "Zoho Queue"),
			get("/api/linkedin/token", "LinkedIn Token"),
			get("/api/linkedin/stats", "LinkedIn Stats"),
			get("/api/microsoft/calendar", "Microsoft Calendar"),
			get("/api/microsoft/teams", "Microsoft Teams"),
			get("/api/microsoft/contacts", "Microsoft Contacts"),
			get("/api/twilio/status", "Twilio Status"),
			get("/api/twilio/config", "Twilio Config"),
			get("/api/zoom/auth/status", "Zoom Auth Status"),
			get("/api/zoom/user", "Zoom User"),
		}},
		{Key: "ai", Name: "AI Features", Entries: []Entry{
			post("/api/gemini", "Gemini AI", map[string]any{"prompt": "Test"}),
			get("/api/agents", "AI Agents"),
			get("/api/agents/stats", "Agent Stats"),
			get("/api/agents/workflows", "Agent Workflows"),
			post("/api/chat", "Chat API", map[string]any{"message": "Test"}),
			post("/api/firecrawl/scrape", "Firecrawl Scrape", map[string]any{"url": "https://example.com"}),
		}},
		{Key: "communication", Name: "Communication Features", Entries: []Entry{
			get("/api/socket", "WebSocket"),
			get("/api/monitoring/metrics", "Monitoring Metrics"),
		}},
	}}
}
