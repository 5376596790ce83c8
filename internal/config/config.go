package config

import "time"

// DefaultBaseURL is used when neither an argument nor BASE_URL is given.
const DefaultBaseURL = "http://localhost:3000"

// Options holds all configuration for a smokecheck run.
type Options struct {
	// Target
	BaseURL     string
	CatalogFile string // empty = use built-in catalog

	// HTTP
	Timeout   time.Duration
	Delay     time.Duration // pause between calls
	Headers   map[string]string
	UserAgent string
	Proxy     string
	Insecure  bool
	Accept    []int // default acceptable statuses for entries without their own

	// Selection
	Groups       []string
	Methods      []string
	PathContains string
	ListOnly     bool

	// Output
	OutputDir      string
	Quiet          bool
	NoColor        bool
	Verbose        bool
	OnResultCmd    string
	FailOnCritical bool
}
