package invoker

import "time"

// Outcome classifies a single endpoint call.
type Outcome string

const (
	OutcomeSuccess Outcome = "success" // acceptable status
	OutcomeFailure Outcome = "failure" // response with any other status
	OutcomeError   Outcome = "error"   // no response
)

// Call describes one endpoint invocation.
type Call struct {
	Method      string
	Path        string
	Description string
	Body        any
	Accept      []int // empty = invoker default
}

// Result is the record of one call. StatusCode is zero when no response
// was received.
type Result struct {
	Method       string    `json:"method"`
	Endpoint     string    `json:"endpoint"`
	Description  string    `json:"description"`
	Timestamp    time.Time `json:"timestamp"`
	Status       Outcome   `json:"status"`
	StatusCode   int       `json:"status_code,omitempty"`
	ResponseTime float64   `json:"response_time"` // milliseconds
	ResponseSize int       `json:"response_size"`
	ResponseData any       `json:"response_data,omitempty"`
	ResponseText string    `json:"response_text,omitempty"`
	Error        string    `json:"error,omitempty"`
}

// Succeeded reports whether the call had an acceptable status.
func (r *Result) Succeeded() bool {
	return r.Status == OutcomeSuccess
}
