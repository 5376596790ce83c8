// Package invoker performs the HTTP calls of a smoke run and records one
// Result per call.
package invoker

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"slices"
	"time"

	"go.uber.org/zap"
)

const maxResponseText = 500

// DefaultAccept is the set of status codes treated as success when neither
// the call nor the Invoker names its own.
var DefaultAccept = []int{200, 201, 204}

// Options configures an Invoker.
type Options struct {
	Accept []int       // nil = DefaultAccept
	Out    io.Writer   // status lines; nil discards them
	Color  bool        // ANSI colours on status lines
	Logger *zap.Logger // nil = no-op
}

// Invoker calls endpoints one at a time and keeps their results in call
// order.
type Invoker struct {
	req     *Requester
	accept  []int
	out     io.Writer
	color   bool
	logger  *zap.Logger
	results []Result
}

// New creates an Invoker that sends requests through req.
func New(req *Requester, opts Options) *Invoker {
	accept := opts.Accept
	if len(accept) == 0 {
		accept = DefaultAccept
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Invoker{
		req:    req,
		accept: accept,
		out:    out,
		color:  opts.Color,
		logger: logger,
	}
}

// Invoke performs exactly one call, records its Result and prints one
// status line. It never retries.
func (inv *Invoker) Invoke(ctx context.Context, call Call) Result {
	accept := call.Accept
	if len(accept) == 0 {
		accept = inv.accept
	}

	res := Result{
		Method:      call.Method,
		Endpoint:    call.Path,
		Description: call.Description,
		Timestamp:   time.Now(),
	}

	start := time.Now()
	resp, err := inv.req.Do(ctx, call.Method, call.Path, call.Body)
	if err != nil {
		res.Status = OutcomeError
		res.Error = err.Error()
		res.ResponseTime = millis(time.Since(start))
		inv.logger.Debug("request failed",
			zap.String("method", call.Method),
			zap.String("path", call.Path),
			zap.Error(err),
		)
	} else {
		res.Status = OutcomeFailure
		if slices.Contains(accept, resp.StatusCode) {
			res.Status = OutcomeSuccess
		}
		res.StatusCode = resp.StatusCode
		res.ResponseTime = millis(resp.Duration)
		res.ResponseSize = len(resp.Body)
		res.ResponseData, res.ResponseText = decodeBody(resp.Body)
		inv.logger.Debug("request completed",
			zap.String("method", call.Method),
			zap.String("url", resp.URL),
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", resp.Duration),
			zap.Int("size", len(resp.Body)),
		)
	}

	inv.results = append(inv.results, res)
	inv.writeLine(&res)
	return res
}

// Results returns the recorded results in invocation order.
func (inv *Invoker) Results() []Result {
	return slices.Clone(inv.results)
}

// decodeBody returns the parsed JSON document, or the first 500
// characters of the body when it is not JSON.
func decodeBody(body []byte) (any, string) {
	var data any
	if err := json.Unmarshal(body, &data); err == nil {
		return data, ""
	}
	text := []rune(string(body))
	if len(text) > maxResponseText {
		text = text[:maxResponseText]
	}
	return nil, string(text)
}

// millis converts d to milliseconds rounded to two decimals.
func millis(d time.Duration) float64 {
	ms := float64(d) / float64(time.Millisecond)
	return math.Round(ms*100) / 100
}
