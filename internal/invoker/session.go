package invoker

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Prober checks the session state of the target before a run.
type Prober struct {
	req    *Requester
	logger *zap.Logger
}

// NewProber creates a Prober sharing req's session.
func NewProber(req *Requester, logger *zap.Logger) *Prober {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prober{req: req, logger: logger}
}

// Probe fetches a CSRF token, installs it as the X-CSRF-Token header for
// the rest of the session, and reports whether /api/auth-status says the
// session is authenticated. Both steps are best-effort.
func (p *Prober) Probe(ctx context.Context) bool {
	resp, err := p.req.Do(ctx, http.MethodGet, "/api/csrf", nil)
	switch {
	case err != nil:
		p.logger.Debug("csrf probe failed", zap.Error(err))
	case resp.StatusCode == http.StatusOK:
		var payload struct {
			CSRFToken string `json:"csrfToken"`
		}
		if err := json.Unmarshal(resp.Body, &payload); err == nil {
			p.req.SetHeader("X-CSRF-Token", payload.CSRFToken)
		}
	}

	resp, err = p.req.Do(ctx, http.MethodGet, "/api/auth-status", nil)
	if err != nil {
		p.logger.Debug("auth-status probe failed", zap.Error(err))
		return false
	}
	if resp.StatusCode != http.StatusOK {
		return false
	}
	var status struct {
		Authenticated bool `json:"authenticated"`
	}
	if err := json.Unmarshal(resp.Body, &status); err != nil {
		return false
	}
	return status.Authenticated
}
