package invoker

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProbeAuthenticated(t *testing.T) {
	const token = "tok-123"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/csrf":
			http.SetCookie(w, &http.Cookie{Name: "sid", Value: "s1", Path: "/"})
			fmt.Fprintf(w, `{"csrfToken":%q}`, token)
		case "/api/auth-status":
			c, err := r.Cookie("sid")
			ok := err == nil && c.Value == "s1" && r.Header.Get("X-CSRF-Token") == token
			fmt.Fprintf(w, `{"authenticated":%t}`, ok)
		case "/echo":
			fmt.Fprint(w, r.Header.Get("X-CSRF-Token"))
		}
	}))
	defer srv.Close()

	req := newRequester(t, srv.URL)
	if !NewProber(req, nil).Probe(context.Background()) {
		t.Fatal("Probe = false, want true")
	}

	// The token stays on the session for later calls.
	resp, err := req.Do(context.Background(), http.MethodGet, "/echo", nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(resp.Body) != token {
		t.Errorf("X-CSRF-Token on later call = %q, want %q", resp.Body, token)
	}
}

func TestProbeNotAuthenticated(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"auth status false", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"authenticated":false}`)
		}},
		{"auth status 401", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"authenticated":true}`)
		}},
		{"non-JSON bodies", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html>login</html>")
		}},
		{"csrf missing", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			if NewProber(newRequester(t, srv.URL), nil).Probe(context.Background()) {
				t.Error("Probe = true, want false")
			}
		})
	}
}

func TestProbeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if NewProber(newRequester(t, url), nil).Probe(context.Background()) {
		t.Error("Probe = true, want false")
	}
}
