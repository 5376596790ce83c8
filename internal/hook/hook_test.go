package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/maxvaer/smokecheck/internal/invoker"
)

func TestExpand(t *testing.T) {
	r := NewRunner("notify {method} {path} {status} {outcome} {time}", nil, nil)

	got := r.Expand(&invoker.Result{
		Method: "GET", Endpoint: "/api/health", StatusCode: 503,
		Status: invoker.OutcomeFailure, ResponseTime: 12.5,
	})
	if want := "notify GET /api/health 503 failure 12.5"; got != want {
		t.Errorf("Expand = %q, want %q", got, want)
	}

	got = r.Expand(&invoker.Result{Method: "POST", Endpoint: "/api/chat", Status: invoker.OutcomeError})
	if want := "notify POST /api/chat  error 0"; got != want {
		t.Errorf("Expand = %q, want %q", got, want)
	}
}

func TestRunPipesResultJSON(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	dest := filepath.Join(t.TempDir(), "payload.json")

	var out bytes.Buffer
	r := NewRunner("cat > "+dest+"; echo done {status}", &out, nil)
	r.Run(context.Background(), &invoker.Result{
		Method: "GET", Endpoint: "/api/health", StatusCode: 200, Status: invoker.OutcomeSuccess,
	})

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("hook did not write payload: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if payload["endpoint"] != "/api/health" || payload["status"] != "success" {
		t.Errorf("payload = %v", payload)
	}
	if !strings.Contains(out.String(), "[hook] done 200") {
		t.Errorf("output = %q, want hook echo", out.String())
	}
}

func TestRunFailureIsNotFatal(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	var out bytes.Buffer
	r := NewRunner("exit 3", &out, nil)
	r.Run(context.Background(), &invoker.Result{Method: "GET", Endpoint: "/x"})
	if strings.Contains(out.String(), "[hook]") {
		t.Errorf("unexpected hook output %q", out.String())
	}
}
