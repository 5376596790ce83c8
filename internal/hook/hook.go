// Package hook runs a user command for every endpoint result.
package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/maxvaer/smokecheck/internal/invoker"
)

// Timeout bounds a single hook invocation.
const Timeout = 30 * time.Second

// Runner executes a shell command for each result.
type Runner struct {
	cmd    string
	out    io.Writer
	logger *zap.Logger
}

// NewRunner creates a hook runner. Command output is copied to out.
func NewRunner(cmd string, out io.Writer, logger *zap.Logger) *Runner {
	if out == nil {
		out = os.Stderr
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{cmd: cmd, out: out, logger: logger}
}

// Expand replaces the {method}, {path}, {status}, {outcome} and {time}
// placeholders of the command with values from result.
func (r *Runner) Expand(result *invoker.Result) string {
	code := ""
	if result.StatusCode != 0 {
		code = strconv.Itoa(result.StatusCode)
	}
	return strings.NewReplacer(
		"{method}", result.Method,
		"{path}", result.Endpoint,
		"{status}", code,
		"{outcome}", string(result.Status),
		"{time}", strconv.FormatFloat(result.ResponseTime, 'f', -1, 64),
	).Replace(r.cmd)
}

// Run executes the hook command with the result as JSON on stdin. Errors
// are logged and never stop the run.
func (r *Runner) Run(ctx context.Context, result *invoker.Result) {
	data, err := json.Marshal(result)
	if err != nil {
		r.logger.Warn("hook payload", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	shell, args := shellCommand()
	cmd := exec.CommandContext(ctx, shell, append(args, r.Expand(result))...)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stderr = r.out

	output, err := cmd.Output()
	if err != nil {
		r.logger.Warn("hook failed",
			zap.String("path", result.Endpoint),
			zap.Error(err),
		)
		return
	}

	if len(output) > 0 {
		fmt.Fprintf(r.out, "[hook] %s", output)
	}
}

func shellCommand() (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C"}
	}
	return "sh", []string{"-c"}
}
