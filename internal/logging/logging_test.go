package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	quiet, err := New(false)
	if err != nil {
		t.Fatal(err)
	}
	if quiet.Core().Enabled(zapcore.DebugLevel) {
		t.Error("non-verbose logger should discard debug entries")
	}

	verbose, err := New(true)
	if err != nil {
		t.Fatal(err)
	}
	if !verbose.Core().Enabled(zapcore.DebugLevel) {
		t.Error("verbose logger should accept debug entries")
	}
}
