package logging

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitializeWriterCapturesFields(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(&buf, zapcore.DebugLevel)
	defer InitializeDefault()

	Named("model").Warn("rate ordering violated", zap.String("tier", "F70"))

	out := buf.String()
	if !strings.Contains(out, `"msg":"rate ordering violated"`) {
		t.Fatalf("expected message in output, got %s", out)
	}
	if !strings.Contains(out, `"logger":"model"`) {
		t.Errorf("expected logger name in output, got %s", out)
	}
	if !strings.Contains(out, `"tier":"F70"`) {
		t.Errorf("expected field in output, got %s", out)
	}
}

func TestInitializeFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.log")
	cfg := DefaultConfig()
	cfg.Output = path
	cfg.Format = "json"
	cfg.Level = "info"

	if err := Initialize(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer InitializeDefault()

	if !Logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("expected info level to be enabled")
	}
	if Logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug level to be disabled")
	}
}

func TestInitializeUnknownLevelFallsBackToWarn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "loud"
	if err := Initialize(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer InitializeDefault()

	if Logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("expected info to be disabled at warn level")
	}
	if !Logger.Core().Enabled(zapcore.WarnLevel) {
		t.Error("expected warn to be enabled")
	}
}
