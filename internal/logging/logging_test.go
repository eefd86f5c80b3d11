package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/tomz197/duel/internal/config"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duel.log")
	log, err := New(config.LoggingConfig{Level: "debug", Format: "json", File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debug("round over")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"round over"`) {
		t.Fatalf("log file missing entry: %s", data)
	}
}

func TestNewBadLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duel.log")
	log, err := New(config.LoggingConfig{Level: "chatty", File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug enabled, want info level")
	}
	if !log.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info disabled")
	}
}
