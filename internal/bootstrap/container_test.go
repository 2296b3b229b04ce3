package bootstrap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewAdvisorLoggerWritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "llm_advisor.log")

	logger := newAdvisorLogger(logPath)
	logger.Printf("retrieval returned 3 candidates")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("expected log file at %s: %v", logPath, err)
	}
	if !strings.Contains(string(content), "retrieval returned 3 candidates") {
		t.Errorf("log file does not contain the written line: %q", string(content))
	}
}

func TestNewAdvisorLoggerFallsBackToStdout(t *testing.T) {
	// A regular file where the logs directory should be makes both the
	// mkdir and the open fail.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "logs")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	logger := newAdvisorLogger(filepath.Join(blocker, "llm_advisor.log"))
	if logger == nil {
		t.Fatal("expected a fallback logger, got nil")
	}
	logger.Printf("still usable")
}
