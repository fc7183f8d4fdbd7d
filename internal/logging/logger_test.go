package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"recsweep/internal/config"
	"recsweep/internal/logging"
)

func TestNewFromConfigConsole(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "debug"

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger instance")
	}
	logger.Debug("debug message")
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestFileOutputIsJSON(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "run.log")

	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
		RunID:       "run-1",
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("file moved",
		logging.String(logging.FieldJobID, "news"),
		logging.String(logging.FieldFile, "news_monday_copy.ts"),
	)

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(content), &record); err != nil {
		t.Fatalf("decode record %q: %v", content, err)
	}
	for key, want := range map[string]string{
		"msg":              "file moved",
		"level":            "info",
		logging.FieldRunID: "run-1",
		logging.FieldJobID: "news",
		logging.FieldFile:  "news_monday_copy.ts",
	} {
		if got, _ := record[key].(string); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
	if _, ok := record["source"]; ok {
		t.Errorf("expected no source at info level, got %v", record["source"])
	}
}

func TestDebugLevelAddsSource(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "debug.log")
	logger, err := logging.New(logging.Options{Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("message with caller")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestFanoutWritesEveryFile(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.log")
	second := filepath.Join(dir, "b.log")

	logger, err := logging.New(logging.Options{OutputPaths: []string{first, second, first}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn("both")

	for _, path := range []string{first, second} {
		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if got := strings.Count(string(content), "\"msg\":\"both\""); got != 1 {
			t.Fatalf("%s contains %d records, want 1: %q", filepath.Base(path), got, content)
		}
	}
}

func TestWithContextAddsFields(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := logging.WithCycleID(context.Background(), "cycle-7")
	ctx = logging.WithJobID(ctx, " news ")
	logging.WithContext(ctx, base).Info("contextual log")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if got := record[logging.FieldCycleID]; got != "cycle-7" {
		t.Errorf("cycle_id = %v, want cycle-7", got)
	}
	if got := record[logging.FieldJobID]; got != "news" {
		t.Errorf("job_id = %v, want news", got)
	}
}

func TestWithContextWithoutFieldsReturnsLogger(t *testing.T) {
	base := logging.NewNop()
	if got := logging.WithContext(context.Background(), base); got != base {
		t.Fatal("expected the same logger when context carries no fields")
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	logging.WarnWithContext(logger, "job skipped", "job_skipped",
		logging.String(logging.FieldImpact, "recordings for this job are not checked"),
		logging.Error(errors.New("boom")),
	)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record[logging.FieldEventType] != "job_skipped" {
		t.Errorf("event_type = %v", record[logging.FieldEventType])
	}
	if record[logging.FieldErrorHint] != "check logs for details" {
		t.Errorf("error_hint = %v", record[logging.FieldErrorHint])
	}
	if record[logging.FieldImpact] != "recordings for this job are not checked" {
		t.Errorf("impact = %v", record[logging.FieldImpact])
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.log")
	fresh := filepath.Join(dir, "fresh.log")
	current := filepath.Join(dir, "current.log")
	other := filepath.Join(dir, "notes.txt")
	for _, path := range []string{old, fresh, current, other} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	past := time.Now().AddDate(0, 0, -10)
	for _, path := range []string{old, current, other} {
		if err := os.Chtimes(path, past, past); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}

	logging.CleanupOldLogs(logging.NewNop(), 3, logging.RetentionTarget{
		Dir:     dir,
		Pattern: "*.log",
		Exclude: []string{current},
	})

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Errorf("expected %s to be pruned, stat err = %v", old, err)
	}
	for _, path := range []string{fresh, current, other} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s to remain: %v", path, err)
		}
	}
}
