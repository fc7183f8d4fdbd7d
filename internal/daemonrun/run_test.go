package daemonrun

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"recsweep/internal/testsupport"
)

func writeJobFile(t *testing.T, dir string) string {
	t.Helper()
	testsupport.WriteText(t, filepath.Join(dir, "news.csv"), "1,Monday\n")
	if err := os.MkdirAll(filepath.Join(dir, "recordings"), 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "jobs.yaml")
	testsupport.WriteText(t, path, `- id: news
  file: news.csv
  title: News
  recordings_dir: recordings
  subtitle_column: 1
`)
	return path
}

func TestRunStopsOnContextCancel(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	jobFile := writeJobFile(t, t.TempDir())

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	if err := Run(ctx, cfg, jobFile, Options{LogLevel: "error"}); err != nil {
		t.Fatalf("Run returned %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(cfg.Paths.LogDir, "recsweep-*.log"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one run log, got %v (err=%v)", matches, err)
	}
	if target, err := os.Readlink(filepath.Join(cfg.Paths.LogDir, "recsweep.log")); err != nil || target != matches[0] {
		t.Fatalf("recsweep.log -> %q (err=%v), want %q", target, err, matches[0])
	}
	if _, err := os.Stat(cfg.HistoryPath()); err != nil {
		t.Fatalf("expected history database: %v", err)
	}
}

func TestRunFailsOnInvalidJobFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()
	jobFile := filepath.Join(dir, "jobs.json")
	testsupport.WriteText(t, jobFile, `[{"id":"news","file":"missing.csv","title":"News","recordings_dir":".","subtitle_column":1}]`)

	err := Run(context.Background(), cfg, jobFile, Options{LogLevel: "error"})
	if err == nil || !strings.Contains(err.Error(), "load jobs") {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestRunRequiresJobFile(t *testing.T) {
	if err := Run(context.Background(), testsupport.NewConfig(t), " ", Options{}); err == nil {
		t.Fatal("expected error for empty job file")
	}
}

func TestEnsureCurrentLogPointerReplacesLink(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "recsweep-a.log")
	second := filepath.Join(dir, "recsweep-b.log")
	for _, path := range []string{first, second} {
		testsupport.WriteText(t, path, "{}\n")
	}

	if err := ensureCurrentLogPointer(dir, first); err != nil {
		t.Fatalf("first pointer: %v", err)
	}
	if err := ensureCurrentLogPointer(dir, second); err != nil {
		t.Fatalf("second pointer: %v", err)
	}
	target, err := os.Readlink(filepath.Join(dir, "recsweep.log"))
	if err != nil || target != second {
		t.Fatalf("pointer = %q (err=%v), want %q", target, err, second)
	}
}
