package action_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"recsweep/internal/action"
	"recsweep/internal/logging"
	"recsweep/internal/testsupport"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    action.Kind
		wantErr bool
	}{
		{"", action.Move, false},
		{"move", action.Move, false},
		{" Delete ", action.Delete, false},
		{"archive", "", true},
	}
	for _, tt := range tests {
		got, err := action.ParseAction(tt.in)
		if tt.wantErr {
			if !errors.Is(err, action.ErrUnknownAction) {
				t.Errorf("ParseAction(%q) error = %v, want ErrUnknownAction", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseAction(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestApplyMoveCreatesSubdirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "news_monday_copy.ts")
	testsupport.WriteFile(t, src, 64)

	exec := action.NewExecutor(false, logging.NewNop())
	res, err := exec.Apply(context.Background(), action.Request{Action: action.Move, Path: src})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := filepath.Join(dir, "duplicate", "news_monday_copy.ts")
	if res.Destination != want {
		t.Fatalf("destination = %q, want %q", res.Destination, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("moved file missing: %v", err)
	}
	if _, err := os.Stat(src); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("source still present: %v", err)
	}
}

func TestApplyMoveCustomTargetExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.ts")
	testsupport.WriteFile(t, src, 8)
	if err := os.Mkdir(filepath.Join(dir, "dupes"), 0o755); err != nil {
		t.Fatal(err)
	}

	exec := action.NewExecutor(false, nil)
	if _, err := exec.Apply(context.Background(), action.Request{Action: action.Move, Path: src, MoveTo: "dupes"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "dupes", "a.ts")); err != nil {
		t.Fatalf("moved file missing: %v", err)
	}
}

func TestApplyMoveFailsWhenTargetExists(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.ts")
	testsupport.WriteFile(t, src, 8)
	testsupport.WriteFile(t, filepath.Join(dir, "duplicate", "a.ts"), 16)

	exec := action.NewExecutor(false, nil)
	_, err := exec.Apply(context.Background(), action.Request{Action: action.Move, Path: src})
	if !errors.Is(err, fs.ErrExist) {
		t.Fatalf("expected fs.ErrExist, got %v", err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("source must remain after failed move: %v", err)
	}
}

func TestApplyDelete(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.ts")
	testsupport.WriteFile(t, src, 8)

	exec := action.NewExecutor(false, nil)
	if _, err := exec.Apply(context.Background(), action.Request{Action: action.Delete, Path: src}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, err := os.Stat(src); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("file still present: %v", err)
	}

	_, err := exec.Apply(context.Background(), action.Request{Action: action.Delete, Path: src})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist on second delete, got %v", err)
	}
}

func TestApplyDryRunLeavesFilesystemUntouched(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.ts")
	testsupport.WriteFile(t, src, 8)

	exec := action.NewExecutor(true, nil)
	for _, kind := range []action.Kind{action.Move, action.Delete} {
		res, err := exec.Apply(context.Background(), action.Request{Action: kind, Path: src})
		if err != nil {
			t.Fatalf("Apply(%s): %v", kind, err)
		}
		if !res.DryRun {
			t.Fatalf("expected dry-run result for %s", kind)
		}
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("dry run removed file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "duplicate")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("dry run created target directory: %v", err)
	}
}

func TestApplyUnknownAction(t *testing.T) {
	exec := action.NewExecutor(false, nil)
	_, err := exec.Apply(context.Background(), action.Request{Action: "archive", Path: "x.ts"})
	if !errors.Is(err, action.ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}
