package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recsweep/internal/action"
	"recsweep/internal/jobs"
	"recsweep/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckRecordingsDirMoveTargetIsFile(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "duplicate"), 1)
	job := jobs.Job{ID: "news", Dir: dir, Action: action.Move, MoveTo: "duplicate"}

	result := CheckRecordingsDir(job)
	if result.Passed || !strings.Contains(result.Detail, "not a directory") {
		t.Fatalf("expected move target failure, got %+v", result)
	}

	job.Action = action.Delete
	if result := CheckRecordingsDir(job); !result.Passed {
		t.Fatalf("delete jobs ignore the move target, got %+v", result)
	}
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	present := t.TempDir()
	results := RunAll(cfg, []jobs.Job{
		{ID: "ok", Dir: present, Action: action.Move, MoveTo: "duplicate"},
		{ID: "missing", Dir: filepath.Join(present, "nope"), Action: action.Delete},
	})
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	failed := Failed(results)
	if len(failed) != 1 || failed[0].Name != "Recordings missing" {
		t.Fatalf("unexpected failures %+v", failed)
	}
}

func TestCheckDefinitions(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteText(t, filepath.Join(dir, "news.csv"), "1,Monday\n2,Tuesday\n")
	testsupport.WriteText(t, filepath.Join(dir, "jobs.json"), `[
 {"id":"news","file":"news.csv","title":"News","recordings_dir":"rec","subtitle_column":1},
 {"id":"broken","file":"missing.csv","title":"X","recordings_dir":"rec","subtitle_column":1,"action":"delete"}
]`)

	results := CheckDefinitions(filepath.Join(dir, "jobs.json"), "duplicate")
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %+v", results)
	}
	if !results[0].Passed {
		t.Fatalf("definition file should pass: %+v", results[0])
	}
	if !results[1].Passed || results[1].Detail != "2 subtitles, move to duplicate" {
		t.Fatalf("unexpected news result %+v", results[1])
	}
	if results[2].Passed || !strings.Contains(results[2].Detail, "broken") {
		t.Fatalf("unexpected broken result %+v", results[2])
	}
}

func TestCheckDefinitionsUnreadableFile(t *testing.T) {
	results := CheckDefinitions(filepath.Join(t.TempDir(), "missing.json"), "duplicate")
	if len(results) != 1 || results[0].Passed {
		t.Fatalf("expected single failure, got %+v", results)
	}
}
