package stability

import "testing"

func TestTrackerConstantSize(t *testing.T) {
	tracker := NewTracker(DefaultThreshold)
	state := ScanState{File: "a.ts"}

	sizes := []int64{100, 100, 100, 100, 100}
	wantStable := []bool{false, false, false, true, true}
	wantIterations := []int{0, 1, 2, 3, 4}

	for i, size := range sizes {
		var stable bool
		state, stable = tracker.Observe(state, size)
		if stable != wantStable[i] {
			t.Errorf("cycle %d: stable = %v, want %v", i+1, stable, wantStable[i])
		}
		if state.StableIterations != wantIterations[i] {
			t.Errorf("cycle %d: iterations = %d, want %d", i+1, state.StableIterations, wantIterations[i])
		}
		if state.Size != size {
			t.Errorf("cycle %d: size = %d, want %d", i+1, state.Size, size)
		}
	}
}

func TestTrackerResetsOnChange(t *testing.T) {
	tracker := NewTracker(DefaultThreshold)
	state := ScanState{File: "a.ts", Size: 100, StableIterations: 2}

	state, stable := tracker.Observe(state, 150)
	if stable {
		t.Fatal("expected size change to report unstable")
	}
	if state.StableIterations != 0 || state.Size != 150 {
		t.Fatalf("unexpected state after change: %+v", state)
	}

	// Shrinking counts as a change too.
	state, stable = tracker.Observe(ScanState{Size: 150, StableIterations: 5}, 10)
	if stable || state.StableIterations != 0 {
		t.Fatalf("expected reset on shrink, got %+v stable=%v", state, stable)
	}
}

func TestTrackerEmptyFileStartsUnchanged(t *testing.T) {
	// A zero-byte file matches the zero default and counts from the first cycle.
	tracker := NewTracker(DefaultThreshold)
	state, stable := tracker.Observe(ScanState{File: "empty.ts"}, 0)
	if stable {
		t.Fatal("first observation must not be stable")
	}
	if state.StableIterations != 1 {
		t.Fatalf("expected iterations 1, got %d", state.StableIterations)
	}
}

func TestNewTrackerDefaultsThreshold(t *testing.T) {
	if NewTracker(0).Threshold != DefaultThreshold {
		t.Fatal("expected default threshold for zero")
	}
	tracker := Tracker{}
	state := ScanState{Size: 5, StableIterations: 2}
	if _, stable := tracker.Observe(state, 5); !stable {
		t.Fatal("zero-value tracker should use default threshold")
	}
}

func TestTrackerCustomThreshold(t *testing.T) {
	tracker := NewTracker(1)
	state, stable := tracker.Observe(ScanState{}, 10)
	if stable {
		t.Fatal("change must never be stable")
	}
	if _, stable = tracker.Observe(state, 10); !stable {
		t.Fatal("expected stability after one unchanged observation")
	}
}
