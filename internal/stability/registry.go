package stability

import (
	"sort"
	"sync"
)

// Registry holds scan state per job id across cycles.
//
// A cycle for a job is bracketed by Begin and Commit. Observe looks up the
// previous state, applies the tracker and retains the result for the cycle
// in progress. Commit replaces the job's state with what was retained, which
// drops files that were not observed. Abort ends a cycle that did not finish
// listing: the observations made so far overwrite the previous state and
// files not reached keep theirs.
type Registry struct {
	tracker Tracker

	mu      sync.Mutex
	states  map[string]map[string]ScanState
	pending map[string]map[string]ScanState
}

// NewRegistry returns an empty registry using tracker.
func NewRegistry(tracker Tracker) *Registry {
	return &Registry{
		tracker: tracker,
		states:  make(map[string]map[string]ScanState),
		pending: make(map[string]map[string]ScanState),
	}
}

// Begin starts a new cycle for jobID, discarding any uncommitted observations.
func (r *Registry) Begin(jobID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[jobID] = make(map[string]ScanState)
}

// Observe records currentSize for file and reports whether it is stable.
// Begin is implied when no cycle is in progress for jobID.
func (r *Registry) Observe(jobID, file string, currentSize int64) (ScanState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, ok := r.states[jobID][file]
	if !ok {
		previous = ScanState{File: file}
	}
	next, stable := r.tracker.Observe(previous, currentSize)

	cycle, ok := r.pending[jobID]
	if !ok {
		cycle = make(map[string]ScanState)
		r.pending[jobID] = cycle
	}
	cycle[file] = next
	return next, stable
}

// Commit makes the observations of the current cycle the job's state.
func (r *Registry) Commit(jobID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cycle, ok := r.pending[jobID]
	if !ok {
		cycle = make(map[string]ScanState)
	}
	r.states[jobID] = cycle
	delete(r.pending, jobID)
}

// Abort merges the observations of an unfinished cycle into the job's state.
func (r *Registry) Abort(jobID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cycle, ok := r.pending[jobID]
	delete(r.pending, jobID)
	if !ok || len(cycle) == 0 {
		return
	}
	merged := make(map[string]ScanState, len(r.states[jobID])+len(cycle))
	for file, state := range r.states[jobID] {
		merged[file] = state
	}
	for file, state := range cycle {
		merged[file] = state
	}
	r.states[jobID] = merged
}

// Forget drops all state for jobs not listed in active.
func (r *Registry) Forget(active []string) {
	keep := make(map[string]struct{}, len(active))
	for _, id := range active {
		keep[id] = struct{}{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := range r.states {
		if _, ok := keep[id]; !ok {
			delete(r.states, id)
		}
	}
	for id := range r.pending {
		if _, ok := keep[id]; !ok {
			delete(r.pending, id)
		}
	}
}

// Snapshot returns the committed state for jobID sorted by file name.
func (r *Registry) Snapshot(jobID string) []ScanState {
	r.mu.Lock()
	defer r.mu.Unlock()
	states := r.states[jobID]
	out := make([]ScanState, 0, len(states))
	for _, state := range states {
		out = append(out, state)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].File < out[j].File })
	return out
}

// Jobs returns the ids with committed state, sorted.
func (r *Registry) Jobs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.states))
	for id := range r.states {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
