package stability

// DefaultThreshold is the number of consecutive unchanged observations
// required before a file counts as stable.
const DefaultThreshold = 3

// ScanState is the remembered observation of one file within one job.
type ScanState struct {
	File             string
	Size             int64
	StableIterations int
}

// Tracker applies the size stability rule.
type Tracker struct {
	Threshold int
}

// NewTracker returns a Tracker, substituting DefaultThreshold for values < 1.
func NewTracker(threshold int) Tracker {
	if threshold < 1 {
		threshold = DefaultThreshold
	}
	return Tracker{Threshold: threshold}
}

// Observe folds currentSize into state. A different size resets the counter
// and reports unstable. An equal size increments the counter first and then
// reports stable when it has reached the threshold.
func (t Tracker) Observe(state ScanState, currentSize int64) (ScanState, bool) {
	if state.Size != currentSize {
		state.Size = currentSize
		state.StableIterations = 0
		return state, false
	}
	state.StableIterations++
	return state, state.StableIterations >= t.threshold()
}

func (t Tracker) threshold() int {
	if t.Threshold < 1 {
		return DefaultThreshold
	}
	return t.Threshold
}
