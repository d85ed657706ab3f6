package matcher

// Run is a contiguous subsequence [Start, End] of cache indices whose
// joined normalized text equals the target phrase exactly. Ephemeral:
// it exists only while one suggestion is being processed.
type Run struct {
	start int
	end   int
}

func NewRun(start int, end int) Run {
	return Run{
		start: start,
		end:   end,
	}
}

// Start returns the index of the first leaf in the run.
func (r Run) Start() int {
	return r.start
}

// End returns the index of the last leaf in the run (inclusive).
func (r Run) End() int {
	return r.end
}

// Len returns the number of leaves covered by the run.
func (r Run) Len() int {
	return r.end - r.start + 1
}

// scanState tags the outcome of one extension step while accumulating
// leaves from a fixed start index. Making the state explicit keeps the
// prefix-pruning loop testable as a small state machine instead of
// implicit break statements.
type scanState int

const (
	// scanAccumulating: the joined text is a valid word-boundary prefix
	// of the target; keep extending.
	scanAccumulating scanState = iota
	// scanMatched: the joined text equals the target.
	scanMatched
	// scanAbandoned: the joined text is neither a match nor a valid
	// prefix; this start index cannot complete.
	scanAbandoned
)
