package matcher

import (
	"strings"

	"github.com/rohmanhakim/dom-patcher/internal/leaves"
	"github.com/rohmanhakim/dom-patcher/internal/textnorm"
)

/*
Responsibilities
- Find the earliest contiguous run of leaves whose joined normalized
  text equals a normalized target phrase
- Prune the search with word-boundary prefix compatibility

Matching Semantics
- Contiguity is adjacency in the leaf cache, nothing else
- First match wins: lowest start index, then the shortest extension
  that completes the match
- A partial prefix is only valid when it ends exactly on a word
  boundary of the target; "ca" + "terpillar" never matches "cat"

The prefix pruning bounds the worst case to O(n*m) join operations
(n leaves, m matched-run length) instead of full pairwise comparison.
*/

// FindRun scans cache for the earliest contiguous run matching target.
// target must already be normalized and non-empty; callers short-circuit
// empty targets before reaching the matcher. The second return value is
// false when no run completes.
func FindRun(cache leaves.Cache, target string) (Run, bool) {
	for i := 0; i < len(cache); i++ {
		var accumulated []string

		for j := i; j < len(cache); j++ {
			accumulated = append(accumulated, cache[j].NormalizedText())
			joined := textnorm.Normalize(strings.Join(accumulated, " "))

			switch classify(joined, target) {
			case scanMatched:
				return NewRun(i, j), true
			case scanAccumulating:
				continue
			case scanAbandoned:
			}
			break
		}
	}

	return Run{}, false
}

// classify decides whether the joined text so far completes the target,
// remains a valid word-boundary prefix of it, or rules this start out.
func classify(joined string, target string) scanState {
	if joined == target {
		return scanMatched
	}
	if strings.HasPrefix(target, joined) &&
		len(joined) < len(target) &&
		target[len(joined)] == ' ' {
		return scanAccumulating
	}
	return scanAbandoned
}
