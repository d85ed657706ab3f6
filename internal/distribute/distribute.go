package distribute

import (
	"math"
	"strings"

	"github.com/rohmanhakim/dom-patcher/internal/textnorm"
)

/*
Responsibilities
- Split a replacement phrase's words across the matched leaves
- Keep each leaf's share proportional to its original word count
- Reconcile rounding drift so the total is exact

Guarantee: the space-joined concatenation of the returned pieces, after
normalization, equals the normalized replacement phrase word for word.
*/

// Distribute computes, for each original text, the replacement substring
// it should carry. The result always has len(originalTexts) elements.
//
// Word shares are rounded half-to-even, then reconciled by cycling
// through the leaves one increment or decrement at a time until the
// assigned counts sum to the replacement's word count. The correction
// pass is a fixed-point loop bounded at 2*(total+n) steps; if the bound
// is ever hit, the leftover is forced onto the last leaf, clamped at
// zero.
func Distribute(newVal string, originalTexts []string) []string {
	newWords := textnorm.Words(newVal)
	totalNewWords := len(newWords)

	if len(originalTexts) == 0 {
		return []string{}
	}
	if totalNewWords == 0 {
		return make([]string, len(originalTexts))
	}

	assignedCounts := assignCounts(originalTexts, totalNewWords)
	assignedCounts = reconcile(assignedCounts, totalNewWords)

	return slice(newWords, assignedCounts)
}

// assignCounts computes the per-leaf word share before reconciliation.
func assignCounts(originalTexts []string, totalNewWords int) []int {
	currentCounts := make([]int, len(originalTexts))
	totalCurrentWords := 0
	for i, text := range originalTexts {
		currentCounts[i] = textnorm.WordCount(text)
		totalCurrentWords += currentCounts[i]
	}

	assigned := make([]int, len(originalTexts))

	if totalCurrentWords > 0 {
		for i, count := range currentCounts {
			proportion := float64(count) / float64(totalCurrentWords)
			assigned[i] = int(math.RoundToEven(proportion * float64(totalNewWords)))
		}
		return assigned
	}

	// All originals are empty after normalization: split as evenly as
	// possible, the first remainder leaves taking one extra word.
	base := totalNewWords / len(originalTexts)
	remainder := totalNewWords % len(originalTexts)
	for i := range assigned {
		assigned[i] = base
		if i < remainder {
			assigned[i]++
		}
	}
	return assigned
}

// reconcile corrects rounding drift so the counts sum to totalNewWords.
func reconcile(assigned []int, totalNewWords int) []int {
	sum := 0
	for _, count := range assigned {
		sum += count
	}
	diff := totalNewWords - sum

	maxSteps := 2 * (totalNewWords + len(assigned))
	for step := 0; diff != 0; step++ {
		if step > maxSteps {
			// Termination safety: force the leftover onto the last leaf.
			last := len(assigned) - 1
			assigned[last] += diff
			if assigned[last] < 0 {
				assigned[last] = 0
			}
			break
		}

		target := step % len(assigned)
		adjustment := 1
		if diff < 0 {
			adjustment = -1
		}
		if assigned[target]+adjustment >= 0 {
			assigned[target] += adjustment
			diff -= adjustment
		}
	}

	return assigned
}

// slice cuts the replacement words sequentially by the assigned counts.
func slice(newWords []string, assigned []int) []string {
	pieces := make([]string, len(assigned))

	wordIdx := 0
	for i, count := range assigned {
		if count < 0 {
			count = 0
		}
		end := wordIdx + count
		if end > len(newWords) {
			end = len(newWords)
		}
		pieces[i] = strings.Join(newWords[wordIdx:end], " ")
		wordIdx = end
	}

	// Defensive: reconciliation guarantees nothing is left, but any
	// leftover words belong to the last leaf.
	if wordIdx < len(newWords) {
		remaining := strings.Join(newWords[wordIdx:], " ")
		pieces[len(pieces)-1] = strings.TrimSpace(pieces[len(pieces)-1] + " " + remaining)
	}

	return pieces
}
