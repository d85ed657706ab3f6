package changelog

import (
	"fmt"
	"time"

	"golang.org/x/net/html"

	"github.com/rohmanhakim/dom-patcher/internal/distribute"
	"github.com/rohmanhakim/dom-patcher/internal/leaves"
	"github.com/rohmanhakim/dom-patcher/internal/matcher"
	"github.com/rohmanhakim/dom-patcher/internal/metadata"
	"github.com/rohmanhakim/dom-patcher/internal/textnorm"
	"github.com/rohmanhakim/dom-patcher/pkg/failure"
)

/*
Responsibilities
- Drive the matcher and distributor once per suggestion
- Resolve each matched leaf's location path
- Assemble Results in suggestion input order

Outcome Semantics
- Whitespace-only CurrentVal short-circuits: no search, empty change log
- No match is a normal outcome, not an error
- An unresolvable location degrades to a sentinel path, never aborts
- A distribution length mismatch (unreachable by contract) falls back to
  assigning the whole NewVal to the first entry and flags the Result
*/

// Locator resolves a structural location string for a matched owner
// element. Sentinel strings stand in for unresolvable locations.
type Locator interface {
	Locate(n *html.Node) string
}

// ContextRenderer converts a matched element's subtree into a
// reviewer-facing markdown snippet. Rendering failures degrade to an
// empty snippet.
type ContextRenderer interface {
	Render(n *html.Node) (string, failure.ClassifiedError)
}

type Builder struct {
	metadataSink    metadata.MetadataSink
	locator         Locator
	contextRenderer ContextRenderer
}

// NewBuilder wires a change-log builder. contextRenderer may be nil, in
// which case results carry no context snippet.
func NewBuilder(
	metadataSink metadata.MetadataSink,
	locator Locator,
	contextRenderer ContextRenderer,
) Builder {
	return Builder{
		metadataSink:    metadataSink,
		locator:         locator,
		contextRenderer: contextRenderer,
	}
}

// Build processes suggestions against the session's leaf cache and
// returns one Result per suggestion, preserving input order 1:1.
func (b *Builder) Build(cache leaves.Cache, suggestions []Suggestion) []Result {
	results := make([]Result, 0, len(suggestions))

	for _, suggestion := range suggestions {
		results = append(results, b.buildOne(cache, suggestion))
	}

	return results
}

func (b *Builder) buildOne(cache leaves.Cache, suggestion Suggestion) Result {
	result := Result{
		CurrentVal: suggestion.CurrentVal,
		NewVal:     suggestion.NewVal,
		ChangeLog:  []Entry{},
	}

	target := textnorm.Normalize(suggestion.CurrentVal)
	if target == "" {
		// Degenerate target: never reaches the matcher.
		return result
	}

	run, found := matcher.FindRun(cache, target)
	if !found {
		return result
	}

	matched := cache[run.Start() : run.End()+1]

	originalTexts := make([]string, 0, len(matched))
	for _, leaf := range matched {
		originalTexts = append(originalTexts, leaf.RawText())
	}

	distributed := distribute.Distribute(suggestion.NewVal, originalTexts)

	entries := make([]Entry, 0, len(matched))
	for i, leaf := range matched {
		entry := Entry{
			LocationPath: b.locator.Locate(leaf.Owner()),
			CurrentText:  leaf.RawText(),
		}
		if i < len(distributed) {
			entry.NewText = distributed[i]
		}
		entries = append(entries, entry)
	}

	if len(distributed) != len(entries) {
		// Unreachable given the distributor's contract, but the fallback
		// must be observable rather than silently wrong.
		b.recordDistributionMismatch(suggestion, len(entries), len(distributed))
		for i := range entries {
			entries[i].NewText = ""
		}
		entries[0].NewText = suggestion.NewVal
		result.Degraded = true
	}

	result.ChangeLog = entries
	result.ContextMarkdown = b.renderContext(matched[0].Owner())
	return result
}

func (b *Builder) renderContext(owner *html.Node) string {
	if b.contextRenderer == nil {
		return ""
	}
	snippet, err := b.contextRenderer.Render(owner)
	if err != nil {
		return ""
	}
	return snippet
}

func (b *Builder) recordDistributionMismatch(suggestion Suggestion, entryCount int, pieceCount int) {
	b.metadataSink.RecordError(
		time.Now(),
		"changelog",
		"Builder.Build",
		metadata.CauseInvariantViolation,
		fmt.Sprintf("distributed %d pieces across %d matched leaves", pieceCount, entryCount),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrSuggestion, suggestion.CurrentVal),
		},
	)
}
