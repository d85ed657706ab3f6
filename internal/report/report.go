package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"golang.org/x/net/html"

	"github.com/rohmanhakim/dom-patcher/internal/changelog"
	"github.com/rohmanhakim/dom-patcher/internal/metadata"
	"github.com/rohmanhakim/dom-patcher/pkg/failure"
)

/*
Design Principles
- Semantic fidelity over visual fidelity
- No inferred structure
- DOM order preserved

Rendering Rules
- Matched-element context converts to GitHub-Flavored Markdown
  (headings, code blocks, tables preserved structurally)
- The session summary is plain markdown, one section per suggestion
- Rendering never influences matching; it is purely reviewer-facing
*/

// ContextRule renders a matched owner element's subtree as markdown so a
// reviewer can see the surroundings of a pending patch.
type ContextRule struct {
	metadataSink metadata.MetadataSink
}

func NewContextRule(metadataSink metadata.MetadataSink) *ContextRule {
	return &ContextRule{
		metadataSink: metadataSink,
	}
}

// Compile-time interface check
var _ changelog.ContextRenderer = (*ContextRule)(nil)

func (c *ContextRule) Render(n *html.Node) (string, failure.ClassifiedError) {
	snippet, err := render(n)
	if err != nil {
		var renderError *RenderError
		errors.As(err, &renderError)
		c.metadataSink.RecordError(
			time.Now(),
			"report",
			"ContextRule.Render",
			mapRenderErrorToMetadataCause(renderError),
			err.Error(),
			[]metadata.Attribute{},
		)
		return "", renderError
	}
	return snippet, nil
}

// render is a stateless pure function that converts an HTML node into a
// markdown snippet using the html-to-markdown/v2 library.
func render(n *html.Node) (string, *RenderError) {
	if n == nil {
		return "", &RenderError{
			Message:   "cannot render nil HTML node",
			Retryable: false,
			Cause:     ErrCauseNilNode,
		}
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)

	markdown, err := conv.ConvertNode(n)
	if err != nil {
		return "", &RenderError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseRenderFailure,
		}
	}

	return strings.TrimSpace(string(markdown)), nil
}

// BuildSummary renders a markdown summary of one session: the page URL
// and a per-suggestion outcome section in input order.
func BuildSummary(pageURL string, results []changelog.Result) string {
	var b strings.Builder

	b.WriteString("# Text replacement report\n\n")
	b.WriteString(fmt.Sprintf("Page: %s\n\n", pageURL))

	for i, result := range results {
		b.WriteString(fmt.Sprintf("## Suggestion %d\n\n", i+1))
		b.WriteString(fmt.Sprintf("- Current: `%s`\n", result.CurrentVal))
		b.WriteString(fmt.Sprintf("- Replacement: `%s`\n", result.NewVal))

		if len(result.ChangeLog) == 0 {
			b.WriteString("- Outcome: no match\n\n")
			continue
		}

		b.WriteString(fmt.Sprintf("- Outcome: matched %d text segment(s)\n", len(result.ChangeLog)))
		if result.Degraded {
			b.WriteString("- Warning: distribution fallback applied\n")
		}
		b.WriteString("\n")

		b.WriteString("| Location | Current text | New text |\n")
		b.WriteString("| --- | --- | --- |\n")
		for _, entry := range result.ChangeLog {
			b.WriteString(fmt.Sprintf(
				"| `%s` | %s | %s |\n",
				entry.LocationPath,
				tableCell(entry.CurrentText),
				tableCell(entry.NewText),
			))
		}
		b.WriteString("\n")

		if result.ContextMarkdown != "" {
			b.WriteString("Context:\n\n")
			b.WriteString(result.ContextMarkdown)
			b.WriteString("\n\n")
		}
	}

	return b.String()
}

// tableCell makes a raw text fragment safe inside a GFM table row.
func tableCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
