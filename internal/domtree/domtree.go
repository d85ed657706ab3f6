package domtree

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/rohmanhakim/dom-patcher/internal/metadata"
	"github.com/rohmanhakim/dom-patcher/pkg/failure"
)

/*
Responsibilities
- Parse raw markup into a navigable tree
- Resolve the content root (<body>, falling back to <html>)
- Produce stable XPath-style location strings for elements

Location Semantics
- Paths are absolute, rooted at the document: /html/body/div[2]/p
- A positional predicate [n] is emitted only when the element has
  same-tag element siblings
- Unresolvable locations yield sentinel strings, never errors
*/

type TreeProvider struct {
	metadataSink metadata.MetadataSink
}

func NewTreeProvider(
	metadataSink metadata.MetadataSink,
) TreeProvider {
	return TreeProvider{
		metadataSink: metadataSink,
	}
}

func (t *TreeProvider) Parse(
	sourceUrl string,
	htmlByte []byte,
) (Document, failure.ClassifiedError) {
	doc, err := parse(htmlByte)
	if err != nil {
		var parseError *ParseError
		errors.As(err, &parseError)
		t.metadataSink.RecordError(
			time.Now(),
			"domtree",
			"TreeProvider.Parse",
			mapParseErrorToMetadataCause(parseError),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, sourceUrl),
			},
		)
		return Document{}, parseError
	}
	return doc, nil
}

func parse(htmlByte []byte) (Document, error) {
	root, err := html.Parse(bytes.NewReader(htmlByte))
	if err != nil {
		return Document{}, &ParseError{
			Message:   fmt.Sprintf("failed to parse HTML: %v", err),
			Retryable: false,
			Cause:     ErrCauseNotHTML,
		}
	}

	contentRoot := resolveContentRoot(root)
	if contentRoot == nil {
		return Document{}, &ParseError{
			Message:   "HTML body or html tag not found in the document",
			Retryable: false,
			Cause:     ErrCauseNoRoot,
		}
	}

	return Document{
		root:        root,
		contentRoot: contentRoot,
	}, nil
}

// resolveContentRoot prefers <body>; documents without one fall back to
// <html>.
func resolveContentRoot(root *html.Node) *html.Node {
	gqDoc := goquery.NewDocumentFromNode(root)

	if body := gqDoc.Find("body").First(); body.Length() > 0 {
		return body.Nodes[0]
	}
	if htmlTag := gqDoc.Find("html").First(); htmlTag.Length() > 0 {
		return htmlTag.Nodes[0]
	}
	return nil
}

// Locate produces an absolute XPath-style path identifying n within the
// document. Sentinels are returned for a nil element and for elements
// that do not belong to this document's tree.
func (d *Document) Locate(n *html.Node) string {
	if n == nil {
		return SentinelNoElement
	}

	var segments []string
	current := n
	for current != nil && current != d.root {
		if current.Type == html.ElementNode {
			segments = append(segments, pathSegment(current))
		}
		current = current.Parent
	}

	if current != d.root {
		return SentinelElementOrphan
	}

	// Segments were collected leaf-to-root; reverse into document order.
	var b strings.Builder
	for i := len(segments) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(segments[i])
	}
	if b.Len() == 0 {
		return SentinelElementOrphan
	}
	return b.String()
}

// pathSegment renders one element as tag or tag[position], counting only
// same-tag element siblings.
func pathSegment(n *html.Node) string {
	position := 1
	siblings := 0

	for sib := firstSibling(n); sib != nil; sib = sib.NextSibling {
		if sib.Type != html.ElementNode || sib.Data != n.Data {
			continue
		}
		siblings++
		if sib == n {
			position = siblings
		}
	}

	if siblings > 1 {
		return fmt.Sprintf("%s[%d]", n.Data, position)
	}
	return n.Data
}

func firstSibling(n *html.Node) *html.Node {
	if n.Parent != nil {
		return n.Parent.FirstChild
	}
	return n
}
