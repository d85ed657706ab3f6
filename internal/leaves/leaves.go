package leaves

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/rohmanhakim/dom-patcher/internal/textnorm"
)

/*
Responsibilities
- Walk all text nodes under a root in document order
- Resolve each text node's immediate owner element
- Filter leaves owned by non-content elements
- Drop leaves that normalize to the empty string

The resulting Cache is an explicit per-session value handed to the
matcher, not package-level state, so sessions are reentrant.
*/

// nonContentTags are owner tags whose text never participates in matching,
// regardless of content. Comparison is case-insensitive.
var nonContentTags = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"title":    {},
	"meta":     {},
	"link":     {},
	"head":     {},
}

// Extract walks all text-bearing leaf nodes under root in document order
// and returns the retained leaves as a Cache. A nil root yields an empty
// cache, not an error.
func Extract(root *html.Node) Cache {
	if root == nil {
		return Cache{}
	}

	var cache Cache
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if leaf, ok := retain(n); ok {
				cache = append(cache, leaf)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return cache
}

// retain decides whether a single text node survives extraction.
func retain(n *html.Node) (Leaf, bool) {
	owner := n.Parent
	if owner == nil {
		// Text node with no owner element; nothing to locate later.
		return Leaf{}, false
	}

	if owner.Type == html.ElementNode {
		if _, skip := nonContentTags[strings.ToLower(owner.Data)]; skip {
			return Leaf{}, false
		}
	}

	rawText := n.Data
	normalizedText := textnorm.Normalize(rawText)
	if normalizedText == "" {
		return Leaf{}, false
	}

	return NewLeaf(owner, rawText, normalizedText), true
}
