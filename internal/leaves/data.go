package leaves

import "golang.org/x/net/html"

// Leaf Cache

// Leaf is one text node retained from the document walk.
// Owner is a non-owning back-reference to the element that directly
// contains the text; it is used for location lookup only and must never
// be mutated. NormalizedText is guaranteed non-empty for any Leaf that
// reaches the cache.
type Leaf struct {
	owner          *html.Node
	rawText        string
	normalizedText string
}

func NewLeaf(owner *html.Node, rawText string, normalizedText string) Leaf {
	return Leaf{
		owner:          owner,
		rawText:        rawText,
		normalizedText: normalizedText,
	}
}

// Owner returns the element that directly contains this text node.
func (l Leaf) Owner() *html.Node {
	return l.owner
}

// RawText returns the text node content exactly as parsed,
// with original whitespace and entities decoded by the parser preserved.
func (l Leaf) RawText() string {
	return l.rawText
}

// NormalizedText returns the canonical comparison form of the text.
func (l Leaf) NormalizedText() string {
	return l.normalizedText
}

// Cache is the ordered sequence of retained leaves for one page session.
// Document order is preserved; contiguity in the matcher is defined
// purely by adjacency in this sequence. The cache is built once per
// session and read-only afterwards.
type Cache []Leaf
