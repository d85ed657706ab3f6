package domtree

import "golang.org/x/net/html"

// Tree boundary

// Document wraps one parsed HTML tree. The document owns its nodes; every
// other component only holds non-owning back-references into it and must
// not outlive the session the document belongs to.
type Document struct {
	root        *html.Node
	contentRoot *html.Node
}

// Root returns the parsed document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// ContentRoot returns the node the leaf walk starts from: <body>, or
// <html> when the document has no body.
func (d *Document) ContentRoot() *html.Node {
	return d.contentRoot
}

// Locator resolves a stable structural location string for an element.
// Implementations must return a sentinel string, never an error, when a
// location cannot be computed.
type Locator interface {
	Locate(n *html.Node) string
}

// Location sentinels returned when a path cannot be resolved. They are
// recorded in the change log in place of a path and never abort the run.
const (
	SentinelNoElement      = "XPATH_ERROR_NO_ELEMENT_PROVIDED"
	SentinelElementOrphan  = "XPATH_ERROR_ELEMENT_NOT_IN_TREE"
)

// NewDocumentForTest constructs a Document from pre-parsed nodes.
// This allows test packages to build documents without going through
// Parse.
func NewDocumentForTest(root *html.Node, contentRoot *html.Node) Document {
	return Document{
		root:        root,
		contentRoot: contentRoot,
	}
}
