package changelog

// Change-log assembly

// Suggestion is one caller-supplied replacement request. CurrentVal is
// the phrase to locate; NewVal is its replacement. Immutable input.
type Suggestion struct {
	CurrentVal string `json:"current_val"`
	NewVal     string `json:"new_val"`
}

// Entry is one leaf's share of a replacement. CurrentText is always the
// raw (pre-normalization) text of that specific leaf, never the
// normalized form, so original whitespace survives for leaves whose
// distribution assigns zero or partial new words.
type Entry struct {
	LocationPath string `json:"xPath"`
	CurrentText  string `json:"current_text"`
	NewText      string `json:"new_text"`
}

// Result is the outcome for one suggestion, in input order. ChangeLog is
// empty when no run was found. Degraded is set only by the defensive
// distribution-mismatch fallback and is observable by the caller.
type Result struct {
	CurrentVal      string  `json:"current_val"`
	NewVal          string  `json:"new_val"`
	ChangeLog       []Entry `json:"change_log"`
	ContextMarkdown string  `json:"context_markdown,omitempty"`
	Degraded        bool    `json:"degraded,omitempty"`
}
