package cmd

// Aliases for white-box access from the external test package.
var (
	ParseSuggestionPair = parseSuggestionPair
	LoadSuggestions     = loadSuggestions
)
