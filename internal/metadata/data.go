package metadata

import (
	"time"
)

type FetchEvent struct {
	fetchUrl       string
	httpStatus     int
	duration       time.Duration
	contentType    string
	retryCount     int
	settleAttempts int
}

/*
sessionStats
  - Represents a terminal, derived summary of a completed session
  - Contains only aggregate counts and durations
  - Is computed by the session after all suggestions are processed
  - Is recorded exactly once
  - Must not influence matching, distribution, or session termination
  - Must be constructed without reading metadata
*/
type sessionStats struct {
	totalSuggestions int
	totalMatched     int
	totalEntries     int
	totalErrors      int
	durationMs       int64
}

type ArtifactRecord struct {
	paths string
}

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging, metrics, reporting).

	Rules:
	 - ErrorCause is for observability only.
	 - It must never be used to derive retry, continuation, or abort decisions.
	 - Any use of metadata.ErrorCause outside logging, metrics, or reporting is a design violation.
	 - ErrorCause MUST NOT influence control flow.
	 - ErrorCause values MUST have stable, package-agnostic semantics.
	 - Pipeline packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.
	Non-goals:
	 - ErrorCause does not encode severity.
	 - ErrorCause does not imply retryability.
	 - ErrorCause does not imply session termination.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

/*
Canonical ErrorCause Table

# CauseUnknown

Meaning: the failure does not clearly match any defined cause.

# CauseNetworkFailure

Meaning: the page could not be fetched (transport error, timeout,
exhausted retries, empty response).

# CauseContentInvalid

Meaning: the fetched content could not be used (non-HTML payload,
unparseable markup, no body or html element).

# CauseLocationUnresolved

Meaning: a matched element's structural location path could not be
computed. Non-fatal; the entry carries a sentinel path instead.

# CauseStorageFailure

Meaning: a result artifact could not be written.

# CauseRetryFailure

Meaning: the retry handler itself failed (zero attempts, exhausted).

# CauseInvariantViolation

Meaning: an internal contract was broken (e.g. distribution output
length differs from the matched run length).
*/
const (
	CauseUnknown ErrorCause = iota
	CauseNetworkFailure
	CauseContentInvalid
	CauseLocationUnresolved
	CauseStorageFailure
	CauseRetryFailure
	CauseInvariantViolation
)

type errorEvent struct {
	observedAt  time.Time
	packageName string
	action      string
	cause       ErrorCause
	errorString string
	attrs       []Attribute
}

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrTime       AttributeKey = "time"
	AttrURL        AttributeKey = "url"
	AttrHost       AttributeKey = "host"
	AttrPath       AttributeKey = "path"
	AttrField      AttributeKey = "field"
	AttrHTTPStatus AttributeKey = "http_status"
	AttrSuggestion AttributeKey = "suggestion"
	AttrMessage    AttributeKey = "message"
	AttrWritePath  AttributeKey = "write_path"
)

type ArtifactKind string

const (
	ArtifactResultJSON  ArtifactKind = "result_json"
	ArtifactSummaryMD   ArtifactKind = "summary_md"
	ArtifactPreviewHTML ArtifactKind = "preview_html"
)
