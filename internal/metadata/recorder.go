package metadata

import (
	"time"
)

/*
Metadata Collected
- Fetch timestamps and status codes
- Settle polling attempts
- Per-suggestion outcomes
- Artifact paths

Logging Goals
- Debuggable session behavior
- Post-run auditability
- Failure diagnostics

Structured logging is preferred.

Allowed:
- Primitive values
- Timestamps
- URLs (as values, not objects with behavior)
- Hashes
- Status codes
- Durations
- Identifiers (suggestion index, session ID)

Determinism guarantees:
 - Metadata does not affect control flow
 - Errors do not reorder suggestion processing
 - Output is stable given identical inputs

Metadata is write-only.
No component may read metadata to influence matching decisions.
*/

/*
Recorder captures structured session events.
It must not:
- perform I/O decisions
- affect control flow
- impose a logging backend
Ordering guarantees:
- Events are recorded synchronously in the order they are received.
- Ordering is provided for debuggability, not causality.
*/
type Recorder struct {
	sessionId string
}

func NewRecorder(sessionId string) Recorder {
	return Recorder{
		sessionId: sessionId,
	}
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {

}

func (r *Recorder) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	retryCount int,
	settleAttempts int,
) {
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {}

/*
RecordFinalSessionStats records a terminal, derived summary of a completed session.

Contract:
  - MUST be called exactly once per session execution.
  - MUST be called only after all suggestions have been processed
    (or the session aborted on a fatal failure).
  - The provided stats MUST be derived from session state,
    not accumulated incrementally via the recorder.
  - Recorded stats MUST NOT influence control flow.
*/
func (r *Recorder) RecordFinalSessionStats(
	totalSuggestions int,
	totalMatched int,
	totalEntries int,
	totalErrors int,
	duration time.Duration,
) {
	stats := sessionStats{
		totalSuggestions: totalSuggestions,
		totalMatched:     totalMatched,
		totalEntries:     totalEntries,
		totalErrors:      totalErrors,
		durationMs:       duration.Milliseconds(),
	}

	r.append(stats)
}

func (r *Recorder) append(sessionStats) {}

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)

	RecordFetch(
		fetchUrl string,
		httpStatus int,
		duration time.Duration,
		contentType string,
		retryCount int,
		settleAttempts int,
	)
	RecordArtifact(kind ArtifactKind, path string, attrs []Attribute)
}

type SessionFinalizer interface {
	RecordFinalSessionStats(
		totalSuggestions int,
		totalMatched int,
		totalEntries int,
		totalErrors int,
		duration time.Duration,
	)
}

// NoopSink, struct that implements metadata.MetadataSink but does nothing
// Session (or Test) can decide whether to inject Recorder or NoopSink
// Purpose is to make metadata orthogonal

type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {

}

func (n *NoopSink) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	retryCount int,
	settleAttempts int,
) {
}

func (n *NoopSink) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {}
