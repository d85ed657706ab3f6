package domtree

import (
	"fmt"

	"github.com/rohmanhakim/dom-patcher/internal/metadata"
	"github.com/rohmanhakim/dom-patcher/pkg/failure"
)

type ParseErrorCause string

const (
	ErrCauseNotHTML ParseErrorCause = "not HTML"
	ErrCauseNoRoot  ParseErrorCause = "no body or html element"
)

type ParseError struct {
	Message   string
	Retryable bool
	Cause     ParseErrorCause
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Cause)
}

func (e *ParseError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapParseErrorToMetadataCause maps domtree-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapParseErrorToMetadataCause(err *ParseError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseNotHTML, ErrCauseNoRoot:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
