package report

import (
	"fmt"

	"github.com/rohmanhakim/dom-patcher/internal/metadata"
	"github.com/rohmanhakim/dom-patcher/pkg/failure"
)

type RenderErrorCause string

const (
	ErrCauseRenderFailure RenderErrorCause = "render failure"
	ErrCauseNilNode       RenderErrorCause = "nil node"
)

type RenderError struct {
	Message   string
	Retryable bool
	Cause     RenderErrorCause
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error: %s", e.Cause)
}

func (e *RenderError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapRenderErrorToMetadataCause maps report-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapRenderErrorToMetadataCause(err *RenderError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseRenderFailure, ErrCauseNilNode:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
