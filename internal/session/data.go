package session

import (
	"net/url"
	"time"

	"github.com/rohmanhakim/dom-patcher/internal/changelog"
	"github.com/rohmanhakim/dom-patcher/pkg/hashutil"
	"github.com/rohmanhakim/dom-patcher/pkg/retry"
)

// Orchestration boundary

// Param carries everything one run needs from configuration. The
// session itself holds no cross-run state; two sessions with equal
// params and inputs behave identically.
type Param struct {
	userAgent      string
	timeout        time.Duration
	settleAttempts int
	settleDelay    time.Duration
	hashAlgo       hashutil.HashAlgo
	retryParam     retry.RetryParam
}

func NewParam(
	userAgent string,
	timeout time.Duration,
	settleAttempts int,
	settleDelay time.Duration,
	hashAlgo hashutil.HashAlgo,
	retryParam retry.RetryParam,
) Param {
	return Param{
		userAgent:      userAgent,
		timeout:        timeout,
		settleAttempts: settleAttempts,
		settleDelay:    settleDelay,
		hashAlgo:       hashAlgo,
		retryParam:     retryParam,
	}
}

// Outcome is the terminal value of one successful session: the results
// in suggestion input order plus derived aggregates.
type Outcome struct {
	pageURL      url.URL
	results      []changelog.Result
	leafCount    int
	matchedCount int
	entryCount   int
	duration     time.Duration
}

func (o *Outcome) PageURL() url.URL {
	return o.pageURL
}

func (o *Outcome) Results() []changelog.Result {
	return o.results
}

// LeafCount returns how many text leaves survived extraction.
func (o *Outcome) LeafCount() int {
	return o.leafCount
}

// MatchedCount returns how many suggestions found a run.
func (o *Outcome) MatchedCount() int {
	return o.matchedCount
}

// EntryCount returns the total change-log entries across all results.
func (o *Outcome) EntryCount() int {
	return o.entryCount
}

func (o *Outcome) Duration() time.Duration {
	return o.duration
}
