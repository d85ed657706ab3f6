package session

import (
	"context"
	"net/url"
	"time"

	"github.com/rohmanhakim/dom-patcher/internal/changelog"
	"github.com/rohmanhakim/dom-patcher/internal/domtree"
	"github.com/rohmanhakim/dom-patcher/internal/fetcher"
	"github.com/rohmanhakim/dom-patcher/internal/leaves"
	"github.com/rohmanhakim/dom-patcher/internal/metadata"
	"github.com/rohmanhakim/dom-patcher/pkg/failure"
)

/*
Responsibilities
- Compose fetch -> parse -> extract -> build for one page
- Enforce the fatal/non-fatal error split
- Record final session stats exactly once

Control Flow
- Fetch and parse failures are fatal: the whole batch aborts and no
  partial results are produced
- No-match suggestions and unresolvable locations are normal outcomes
- Suggestions are processed sequentially over an immutable leaf cache;
  results preserve input order 1:1

The session is synchronous and holds no shared mutable state across
runs, so callers may run independent sessions in parallel.
*/

type Session struct {
	metadataSink    metadata.MetadataSink
	finalizer       metadata.SessionFinalizer
	pageFetcher     fetcher.Fetcher
	treeProvider    *domtree.TreeProvider
	contextRenderer changelog.ContextRenderer
}

// NewSession wires a session. finalizer and contextRenderer may be nil
// when final stats or context snippets are not wanted.
func NewSession(
	metadataSink metadata.MetadataSink,
	finalizer metadata.SessionFinalizer,
	pageFetcher fetcher.Fetcher,
	treeProvider *domtree.TreeProvider,
	contextRenderer changelog.ContextRenderer,
) Session {
	return Session{
		metadataSink:    metadataSink,
		finalizer:       finalizer,
		pageFetcher:     pageFetcher,
		treeProvider:    treeProvider,
		contextRenderer: contextRenderer,
	}
}

// Run locates every suggestion's phrase on the page at pageURL and
// prepares per-leaf change logs. An empty suggestions list yields an
// Outcome with an empty results list.
func (s *Session) Run(
	ctx context.Context,
	pageURL url.URL,
	suggestions []changelog.Suggestion,
	param Param,
) (Outcome, failure.ClassifiedError) {
	startTime := time.Now()

	fetchResult, err := s.pageFetcher.Fetch(
		ctx,
		fetcher.NewFetchParam(pageURL, param.userAgent, param.timeout),
		fetcher.NewSettleParam(param.settleAttempts, param.settleDelay, param.hashAlgo),
		param.retryParam,
	)
	if err != nil {
		s.finalize(len(suggestions), nil, 1, startTime)
		return Outcome{}, err
	}

	doc, err := s.treeProvider.Parse(pageURL.String(), fetchResult.Body())
	if err != nil {
		s.finalize(len(suggestions), nil, 1, startTime)
		return Outcome{}, err
	}

	cache := leaves.Extract(doc.ContentRoot())

	builder := changelog.NewBuilder(s.metadataSink, &doc, s.contextRenderer)
	results := builder.Build(cache, suggestions)

	outcome := Outcome{
		pageURL:   pageURL,
		results:   results,
		leafCount: len(cache),
		duration:  time.Since(startTime),
	}
	for _, result := range results {
		if len(result.ChangeLog) > 0 {
			outcome.matchedCount++
			outcome.entryCount += len(result.ChangeLog)
		}
	}

	s.finalize(len(suggestions), &outcome, 0, startTime)
	return outcome, nil
}

func (s *Session) finalize(totalSuggestions int, outcome *Outcome, totalErrors int, startTime time.Time) {
	if s.finalizer == nil {
		return
	}

	matched := 0
	entries := 0
	if outcome != nil {
		matched = outcome.matchedCount
		entries = outcome.entryCount
	}

	s.finalizer.RecordFinalSessionStats(
		totalSuggestions,
		matched,
		entries,
		totalErrors,
		time.Since(startTime),
	)
}
