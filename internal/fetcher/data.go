package fetcher

import (
	"net/url"
	"time"

	"github.com/rohmanhakim/dom-patcher/pkg/hashutil"
)

// HTTP boundary

type FetchParam struct {
	fetchUrl  url.URL
	userAgent string
	timeout   time.Duration
}

func NewFetchParam(fetchUrl url.URL, userAgent string, timeout time.Duration) FetchParam {
	return FetchParam{
		fetchUrl:  fetchUrl,
		userAgent: userAgent,
		timeout:   timeout,
	}
}

// SettleParam bounds the "page settled" poll. Without a scripted browser
// there is no network-idle signal, so the fetcher re-fetches until two
// consecutive bodies hash identically, up to maxAttempts polls spaced
// delay apart. The last body wins if stability is never observed.
type SettleParam struct {
	maxAttempts int
	delay       time.Duration
	hashAlgo    hashutil.HashAlgo
}

func NewSettleParam(maxAttempts int, delay time.Duration, hashAlgo hashutil.HashAlgo) SettleParam {
	return SettleParam{
		maxAttempts: maxAttempts,
		delay:       delay,
		hashAlgo:    hashAlgo,
	}
}

type FetchResult struct {
	url  url.URL
	body []byte
	meta ResponseMeta
}

func (f *FetchResult) URL() url.URL {
	return f.url
}

func (f *FetchResult) Body() []byte {
	return f.body
}

func (f *FetchResult) Code() int {
	return f.meta.statusCode
}

func (f *FetchResult) SizeByte() uint64 {
	return f.meta.transferredSizeByte
}

func (f *FetchResult) Headers() map[string]string {
	return f.meta.responseHeaders
}

// SettleAttempts returns how many poll fetches were performed before the
// body was considered settled.
func (f *FetchResult) SettleAttempts() int {
	return f.meta.settleAttempts
}

type ResponseMeta struct {
	statusCode          int
	transferredSizeByte uint64
	responseHeaders     map[string]string
	settleAttempts      int
}

// NewFetchResultForTest creates a FetchResult for testing purposes.
// This allows test packages to construct FetchResult values without
// accessing unexported fields directly.
func NewFetchResultForTest(
	url url.URL,
	body []byte,
	statusCode int,
	transferredSizeByte uint64,
	responseHeaders map[string]string,
) FetchResult {
	return FetchResult{
		url:  url,
		body: body,
		meta: ResponseMeta{
			statusCode:          statusCode,
			transferredSizeByte: transferredSizeByte,
			responseHeaders:     responseHeaders,
		},
	}
}
