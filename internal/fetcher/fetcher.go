package fetcher

import (
	"context"

	"github.com/rohmanhakim/dom-patcher/pkg/failure"
	"github.com/rohmanhakim/dom-patcher/pkg/retry"
)

type Fetcher interface {
	Fetch(
		ctx context.Context,
		fetchParam FetchParam,
		settleParam SettleParam,
		retryParam retry.RetryParam,
	) (FetchResult, failure.ClassifiedError)
}
