package marketplace_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gold_tracker/internal/infrastructure/marketplace"
	"gold_tracker/pkg/httpx"
)

func TestHTTPSourceFetchRawOffers(t *testing.T) {
	page, err := os.ReadFile("testdata/category.html")
	require.NoError(t, err)

	testCases := []struct {
		name     string
		statuses []int
		count    int
		status   int
		requests int32
	}{
		{name: "Success", statuses: []int{http.StatusOK}, count: 3, requests: 1},
		{
			name:     "Retry after server error",
			statuses: []int{http.StatusServiceUnavailable, http.StatusTooManyRequests, http.StatusOK},
			count:    3,
			requests: 3,
		},
		{
			name:     "Retries exhausted",
			statuses: []int{http.StatusBadGateway, http.StatusBadGateway, http.StatusBadGateway, http.StatusOK},
			status:   http.StatusBadGateway,
			requests: 3,
		},
		{name: "Not found is final", statuses: []int{http.StatusNotFound}, status: http.StatusNotFound, requests: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			var requests atomic.Int32

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := requests.Add(1)
				rq.Equal(marketplace.DefaultUserAgent, r.UserAgent())

				status := tc.statuses[min(int(n), len(tc.statuses))-1]
				w.WriteHeader(status)

				if status == http.StatusOK {
					_, _ = w.Write(page)
				}
			}))
			defer server.Close()

			source := marketplace.NewHTTPSource(server.URL, marketplace.NewExtractor("", "")).
				WithRetryInterval(time.Millisecond).
				WithTransport(httpx.NewLoggingRoundTripper(http.DefaultTransport))

			candidates, err := source.FetchRawOffers(context.Background())
			rq.Equal(tc.requests, requests.Load())

			if tc.status != 0 {
				var fetchErr *marketplace.FetchError

				rq.True(errors.As(err, &fetchErr))
				rq.Equal(tc.status, fetchErr.Status)

				return
			}

			rq.NoError(err)
			rq.Len(candidates, tc.count)
		})
	}
}

func TestHTTPSourceCanceled(t *testing.T) {
	rq := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := marketplace.NewHTTPSource("http://127.0.0.1:1", marketplace.NewExtractor("", "")).FetchRawOffers(ctx)
	rq.ErrorIs(err, context.Canceled)
}
