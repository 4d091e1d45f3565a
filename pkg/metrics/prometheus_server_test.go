package metrics_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"gold_tracker/pkg/metrics"
)

func TestPrometheusServer(t *testing.T) {
	rq := require.New(t)

	registry := prometheus.NewRegistry()
	published := prometheus.NewGauge(prometheus.GaugeOpts{ //nolint:exhaustruct
		Name: "gold_tracker_offers_published",
		Help: "Offers in the last published snapshot.",
	})
	registry.MustRegister(published)
	published.Set(4)

	testCases := []struct {
		name          string
		listenAddress string
		endpoint      string
		statusCode    int
		body          string
	}{
		{
			name:          "Metrics handler",
			listenAddress: ":10010",
			endpoint:      "http://:10010/metrics",
			statusCode:    http.StatusOK,
			body:          "gold_tracker_offers_published 4",
		},
		{
			name:          "Invalid endpoint",
			listenAddress: ":10020",
			endpoint:      "http://:10020/api/prices",
			statusCode:    http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			prometheusServer := metrics.NewPrometheusServer(tc.listenAddress).WithGatherer(registry)

			g, ctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				return prometheusServer.Run(ctx)
			})

			// Wait for server to start.
			time.Sleep(time.Second)

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, tc.endpoint, http.NoBody)
			rq.NoError(err)

			resp, err := http.DefaultClient.Do(req)
			rq.NoError(err)

			body, err := io.ReadAll(resp.Body)
			rq.NoError(err)
			rq.NoError(resp.Body.Close())

			rq.Equal(tc.statusCode, resp.StatusCode)
			rq.Contains(string(body), tc.body)

			cancel()

			rq.NoError(g.Wait())
		})
	}
}
