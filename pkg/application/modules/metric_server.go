package modules

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"gold_tracker/pkg/metrics"
)

// MetricServer exposes the refresh counters on /metrics. An empty
// ListenAddress disables it.
type MetricServer struct {
	ListenAddress string
}

func (m MetricServer) Run(ctx context.Context, g *errgroup.Group) {
	if m.ListenAddress == "" {
		logger(ctx).Info("metric server disabled")

		return
	}

	prometheusServer := metrics.NewPrometheusServer(
		m.ListenAddress,
	)

	g.Go(func() error {
		if err := prometheusServer.Run(ctx); err != nil {
			return fmt.Errorf("prometheusServer.Run: %w", err)
		}

		return nil
	})
}
