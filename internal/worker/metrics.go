package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSuccess = "success"
	resultEmpty   = "empty"
	resultFailed  = "failed"
	resultSkipped = "skipped"
)

//nolint:gochecknoglobals
var (
	refreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gold_tracker_refresh_total",
		Help: "Refresh cycles by result.",
	}, []string{"result"})

	refreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gold_tracker_refresh_duration_seconds",
		Help:    "Duration of refresh cycles.",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
	})

	offersPublished = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gold_tracker_offers_published",
		Help: "Offers in the currently published snapshot.",
	})

	lastSuccess = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gold_tracker_last_refresh_success_timestamp_seconds",
		Help: "Unix time of the last published snapshot.",
	})
)
