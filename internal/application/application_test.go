package application

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gold_tracker/internal/config"
	"gold_tracker/internal/infrastructure/marketplace"
)

func TestNewOfferSource(t *testing.T) {
	testCases := []struct {
		name   string
		mode   string
		source any
		errMsg string
	}{
		{name: "HTTP", mode: config.ScraperModeHTTP, source: &marketplace.HTTPSource{}},
		{name: "Browser", mode: config.ScraperModeBrowser, source: &marketplace.BrowserSource{}},
		{name: "File", mode: config.ScraperModeFile, source: &marketplace.FileSource{}},
		{name: "Unknown", mode: "ftp", errMsg: "unknown scraper mode"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			var cfg config.Config
			cfg.Scraper.Mode = tc.mode
			cfg.Scraper.URL = "https://example.com"
			cfg.Scraper.FilePath = "offers.json"

			source, err := newOfferSource(cfg)
			if tc.errMsg != "" {
				rq.ErrorContains(err, tc.errMsg)
				return
			}

			rq.NoError(err)
			rq.IsType(tc.source, source)
		})
	}
}
