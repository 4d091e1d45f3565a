package marketplace_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gold_tracker/internal/domain/entity"
	"gold_tracker/internal/domain/service/offer"
	"gold_tracker/internal/infrastructure/marketplace"
)

func TestExtractorExtract(t *testing.T) {
	page, err := os.ReadFile("testdata/category.html")
	require.NoError(t, err)

	testCases := []struct {
		name   string
		region string
		output []entity.RawOffer
	}{
		{
			name:   "Default region",
			region: "",
			output: []entity.RawOffer{
				{Server: "Ladon", PriceUSD: "0.000085", Offers: "12"},
				{Server: "Zinnervale", PriceUSD: "0,00009"},
				{Server: "Thirain", PriceUSD: "0.0001", Offers: "4"},
			},
		},
		{
			name:   "Other region",
			region: "NA East",
			output: []entity.RawOffer{
				{Server: "Mari", PriceUSD: "0.0002", Offers: "9"},
			},
		},
		{
			name:   "Unknown region",
			region: "Mars",
			output: []entity.RawOffer{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			extractor := marketplace.NewExtractor("", tc.region)

			result, err := extractor.Extract(strings.NewReader(string(page)))
			rq.NoError(err)
			rq.Equal(tc.output, result)
		})
	}
}

func TestExtractorNormalized(t *testing.T) {
	rq := require.New(t)

	page, err := os.Open("testdata/category.html")
	rq.NoError(err)

	defer page.Close()

	candidates, err := marketplace.NewExtractor("", "").Extract(page)
	rq.NoError(err)

	rq.Equal([]entity.Offer{
		{Server: "Ladon", Offers: 12, PriceUSD: 0.000085},
		{Server: "Zinnervale", PriceUSD: 0.00009},
		{Server: "Thirain", Offers: 4, PriceUSD: 0.0001},
	}, offer.Normalize(candidates))
}
