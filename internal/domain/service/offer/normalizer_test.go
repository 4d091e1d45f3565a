package offer_test

import (
	"encoding/json"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gold_tracker/internal/domain"
	"gold_tracker/internal/domain/entity"
	"gold_tracker/internal/domain/service/offer"
	"gold_tracker/pkg/errcodes"
	"gold_tracker/pkg/tests"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name   string
		input  []entity.RawOffer
		output []entity.Offer
	}{
		{
			name:   "Nil input",
			input:  nil,
			output: []entity.Offer{},
		},
		{
			name: "Lowest positive price wins",
			input: []entity.RawOffer{
				{Server: "Zinnervale", PriceUSD: "0.000085"},
				{Server: "Zinnervale", PriceUSD: 0.00009},
			},
			output: []entity.Offer{{Server: "Zinnervale", PriceUSD: 0.000085}},
		},
		{
			name: "Unpriced sorted last",
			input: []entity.RawOffer{
				{Server: "Thirain", PriceUSD: "N/A"},
				{Server: "Ladon", PriceUSD: 0.0001},
			},
			output: []entity.Offer{
				{Server: "Ladon", PriceUSD: 0.0001},
				{Server: "Thirain", PriceUSD: 0},
			},
		},
		{
			name: "Blank server dropped",
			input: []entity.RawOffer{
				{Server: "", PriceUSD: 0.0001},
				{Server: "   \t", PriceUSD: 0.0002},
				{Server: nil, PriceUSD: 0.0003},
				{Server: "Ladon", PriceUSD: 0.0004},
			},
			output: []entity.Offer{{Server: "Ladon", PriceUSD: 0.0004}},
		},
		{
			name: "Priced duplicate replaces unpriced",
			input: []entity.RawOffer{
				{Server: "Ladon", PriceUSD: nil, Offers: 3},
				{Server: "Ladon", PriceUSD: "0.0001", Offers: 7},
			},
			output: []entity.Offer{{Server: "Ladon", Offers: 7, PriceUSD: 0.0001}},
		},
		{
			name: "First seen wins among unpriced and equal prices",
			input: []entity.RawOffer{
				{Server: "Ratik", PriceUSD: "bad", Offers: 1},
				{Server: "Ratik", PriceUSD: nil, Offers: 2},
				{Server: "Ladon", PriceUSD: 0.0001, Offers: 3},
				{Server: "Ladon", PriceUSD: "0.0001", Offers: 4},
			},
			output: []entity.Offer{
				{Server: "Ladon", Offers: 3, PriceUSD: 0.0001},
				{Server: "Ratik", Offers: 1},
			},
		},
		{
			name: "Equal prices ordered by server",
			input: []entity.RawOffer{
				{Server: "Zinnervale", PriceUSD: 0.0001},
				{Server: "Arcturus", PriceUSD: 0.0001},
				{Server: "Ortuus"},
				{Server: "Elpon"},
			},
			output: []entity.Offer{
				{Server: "Arcturus", PriceUSD: 0.0001},
				{Server: "Zinnervale", PriceUSD: 0.0001},
				{Server: "Elpon"},
				{Server: "Ortuus"},
			},
		},
		{
			name: "Server whitespace collapsed",
			input: []entity.RawOffer{
				{Server: "  Ladon \n  Prime ", PriceUSD: 0.0002},
				{Server: "Ladon Prime", PriceUSD: 0.0001},
			},
			output: []entity.Offer{{Server: "Ladon Prime", PriceUSD: 0.0001}},
		},
		{
			name: "Server names are case sensitive",
			input: []entity.RawOffer{
				{Server: "ladon", PriceUSD: 0.0002},
				{Server: "Ladon", PriceUSD: 0.0001},
			},
			output: []entity.Offer{
				{Server: "Ladon", PriceUSD: 0.0001},
				{Server: "ladon", PriceUSD: 0.0002},
			},
		},
		{
			name:   "Numeric server",
			input:  []entity.RawOffer{{Server: 42, PriceUSD: 1}, {Server: 1.5, PriceUSD: 2}},
			output: []entity.Offer{{Server: "42", PriceUSD: 1}, {Server: "1.5", PriceUSD: 2}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			rq.Equal(tc.output, offer.Normalize(tc.input))
		})
	}
}

func TestNormalizePrice(t *testing.T) {
	testCases := []struct {
		name  string
		input any
		price float64
	}{
		{name: "Plain string", input: "0.000085", price: 0.000085},
		{name: "Currency text", input: "$0.000085 USD", price: 0.000085},
		{name: "Decimal comma", input: "0,000085", price: 0.000085},
		{name: "Grouping comma", input: "1,234", price: 1234},
		{name: "Several grouping commas", input: "1,234,567", price: 1234567},
		{name: "Several grouping dots", input: "1.234.567", price: 1234567},
		{name: "European format", input: "1.234,5", price: 1234.5},
		{name: "US format", input: "1,234.5", price: 1234.5},
		{name: "Not a number", input: "N/A", price: 0},
		{name: "Negative string", input: "-5", price: 0},
		{name: "Negative text", input: "USD -0.5", price: 0},
		{name: "NaN string", input: "NaN", price: 0},
		{name: "Dash separated label", input: "Sale - $0.00009", price: 0.00009},
		{name: "Region label with dash", input: "EU Central - 0.00009 USD", price: 0.00009},
		{name: "Minus before decimal point", input: "-.5", price: 0},
		{name: "Trailing period", input: "0.5 USD.", price: 0.5},
		{name: "Exponent", input: "8.5e-5", price: 0.000085},
		{name: "Exponent overflow", input: "1e400", price: 0},
		{name: "Hex float is not a number format", input: "0x1p-2", price: 12},
		{name: "Huge digit run", input: "$" + strings.Repeat("9", 400), price: 0},
		{name: "Nil", input: nil, price: 0},
		{name: "Integer", input: 3, price: 3},
		{name: "JSON number", input: json.Number("0.0001"), price: 0.0001},
		{name: "Negative float", input: -0.0001, price: 0},
		{name: "Infinity", input: math.Inf(1), price: 0},
		{name: "NaN", input: math.NaN(), price: 0},
		{name: "Unsupported type", input: true, price: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			result := offer.Normalize([]entity.RawOffer{{Server: "Ladon", PriceUSD: tc.input}})
			rq.Len(result, 1)
			rq.InDelta(tc.price, result[0].PriceUSD, 1e-12)
			rq.False(math.Signbit(result[0].PriceUSD))
		})
	}
}

func TestNormalizeOffers(t *testing.T) {
	testCases := []struct {
		name   string
		input  any
		offers int64
	}{
		{name: "Label", input: "12 offers", offers: 12},
		{name: "Grouped", input: "1,234", offers: 1234},
		{name: "Dotted grouping", input: "1.234", offers: 1234},
		{name: "Dotted grouping with label", input: "1.234 offers", offers: 1234},
		{name: "Exponent digits are stripped", input: "1e3", offers: 13},
		{name: "Dash separated label", input: "Stock - 15 offers", offers: 15},
		{name: "Negative string", input: "-3", offers: 0},
		{name: "No digits", input: "many", offers: 0},
		{name: "Overflow", input: "99999999999999999999", offers: 0},
		{name: "Float truncated", input: 7.9, offers: 7},
		{name: "Negative integer", input: -4, offers: 0},
		{name: "JSON number", input: json.Number("42"), offers: 42},
		{name: "Nil", input: nil, offers: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			result := offer.Normalize([]entity.RawOffer{{Server: "Ladon", Offers: tc.input}})
			rq.Len(result, 1)
			rq.Equal(tc.offers, result[0].Offers)
		})
	}
}

func TestNormalizeProperties(t *testing.T) {
	rq := require.New(t)
	random := tests.NewRandomizer()

	servers := []any{"Ladon", " Ladon ", "Thirain", "Ratik", "Zinnervale", "", "  ", nil, 7}
	prices := []any{"0.000085", "0,0001", "N/A", "-1", 0.00009, 0.0001, 0, -0.5, nil, "1,234", math.Inf(1)}
	offers := []any{"12 offers", 3, -2, "x", nil, 5.5}

	for range 200 {
		candidates := make([]entity.RawOffer, random.Intn(20))
		for i := range candidates {
			candidates[i] = entity.RawOffer{
				Server:   tests.Pick(random, servers),
				PriceUSD: tests.Pick(random, prices),
				Offers:   tests.Pick(random, offers),
			}
		}

		result := offer.Normalize(candidates)

		seen := make(map[string]bool, len(result))
		for _, o := range result {
			rq.NotEmpty(o.Server)
			rq.False(seen[o.Server], "duplicate %q", o.Server)
			seen[o.Server] = true

			rq.GreaterOrEqual(o.PriceUSD, 0.0)
			rq.False(math.IsInf(o.PriceUSD, 0) || math.IsNaN(o.PriceUSD))
			rq.GreaterOrEqual(o.Offers, int64(0))

			best := 0.0
			for _, c := range candidates {
				single := offer.Normalize([]entity.RawOffer{c})
				if len(single) == 1 && single[0].Server == o.Server && single[0].Priced() {
					if best == 0 || single[0].PriceUSD < best {
						best = single[0].PriceUSD
					}
				}
			}
			rq.InDelta(best, o.PriceUSD, 1e-12)
		}

		rq.True(slices.IsSortedFunc(result, offer.Compare))
		rq.Equal(result, offer.Normalize(offer.AsCandidates(result)))
	}
}

func TestDecodeCandidates(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		count  int
		errMsg string
	}{
		{name: "Empty document", input: "  ", count: 0},
		{name: "Null", input: "null", count: 0},
		{name: "Empty array", input: "[]", count: 0},
		{
			name:  "Non-object elements dropped",
			input: `[1, "x", null, {"server":"Ladon","priceUSD":"0.0001","offers":"12 offers"}, []]`,
			count: 1,
		},
		{name: "Object", input: `{"server":"Ladon"}`, errMsg: "offer candidates must be a JSON array"},
		{name: "Broken JSON", input: `[{"server":`, errMsg: "offer candidates must be a JSON array"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			candidates, err := offer.DecodeCandidates([]byte(tc.input))
			if tc.errMsg != "" {
				rq.ErrorContains(err, tc.errMsg)
				rq.True(domain.HasCode(err, errcodes.InputShape))

				return
			}

			rq.NoError(err)
			rq.Len(candidates, tc.count)
		})
	}
}

func TestNormalizeJSON(t *testing.T) {
	rq := require.New(t)

	result, err := offer.NormalizeJSON([]byte(`[
		{"server":" Thirain ","priceUSD":"N/A","offers":"4 offers"},
		{"server":"Ladon","priceUSD":0.0001,"offers":12},
		{"server":"Ladon","priceUSD":"0,00009"},
		{"priceUSD":0.00001}
	]`))
	rq.NoError(err)
	rq.Equal([]entity.Offer{
		{Server: "Ladon", PriceUSD: 0.00009},
		{Server: "Thirain", Offers: 4},
	}, result)

	_, err = offer.NormalizeJSON([]byte(`"Ladon"`))
	rq.True(domain.HasCode(err, errcodes.InputShape))
}
