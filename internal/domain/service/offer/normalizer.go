// Package offer превращает собранных кандидатов в канонический список
// предложений: одна запись на сервер, с лучшей ценой, сначала с ценой.
package offer

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"gold_tracker/internal/domain/entity"
)

// Normalize проверяет, схлопывает дубли и сортирует кандидатов. Ошибок не
// бывает: битые поля становятся нулями, кандидаты без сервера отбрасываются.
func Normalize(candidates []entity.RawOffer) []entity.Offer {
	result := make([]entity.Offer, 0, len(candidates))
	index := make(map[string]int, len(candidates))

	for _, candidate := range candidates {
		o, ok := canonicalize(candidate)
		if !ok {
			continue
		}

		i, seen := index[o.Server]
		if !seen {
			index[o.Server] = len(result)
			result = append(result, o)

			continue
		}

		if better(o, result[i]) {
			result[i] = o
		}
	}

	slices.SortFunc(result, Compare)

	return result
}

// Compare упорядочивает по возрастанию цены (без цены в конце), затем по
// имени сервера.
func Compare(a, b entity.Offer) int {
	if c := cmp.Compare(sortKey(a), sortKey(b)); c != 0 {
		return c
	}

	return strings.Compare(a.Server, b.Server)
}

// AsCandidates превращает канонические предложения обратно в кандидатов.
// Normalize(AsCandidates(x)) == x для любого x из Normalize.
func AsCandidates(offers []entity.Offer) []entity.RawOffer {
	result := make([]entity.RawOffer, len(offers))

	for i, o := range offers {
		result[i] = entity.RawOffer{
			Server:   o.Server,
			PriceUSD: o.PriceUSD,
			Offers:   o.Offers,
		}
	}

	return result
}

func canonicalize(candidate entity.RawOffer) (entity.Offer, bool) {
	server := parseServer(candidate.Server)
	if server == "" {
		return entity.Offer{}, false
	}

	return entity.Offer{
		Server:   server,
		Offers:   parseOffers(candidate.Offers),
		PriceUSD: parsePrice(candidate.PriceUSD),
	}, true
}

// better сообщает, должен ли candidate заменить current того же сервера:
// побеждает минимальная положительная цена, при равенстве более ранний.
func better(candidate, current entity.Offer) bool {
	if !candidate.Priced() {
		return false
	}

	return !current.Priced() || candidate.PriceUSD < current.PriceUSD
}

func sortKey(o entity.Offer) float64 {
	if o.Priced() {
		return o.PriceUSD
	}

	return math.Inf(1)
}
