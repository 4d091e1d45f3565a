package offer

import (
	"bytes"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"gold_tracker/internal/domain"
	"gold_tracker/internal/domain/entity"
	"gold_tracker/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

var null = []byte("null") //nolint:gochecknoglobals

// DecodeCandidates читает JSON-массив объектов-кандидатов. Элементы, не
// являющиеся объектами, пропускаются. Документ не массив даёт ошибку
// InputShape, пустой документ или null дают пустой список.
func DecodeCandidates(data []byte) ([]entity.RawOffer, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, null) {
		return []entity.RawOffer{}, nil
	}

	var items []jsoniter.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, domain.WrapError(err, errcodes.InputShape, "offer candidates must be a JSON array")
	}

	result := make([]entity.RawOffer, 0, len(items))

	for _, item := range items {
		var fields map[string]any
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			continue
		}

		result = append(result, entity.RawOffer{
			Server:   fields["server"],
			PriceUSD: fields["priceUSD"],
			Offers:   fields["offers"],
		})
	}

	return result, nil
}

// NormalizeJSON декодирует документ кандидатов и нормализует его.
func NormalizeJSON(data []byte) ([]entity.Offer, error) {
	candidates, err := DecodeCandidates(data)
	if err != nil {
		return nil, fmt.Errorf("offer.DecodeCandidates: %w", err)
	}

	return Normalize(candidates), nil
}
