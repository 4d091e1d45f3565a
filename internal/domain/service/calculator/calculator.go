// Package calculator пересчитывает количество золота в USD по каноническому предложению.
package calculator

import (
	"fmt"

	"gold_tracker/internal/domain"
	"gold_tracker/internal/domain/entity"
	"gold_tracker/pkg/errcodes"
)

// CommonQuantities суммы золота для быстрых пересчётов.
var CommonQuantities = []int64{10000, 50000, 100000, 500000} //nolint:gochecknoglobals,mnd

// Conversion стоимость количества золота в USD. При Available == false у
// предложения нет цены и Value не имеет смысла.
type Conversion struct {
	Quantity  int64
	Value     float64
	Available bool
}

// Convert возвращает quantity * price без округления.
func Convert(offer entity.Offer, quantity int64) (Conversion, error) {
	if quantity < 0 {
		return Conversion{}, domain.NewError(errcodes.InvalidQuantity, fmt.Sprintf("quantity must not be negative: %d", quantity))
	}

	if !offer.Priced() {
		return Conversion{Quantity: quantity}, nil
	}

	return Conversion{
		Quantity:  quantity,
		Value:     float64(quantity) * offer.PriceUSD,
		Available: true,
	}, nil
}

// BatchConvert пересчитывает все количества по одному предложению. Первое
// отрицательное количество проваливает весь пакет.
func BatchConvert(offer entity.Offer, quantities []int64) ([]Conversion, error) {
	result := make([]Conversion, 0, len(quantities))

	for _, quantity := range quantities {
		conversion, err := Convert(offer, quantity)
		if err != nil {
			return nil, fmt.Errorf("calculator.Convert: %w", err)
		}

		result = append(result, conversion)
	}

	return result, nil
}

// SelectDefault выбирает стартовое предложение калькулятора: первое с ценой,
// иначе просто первое.
func SelectDefault(offers []entity.Offer) (entity.Offer, bool) {
	for _, o := range offers {
		if o.Priced() {
			return o, true
		}
	}

	if len(offers) == 0 {
		return entity.Offer{}, false
	}

	return offers[0], true
}
