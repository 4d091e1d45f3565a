package entity

// RawOffer непроверенный кандидат от скрапера. Поля хранят тот тип,
// который выдал источник (строка, число, nil).
type RawOffer struct {
	Server   any `json:"server"`
	PriceUSD any `json:"priceUSD"`
	Offers   any `json:"offers"`
}

// Offer каноническое лучшее предложение одного сервера.
//
// PriceUSD цена одной единицы золота в USD. Ноль означает, что цена
// неизвестна.
type Offer struct {
	Server   string  `json:"server"`
	Offers   int64   `json:"offers"`
	PriceUSD float64 `json:"priceUSD"`
}

func (o Offer) Priced() bool {
	return o.PriceUSD > 0
}
