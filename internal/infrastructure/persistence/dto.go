package persistence

import (
	"time"

	"gold_tracker/internal/domain/entity"
)

// pricePointSchema строка таблицы price_history.
type pricePointSchema struct {
	Server     string    `db:"server"`
	PriceUSD   float64   `db:"price_usd"`
	Offers     int64     `db:"offers"`
	CapturedAt time.Time `db:"captured_at"`
}

func fromOffer(o entity.Offer, capturedAt time.Time) pricePointSchema {
	return pricePointSchema{
		Server:     o.Server,
		PriceUSD:   o.PriceUSD,
		Offers:     o.Offers,
		CapturedAt: capturedAt,
	}
}

func (s pricePointSchema) toDomain() entity.PricePoint {
	return entity.PricePoint{
		Server:     s.Server,
		PriceUSD:   s.PriceUSD,
		Offers:     s.Offers,
		CapturedAt: s.CapturedAt,
	}
}
