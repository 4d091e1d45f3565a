package entity

import "time"

type PricePoint struct {
	Server     string
	PriceUSD   float64
	Offers     int64
	CapturedAt time.Time
}
