// Package marketplace получает сырые предложения золота со страницы категории маркетплейса.
package marketplace

import (
	"context"
	"fmt"

	"gold_tracker/internal/domain/entity"
)

const (
	DefaultCardSelector = "div.offer-list-item-wrapper, div.q-pa-md"
	DefaultRegion       = "EU Central"
	DefaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36"
)

// OfferSource отдаёт непроверенные кандидаты предложений.
type OfferSource interface {
	FetchRawOffers(ctx context.Context) ([]entity.RawOffer, error)
}

// FetchError возвращается, когда маркетплейс ответил не 2xx или недоступен.
type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch error (status %d)", e.Status)
	}

	return fmt.Sprintf("fetch error (status %d): %v", e.Status, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
