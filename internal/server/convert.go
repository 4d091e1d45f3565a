package server

import (
	"errors"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/samber/lo"

	"gold_tracker/internal/domain"
	"gold_tracker/internal/domain/entity"
	"gold_tracker/internal/domain/service/calculator"
	"gold_tracker/pkg/errcodes"
	"gold_tracker/pkg/lox"
	"gold_tracker/pkg/rest"
)

const noDataMessage = "No server data available. Try again later."

func newRESTOffer(o entity.Offer) rest.Offer {
	return rest.Offer{
		Server:       o.Server,
		Offers:       o.Offers,
		PriceUSD:     o.PriceUSD,
		ValuePer100k: calculator.ValuePer100k(o),
	}
}

func newRESTPrices(snapshot entity.Snapshot, ok bool) rest.Prices {
	if !ok {
		return rest.Prices{
			Available: false,
			Servers:   []rest.Offer{},
			Message:   noDataMessage,
		}
	}

	prices := rest.Prices{
		Available:   true,
		LastUpdated: lo.ToPtr(snapshot.UpdatedAt),
		Servers:     lox.Map(snapshot.Offers, newRESTOffer),
	}

	if len(snapshot.Offers) == 0 {
		prices.Message = noDataMessage
	}

	return prices
}

func newRESTConversion(c calculator.Conversion) rest.Conversion {
	conversion := rest.Conversion{
		Quantity:  c.Quantity,
		Available: c.Available,
		Formatted: calculator.FormatCurrency(c),
	}

	if c.Available {
		conversion.Value = lo.ToPtr(c.Value)
	}

	return conversion
}

func newRESTHistoryPoint(p entity.PricePoint) rest.HistoryPoint {
	return rest.HistoryPoint{
		Server:     p.Server,
		PriceUSD:   p.PriceUSD,
		Offers:     p.Offers,
		CapturedAt: p.CapturedAt.UTC().Truncate(time.Microsecond),
	}
}

// newFailure превращает доменные ошибки клиента в InvalidArgument.
// Остальные ошибки возвращаются как есть и отдаются как внутренние.
func newFailure(err error) error {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		return err
	}

	switch appErr.Code {
	case errcodes.InvalidQuantity, errcodes.UnknownServer, errcodes.InvalidLimit, errcodes.InputShape:
		return failure.NewInvalidArgumentErrorFromError(
			err,
			failure.WithCode(appErr.Code),
			failure.WithDescription(appErr.Message),
		)
	default:
		return err
	}
}
