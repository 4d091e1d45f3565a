package notifier

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"gold_tracker/internal/domain/entity"
	"gold_tracker/internal/domain/service/calculator"
	"gold_tracker/pkg/logx"
)

const (
	DefaultAlertTTL = 24 * time.Hour
	lastAlertKey    = "cheapest"
)

type sender interface {
	Send(ctx context.Context, text string) error
}

// PriceAlerter сообщает о смене самого дешёвого сервера или его цены.
// Повторы одного и того же предложения подавляются на время TTL.
type PriceAlerter struct {
	sender sender
	sent   *cache.Cache
	ttl    time.Duration
}

func NewPriceAlerter(sender sender, ttl time.Duration) *PriceAlerter {
	if ttl <= 0 {
		ttl = DefaultAlertTTL
	}

	return &PriceAlerter{
		sender: sender,
		sent:   cache.New(ttl, ttl),
		ttl:    ttl,
	}
}

func (a *PriceAlerter) Publish(ctx context.Context, snapshot entity.Snapshot) error {
	cheapest, ok := calculator.SelectDefault(snapshot.Offers)
	if !ok || !cheapest.Priced() {
		return nil
	}

	if last, found := a.sent.Get(lastAlertKey); found {
		if prev, ok := last.(entity.Offer); ok && prev.Server == cheapest.Server && prev.PriceUSD == cheapest.PriceUSD {
			return nil
		}
	}

	if err := a.sender.Send(ctx, alertText(cheapest, snapshot.UpdatedAt)); err != nil {
		return fmt.Errorf("sender.Send: %w", err)
	}

	a.sent.Set(lastAlertKey, cheapest, a.ttl)

	logger(ctx).Info(
		"price alert sent",
		slog.String(logx.FieldServer, cheapest.Server),
		slog.Float64(logx.FieldPriceUSD, cheapest.PriceUSD),
	)

	return nil
}

func alertText(o entity.Offer, updatedAt time.Time) string {
	return fmt.Sprintf(
		"💰 <b>Cheapest gold: %s</b>\n\n"+
			"<b>Price:</b> %s\n"+
			"<b>100k gold:</b> $%s\n"+
			"<b>Offers:</b> %s\n"+
			"<i>%s</i>",
		html.EscapeString(o.Server),
		calculator.FormatUnitPrice(o),
		calculator.ValuePer100k(o),
		calculator.FormatNumber(o.Offers),
		updatedAt.UTC().Format(time.DateTime),
	)
}
