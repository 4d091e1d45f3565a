package notifier_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gold_tracker/internal/domain/entity"
	"gold_tracker/internal/infrastructure/notifier"
)

type fakeSender struct {
	messages []string
	err      error
}

func (f *fakeSender) Send(_ context.Context, text string) error {
	if f.err != nil {
		return f.err
	}

	f.messages = append(f.messages, text)

	return nil
}

func snapshotWith(offers ...entity.Offer) entity.Snapshot {
	return entity.Snapshot{UpdatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), Offers: offers}
}

func TestPriceAlerterPublish(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	sender := &fakeSender{}
	alerter := notifier.NewPriceAlerter(sender, time.Hour)

	rq.NoError(alerter.Publish(ctx, snapshotWith()))
	rq.NoError(alerter.Publish(ctx, snapshotWith(entity.Offer{Server: "Thirain"})))
	rq.Empty(sender.messages)

	ladon := entity.Offer{Server: "Ladon <EU>", Offers: 12000, PriceUSD: 0.000085}

	rq.NoError(alerter.Publish(ctx, snapshotWith(ladon, entity.Offer{Server: "Thirain"})))
	rq.Len(sender.messages, 1)
	rq.Contains(sender.messages[0], "Ladon &lt;EU&gt;")
	rq.Contains(sender.messages[0], "$0.000085/gold")
	rq.Contains(sender.messages[0], "$8.500000")
	rq.Contains(sender.messages[0], "12,000")

	rq.NoError(alerter.Publish(ctx, snapshotWith(ladon)))
	rq.Len(sender.messages, 1)

	ladon.PriceUSD = 0.00008
	rq.NoError(alerter.Publish(ctx, snapshotWith(ladon)))
	rq.Len(sender.messages, 2)

	rq.NoError(alerter.Publish(ctx, snapshotWith(entity.Offer{Server: "Ratik", PriceUSD: 0.00008})))
	rq.Len(sender.messages, 3)
}

func TestPriceAlerterSendFailure(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	sender := &fakeSender{err: errors.New("telegram is down")}
	alerter := notifier.NewPriceAlerter(sender, 0)
	snapshot := snapshotWith(entity.Offer{Server: "Ladon", PriceUSD: 0.0001})

	rq.ErrorContains(alerter.Publish(ctx, snapshot), "telegram is down")

	sender.err = nil

	rq.NoError(alerter.Publish(ctx, snapshot))
	rq.Len(sender.messages, 1)
}
