// Package mirror копирует опубликованные снимки в Redis для сторонних читателей.
package mirror

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"gold_tracker/internal/domain/entity"
	"gold_tracker/internal/domain/service/calculator"
	"gold_tracker/pkg/lox"
	"gold_tracker/pkg/rest"
)

const (
	DefaultKey = "gold_tracker:prices"
	DefaultTTL = 2 * time.Hour
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// RedisMirror хранит снимок в формате /api/prices. Если обновления
// прекратились, ключ истекает через TTL.
type RedisMirror struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

func NewRedisMirror(client redis.Cmdable) *RedisMirror {
	return &RedisMirror{
		client: client,
		key:    DefaultKey,
		ttl:    DefaultTTL,
	}
}

func (m *RedisMirror) WithKey(key string) *RedisMirror {
	if key != "" {
		m.key = key
	}

	return m
}

func (m *RedisMirror) WithTTL(ttl time.Duration) *RedisMirror {
	if ttl > 0 {
		m.ttl = ttl
	}

	return m
}

func (m *RedisMirror) Publish(ctx context.Context, snapshot entity.Snapshot) error {
	payload, err := json.Marshal(rest.Prices{
		Available:   true,
		LastUpdated: &snapshot.UpdatedAt,
		Servers: lox.Map(snapshot.Offers, func(o entity.Offer) rest.Offer {
			return rest.Offer{
				Server:       o.Server,
				Offers:       o.Offers,
				PriceUSD:     o.PriceUSD,
				ValuePer100k: calculator.ValuePer100k(o),
			}
		}),
	})
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err = m.client.Set(ctx, m.key, payload, m.ttl).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}
