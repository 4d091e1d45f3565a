package config

import "time"

type Redis struct {
	Address            string        `env:"REDIS_ADDRESS"`
	Username           string        `env:"REDIS_USERNAME"`
	Password           string        `env:"REDIS_PASSWORD" json:"-"`
	DatabaseNumber     int           `env:"REDIS_DB" envDefault:"0"`
	PoolSize           int           `env:"REDIS_POOL_SIZE" envDefault:"5"`
	MinIdleConnections int           `env:"REDIS_MIN_IDLE_CONNECTIONS" envDefault:"1"`
	MaxIdleConnections int           `env:"REDIS_MAX_IDLE_CONNECTIONS" envDefault:"2"`
	SnapshotKey        string        `env:"REDIS_SNAPSHOT_KEY" envDefault:"gold_tracker:prices"`
	SnapshotTTL        time.Duration `env:"REDIS_SNAPSHOT_TTL" envDefault:"2h"`
}

func (r Redis) Enabled() bool {
	return r.Address != ""
}
