package config

import "time"

type Bot struct {
	Token    string        `env:"BOT_TOKEN" json:"-"`
	ChatID   int64         `env:"BOT_CHAT_ID"`
	AlertTTL time.Duration `env:"BOT_ALERT_TTL" envDefault:"24h"`
}

func (b Bot) Enabled() bool {
	return b.Token != "" && b.ChatID != 0
}
