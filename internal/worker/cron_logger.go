package worker

import (
	"context"
	"fmt"

	"gold_tracker/pkg/logx"
)

// cronLogger пишет сообщения robfig/cron в логгер из контекста.
type cronLogger struct {
	ctx context.Context //nolint:containedctx
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	logger(l.ctx).Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	logger(l.ctx).Error(fmt.Sprintf("cron: %s", msg), append(keysAndValues, logx.Error(err))...)
}
