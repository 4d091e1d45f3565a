package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"gold_tracker/internal/config"
	"gold_tracker/internal/infrastructure/marketplace"
	"gold_tracker/internal/infrastructure/memstore"
	"gold_tracker/internal/infrastructure/mirror"
	"gold_tracker/internal/infrastructure/notifier"
	"gold_tracker/internal/infrastructure/persistence"
	"gold_tracker/internal/server"
	"gold_tracker/internal/worker"
	"gold_tracker/pkg/application/connectors"
	"gold_tracker/pkg/application/modules"
	"gold_tracker/pkg/contextx"
	"gold_tracker/pkg/httpx"
	"gold_tracker/pkg/logx"
)

const httpServerReadHeaderTimeout = 5 * time.Second

// Run собирает зависимости по конфигурации и работает до отмены ctx.
func Run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	// 1. Логгер
	log = log.With(
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	)
	ctx = contextx.WithLogger(ctx, log)

	// 2. Публикаторы: сначала память, затем опциональные интеграции
	latest := memstore.NewLatest()

	var (
		publishers    []worker.Publisher
		historyServer *server.HistoryServer
	)

	if cfg.Postgres.Enabled() {
		pg := &connectors.Postgres{
			DSN:             cfg.Postgres.DSN,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		}
		db := pg.Client(ctx)
		defer pg.Close(ctx)

		if err := persistence.Migrate(ctx, db); err != nil {
			return fmt.Errorf("persistence.Migrate: %w", err)
		}

		history := persistence.NewHistoryRepository(db)
		publishers = append(publishers, history)
		historyServer = server.NewHistoryServer(history)
	}

	if cfg.Redis.Enabled() {
		rd := &connectors.Redis{
			Address:            cfg.Redis.Address,
			Username:           cfg.Redis.Username,
			Password:           cfg.Redis.Password,
			DatabaseNumber:     cfg.Redis.DatabaseNumber,
			PoolSize:           cfg.Redis.PoolSize,
			MinIdleConnections: cfg.Redis.MinIdleConnections,
			MaxIdleConnections: cfg.Redis.MaxIdleConnections,
		}
		client := rd.Client(ctx)
		defer rd.Close(ctx)

		publishers = append(publishers, mirror.NewRedisMirror(client).
			WithKey(cfg.Redis.SnapshotKey).
			WithTTL(cfg.Redis.SnapshotTTL))
	}

	if cfg.Bot.Enabled() {
		sender, err := notifier.NewTelegramSender(cfg.Bot.Token, cfg.Bot.ChatID)
		if err != nil {
			return fmt.Errorf("notifier.NewTelegramSender: %w", err)
		}

		publishers = append(publishers, notifier.NewPriceAlerter(sender, cfg.Bot.AlertTTL))
	}

	// 3. Обновление цен
	source, err := newOfferSource(cfg)
	if err != nil {
		return fmt.Errorf("newOfferSource: %w", err)
	}

	refresher := worker.NewRefresher(source, latest, publishers...).
		WithSchedule(cfg.Scraper.Schedule).
		WithCycleTimeout(cfg.Scraper.CycleTimeout)

	// 4. Модули
	g, ctx := errgroup.WithContext(ctx)

	router := server.NewRouter(
		server.NewServer(server.NewPriceServer(latest, refresher), historyServer),
		server.RouterOptions{
			Logger:              log,
			SensitiveDataMasker: logx.NewSensitiveDataMasker(),
			LogFieldMaxLen:      cfg.App.LogFieldMaxLen,
		},
	)

	httpServer := &http.Server{
		//nolint:exhaustruct
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, httpServer)
	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Probe.ListenAddress,
		Ready:         latest.Ready,
	}.Run(ctx, g)
	modules.MetricServer{ListenAddress: cfg.Metrics.ListenAddress}.Run(ctx, g)

	g.Go(func() error {
		if err := refresher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("refresher.Run: %w", err)
		}

		return nil
	})

	log.Info(
		"application started",
		slog.String(logx.FieldSource, cfg.Scraper.Mode),
		slog.Int("publishers", len(publishers)+1),
	)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

func newOfferSource(cfg config.Config) (worker.OfferSource, error) {
	extractor := marketplace.NewExtractor(cfg.Scraper.CardSelector, cfg.Scraper.Region)

	switch cfg.Scraper.Mode {
	case config.ScraperModeFile:
		return marketplace.NewFileSource(cfg.Scraper.FilePath), nil
	case config.ScraperModeBrowser:
		return marketplace.NewBrowserSource(cfg.Scraper.URL, extractor).
			WithUserAgent(cfg.Scraper.UserAgent).
			WithTimeout(cfg.Scraper.PageTimeout).
			WithExecPath(cfg.Scraper.ChromePath).
			WithScroll(cfg.Scraper.ScrollStep, cfg.Scraper.ScrollInterval, cfg.Scraper.MaxScrolls), nil
	case config.ScraperModeHTTP:
		transport := httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithLogFieldMaxLen(cfg.App.LogFieldMaxLen),
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
		)

		return marketplace.NewHTTPSource(cfg.Scraper.URL, extractor).
			WithUserAgent(cfg.Scraper.UserAgent).
			WithTimeout(cfg.Scraper.PageTimeout).
			WithRetryInterval(cfg.Scraper.RetryInterval).
			WithTransport(transport), nil
	default:
		return nil, fmt.Errorf("unknown scraper mode %q", cfg.Scraper.Mode) //nolint:err113
	}
}
