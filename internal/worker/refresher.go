package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"gold_tracker/internal/domain"
	"gold_tracker/internal/domain/entity"
	"gold_tracker/internal/domain/service/offer"
	"gold_tracker/pkg/errcodes"
	"gold_tracker/pkg/logx"
)

const (
	DefaultSchedule     = "*/30 * * * *"
	defaultCycleTimeout = 2 * time.Minute
)

var (
	ErrRefreshInProgress = errors.New("refresh already in progress")
	ErrEmptyScrape       = domain.NewError(errcodes.EmptyScrape, "scrape produced no offers")
)

type OfferSource interface {
	FetchRawOffers(ctx context.Context) ([]entity.RawOffer, error)
}

// Publisher получает каждый новый снимок.
type Publisher interface {
	Publish(ctx context.Context, snapshot entity.Snapshot) error
}

type RefreshResult struct {
	Candidates int
	Offers     int
	UpdatedAt  time.Time
	Published  bool
}

// Refresher периодически собирает предложения с маркетплейса и публикует
// нормализованный снимок. Первый публикатор основной: если он упал, снимок
// не считается опубликованным. Ошибки остальных только логируются.
type Refresher struct {
	source       OfferSource
	publishers   []Publisher
	schedule     string
	cycleTimeout time.Duration
	now          func() time.Time

	busy      atomic.Bool
	published atomic.Bool

	// mu защищает stopping и wg.Add: после остановки Run новые фоновые
	// обновления не запускаются.
	mu       sync.Mutex
	stopping bool
	wg       sync.WaitGroup
}

func NewRefresher(source OfferSource, primary Publisher, others ...Publisher) *Refresher {
	return &Refresher{
		source:       source,
		publishers:   append([]Publisher{primary}, others...),
		schedule:     DefaultSchedule,
		cycleTimeout: defaultCycleTimeout,
		now:          time.Now,
	}
}

func (w *Refresher) WithSchedule(schedule string) *Refresher {
	if schedule != "" {
		w.schedule = schedule
	}

	return w
}

func (w *Refresher) WithCycleTimeout(timeout time.Duration) *Refresher {
	if timeout > 0 {
		w.cycleTimeout = timeout
	}

	return w
}

func (w *Refresher) WithClock(now func() time.Time) *Refresher {
	w.now = now
	return w
}

// Run обновляет цены сразу и затем по расписанию до отмены ctx. Перед
// выходом дожидается запущенных обновлений, в том числе фоновых из Trigger.
func (w *Refresher) Run(ctx context.Context) error {
	scheduler := cron.New(cron.WithLogger(cronLogger{ctx: ctx}))

	if _, err := scheduler.AddFunc(w.schedule, func() { w.refresh(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	logger(ctx).Info("refresher started", slog.String("schedule", w.schedule))

	scheduler.Start()
	w.refresh(ctx)

	<-ctx.Done()
	<-scheduler.Stop().Done()

	w.mu.Lock()
	w.stopping = true
	w.mu.Unlock()

	w.wg.Wait()

	logger(ctx).Info("refresher stopped")

	return ctx.Err()
}

// RefreshOnce выполняет один цикл. Параллельный вызов сразу получает
// ErrRefreshInProgress, источник при этом не опрашивается.
func (w *Refresher) RefreshOnce(ctx context.Context) (RefreshResult, error) {
	if !w.busy.CompareAndSwap(false, true) {
		refreshTotal.WithLabelValues(resultSkipped).Inc()
		return RefreshResult{}, ErrRefreshInProgress
	}
	defer w.busy.Store(false)

	return w.measure(ctx)
}

// Trigger запускает обновление в фоне. Возвращает false, если обновление уже
// идёт или Run завершается.
func (w *Refresher) Trigger(ctx context.Context) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopping {
		return false
	}

	if !w.busy.CompareAndSwap(false, true) {
		refreshTotal.WithLabelValues(resultSkipped).Inc()
		return false
	}

	w.wg.Add(1)

	go func() {
		defer w.wg.Done()
		defer w.busy.Store(false)

		result, err := w.measure(ctx)
		w.report(ctx, result, err)
	}()

	return true
}

func (w *Refresher) measure(ctx context.Context) (RefreshResult, error) {
	start := time.Now()
	result, err := w.cycle(ctx)

	refreshDuration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		refreshTotal.WithLabelValues(resultSuccess).Inc()
	case errors.Is(err, ErrEmptyScrape):
		refreshTotal.WithLabelValues(resultEmpty).Inc()
	default:
		refreshTotal.WithLabelValues(resultFailed).Inc()
	}

	return result, err
}

func (w *Refresher) cycle(ctx context.Context) (RefreshResult, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, w.cycleTimeout)
	defer cancel()

	candidates, err := w.source.FetchRawOffers(fetchCtx)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("source.FetchRawOffers: %w", err)
	}

	snapshot := entity.Snapshot{
		UpdatedAt: w.now().UTC(),
		Offers:    offer.Normalize(candidates),
	}

	result := RefreshResult{
		Candidates: len(candidates),
		Offers:     len(snapshot.Offers),
		UpdatedAt:  snapshot.UpdatedAt,
	}

	if len(snapshot.Offers) == 0 && w.published.Load() {
		return result, ErrEmptyScrape
	}

	if err := w.publish(ctx, snapshot); err != nil {
		return result, err
	}

	result.Published = true

	if len(snapshot.Offers) == 0 {
		return result, ErrEmptyScrape
	}

	return result, nil
}

func (w *Refresher) publish(ctx context.Context, snapshot entity.Snapshot) error {
	if err := w.publishers[0].Publish(ctx, snapshot); err != nil {
		return fmt.Errorf("publisher.Publish: %w", err)
	}

	w.published.Store(true)
	offersPublished.Set(float64(len(snapshot.Offers)))
	lastSuccess.Set(float64(snapshot.UpdatedAt.Unix()))

	for _, p := range w.publishers[1:] {
		if err := p.Publish(ctx, snapshot); err != nil {
			logger(ctx).Error("publisher.Publish", slog.String(logx.FieldSource, fmt.Sprintf("%T", p)), logx.Error(err))
		}
	}

	return nil
}

func (w *Refresher) refresh(ctx context.Context) {
	result, err := w.RefreshOnce(ctx)
	w.report(ctx, result, err)
}

func (w *Refresher) report(ctx context.Context, result RefreshResult, err error) {
	switch {
	case err == nil:
		logger(ctx).Info(
			"snapshot published",
			slog.Int(logx.FieldServers, result.Offers),
			slog.Int(logx.FieldOffers, result.Candidates),
		)
	case errors.Is(err, ErrRefreshInProgress):
		logger(ctx).Info("refresh skipped, previous one still running")
	case errors.Is(err, ErrEmptyScrape):
		logger(ctx).Warn("scrape produced no offers", slog.Bool("published", result.Published))
	case ctx.Err() != nil:
		// завершение работы
	default:
		logger(ctx).Error("refresh failed, keeping previous snapshot", logx.Error(err))
	}
}
