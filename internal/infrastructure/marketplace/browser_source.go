package marketplace

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"gold_tracker/internal/domain/entity"
	"gold_tracker/pkg/logx"
)

const (
	defaultScrollStep     = 400
	defaultScrollInterval = 250 * time.Millisecond
	defaultMaxScrolls     = 200
)

// BrowserSource открывает страницу категории в headless Chrome, чтобы
// карточки, подгружаемые скриптами, появились до разбора.
type BrowserSource struct {
	url            string
	extractor      *Extractor
	cardSelector   string
	userAgent      string
	execPath       string
	timeout        time.Duration
	scrollStep     int
	scrollInterval time.Duration
	maxScrolls     int
}

func NewBrowserSource(url string, extractor *Extractor) *BrowserSource {
	return &BrowserSource{
		url:            url,
		extractor:      extractor,
		cardSelector:   extractor.cardSelector,
		userAgent:      DefaultUserAgent,
		timeout:        defaultPageTimeout,
		scrollStep:     defaultScrollStep,
		scrollInterval: defaultScrollInterval,
		maxScrolls:     defaultMaxScrolls,
	}
}

func (s *BrowserSource) WithUserAgent(userAgent string) *BrowserSource {
	if userAgent != "" {
		s.userAgent = userAgent
	}

	return s
}

func (s *BrowserSource) WithTimeout(timeout time.Duration) *BrowserSource {
	if timeout > 0 {
		s.timeout = timeout
	}

	return s
}

// WithExecPath задаёт путь к Chrome. Пустая строка оставляет поиск chromedp.
func (s *BrowserSource) WithExecPath(path string) *BrowserSource {
	s.execPath = path
	return s
}

func (s *BrowserSource) WithScroll(step int, interval time.Duration, maxScrolls int) *BrowserSource {
	if step > 0 {
		s.scrollStep = step
	}

	if interval > 0 {
		s.scrollInterval = interval
	}

	if maxScrolls > 0 {
		s.maxScrolls = maxScrolls
	}

	return s
}

func (s *BrowserSource) FetchRawOffers(ctx context.Context) ([]entity.RawOffer, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:], //nolint:gocritic
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent(s.userAgent),
	)
	if s.execPath != "" {
		opts = append(opts, chromedp.ExecPath(s.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...any) {}))
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, s.timeout)
	defer cancelTimeout()

	var html string

	err := chromedp.Run(browserCtx,
		chromedp.Navigate(s.url),
		chromedp.WaitVisible(s.cardSelector, chromedp.ByQuery),
		chromedp.ActionFunc(s.autoScroll),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("chromedp.Run: %w", err)}
	}

	candidates, err := s.extractor.Extract(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("extractor.Extract: %w", err)
	}

	logger(ctx).Info(
		"marketplace page parsed",
		slog.String(logx.FieldSource, "browser"),
		slog.Int(logx.FieldOffers, len(candidates)),
	)

	return candidates, nil
}

// autoScroll прокручивает страницу шагами до конца, чтобы отрисовались
// лениво загружаемые карточки.
func (s *BrowserSource) autoScroll(ctx context.Context) error {
	script := fmt.Sprintf(
		`(() => { window.scrollBy(0, %d); return window.innerHeight + window.scrollY >= document.body.scrollHeight; })()`,
		s.scrollStep,
	)

	for range s.maxScrolls {
		var bottom bool
		if err := chromedp.Evaluate(script, &bottom).Do(ctx); err != nil {
			return fmt.Errorf("chromedp.Evaluate: %w", err)
		}

		if bottom {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.scrollInterval):
		}
	}

	return nil
}
