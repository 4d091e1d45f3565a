package marketplace

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	"golang.org/x/time/rate"

	"gold_tracker/internal/domain/entity"
	"gold_tracker/pkg/logx"
)

const (
	defaultAttempts      = 3
	defaultPageTimeout   = 60 * time.Second
	defaultRetryInterval = 2 * time.Second
)

var errNoBody = errors.New("empty response body")

// HTTPSource скачивает страницу категории обычным GET-запросом.
type HTTPSource struct {
	url       string
	extractor *Extractor
	userAgent string
	timeout   time.Duration
	attempts  int
	limiter   *rate.Limiter
	transport http.RoundTripper
}

func NewHTTPSource(url string, extractor *Extractor) *HTTPSource {
	return &HTTPSource{
		url:       url,
		extractor: extractor,
		userAgent: DefaultUserAgent,
		timeout:   defaultPageTimeout,
		attempts:  defaultAttempts,
		limiter:   rate.NewLimiter(rate.Every(defaultRetryInterval), 1),
	}
}

func (s *HTTPSource) WithUserAgent(userAgent string) *HTTPSource {
	if userAgent != "" {
		s.userAgent = userAgent
	}

	return s
}

func (s *HTTPSource) WithTimeout(timeout time.Duration) *HTTPSource {
	if timeout > 0 {
		s.timeout = timeout
	}

	return s
}

// WithRetryInterval задаёт минимальную паузу между попытками.
func (s *HTTPSource) WithRetryInterval(interval time.Duration) *HTTPSource {
	if interval > 0 {
		s.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}

	return s
}

func (s *HTTPSource) WithTransport(transport http.RoundTripper) *HTTPSource {
	s.transport = transport
	return s
}

func (s *HTTPSource) FetchRawOffers(ctx context.Context) ([]entity.RawOffer, error) {
	body, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	candidates, err := s.extractor.Extract(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("extractor.Extract: %w", err)
	}

	logger(ctx).Info(
		"marketplace page parsed",
		slog.String(logx.FieldSource, "http"),
		slog.Int(logx.FieldOffers, len(candidates)),
	)

	return candidates, nil
}

func (s *HTTPSource) fetch(ctx context.Context) ([]byte, error) {
	var (
		status  int
		lastErr error
	)

	for attempt := range s.attempts {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("limiter.Wait: %w", err)
		}

		var body []byte

		body, status, lastErr = s.fetchOnce(ctx)
		if lastErr == nil {
			return body, nil
		}

		if !shouldRetry(status) {
			break
		}

		logger(ctx).Warn(
			"marketplace fetch retry",
			slog.String(logx.FieldURL, s.url),
			slog.Int(logx.FieldResponseStatus, status),
			slog.Int("attempt", attempt+1),
			logx.Error(lastErr),
		)
	}

	return nil, &FetchError{Status: status, Err: lastErr}
}

func (s *HTTPSource) fetchOnce(ctx context.Context) ([]byte, int, error) {
	c := colly.NewCollector(colly.UserAgent(s.userAgent), colly.AllowURLRevisit())
	c.Context = ctx
	c.SetRequestTimeout(s.timeout)

	if s.transport != nil {
		c.WithTransport(s.transport)
	}

	var (
		body   []byte
		status int
		reqErr error
	)

	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = append([]byte(nil), r.Body...)
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}

		reqErr = err
	})

	if err := c.Visit(s.url); err != nil && reqErr == nil {
		reqErr = err
	}

	switch {
	case reqErr != nil:
		return nil, status, reqErr
	case status < http.StatusOK || status >= http.StatusMultipleChoices:
		return nil, status, fmt.Errorf("status %d", status)
	case len(body) == 0:
		return nil, status, errNoBody
	}

	return body, status, nil
}

func shouldRetry(status int) bool {
	return status == http.StatusTooManyRequests ||
		(status >= http.StatusInternalServerError && status <= 599) //nolint:mnd
}
