package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"gold_tracker/pkg/httpx/reply"
	"gold_tracker/pkg/logx"
	"gold_tracker/pkg/middlewarex"
)

const corsMaxAge = 300

type RouterOptions struct {
	Logger              *slog.Logger
	SensitiveDataMasker logx.SensitiveDataMaskerInterface
	LogFieldMaxLen      int
}

func NewRouter(s Server, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger(opts.Logger),
		middlewarex.Recovery,
		middlewarex.RequestLogging(opts.SensitiveDataMasker, opts.LogFieldMaxLen),
		middlewarex.ResponseLogging(opts.SensitiveDataMasker, opts.LogFieldMaxLen),
		cors.Handler(cors.Options{ //nolint:exhaustruct
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Trace-Id"},
			ExposedHeaders: []string{"X-Trace-Id"},
			MaxAge:         corsMaxAge,
		}),
	)

	s.RegisterRoutes(r)

	return r
}

func (s Server) RegisterRoutes(r chi.Router) {
	r.Get("/", handler(s.getRoot))

	r.Route("/api", func(r chi.Router) {
		r.Get("/prices", handler(s.getPrices))
		r.Get("/prices/default", handler(s.getDefaultPrice))

		r.Get("/convert", handler(s.getConvert))
		r.Post("/convert", handler(s.postConvert))

		r.Post("/refresh", handler(s.postRefresh))

		if s.history != nil {
			r.Get("/history/{server}", handler(s.history.getHistory))
		}
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
