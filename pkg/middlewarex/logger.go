package middlewarex

import (
	"log/slog"
	"net/http"

	"gold_tracker/pkg/contextx"
	"gold_tracker/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Logger puts base into the request context, tagged with the trace id and
// request line. It must run after TraceID.
func Logger(base *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			l := base.With(
				slog.String(logx.FieldHTTPMethod, r.Method),
				slog.String(logx.FieldURL, r.URL.Path),
			)

			if traceID, err := contextx.TraceIDFromContext(ctx); err == nil {
				l = l.With(slog.String(logx.FieldTraceID, traceID.String()))
			}

			next.ServeHTTP(w, r.WithContext(contextx.WithLogger(ctx, l)))
		})
	}
}
