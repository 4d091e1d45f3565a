package middlewarex

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"gold_tracker/pkg/httpx/reply"
	"gold_tracker/pkg/logx"
)

var errPanic = errors.New("panic in handler")

// Recovery turns a handler panic into a 500 JSON error carrying the trace id.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			if rec == http.ErrAbortHandler { //nolint:errorlint,err113
				panic(rec)
			}

			logger(ctx).Error(
				errPanic.Error(),
				slog.Any(logx.FieldError, rec),
				slog.String(logx.FieldStack, string(debug.Stack())),
			)

			reply.Error(ctx, w, fmt.Errorf("%w: %v", errPanic, rec))
		}()

		next.ServeHTTP(w, r)
	})
}
