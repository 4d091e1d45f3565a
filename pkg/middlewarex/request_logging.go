package middlewarex

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"strings"

	"gold_tracker/pkg/logx"
)

// RequestLogging dumps every non-preflight request. Bodies are kept only for
// JSON payloads; logFieldMaxLen of zero disables truncation.
func RequestLogging(
	sensitiveDataMasker logx.SensitiveDataMaskerInterface,
	logFieldMaxLen int,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)

				return
			}

			ctx := r.Context()

			dump, err := httputil.DumpRequest(r, hasJSONBody(r))
			if logFieldMaxLen > 0 && len(dump) > logFieldMaxLen {
				dump = dump[:logFieldMaxLen]
			}

			logger(ctx).Info(
				logx.FieldHTTPRequest,
				slog.String(logx.FieldIP, r.RemoteAddr),
				slog.String(logx.FieldRequestBody, string(sensitiveDataMasker.Mask(dump))),
				logx.Error(err),
			)

			next.ServeHTTP(w, r)
		})
	}
}

func hasJSONBody(r *http.Request) bool {
	if r.ContentLength == 0 {
		return false
	}

	ct := r.Header.Get("Content-Type")

	return ct == "" || strings.HasPrefix(ct, "application/json")
}
