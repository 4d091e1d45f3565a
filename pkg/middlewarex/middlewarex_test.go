package middlewarex_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"gold_tracker/pkg/logx"
	"gold_tracker/pkg/middlewarex"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

func TestTraceID(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name     string
		incoming string
		check    func(got string)
	}{
		{
			name:     "Reuse caller trace id",
			incoming: "gold-refresh-1",
			check: func(got string) {
				rq.Equal("gold-refresh-1", got)
			},
		},
		{
			name: "Generate when missing",
			check: func(got string) {
				rq.Len(got, 20)
			},
		},
		{
			name:     "Replace overlong id",
			incoming: strings.Repeat("x", 65),
			check: func(got string) {
				rq.Len(got, 20)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			h := middlewarex.TraceID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

			r := httptest.NewRequest(http.MethodGet, "/api/prices", http.NoBody)
			if tc.incoming != "" {
				r.Header.Set("X-Trace-Id", tc.incoming)
			}

			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			tc.check(w.Header().Get("X-Trace-Id"))
		})
	}
}

func TestRecovery(t *testing.T) {
	rq := require.New(t)

	h := middlewarex.TraceID(middlewarex.Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("snapshot missing")
	})))

	r := httptest.NewRequest(http.MethodGet, "/api/prices", http.NoBody)
	r.Header.Set("X-Trace-Id", "trace-42")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	rq.Equal(http.StatusInternalServerError, w.Code)

	var body map[string]any

	rq.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	rq.Equal("InternalServerError", body["code"])
	rq.Equal("trace-42", body["supportId"])
}

func TestRequestLogging(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name     string
		method   string
		body     string
		wantLogs int
		contains string
	}{
		{
			name:     "Convert body logged",
			method:   http.MethodPost,
			body:     `{"server":"Ladon","quantity":250000}`,
			wantLogs: 1,
			contains: `\"quantity\":250000`,
		},
		{
			name:     "Preflight skipped",
			method:   http.MethodOptions,
			wantLogs: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			var buf bytes.Buffer

			base := slog.New(slog.NewJSONHandler(&buf, nil))
			h := middlewarex.Logger(base)(
				middlewarex.RequestLogging(logx.NewNopSensitiveDataMasker(), 0)(
					http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
						w.WriteHeader(http.StatusNoContent)
					}),
				),
			)

			r := httptest.NewRequestWithContext(context.Background(), tc.method, "/api/convert", strings.NewReader(tc.body))
			r.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			rq.Equal(http.StatusNoContent, w.Code)

			out := strings.TrimSpace(buf.String())
			if tc.wantLogs == 0 {
				rq.Empty(out)

				return
			}

			rq.Len(strings.Split(out, "\n"), tc.wantLogs)
			rq.Contains(out, tc.contains)
			rq.Contains(out, `"url":"/api/convert"`)
		})
	}
}
