package tests

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httputil"

	jsoniter "github.com/json-iterator/go"

	"gold_tracker/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// APIClient is a JSON client for end-to-end API tests. Success bodies are
// decoded into dest, everything else into errDest.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(
	baseURL string,
	httpClient *http.Client,
) APIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return APIClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (a APIClient) BaseURL() string {
	return a.baseURL
}

func (a APIClient) Get(
	ctx context.Context,
	endpoint string,
	headers http.Header,
	dest any,
	errDest any,
) (*http.Response, error) {
	return a.do(ctx, http.MethodGet, endpoint, headers, http.NoBody, dest, errDest)
}

// Post marshals request as the JSON body.
func (a APIClient) Post(
	ctx context.Context,
	endpoint string,
	headers http.Header,
	request any,
	dest any,
	errDest any,
) (*http.Response, error) {
	b, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return a.do(ctx, http.MethodPost, endpoint, headers, bytes.NewReader(b), dest, errDest)
}

// PostJSON sends requestJSON verbatim, so malformed bodies can be tested.
func (a APIClient) PostJSON(
	ctx context.Context,
	endpoint string,
	headers http.Header,
	requestJSON string,
	dest any,
	errDest any,
) (*http.Response, error) {
	return a.do(ctx, http.MethodPost, endpoint, headers, bytes.NewBufferString(requestJSON), dest, errDest)
}

func (a APIClient) do(
	ctx context.Context,
	method string,
	endpoint string,
	headers http.Header,
	payload io.Reader,
	dest any,
	errDest any,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	if method == http.MethodPost && headers.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header[k] = v
	}

	slog.Debug("api request", slog.String(logx.FieldHTTPMethod, method), slog.String(logx.FieldURL, req.URL.String()))

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	if dump, err := httputil.DumpResponse(resp, true); err == nil {
		slog.Debug("api response", slog.String(logx.FieldResponseBody, string(dump)))
	}

	if err = decodeResponse(resp, dest, errDest); err != nil {
		return nil, fmt.Errorf("decodeResponse: %w", err)
	}

	return resp, nil
}

func decodeResponse(r *http.Response, dest, errDest any) error {
	target, name := errDest, "error"
	if r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices {
		target, name = dest, "success"
	}

	if target == nil {
		return nil
	}

	if err := json.NewDecoder(r.Body).Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("json.Decode(%s destination): %w", name, err)
	}

	return nil
}
