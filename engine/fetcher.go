package engine

import (
	"context"
	"dashkit/utils"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FetchTimeout bounds a single upstream request. There is no retry: one
// failed attempt is a failed run.
const FetchTimeout = 15 * time.Second

const maxErrorBodyLen = 512

// Fetcher issues the outbound GET against a third party API.
type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: FetchTimeout},
	}
}

// JoinURL joins a base URL with a relative endpoint using exactly one
// separating slash, whatever slash variations the two sides carry.
func JoinURL(baseURL, endpoint string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")
}

// Fetch performs the GET and returns the raw body. Non-2xx answers come back
// as *UpstreamHTTPError, connection and timeout failures as *TransportError.
// Both surface to the API with the same status, the log lines differ.
func (f *Fetcher) Fetch(ctx context.Context, target string, headers map[string]string, params map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &ValidationError{Msg: "invalid target url"}
	}
	q := req.URL.Query()
	for key, value := range params {
		q.Set(key, value)
	}
	req.URL.RawQuery = q.Encode()
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		err = stripQueryFromErr(err, target)
		utils.Logger.Error("upstream request failed", zap.String("url", target), zap.String("err_msg", err.Error()))
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		utils.Logger.Error("error while reading upstream response", zap.String("url", target), zap.String("err_msg", err.Error()))
		return nil, &TransportError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		utils.Logger.Error("upstream returned non-2xx status",
			zap.String("url", target), zap.Int("status_code", resp.StatusCode))
		return nil, &UpstreamHTTPError{StatusCode: resp.StatusCode, Body: truncate(string(body))}
	}
	return body, nil
}

// stripQueryFromErr rewrites the URL inside a client error to the bare
// target. The query string can carry an api key, and url.Error renders the
// full URL in its message; that message ends up in logs and error responses.
func stripQueryFromErr(err error, target string) error {
	if urlErr, ok := err.(*url.Error); ok {
		urlErr.URL = target
	}
	return err
}

func truncate(body string) string {
	if len(body) > maxErrorBodyLen {
		return body[:maxErrorBodyLen]
	}
	return body
}
