// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	ytcerrors "github.com/sirseerhq/yt-comments/internal/errors"
)

// Gateway issues GET requests one at a time and keeps at least minInterval
// between the completion of a request and the start of the next one.
// It is not safe for concurrent use; a single collection run owns it.
type Gateway struct {
	httpClient  *http.Client
	minInterval time.Duration
	logger      logrus.FieldLogger

	requestCount  int
	lastCompleted time.Time
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) GatewayOption {
	return func(g *Gateway) {
		g.httpClient = c
	}
}

// WithMinInterval overrides DefaultMinInterval.
func WithMinInterval(d time.Duration) GatewayOption {
	return func(g *Gateway) {
		g.minInterval = d
	}
}

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(l logrus.FieldLogger) GatewayOption {
	return func(g *Gateway) {
		g.logger = l
	}
}

// NewGateway creates a Gateway with DefaultMinInterval and an HTTP client
// that sets the User-Agent and caps response sizes.
func NewGateway(opts ...GatewayOption) *Gateway {
	g := &Gateway{
		httpClient:  newHTTPClient(),
		minInterval: DefaultMinInterval,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		g.logger = l
	}
	return g
}

// Send performs a GET against rawURL and returns the response body.
//
// Non-2xx responses are returned as a *errors.Error of KindAPI; network and
// read failures as KindTransport. The request counter and the completion
// timestamp are updated whether or not the request succeeded.
func (g *Gateway) Send(ctx context.Context, rawURL string) ([]byte, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}

	g.logger.WithField("request", g.requestCount+1).
		Debugf("[API Request %d] %s", g.requestCount+1, redactKey(rawURL))

	body, err := g.do(ctx, rawURL)

	g.requestCount++
	g.lastCompleted = time.Now()

	return body, err
}

// Stats returns the request accounting for this Gateway.
func (g *Gateway) Stats() UsageStats {
	return UsageStats{
		RequestCount:        g.requestCount,
		EstimatedQuotaUsage: g.requestCount,
	}
}

// wait blocks until minInterval has passed since the previous completion.
func (g *Gateway) wait(ctx context.Context) error {
	if g.lastCompleted.IsZero() {
		return nil
	}
	remaining := g.minInterval - time.Since(g.lastCompleted)
	if remaining <= 0 {
		return nil
	}

	timer := time.NewTimer(remaining)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *Gateway) do(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, ytcerrors.NewTransport("failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = redactKey(urlErr.URL)
		}
		return nil, ytcerrors.NewTransport("request to YouTube API failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// A truncated error body still yields the generic message.
		return nil, parseAPIError(resp.StatusCode, body)
	}
	if err != nil {
		return nil, ytcerrors.NewTransport("failed to read response body", err)
	}

	return body, nil
}

// apiErrorBody is the error envelope returned by Google APIs.
type apiErrorBody struct {
	Error *struct {
		Code    int                     `json:"code"`
		Message string                  `json:"message"`
		Errors  []ytcerrors.ErrorDetail `json:"errors"`
	} `json:"error"`
}

// parseAPIError builds the error for a non-2xx response. The HTTP status is
// always the error code; the message falls back to "HTTP {status}".
func parseAPIError(status int, body []byte) error {
	message := fmt.Sprintf("HTTP %d", status)

	var envelope apiErrorBody
	if len(body) == 0 || json.Unmarshal(body, &envelope) != nil || envelope.Error == nil {
		return ytcerrors.NewAPI(status, message, nil)
	}

	if envelope.Error.Message != "" {
		message = envelope.Error.Message
	}
	return ytcerrors.NewAPI(status, message, envelope.Error.Errors)
}

// redactKey hides the API key in URLs that end up in logs and errors.
func redactKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if q.Get("key") == "" {
		return rawURL
	}
	q.Set("key", "REDACTED")
	u.RawQuery = q.Encode()
	return u.String()
}
