/*
Package link is the network boundary between the client and the journal GraphQL API.

Link is an http.RoundTripper: it stamps every outgoing request with the session's bearer
token and inspects every response for the API's "Unauthorized" error, signing the user out
before the response reaches the caller.
*/
package link

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"journal/internal/app/session"
	"journal/internal/pkg/logx"
	"journal/internal/pkg/metrics"
	"journal/internal/pkg/randx"
)

// UnauthorizedMessage is the GraphQL error message the API uses for a rejected token.
const UnauthorizedMessage = "Unauthorized"

// maxInspectBytes bounds how much of a response body is buffered for inspection.
const maxInspectBytes = 8 << 20

// unauthorizedQuery finds an entry of the GraphQL errors array whose message is UnauthorizedMessage.
var unauthorizedQuery = fmt.Sprintf(`errors.#(message==%q)`, UnauthorizedMessage)

// SessionSource is the part of the session store the link needs.
type SessionSource interface {
	Get() session.Session
	Clear()
}

// Link wraps a RoundTripper with token injection and authorization-failure handling.
// It never retries and never rewrites errors.
type Link struct {
	sessions SessionSource
	next     http.RoundTripper
	verbose  bool
	logger   zerolog.Logger
}

// Option configures a Link.
type Option func(*Link)

// WithVerboseLogging logs every operation and its response at debug level.
func WithVerboseLogging(on bool) Option {
	return func(l *Link) { l.verbose = on }
}

// New returns a Link sending through next (http.DefaultTransport when nil).
func New(sessions SessionSource, next http.RoundTripper, opts ...Option) *Link {
	if next == nil {
		next = http.DefaultTransport
	}
	l := &Link{
		sessions: sessions,
		next:     next,
		logger:   logx.Component("link"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// RoundTrip implements http.RoundTripper.
func (l *Link) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req
	if token := l.sessions.Get().Token; token != "" {
		out = req.Clone(req.Context())
		out.Header.Set("Authorization", "Bearer "+token)
	}

	opID := randx.OperationID()
	if l.verbose {
		l.logger.Debug().
			Str("operation_id", opID).
			Str("operation", operationName(req)).
			Bool("authorized", out != req).
			Msg("Sending operation")
	}

	start := time.Now()
	resp, err := l.next.RoundTrip(out)
	metrics.APILatency.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequests.WithLabelValues("transport_error").Inc()
		l.logger.Warn().Err(err).Str("operation_id", opID).Msg("Operation failed before a response arrived")
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxInspectBytes))
	if err != nil {
		resp.Body.Close()
		metrics.APIRequests.WithLabelValues("transport_error").Inc()
		return nil, fmt.Errorf("read response body: %w", err)
	}
	// the caller reads the inspected prefix followed by anything past the limit
	resp.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(body), resp.Body), resp.Body}

	outcome := "ok"
	gqlErrors := gjson.GetBytes(body, "errors")
	switch {
	case gjson.GetBytes(body, unauthorizedQuery).Exists():
		outcome = "unauthorized"
		l.sessions.Clear()
		l.logger.Info().Str("operation_id", opID).Msg("API rejected the session token, signed out")
	case gqlErrors.IsArray() && len(gqlErrors.Array()) > 0:
		outcome = "graphql_error"
	}
	metrics.APIRequests.WithLabelValues(outcome).Inc()

	if l.verbose {
		l.logger.Debug().
			Str("operation_id", opID).
			Int("status", resp.StatusCode).
			Str("outcome", outcome).
			RawJSON("errors", rawOrNull(gqlErrors)).
			Dur("latency", time.Since(start)).
			Msg("Received response")
	}

	return resp, nil
}

func rawOrNull(r gjson.Result) []byte {
	if !r.Exists() || r.Raw == "" {
		return []byte("null")
	}
	return []byte(r.Raw)
}
