package http

import (
	"net/http"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// payloadContextKey carries a JSON request body for the logging transport.
type payloadContextKey struct{}

// maxLoggedPayload keeps large request bodies out of debug logs.
const maxLoggedPayload = 2048

type logTransport struct {
	transport http.RoundTripper
}

func (t *logTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	headers := req.Header.Clone()
	if headers.Get("Authorization") != "" {
		headers.Set("Authorization", "[redacted]")
	}

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Any("headers", headers),
	}
	if payload, ok := ctx.Value(payloadContextKey{}).([]byte); ok && len(payload) > 0 {
		if len(payload) <= maxLoggedPayload {
			fields = append(fields, zap.ByteString("payload", payload))
		} else {
			fields = append(fields, zap.Int("payload_size", len(payload)))
		}
	}
	ctxzap.Debug(ctx, "HTTP outbound request", fields...)

	start := time.Now()
	resp, err := t.transport.RoundTrip(req)
	if err != nil {
		ctxzap.Debug(ctx, "HTTP outbound request failed",
			zap.String("url", req.URL.String()),
			zap.Duration("took", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	ctxzap.Debug(ctx, "HTTP outbound response",
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Int64("content_length", resp.ContentLength),
		zap.Duration("took", time.Since(start)),
	)
	return resp, nil
}

// WithRequestLogging debug-logs every outbound request and its response
// status. The Authorization header is redacted.
func WithRequestLogging() HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &logTransport{
			transport: rt,
		}
	})
}

type headerTransport struct {
	key, value string
	transport  http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(t.key) != "" {
		return t.transport.RoundTrip(req)
	}

	reqCopy := req.Clone(req.Context())
	reqCopy.Header.Set(t.key, t.value)
	return t.transport.RoundTrip(reqCopy)
}

// WithAuthToken sends a bearer token with every request that does not carry
// its own Authorization header. An empty token adds nothing.
func WithAuthToken(token string) HttpOpts {
	return withDefaultHeader("Authorization", bearer(token))
}

// WithUserAgent sets the User-Agent of requests that do not set one.
func WithUserAgent(userAgent string) HttpOpts {
	return withDefaultHeader("User-Agent", userAgent)
}

func withDefaultHeader(key, value string) HttpOpts {
	return func(c *httpConfig) {
		if value == "" {
			return
		}
		WithTransport(func(rt http.RoundTripper) http.RoundTripper {
			return &headerTransport{key: key, value: value, transport: rt}
		})(c)
	}
}

func bearer(token string) string {
	if token == "" {
		return ""
	}
	return "Bearer " + token
}
