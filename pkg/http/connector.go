package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// Connector performs requests against a single base URL.
type Connector struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

type ConnectorConfig struct {
	BaseURL string
	Logger  *zap.Logger
}

func NewConnector(config *ConnectorConfig, options ...HttpOpts) *Connector {
	return &Connector{
		baseURL:    config.BaseURL,
		httpClient: newClient(options...),
		logger:     config.Logger,
	}
}

type RequestOpt func(*requestConfig)

type requestConfig struct {
	headers     map[string]string
	query       url.Values
	overrideURL string
}

func WithHeader(key, value string) RequestOpt {
	return func(c *requestConfig) {
		if c.headers == nil {
			c.headers = make(map[string]string)
		}
		c.headers[key] = value
	}
}

// WithQuery appends query parameters to the request URL.
func WithQuery(values url.Values) RequestOpt {
	return func(c *requestConfig) {
		if c.query == nil {
			c.query = url.Values{}
		}
		for key, vals := range values {
			for _, v := range vals {
				c.query.Add(key, v)
			}
		}
	}
}

func WithURL(url string) RequestOpt {
	return func(c *requestConfig) {
		c.overrideURL = url
	}
}

func (c *Connector) requestURL(endpoint string, cfg *requestConfig) string {
	u := c.baseURL + endpoint
	if cfg.overrideURL != "" {
		u = cfg.overrideURL
	}
	if len(cfg.query) > 0 {
		u += "?" + cfg.query.Encode()
	}
	return u
}

func applyRequestOpts(opts []RequestOpt) *requestConfig {
	cfg := &requestConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// DoRequest sends reqBody as JSON and decodes a JSON response into respBody.
// Either may be nil.
func (c *Connector) DoRequest(ctx context.Context, method, endpoint string, reqBody, respBody any, opts ...RequestOpt) error {
	cfg := applyRequestOpts(opts)

	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
		// Attach payload to context for logging transport
		ctx = context.WithValue(ctx, payloadContextKey{}, jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.requestURL(endpoint, cfg), bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	bodyBytes, err := c.do(req, cfg)
	if err != nil {
		return err
	}

	return decodeJSON(bodyBytes, respBody)
}

// DoMultipartRequest sends a multipart form built by prepareBody and decodes
// a JSON response into respBody.
func (c *Connector) DoMultipartRequest(ctx context.Context, method, endpoint string, prepareBody func(*multipart.Writer) error, respBody any, opts ...RequestOpt) error {
	cfg := applyRequestOpts(opts)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := prepareBody(writer); err != nil {
		return fmt.Errorf("prepare multipart body: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.requestURL(endpoint, cfg), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	bodyBytes, err := c.do(req, cfg)
	if err != nil {
		return err
	}

	return decodeJSON(bodyBytes, respBody)
}

// DoRawRequest performs a GET and returns the response body as is.
func (c *Connector) DoRawRequest(ctx context.Context, endpoint string, opts ...RequestOpt) ([]byte, error) {
	cfg := applyRequestOpts(opts)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(endpoint, cfg), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	return c.do(req, cfg)
}

func (c *Connector) do(req *http.Request, cfg *requestConfig) ([]byte, error) {
	for key, value := range cfg.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    string(bodyBytes),
		}
	}

	return bodyBytes, nil
}

func decodeJSON(data []byte, out any) error {
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// HTTPError represents an HTTP error response
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether the server answered 404.
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// NetworkError represents a network-level error (connection, timeout, etc.)
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
