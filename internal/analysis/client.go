package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Analyzer submits a request to the analysis service.
// This interface is implemented by *Client and can be used for testing.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (Diagnosis, error)
}

// Ensure Client implements Analyzer at compile time.
var _ Analyzer = (*Client)(nil)

// Client talks to the analysis service over HTTP.
type Client struct {
	endpoint  *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultEndpoint  = "localhost:8080"
	defaultPath      = "/log/analyze"
	defaultUserAgent = "logscope/0.1"
	maxBodyBytes     = 4 << 20
)

// NewClient builds a Client for the given endpoint. A bare host:port gets the http
// scheme and the default /log/analyze path. A zero timeout leaves requests unbounded.
func NewClient(endpoint string, timeout time.Duration) (*Client, error) {
	u, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	return &Client{
		endpoint:  u,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}, nil
}

// SetUserAgent overrides the User-Agent header sent with every request.
func (c *Client) SetUserAgent(ua string) {
	if strings.TrimSpace(ua) != "" {
		c.userAgent = ua
	}
}

// Endpoint returns the resolved analysis URL.
func (c *Client) Endpoint() string {
	if c == nil || c.endpoint == nil {
		return ""
	}
	return c.endpoint.String()
}

// Analyze posts req and returns the diagnosis. Failures are reported as
// *TransportError when no usable response arrived and *ServiceError otherwise.
func (c *Client) Analyze(ctx context.Context, req Request) (Diagnosis, error) {
	if c == nil {
		return Diagnosis{}, &TransportError{Err: fmt.Errorf("client is nil")}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return Diagnosis{}, &TransportError{Err: fmt.Errorf("encode request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return Diagnosis{}, &TransportError{Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if req.ID != "" {
		httpReq.Header.Set("X-Request-ID", req.ID)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Diagnosis{}, &TransportError{Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Diagnosis{}, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Diagnosis{}, &ServiceError{Status: resp.StatusCode, Message: failureMessage(body)}
	}
	return decodeDiagnosis(resp.StatusCode, body)
}

// decodeDiagnosis accepts any JSON body. Fields that are missing or not strings
// are treated as absent.
func decodeDiagnosis(status int, body []byte) (Diagnosis, error) {
	if !gjson.ValidBytes(body) {
		return Diagnosis{}, &ServiceError{Status: status, Message: "decode response: body is not valid JSON"}
	}
	parsed := gjson.ParseBytes(body)

	var d Diagnosis
	if v := parsed.Get("explanation"); v.Type == gjson.String {
		d.Explanation = v.Str
	}
	if v := parsed.Get("suggestion"); v.Type == gjson.String && v.Str != "" {
		s := v.Str
		d.Suggestion = &s
	}
	return d, nil
}

// failureMessage picks the reason for a failed response: a non-empty message
// field, else the whole JSON body re-serialized, else the raw text, else a generic
// fallback.
func failureMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return GenericFailureMessage
	}
	if !gjson.ValidBytes(trimmed) {
		return string(trimmed)
	}

	parsed := gjson.ParseBytes(trimmed)
	if parsed.Type == gjson.Null {
		return GenericFailureMessage
	}
	if msg := parsed.Get("message"); msg.Type == gjson.String && strings.TrimSpace(msg.Str) != "" {
		return msg.Str
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return string(trimmed)
	}
	return compact.String()
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = defaultEndpoint
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse service url %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse service url %q: missing host", endpoint)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = defaultPath
	}
	u.Fragment = ""
	return u, nil
}
