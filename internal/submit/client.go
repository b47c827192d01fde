// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package submit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jeranaias/signup-tui/internal/form"
)

// Configuration constants for the registration endpoint.
const (
	// DefaultSignupPath is where the Django users app mounts signup_view.
	DefaultSignupPath = "/users/signup/"

	// DefaultTimeout bounds one attempt, CSRF priming included.
	DefaultTimeout = 15 * time.Second

	// MaxResponseSize caps how much of a response body is read.
	MaxResponseSize = 1 << 20

	// CSRFCookieName and CSRFFieldName match Django's defaults.
	CSRFCookieName = "csrftoken"
	CSRFFieldName  = "csrfmiddlewaretoken"
	CSRFHeaderName = "X-CSRFToken"

	// RequestedWithHeader marks the request as a background request.
	RequestedWithHeader = "X-Requested-With"
	RequestedWithValue  = "XMLHttpRequest"

	// RequestIDHeader carries a per-attempt id for correlating server logs.
	RequestIDHeader = "X-Request-ID"
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL    string
	SignupPath string
	Timeout    time.Duration

	// CSRF primes Django's csrftoken cookie with a GET before posting.
	CSRF bool

	// RatePerMinute and Burst configure the local throttle. RatePerMinute <= 0 disables it.
	RatePerMinute int
	Burst         int

	// HTTPClient overrides the transport. A cookie jar is added to a copy when missing.
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Response is a decoded Result plus transport details.
type Response struct {
	Result     *Result
	StatusCode int
	RequestID  string
}

// Client submits signup forms. It is safe for concurrent use.
type Client struct {
	endpoint   *url.URL
	httpClient *http.Client
	csrf       bool
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient builds a client. An unparsable or empty BaseURL is accepted;
// Submit then fails with ErrNotConfigured.
func NewClient(opts Options) *Client {
	c := &Client{
		csrf:   opts.CSRF,
		logger: opts.Logger,
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	c.endpoint = resolveEndpoint(opts.BaseURL, opts.SignupPath)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	jar, _ := cookiejar.New(nil)
	if opts.HTTPClient != nil {
		hc := *opts.HTTPClient
		if hc.Jar == nil {
			hc.Jar = jar
		}
		c.httpClient = &hc
	} else {
		c.httpClient = &http.Client{Timeout: timeout, Jar: jar}
	}

	c.limiter = rate.NewLimiter(rate.Inf, 0)
	if opts.RatePerMinute > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(float64(opts.RatePerMinute)/60.0), burst)
	}
	return c
}

func resolveEndpoint(base, path string) *url.URL {
	base = strings.TrimSpace(base)
	if base == "" {
		return nil
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil
	}
	if path == "" {
		path = DefaultSignupPath
	}
	ref, err := url.Parse(path)
	if err != nil {
		return nil
	}
	return u.ResolveReference(ref)
}

// Endpoint returns the absolute signup URL, or "" when unconfigured.
func (c *Client) Endpoint() string {
	if c.endpoint == nil {
		return ""
	}
	return c.endpoint.String()
}

// ResolveRedirect turns a server-supplied destination into an absolute URL
// on the endpoint's host. Absolute destinations are returned unchanged.
func (c *Client) ResolveRedirect(dest string) string {
	if dest == "" {
		dest = DefaultRedirect
	}
	if c.endpoint == nil {
		return dest
	}
	ref, err := url.Parse(dest)
	if err != nil {
		return dest
	}
	return c.endpoint.ResolveReference(ref).String()
}

// Submit posts entries to the signup endpoint and decodes the reply.
// A non-2xx status with a decodable body is still returned as a Response;
// Django answers invalid forms with 400 and form_errors in some setups.
func (c *Client) Submit(ctx context.Context, entries []form.Entry) (*Response, error) {
	if c.endpoint == nil {
		return nil, ErrNotConfigured
	}
	if !c.limiter.Allow() {
		return nil, ErrThrottled
	}

	requestID := uuid.NewString()
	log := c.logger.With(zap.String("request_id", requestID))
	start := time.Now()

	token := ""
	if c.csrf {
		token = c.csrfToken(ctx, log)
	}

	body, contentType, err := encodeMultipart(entries, token)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestedWithHeader, RequestedWithValue)
	req.Header.Set(RequestIDHeader, requestID)
	// Django's CSRF check requires a same-origin Referer over HTTPS.
	req.Header.Set("Referer", c.endpoint.String())
	if token != "" {
		req.Header.Set(CSRFHeaderName, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("signup request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(raw) > MaxResponseSize {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrInvalidResponse, MaxResponseSize)
	}

	result, err := DecodeResult(raw)
	if err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &StatusError{StatusCode: resp.StatusCode, Err: err}
		}
		return nil, err
	}

	log.Info("signup response",
		zap.Int("status", resp.StatusCode),
		zap.Bool("success", result.Success),
		zap.Int("field_errors", len(result.FormErrors)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Response{
		Result:     result.Sanitize(),
		StatusCode: resp.StatusCode,
		RequestID:  requestID,
	}, nil
}

// csrfToken returns Django's csrftoken, fetching the signup page once when the
// jar has none. Failures are logged and yield "", letting the server decide.
func (c *Client) csrfToken(ctx context.Context, log *zap.Logger) string {
	if tok := c.cookie(CSRFCookieName); tok != "" {
		return tok
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint.String(), nil)
	if err != nil {
		log.Warn("csrf priming request", zap.Error(err))
		return ""
	}
	req.Header.Set("Accept", "text/html")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("csrf priming failed", zap.Error(err))
		return ""
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseSize))
	resp.Body.Close()

	tok := c.cookie(CSRFCookieName)
	if tok == "" {
		log.Debug("no csrf cookie issued", zap.Int("status", resp.StatusCode))
	}
	return tok
}

func (c *Client) cookie(name string) string {
	if c.httpClient.Jar == nil {
		return ""
	}
	for _, ck := range c.httpClient.Jar.Cookies(c.endpoint) {
		if ck.Name == name {
			return ck.Value
		}
	}
	return ""
}

// encodeMultipart writes entries as multipart/form-data. File entries with a
// path are attached as file parts; empty file entries are omitted, matching
// what browsers send for an untouched file input.
func encodeMultipart(entries []form.Entry, csrfToken string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, e := range entries {
		if e.File {
			path := strings.TrimSpace(e.Value)
			if path == "" {
				continue
			}
			if err := attachFile(w, e.Name, path); err != nil {
				return nil, "", err
			}
			continue
		}
		if err := w.WriteField(e.Name, e.Value); err != nil {
			return nil, "", fmt.Errorf("failed to encode field %s: %w", e.Name, err)
		}
	}
	if csrfToken != "" {
		if err := w.WriteField(CSRFFieldName, csrfToken); err != nil {
			return nil, "", fmt.Errorf("failed to encode csrf token: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func attachFile(w *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", field, err)
	}
	defer f.Close()

	part, err := w.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", field, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to read %s: %w", field, err)
	}
	return nil
}
