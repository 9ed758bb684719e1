// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package officetopdf

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/pdiddy/office-to-pdf/internal/httputil"
	"github.com/pdiddy/office-to-pdf/pkg/types"
)

// Client talks to one office-to-pdf server. It owns its HTTP transport and
// should be closed when no longer needed. A Client is meant to be driven
// from one goroutine at a time.
type Client struct {
	// LibreOffice exposes the LibreOffice conversion routes.
	LibreOffice *LibreOfficeAPI

	baseURL *url.URL
	hc      *http.Client
	fs      billy.Basic
	logger  *log.Logger

	mu      sync.RWMutex
	headers http.Header
	closed  bool
}

// New creates a Client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	u, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "office-to-pdf",
			Level:  log.WarnLevel,
		})
	}
	transportLogger := logger.WithPrefix("office-to-pdf/http")
	transportLogger.SetLevel(o.logLevel)

	c := &Client{
		baseURL: u,
		fs:      o.fs,
		logger:  logger,
		headers: make(http.Header),
	}
	if c.fs == nil {
		c.fs = osfs.Default
	}
	c.AddHeaders(o.headers)

	if o.httpClient != nil {
		base := o.httpClient.Transport
		if base == nil {
			base = http.DefaultTransport.(*http.Transport).Clone()
		}
		c.hc = &http.Client{
			Timeout:       o.timeout,
			CheckRedirect: o.httpClient.CheckRedirect,
			Jar:           o.httpClient.Jar,
			Transport: &httputil.HeaderTransport{
				Base:    base,
				Headers: c.Headers,
				Logger:  transportLogger,
			},
		}
	} else {
		c.hc, err = httputil.NewClient(o.timeout, o.http2, c.Headers, transportLogger)
		if err != nil {
			return nil, err
		}
	}

	c.LibreOffice = &LibreOfficeAPI{client: c}
	return c, nil
}

// NewFromConfig creates a Client from a configuration record. Explicit
// options are applied after the ones derived from cfg.
func NewFromConfig(cfg types.ClientConfig, opts ...Option) (*Client, error) {
	base := []Option{WithHTTP2(cfg.HTTP2), WithHeaders(cfg.Headers)}
	if cfg.Timeout > 0 {
		base = append(base, WithTimeout(cfg.Timeout))
	}
	if cfg.LogLevel != "" {
		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("parsing log level %q: %w", cfg.LogLevel, err)
		}
		base = append(base, WithLogLevel(level))
	}
	return New(cfg.URL, append(base, opts...)...)
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q needs an http or https scheme", ErrInvalidBaseURL, raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: %q has no host", ErrInvalidBaseURL, raw)
	}
	return u, nil
}

// BaseURL returns the server address the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// AddHeaders merges h into the headers sent with every subsequent request.
// Later values replace earlier ones for the same name.
func (c *Client) AddHeaders(h map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range h {
		c.headers.Set(k, v)
	}
}

// Headers returns a copy of the current default headers.
func (c *Client) Headers() http.Header {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.headers.Clone()
}

// Close releases the connections held by the transport. It is safe to call
// more than once; requests made afterwards fail with ErrClientClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.hc.CloseIdleConnections()
	return nil
}

func (c *Client) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// endpoint resolves route against the base URL, keeping any path prefix the
// base URL carries. Query and fragment of the base URL are dropped.
func (c *Client) endpoint(route string) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + route
	u.RawPath = ""
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}

// ConvertToPDF converts inputs in a single request and writes the result to
// output. With more than one input the result is normally a ZIP of PDFs.
func (c *Client) ConvertToPDF(ctx context.Context, output string, inputs ...string) (*Response, error) {
	route := c.LibreOffice.ToPDF()
	for _, in := range inputs {
		route.Convert(in)
	}
	resp, err := route.Run(ctx)
	if err != nil {
		return nil, err
	}
	if err := resp.ToFile(output); err != nil {
		return nil, err
	}
	return resp, nil
}
