// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP plumbing shared by the client and the CLI:
// transport construction, default-header injection and exchange logging.
package httputil

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/net/http2"
)

// NewTransport returns a transport cloned from http.DefaultTransport. When
// preferHTTP2 is set the transport negotiates HTTP/2 over TLS; otherwise it
// is pinned to HTTP/1.1.
func NewTransport(preferHTTP2 bool) (*http.Transport, error) {
	t := http.DefaultTransport.(*http.Transport).Clone()
	if !preferHTTP2 {
		t.ForceAttemptHTTP2 = false
		t.TLSNextProto = map[string]func(string, *tls.Conn) http.RoundTripper{}
		return t, nil
	}
	if _, err := http2.ConfigureTransports(t); err != nil {
		return nil, fmt.Errorf("configuring HTTP/2: %w", err)
	}
	return t, nil
}

// HeaderTransport is an http.RoundTripper that adds default headers to every
// outgoing request and logs each exchange. Headers set on the request itself
// take precedence over the defaults.
type HeaderTransport struct {
	// Base performs the actual round trip. Nil means http.DefaultTransport.
	Base http.RoundTripper

	// Headers returns the defaults to apply. It is called once per request so
	// that headers added after construction are picked up.
	Headers func() http.Header

	// Logger receives one debug line per exchange and an error line per
	// transport failure. Nil disables logging.
	Logger *log.Logger
}

// RoundTrip implements http.RoundTripper.
func (t *HeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	if t.Headers != nil {
		defaults := t.Headers()
		if len(defaults) > 0 {
			req = req.Clone(req.Context())
			for k, vs := range defaults {
				if _, ok := req.Header[k]; ok {
					continue
				}
				req.Header[k] = append([]string(nil), vs...)
			}
		}
	}

	start := time.Now()
	resp, err := base.RoundTrip(req)
	if err != nil {
		if t.Logger != nil {
			t.Logger.Error("request failed", "method", req.Method, "url", req.URL.Redacted(), "err", err)
		}
		return nil, err
	}
	if t.Logger != nil {
		t.Logger.Debug("request", "method", req.Method, "url", req.URL.Redacted(),
			"status", resp.StatusCode, "proto", resp.Proto, "elapsed", time.Since(start))
	}
	return resp, nil
}

// CloseIdleConnections closes idle connections of the base transport when it
// supports doing so.
func (t *HeaderTransport) CloseIdleConnections() {
	type closeIdler interface{ CloseIdleConnections() }
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if ci, ok := base.(closeIdler); ok {
		ci.CloseIdleConnections()
	}
}

// NewClient builds an *http.Client with the given timeout whose transport
// injects headers from the supplied function.
func NewClient(timeout time.Duration, preferHTTP2 bool, headers func() http.Header, logger *log.Logger) (*http.Client, error) {
	base, err := NewTransport(preferHTTP2)
	if err != nil {
		return nil, err
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &HeaderTransport{
			Base:    base,
			Headers: headers,
			Logger:  logger,
		},
	}, nil
}
