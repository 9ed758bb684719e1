// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package officetopdf

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"
)

// DefaultTimeout applies to the whole exchange when WithTimeout is not given.
const DefaultTimeout = 30 * time.Second

type options struct {
	timeout    time.Duration
	http2      bool
	logLevel   log.Level
	logger     *log.Logger
	httpClient *http.Client
	fs         billy.Basic
	headers    map[string]string
}

func defaultOptions() options {
	return options{
		timeout:  DefaultTimeout,
		http2:    true,
		logLevel: log.ErrorLevel,
	}
}

// Option configures a Client.
type Option func(*options)

// WithTimeout sets the connect-plus-read timeout applied to every request.
// Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithHTTP2 sets whether the transport negotiates HTTP/2. Default true.
func WithHTTP2(enabled bool) Option {
	return func(o *options) { o.http2 = enabled }
}

// WithLogLevel sets the verbosity of the transport logger. Default error.
func WithLogLevel(level log.Level) Option {
	return func(o *options) { o.logLevel = level }
}

// WithLogger replaces the library logger that reports upload-name
// collisions. The transport logger is derived from it.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithHTTPClient makes the Client wrap c's transport instead of building its
// own. The timeout from WithTimeout still applies, and c itself is not modified.
// A nil transport is replaced by a private clone of http.DefaultTransport, so
// Close never touches connections shared with other clients.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithFilesystem sets the filesystem registered paths are opened from.
// Paths are handed to fs unchanged. Default is the host filesystem.
func WithFilesystem(fs billy.Basic) Option {
	return func(o *options) { o.fs = fs }
}

// WithHeaders seeds the default headers, as if AddHeaders were called right
// after construction.
func WithHeaders(h map[string]string) Option {
	return func(o *options) { o.headers = h }
}
