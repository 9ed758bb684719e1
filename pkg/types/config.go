// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ClientConfig holds the settings used to build a conversion client.
type ClientConfig struct {
	// URL is the base address of the office-to-pdf server
	// (e.g. "http://127.0.0.1:8000").
	URL string `json:"url" yaml:"url"`

	// Timeout bounds each request, connect through read (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// HTTP2 lets the transport negotiate HTTP/2 with the server.
	HTTP2 bool `json:"http2" yaml:"http2"`

	// LogLevel is the transport log verbosity: debug, info, warn or error.
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`

	// Headers are sent with every request.
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// BatchConfig holds settings for converting many documents one request each.
type BatchConfig struct {
	// OutputDir receives one PDF per input, named after the input.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// WriteRecords writes a YAML ConversionRecord beside each output.
	WriteRecords bool `json:"write_records" yaml:"write_records"`

	// Overwrite converts inputs even when their output already exists.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`
}
