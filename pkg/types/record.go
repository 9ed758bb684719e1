// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus is the outcome of converting one input.
type ConversionStatus string

const (
	ConversionNone    ConversionStatus = "none"
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// ConversionRecord describes one completed conversion request. It is written
// as YAML next to the output file.
type ConversionRecord struct {
	// Inputs lists the local files that were uploaded, in upload order.
	Inputs []string `json:"inputs" yaml:"inputs"`

	// Output is the path the converted content was written to.
	Output string `json:"output" yaml:"output"`

	// Server is the base URL of the conversion service.
	Server string `json:"server" yaml:"server"`

	// StatusCode is the HTTP status the server replied with.
	StatusCode int `json:"status_code" yaml:"status_code"`

	// ContentType is the sniffed media type of the output
	// (application/pdf or application/zip).
	ContentType string `json:"content_type" yaml:"content_type"`

	// Bytes is the size of the output.
	Bytes int `json:"bytes" yaml:"bytes"`

	// Archive is true when more than one input was submitted.
	Archive bool `json:"archive" yaml:"archive"`

	// ConvertedAt is when the response was received (UTC).
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`

	// Status is the outcome of the conversion.
	Status ConversionStatus `json:"status" yaml:"status"`

	// Error holds the failure message when Status is failed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}
