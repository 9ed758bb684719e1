// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package officetopdf

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gabriel-vasile/mimetype"
)

// Response is the result of a successful conversion. Content is either a
// single PDF or, when several files were submitted, a ZIP of PDFs; the
// service decides which.
type Response struct {
	StatusCode int
	Header     http.Header
	Content    []byte
}

// ToFile writes the content to path, creating or truncating it.
func (r *Response) ToFile(path string) error {
	if err := os.WriteFile(path, r.Content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// DetectedType sniffs the media type of the content, e.g. "application/pdf"
// or "application/zip".
func (r *Response) DetectedType() string {
	return mimetype.Detect(r.Content).String()
}

// IsZip reports whether the content is a ZIP archive.
func (r *Response) IsZip() bool {
	return mimetype.Detect(r.Content).Is("application/zip")
}
