// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package officetopdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
)

// convertEndpoint is the server route that turns office documents into PDF.
const convertEndpoint = "/convert_to_pdf"

// LibreOfficeAPI groups the LibreOffice-backed routes of the service.
type LibreOfficeAPI struct {
	client *Client
}

// ToPDF starts a new conversion request.
func (a *LibreOfficeAPI) ToPDF() *ConvertRoute {
	return &ConvertRoute{
		client: a.client,
		route:  convertEndpoint,
		files:  make(map[string]string),
	}
}

// UploadFile is one registered input: the name it is uploaded under and the
// local path its content is read from.
type UploadFile struct {
	Name string
	Path string
}

// ConvertRoute accumulates the files for one conversion request. Build it
// with Convert or ConvertAs and finish with Run.
type ConvertRoute struct {
	client *Client
	route  string

	order []string
	files map[string]string
	calls int
}

// Convert registers the file at path, uploaded under its base name.
//
// Calling Convert more than once normally yields a ZIP with one PDF per
// input; see ResultIsZip.
func (r *ConvertRoute) Convert(path string) *ConvertRoute {
	return r.ConvertAs(path, filepath.Base(path))
}

// ConvertAs registers the file at path under an explicit upload name. A name
// that is already registered is replaced and keeps its position.
func (r *ConvertRoute) ConvertAs(path, name string) *ConvertRoute {
	if prev, ok := r.files[name]; ok {
		r.client.logger.Warn("upload name already registered, overwriting", "name", name, "previous", prev, "path", path)
	} else {
		r.order = append(r.order, name)
	}
	r.files[name] = path
	r.calls++
	return r
}

// Calls returns how many times Convert or ConvertAs was called.
func (r *ConvertRoute) Calls() int { return r.calls }

// ResultIsZip reports whether the caller should expect a ZIP archive. It is
// a hint derived from the number of Convert calls; the request is the same
// either way.
func (r *ConvertRoute) ResultIsZip() bool { return r.calls > 1 }

// Files returns the registered inputs in registration order.
func (r *ConvertRoute) Files() []UploadFile {
	out := make([]UploadFile, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, UploadFile{Name: name, Path: r.files[name]})
	}
	return out
}

// Run uploads every registered file in one multipart POST and returns the
// converted document. Files are opened before the request is sent, so a
// missing input fails without any network traffic, and all of them are
// closed before Run returns. A non-2xx reply yields *HTTPStatusError.
func (r *ConvertRoute) Run(ctx context.Context) (*Response, error) {
	if r.client.isClosed() {
		return nil, ErrClientClosed
	}

	parts, release, err := openParts(r.client.fs, r.Files())
	if err != nil {
		return nil, err
	}
	defer release()

	body, contentType, err := encodeParts(parts)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.client.endpoint(r.route), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := r.client.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPStatusError{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       content,
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Content:    content,
	}, nil
}

// encodeParts writes parts into an in-memory multipart body.
func encodeParts(parts []part) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := newPartWriter(&buf)
	for _, p := range parts {
		if err := w.writePart(p); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
