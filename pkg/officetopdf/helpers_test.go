// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package officetopdf

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"
	"github.com/stretchr/testify/require"
)

// capturedPart is one multipart part as seen by the mock server.
type capturedPart struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// mockServer stands in for the conversion service. It records every request
// it receives and answers with a canned status and body.
type mockServer struct {
	*httptest.Server

	status int
	body   []byte

	mu       sync.Mutex
	calls    int
	paths    []string
	headers  []http.Header
	requests [][]capturedPart
}

func newMockServer(t *testing.T, status int, body []byte) *mockServer {
	t.Helper()
	m := &mockServer{status: status, body: body}
	m.Server = httptest.NewServer(http.HandlerFunc(m.handle))
	t.Cleanup(m.Close)
	return m
}

func (m *mockServer) handle(w http.ResponseWriter, r *http.Request) {
	var parts []capturedPart
	if mr, err := r.MultipartReader(); err == nil {
		for {
			p, err := mr.NextPart()
			if err != nil {
				break
			}
			data, _ := io.ReadAll(p)
			parts = append(parts, capturedPart{
				Field:       p.FormName(),
				Filename:    p.FileName(),
				ContentType: p.Header.Get("Content-Type"),
				Data:        data,
			})
		}
	}

	m.mu.Lock()
	m.calls++
	m.paths = append(m.paths, r.URL.Path)
	m.headers = append(m.headers, r.Header.Clone())
	m.requests = append(m.requests, parts)
	m.mu.Unlock()

	if !strings.HasSuffix(r.URL.Path, convertEndpoint) || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(m.status)
	w.Write(m.body)
}

func (m *mockServer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockServer) pathsSeen() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.paths...)
}

func (m *mockServer) lastParts(t *testing.T) []capturedPart {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.requests, "server received no request")
	return m.requests[len(m.requests)-1]
}

func (m *mockServer) lastHeader(t *testing.T) http.Header {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.headers, "server received no request")
	return m.headers[len(m.headers)-1]
}

// trackingFS counts the files opened through it and how many were closed.
type trackingFS struct {
	billy.Filesystem

	mu     sync.Mutex
	opened int
	closed int
}

func (t *trackingFS) Open(name string) (billy.File, error) {
	f, err := t.Filesystem.Open(name)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	t.opened++
	t.mu.Unlock()
	return &trackedFile{File: f, fs: t}, nil
}

func (t *trackingFS) counts() (opened, closed int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.opened, t.closed
}

type trackedFile struct {
	billy.File
	fs   *trackingFS
	once sync.Once
}

func (f *trackedFile) Close() error {
	f.once.Do(func() {
		f.fs.mu.Lock()
		f.fs.closed++
		f.fs.mu.Unlock()
	})
	return f.File.Close()
}

// writeTemp writes content to name inside a fresh temp dir and returns the path.
func writeTemp(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

// newTestClient builds a client for srv that logs into buf.
func newTestClient(t *testing.T, url string, opts ...Option) (*Client, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})
	c, err := New(url, append([]Option{WithLogger(logger)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, &buf
}
