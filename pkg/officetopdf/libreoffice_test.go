// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package officetopdf

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePDF = "%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF\n"

func TestRun_SingleFile(t *testing.T) {
	srv := newMockServer(t, http.StatusOK, []byte(samplePDF))
	c, _ := newTestClient(t, srv.URL)
	in := writeTemp(t, "report.xlsx", []byte("xlsx bytes"))

	route := c.LibreOffice.ToPDF().Convert(in)
	resp, err := route.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []byte(samplePDF), resp.Content)
	assert.Equal(t, "application/octet-stream", resp.Header.Get("Content-Type"))
	assert.False(t, route.ResultIsZip())

	parts := srv.lastParts(t)
	require.Len(t, parts, 1)
	assert.Equal(t, "file", parts[0].Field)
	assert.Equal(t, "report.xlsx", parts[0].Filename)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", parts[0].ContentType)
	assert.Equal(t, []byte("xlsx bytes"), parts[0].Data)
	assert.Equal(t, []string{"/convert_to_pdf"}, srv.pathsSeen())
}

func TestRun_MultipleFilesReturnArchiveUnmodified(t *testing.T) {
	var archive bytes.Buffer
	zw := zip.NewWriter(&archive)
	for _, name := range []string{"a.pdf", "b.pdf"} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(samplePDF))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	srv := newMockServer(t, http.StatusOK, archive.Bytes())
	c, _ := newTestClient(t, srv.URL)

	route := c.LibreOffice.ToPDF().
		Convert(writeTemp(t, "a.docx", []byte("doc a"))).
		Convert(writeTemp(t, "b.docx", []byte("doc b")))
	resp, err := route.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, route.ResultIsZip())
	assert.Equal(t, 2, route.Calls())
	assert.Equal(t, archive.Bytes(), resp.Content)
	assert.True(t, resp.IsZip())

	parts := srv.lastParts(t)
	require.Len(t, parts, 2)
	assert.Equal(t, "a.docx", parts[0].Filename)
	assert.Equal(t, "b.docx", parts[1].Filename)
	for _, p := range parts {
		assert.Equal(t, "file", p.Field)
	}
}

func TestRun_OneRequestWithNParts(t *testing.T) {
	for n := 1; n <= 4; n++ {
		t.Run(fmt.Sprintf("%d files", n), func(t *testing.T) {
			srv := newMockServer(t, http.StatusOK, []byte(samplePDF))
			c, _ := newTestClient(t, srv.URL)

			route := c.LibreOffice.ToPDF()
			for i := 0; i < n; i++ {
				route.Convert(writeTemp(t, fmt.Sprintf("doc%d.odt", i), []byte{byte(i)}))
			}
			_, err := route.Run(context.Background())
			require.NoError(t, err)

			assert.Equal(t, 1, srv.callCount())
			parts := srv.lastParts(t)
			require.Len(t, parts, n)
			for i, p := range parts {
				assert.Equal(t, "file", p.Field)
				assert.Equal(t, fmt.Sprintf("doc%d.odt", i), p.Filename)
				assert.Equal(t, []byte{byte(i)}, p.Data)
			}
			assert.Equal(t, n > 1, route.ResultIsZip())
		})
	}
}

func TestRun_NameCollisionKeepsLatest(t *testing.T) {
	srv := newMockServer(t, http.StatusOK, []byte(samplePDF))
	c, logs := newTestClient(t, srv.URL)

	first := writeTemp(t, "report.xlsx", []byte("first"))
	second := writeTemp(t, "report.xlsx", []byte("second"))
	other := writeTemp(t, "notes.csv", []byte("a,b\n"))

	route := c.LibreOffice.ToPDF().Convert(first).Convert(other).Convert(second)
	_, err := route.Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "overwriting")
	assert.Contains(t, logs.String(), "report.xlsx")
	assert.Equal(t, 3, route.Calls())
	assert.True(t, route.ResultIsZip())
	assert.Equal(t, []UploadFile{
		{Name: "report.xlsx", Path: second},
		{Name: "notes.csv", Path: other},
	}, route.Files())

	parts := srv.lastParts(t)
	require.Len(t, parts, 2)
	assert.Equal(t, "report.xlsx", parts[0].Filename)
	assert.Equal(t, []byte("second"), parts[0].Data)
	assert.Equal(t, "notes.csv", parts[1].Filename)
	assert.Equal(t, "text/csv", parts[1].ContentType)
}

func TestRun_ConvertAsUsesExplicitName(t *testing.T) {
	srv := newMockServer(t, http.StatusOK, []byte(samplePDF))
	c, _ := newTestClient(t, srv.URL)

	in := writeTemp(t, "tmp1234", []byte("content"))
	_, err := c.LibreOffice.ToPDF().ConvertAs(in, "quarterly.pptx").Run(context.Background())
	require.NoError(t, err)

	parts := srv.lastParts(t)
	require.Len(t, parts, 1)
	assert.Equal(t, "quarterly.pptx", parts[0].Filename)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.presentationml.presentation", parts[0].ContentType)
}

func TestRun_UnknownExtensionOmitsContentType(t *testing.T) {
	srv := newMockServer(t, http.StatusOK, []byte(samplePDF))
	c, _ := newTestClient(t, srv.URL)

	_, err := c.LibreOffice.ToPDF().Convert(writeTemp(t, "blob.zzqx", []byte("?"))).Run(context.Background())
	require.NoError(t, err)

	parts := srv.lastParts(t)
	require.Len(t, parts, 1)
	assert.Empty(t, parts[0].ContentType)
}

func TestRun_ZeroFilesStillSendsRequest(t *testing.T) {
	srv := newMockServer(t, http.StatusOK, []byte(samplePDF))
	c, _ := newTestClient(t, srv.URL)

	route := c.LibreOffice.ToPDF()
	resp, err := route.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, srv.callCount())
	assert.Empty(t, srv.lastParts(t))
	assert.False(t, route.ResultIsZip())
}

func TestRun_HTTPStatusError(t *testing.T) {
	srv := newMockServer(t, http.StatusUnprocessableEntity, []byte("unsupported format"))
	c, _ := newTestClient(t, srv.URL)

	resp, err := c.LibreOffice.ToPDF().Convert(writeTemp(t, "a.docx", []byte("x"))).Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, resp)

	var se *HTTPStatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnprocessableEntity, se.StatusCode)
	assert.Equal(t, []byte("unsupported format"), se.Body)
	assert.True(t, IsHTTPStatus(err, http.StatusUnprocessableEntity))
	assert.Contains(t, err.Error(), "422")
}

func TestRun_MissingFileFailsBeforeNetwork(t *testing.T) {
	srv := newMockServer(t, http.StatusOK, []byte(samplePDF))
	c, _ := newTestClient(t, srv.URL)

	missing := filepath.Join(t.TempDir(), "nope.docx")
	_, err := c.LibreOffice.ToPDF().Convert(missing).Run(context.Background())
	require.Error(t, err)

	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), missing)
	assert.Equal(t, 0, srv.callCount())
}

func TestRun_ClosesEveryOpenedFile(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		files      []string
		stopServer bool
		wantErr    bool
		wantOpened int
	}{
		{name: "success", status: http.StatusOK, files: []string{"a.docx", "b.xlsx", "c.pptx"}, wantOpened: 3},
		{name: "http error", status: http.StatusInternalServerError, files: []string{"a.docx", "b.xlsx"}, wantErr: true, wantOpened: 2},
		{name: "missing file after opened ones", status: http.StatusOK, files: []string{"a.docx", "b.xlsx", "missing.odt"}, wantErr: true, wantOpened: 2},
		{name: "transport error", status: http.StatusOK, files: []string{"a.docx"}, stopServer: true, wantErr: true, wantOpened: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := memfs.New()
			for _, f := range []string{"a.docx", "b.xlsx", "c.pptx"} {
				require.NoError(t, util.WriteFile(mem, "/in/"+f, []byte(f), 0o644))
			}
			fs := &trackingFS{Filesystem: mem}

			srv := newMockServer(t, tt.status, []byte(samplePDF))
			c, _ := newTestClient(t, srv.URL, WithFilesystem(fs))
			if tt.stopServer {
				srv.Close()
			}

			route := c.LibreOffice.ToPDF()
			for _, f := range tt.files {
				route.Convert("/in/" + f)
			}
			_, err := route.Run(context.Background())
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			opened, closed := fs.counts()
			assert.Equal(t, tt.wantOpened, opened)
			assert.Equal(t, opened, closed, "every opened file must be closed")
		})
	}
}

func TestRun_TransportErrorIsReturnedUnwrapped(t *testing.T) {
	srv := newMockServer(t, http.StatusOK, nil)
	c, _ := newTestClient(t, srv.URL)
	srv.Close()

	_, err := c.LibreOffice.ToPDF().Run(context.Background())
	require.Error(t, err)

	var ue *url.Error
	assert.True(t, errors.As(err, &ue))
	var se *HTTPStatusError
	assert.False(t, errors.As(err, &se))
}

func TestRun_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	c, _ := newTestClient(t, srv.URL, WithTimeout(50*time.Millisecond))

	_, err := c.LibreOffice.ToPDF().Run(context.Background())
	require.Error(t, err)

	var ue *url.Error
	require.True(t, errors.As(err, &ue))
	assert.True(t, ue.Timeout())
}

func TestRun_ContextCancelled(t *testing.T) {
	srv := newMockServer(t, http.StatusOK, []byte(samplePDF))
	c, _ := newTestClient(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.LibreOffice.ToPDF().Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, srv.callCount())
}

func TestRun_RouteCanRunAgain(t *testing.T) {
	srv := newMockServer(t, http.StatusOK, []byte(samplePDF))
	c, _ := newTestClient(t, srv.URL)

	route := c.LibreOffice.ToPDF().Convert(writeTemp(t, "a.docx", []byte("x")))
	_, err := route.Run(context.Background())
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		_, _ = route.Run(context.Background())
	})
	assert.Equal(t, 2, srv.callCount())
}

func TestToPDF_ReturnsFreshRoute(t *testing.T) {
	srv := newMockServer(t, http.StatusOK, nil)
	c, _ := newTestClient(t, srv.URL)

	a := c.LibreOffice.ToPDF().Convert("x.docx")
	b := c.LibreOffice.ToPDF()

	assert.Len(t, a.Files(), 1)
	assert.Empty(t, b.Files())
	assert.Equal(t, 0, b.Calls())
}
