// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package officetopdf

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// formField is the multipart field every uploaded file is sent under. The
// service reads repeated parts of the same name.
const formField = "file"

// part is an opened upload: its name, optional media type and content.
type part struct {
	name        string
	contentType string
	file        billy.File
}

// openParts opens every file for reading. The returned release closes the
// opened files in reverse order and must be called exactly once when err is
// nil; on error anything already opened has been closed.
func openParts(fs billy.Basic, files []UploadFile) ([]part, func(), error) {
	parts := make([]part, 0, len(files))
	release := func() {
		for i := len(parts) - 1; i >= 0; i-- {
			parts[i].file.Close()
		}
	}

	for _, f := range files {
		fh, err := fs.Open(f.Path)
		if err != nil {
			release()
			return nil, nil, fmt.Errorf("opening %s: %w", f.Path, err)
		}
		ct, _ := MimeType(f.Name)
		parts = append(parts, part{name: f.Name, contentType: ct, file: fh})
	}
	return parts, release, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

type partWriter struct {
	*multipart.Writer
}

func newPartWriter(w io.Writer) *partWriter {
	return &partWriter{Writer: multipart.NewWriter(w)}
}

// writePart adds p under formField. Content-Type is only sent when known.
func (w *partWriter) writePart(p part) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(formField), quoteEscaper.Replace(p.name)))
	if p.contentType != "" {
		h.Set("Content-Type", p.contentType)
	}
	dst, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("creating part for %s: %w", p.name, err)
	}
	if _, err := io.Copy(dst, p.file); err != nil {
		return fmt.Errorf("reading %s: %w", p.name, err)
	}
	return nil
}
