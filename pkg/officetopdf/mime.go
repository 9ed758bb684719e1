// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package officetopdf

import (
	"mime"
	"path/filepath"
	"strings"
)

// officeTypes maps the extensions LibreOffice commonly converts to their
// registered media types. The platform MIME registry is consulted after this
// table, so it only needs entries the registry tends to miss.
var officeTypes = map[string]string{
	".doc":  "application/msword",
	".dot":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".dotx": "application/vnd.openxmlformats-officedocument.wordprocessingml.template",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".xlsm": "application/vnd.ms-excel.sheet.macroEnabled.12",
	".ppt":  "application/vnd.ms-powerpoint",
	".pps":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".ppsx": "application/vnd.openxmlformats-officedocument.presentationml.slideshow",
	".odt":  "application/vnd.oasis.opendocument.text",
	".ods":  "application/vnd.oasis.opendocument.spreadsheet",
	".odp":  "application/vnd.oasis.opendocument.presentation",
	".odg":  "application/vnd.oasis.opendocument.graphics",
	".rtf":  "application/rtf",
	".csv":  "text/csv",
	".txt":  "text/plain",
	".htm":  "text/html",
	".html": "text/html",
	".xml":  "application/xml",
	".epub": "application/epub+zip",
	".pdf":  "application/pdf",
}

// MimeType guesses the media type of path from its extension. The boolean is
// false when the extension is not recognised.
func MimeType(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return "", false
	}
	if t, ok := officeTypes[ext]; ok {
		return t, true
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t, true
	}
	return "", false
}
