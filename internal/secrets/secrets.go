// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads static request headers, typically API keys, from a
// directory of plain-text files. Each file is one header: the filename is
// the header name and the trimmed contents are its value.
//
//	.secrets/headers/Authorization   -> "Bearer abc123"
//	.secrets/headers/X-Api-Key       -> "k_789"
package secrets

import (
	"fmt"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/net/http/httpguts"
)

// LoadHeaders reads every file in dir and returns canonical header names
// mapped to trimmed values. A missing directory is not an error. Unreadable
// files and names that are not valid header names are reported on logger
// and skipped; logger may be nil.
func LoadHeaders(dir string, logger *log.Logger) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading headers directory %s: %w", dir, err)
	}

	headers := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !httpguts.ValidHeaderFieldName(name) {
			warn(logger, "skipping file with invalid header name", "file", name)
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			warn(logger, "could not read header file", "file", name, "err", err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value == "" {
			continue
		}
		if !httpguts.ValidHeaderFieldValue(value) {
			warn(logger, "skipping header with invalid value", "header", name)
			continue
		}
		headers[textproto.CanonicalMIMEHeaderKey(name)] = value
	}

	return headers, nil
}

// Names returns the sorted header names in h, for logging without exposing
// values.
func Names(h map[string]string) []string {
	names := make([]string, 0, len(h))
	for k := range h {
		names = append(names, http.CanonicalHeaderKey(k))
	}
	sort.Strings(names)
	return names
}

func warn(logger *log.Logger, msg string, keyvals ...interface{}) {
	if logger != nil {
		logger.Warn(msg, keyvals...)
	}
}
