// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/office-to-pdf/pkg/officetopdf"
	"github.com/pdiddy/office-to-pdf/pkg/types"
)

// RecordPath returns the YAML record path for an output file: the output
// path with its extension replaced by .yaml.
func RecordPath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + ".yaml"
}

// NewRecord describes a successful conversion.
func NewRecord(server, output string, inputs []string, resp *officetopdf.Response) types.ConversionRecord {
	return types.ConversionRecord{
		Inputs:      inputs,
		Output:      output,
		Server:      server,
		StatusCode:  resp.StatusCode,
		ContentType: resp.DetectedType(),
		Bytes:       len(resp.Content),
		Archive:     len(inputs) > 1,
		ConvertedAt: time.Now().UTC(),
		Status:      types.ConversionDone,
	}
}

// FailedRecord describes a conversion that returned err. The status code is
// filled in when the server answered.
func FailedRecord(server, output string, inputs []string, err error) types.ConversionRecord {
	rec := types.ConversionRecord{
		Inputs:      inputs,
		Output:      output,
		Server:      server,
		Archive:     len(inputs) > 1,
		ConvertedAt: time.Now().UTC(),
		Status:      types.ConversionFailed,
		Error:       err.Error(),
	}
	var se *officetopdf.HTTPStatusError
	if errors.As(err, &se) {
		rec.StatusCode = se.StatusCode
	}
	return rec
}

// WriteRecord writes rec to path as YAML.
func WriteRecord(path string, rec types.ConversionRecord) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing record %s: %w", path, err)
	}
	return nil
}

// ReadRecord reads a ConversionRecord from a YAML file.
func ReadRecord(path string) (*types.ConversionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec types.ConversionRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing record %s: %w", path, err)
	}
	return &rec, nil
}
