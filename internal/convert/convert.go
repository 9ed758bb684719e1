// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs batches of office documents through a conversion
// service, one request per document, reporting per-file status lines.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/office-to-pdf/pkg/officetopdf"
	"github.com/pdiddy/office-to-pdf/pkg/types"
)

// Converter sends inputs to a conversion service in one request and writes
// the result to output. *officetopdf.Client implements it.
type Converter interface {
	ConvertToPDF(ctx context.Context, output string, inputs ...string) (*officetopdf.Response, error)
	BaseURL() string
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of inputs processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any input failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// OutputPath returns where the PDF for input is written inside outDir.
func OutputPath(input, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(outDir, base+".pdf")
}

// ConvertFile converts a single input into cfg.OutputDir. If the PDF already
// exists and cfg.Overwrite is false it skips the input.
func ConvertFile(ctx context.Context, c Converter, input string, cfg types.BatchConfig, w io.Writer) types.ConversionStatus {
	out := OutputPath(input, cfg.OutputDir)
	name := filepath.Base(input)

	if !cfg.Overwrite {
		if _, err := os.Stat(out); err == nil {
			fmt.Fprintf(w, "skipped:   %s (already exists)\n", name)
			return types.ConversionSkipped
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", name, err)
		return types.ConversionFailed
	}

	resp, err := c.ConvertToPDF(ctx, out, input)
	if err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", name, err)
		if cfg.WriteRecords {
			rec := FailedRecord(c.BaseURL(), out, []string{input}, err)
			if werr := WriteRecord(RecordPath(out), rec); werr != nil {
				fmt.Fprintf(w, "  warning: %v\n", werr)
			}
		}
		return types.ConversionFailed
	}

	if cfg.WriteRecords {
		rec := NewRecord(c.BaseURL(), out, []string{input}, resp)
		if err := WriteRecord(RecordPath(out), rec); err != nil {
			fmt.Fprintf(w, "  warning: %v\n", err)
		}
	}

	fmt.Fprintf(w, "converted: %s -> %s\n", name, out)
	return types.ConversionDone
}

// ConvertBatch converts each input in turn, printing per-file status to w
// and returning a summary. The batch stops early only if ctx is cancelled;
// remaining inputs are then counted as failed.
func ConvertBatch(ctx context.Context, c Converter, inputs []string, cfg types.BatchConfig, w io.Writer) BatchResult {
	var result BatchResult
	start := time.Now()
	for _, in := range inputs {
		if ctx.Err() != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", filepath.Base(in), ctx.Err())
			result.Failed++
			continue
		}
		switch ConvertFile(ctx, c, in, cfg, w) {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionSkipped:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d) in %s\n",
		result.Converted, result.Skipped, result.Failed, result.Total(), time.Since(start).Round(time.Millisecond))
	return result
}
