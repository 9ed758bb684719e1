package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/office-to-pdf/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert FILE...",
	Short: "Convert one or more documents in a single request",
	Long: `Convert uploads every FILE in one request. A single document comes back
as a PDF; several come back as a ZIP holding one PDF per document.

Without --output the result is written next to the first input, with a .pdf
or .zip extension depending on what the server returned.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output file (default: first input name with .pdf or .zip)")
	convertCmd.Flags().Bool("record", false, "write a YAML conversion record beside the output")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	record, _ := cmd.Flags().GetBool("record")

	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	route := client.LibreOffice.ToPDF()
	for _, in := range args {
		route.Convert(in)
	}

	explicit := output != ""
	if !explicit {
		output = defaultOutput(args[0], route.ResultIsZip())
	}

	start := time.Now()
	resp, err := route.Run(cmd.Context())
	if err != nil {
		if record {
			if werr := convert.WriteRecord(convert.RecordPath(output), convert.FailedRecord(client.BaseURL(), output, args, err)); werr != nil {
				logger.Warn("could not write record", "err", werr)
			}
		}
		return err
	}

	if !explicit && resp.IsZip() {
		output = defaultOutput(args[0], true)
	}
	if err := resp.ToFile(output); err != nil {
		return err
	}

	if record {
		rec := convert.NewRecord(client.BaseURL(), output, args, resp)
		if err := convert.WriteRecord(convert.RecordPath(output), rec); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "converted: %d file(s) -> %s (%s, %d bytes, %s)\n",
		len(args), output, resp.DetectedType(), len(resp.Content), elapsed(start))
	return nil
}

// defaultOutput derives an output path from the first input.
func defaultOutput(input string, archive bool) string {
	ext := ".pdf"
	if archive {
		ext = ".zip"
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}
