package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/office-to-pdf/internal/convert"
	"github.com/pdiddy/office-to-pdf/pkg/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch FILE...",
	Short: "Convert documents one request each into an output directory",
	Long: `Batch converts every FILE with its own request and writes FILE's PDF into
--out-dir. Inputs whose PDF already exists are skipped unless --overwrite is
set. A summary is printed at the end and the command fails if any input did.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("out-dir", "pdf", "directory for converted PDFs")
	batchCmd.Flags().Bool("record", false, "write a YAML conversion record beside each PDF")
	batchCmd.Flags().Bool("overwrite", false, "convert even when the PDF already exists")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("out-dir")
	record, _ := cmd.Flags().GetBool("record")
	overwrite, _ := cmd.Flags().GetBool("overwrite")

	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	cfg := types.BatchConfig{
		OutputDir:    outDir,
		WriteRecords: record,
		Overwrite:    overwrite,
	}
	result := convert.ConvertBatch(cmd.Context(), client, args, cfg, cmd.OutOrStdout())
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}
