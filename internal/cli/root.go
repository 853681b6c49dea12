// Package cli implements the recbatch command line interface.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/recbatch/internal/logging"
)

// Output format names shared by the process and demo commands.
const (
	outputFormatTable  = "table"
	outputFormatJSON   = "json"
	outputFormatNDJSON = "ndjson"
)

// isWriterTerminal reports whether w is an interactive terminal. Styled
// output is only used when a human is watching.
func isWriterTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root Cobra command for the recbatch CLI.
// It wires up logging and tracing in PersistentPreRunE, so every subcommand
// runs with a logger and trace ID in its context.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "recbatch",
		Short:   "Group text records into bounded batches",
		Long:    "recbatch: group variable-sized text records into batches bounded by record size, batch size, and record count",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			result, err := setupLogging(cmd)
			if err != nil {
				return err
			}
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if logResult != nil {
				return logResult.Close()
			}
			return nil
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "path to config file (default ~/.recbatch/config.yaml)")
	cmd.AddCommand(NewProcessCmd(), NewDemoCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Batch records from a JSON array file
  recbatch process --input records.json

  # Batch plain text lines from stdin, one record per line
  cat records.txt | recbatch process --input - --input-format lines

  # Tighter limits than the defaults
  recbatch process --input records.json --max-batch-bytes 1000000 --max-records-per-batch 100

  # Stream each batch as NDJSON while processing
  recbatch process --input records.ndjson --output ndjson

  # Run the built-in demonstration workload
  recbatch demo

  # Initialize configuration
  recbatch config init`

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd())
	return cmd
}
