package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/recbatch/internal/batch"
	"github.com/rshade/recbatch/internal/ingest"
	"github.com/rshade/recbatch/internal/logging"
)

// ProcessParams holds the parameters for the process command execution.
// Exported for testing.
type ProcessParams struct {
	Input       string
	InputFormat string
	Output      string

	// Constraint overrides; only applied when the flag was set explicitly.
	MaxRecordBytes     int
	MaxBatchBytes      int
	MaxRecordsPerBatch int
}

// NewProcessCmd creates the process subcommand, the main batching entry
// point: load records from a document, run them through the batch processor,
// and report the resulting batches and metrics.
func NewProcessCmd() *cobra.Command {
	var params ProcessParams

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Batch records from a file or stdin",
		Long: `Reads a record document and groups its records into batches bounded by
the configured limits: maximum bytes per record, maximum cumulative bytes
per batch, and maximum records per batch.

Records over the per-record limit are discarded (counted and logged), never
batched. Input order is preserved exactly across batch boundaries.

Input formats:
  json    top-level JSON array of records
  ndjson  one JSON value per line
  lines   plain text, one record per line

With --output ndjson each batch is written the moment it closes, so a
downstream consumer can start forwarding batches while the rest of the
input is still being scanned.`,
		Example: `  # Batch a JSON array, table summary
  recbatch process --input records.json

  # Stream batches from stdin lines as NDJSON
  cat records.txt | recbatch process --input - --input-format lines --output ndjson

  # Override the per-batch limits
  recbatch process --input records.json --max-batch-bytes 1000000 --max-records-per-batch 100`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeProcess(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Input, "input", "", "record document path, or - for stdin")
	cmd.Flags().StringVar(&params.InputFormat, "input-format", "",
		"record format: json, ndjson, or lines (default: detected from extension)")
	cmd.Flags().StringVar(&params.Output, "output", "",
		"output format: table, json, or ndjson (default: from config)")
	cmd.Flags().IntVar(&params.MaxRecordBytes, "max-record-bytes", batch.DefaultMaxRecordBytes,
		"maximum encoded size of a single record")
	cmd.Flags().IntVar(&params.MaxBatchBytes, "max-batch-bytes", batch.DefaultMaxBatchBytes,
		"maximum cumulative encoded size of a batch")
	cmd.Flags().IntVar(&params.MaxRecordsPerBatch, "max-records-per-batch", batch.DefaultMaxRecordsPerBatch,
		"maximum number of records in a batch")

	return cmd
}

// resolveConstraints builds the effective constraints: config file values,
// overridden by any constraint flag the user set explicitly.
func resolveConstraints(cmd *cobra.Command, params ProcessParams) batch.Constraints {
	constraints := configFromContext(cmd.Context()).Batch.ToConstraints()

	if cmd.Flags().Changed("max-record-bytes") {
		constraints.MaxRecordBytes = params.MaxRecordBytes
	}
	if cmd.Flags().Changed("max-batch-bytes") {
		constraints.MaxBatchBytes = params.MaxBatchBytes
	}
	if cmd.Flags().Changed("max-records-per-batch") {
		constraints.MaxRecordsPerBatch = params.MaxRecordsPerBatch
	}

	return constraints
}

// executeProcess runs the batching workflow: load records, produce batches
// lazily, stream or summarize them, and report metrics.
func executeProcess(cmd *cobra.Command, params ProcessParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	start := time.Now()

	if params.Input == "" {
		return errors.New("--input is required (use - for stdin)")
	}

	format := params.InputFormat
	if format == "" {
		format = ingest.DetectFormat(params.Input)
	}

	output := params.Output
	if output == "" {
		output = configFromContext(ctx).Output.DefaultFormat
	}
	switch output {
	case outputFormatTable, outputFormatJSON, outputFormatNDJSON:
	default:
		return fmt.Errorf("unknown output format %q (want table, json, or ndjson)", output)
	}

	constraints := resolveConstraints(cmd, params)

	log.Debug().Ctx(ctx).
		Str("operation", "process").
		Str("input", params.Input).
		Str("input_format", format).
		Int("max_record_bytes", constraints.MaxRecordBytes).
		Int("max_batch_bytes", constraints.MaxBatchBytes).
		Int("max_records_per_batch", constraints.MaxRecordsPerBatch).
		Msg("starting record processing")

	records, err := ingest.LoadRecords(ctx, params.Input, format)
	if err != nil {
		return err
	}

	processor := batch.New(constraints, log)

	var ndjsonEnc *json.Encoder
	if output == outputFormatNDJSON {
		ndjsonEnc = json.NewEncoder(cmd.OutOrStdout())
	}

	var (
		summaries []BatchSummary
		procErr   error
	)
	for b, batchErr := range processor.CreateBatches(records) {
		if batchErr != nil {
			procErr = batchErr
			break
		}

		byteSize := 0
		for _, r := range b {
			byteSize += processor.RecordSize(r)
		}
		summary := BatchSummary{
			Index:       len(summaries) + 1,
			RecordCount: len(b),
			ByteSize:    byteSize,
		}
		summaries = append(summaries, summary)

		// NDJSON output hands each batch to the consumer as soon as it
		// closes, before the remaining input is scanned.
		if ndjsonEnc != nil {
			line := struct {
				BatchSummary
				Records []string `json:"records"`
			}{BatchSummary: summary, Records: b}
			if encErr := ndjsonEnc.Encode(line); encErr != nil {
				return fmt.Errorf("writing batch: %w", encErr)
			}
		}
	}

	metrics := processor.Metrics()

	if procErr != nil {
		// Batches already written stay valid; the sequence simply stopped.
		log.Error().Ctx(ctx).Err(procErr).
			Int("batches_emitted", len(summaries)).
			Msg("record processing aborted")
		return fmt.Errorf("processing records: %w", procErr)
	}

	log.Info().Ctx(ctx).
		Str("operation", "process").
		Int("batch_count", len(summaries)).
		Int64("records_processed", metrics[batch.MetricRecordsProcessed]).
		Int64("records_discarded", metrics[batch.MetricRecordsDiscarded]).
		Dur("duration_ms", time.Since(start)).
		Msg("record processing complete")

	switch output {
	case outputFormatNDJSON:
		return ndjsonEnc.Encode(struct {
			Metrics batch.Snapshot `json:"metrics"`
		}{Metrics: metrics})
	case outputFormatJSON:
		return renderResultJSON(cmd.OutOrStdout(), summaries, metrics)
	default:
		return renderResultTable(cmd.OutOrStdout(), summaries, metrics)
	}
}
