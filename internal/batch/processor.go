package batch

import (
	"errors"
	"fmt"
	"iter"

	"github.com/rs/zerolog"
)

// ErrInvalidArgument reports a programming error in the input handed to a
// Processor: a nil record sequence, or an element that is not a string.
// It is never used for records that merely exceed a size limit — those are
// discarded and counted, not errors.
var ErrInvalidArgument = errors.New("invalid argument")

// Processor assembles text records into batches under a set of Constraints.
// It owns its metrics for the lifetime of the instance.
//
// A Processor is single-threaded: no method may run concurrently with
// another call on the same instance.
type Processor struct {
	constraints Constraints
	metrics     metrics
	logger      zerolog.Logger
}

// New creates a Processor with the given constraints. Diagnostics about
// discarded records and batch lifecycle go to logger; pass a disabled logger
// to suppress them — diagnostics never affect batching behavior.
func New(constraints Constraints, logger zerolog.Logger) *Processor {
	return &Processor{
		constraints: constraints,
		logger:      logger.With().Str("component", "batch").Logger(),
	}
}

// NewWithDefaults creates a Processor with DefaultConstraints.
func NewWithDefaults(logger zerolog.Logger) *Processor {
	return New(DefaultConstraints(), logger)
}

// Constraints returns the constraints the processor was built with.
func (p *Processor) Constraints() Constraints {
	return p.constraints
}

// RecordSize returns the UTF-8 encoded byte length of record. Multi-byte
// characters count proportionally to their encoded size, so an emoji
// contributes four bytes, not one character.
func (p *Processor) RecordSize(record string) int {
	return len(record)
}

// IsValidRecord reports whether record fits within MaxRecordBytes.
//
// record must be a string; any other type is a programming error and returns
// ErrInvalidArgument rather than counting as a discard. When the record is
// too large, the discard counter advances and a warning with the offending
// size is logged. A valid record causes no metrics change here — the
// processed counter belongs to CreateBatches.
func (p *Processor) IsValidRecord(record any) (bool, error) {
	s, ok := record.(string)
	if !ok {
		return false, fmt.Errorf("%w: record must be a string, got %T", ErrInvalidArgument, record)
	}

	size := p.RecordSize(s)
	if size > p.constraints.MaxRecordBytes {
		p.metrics.recordsDiscarded++
		p.logger.Warn().
			Int("record_bytes", size).
			Int("max_record_bytes", p.constraints.MaxRecordBytes).
			Msg("record discarded: size exceeds per-record limit")
		return false, nil
	}

	return true, nil
}

// CreateBatches returns a lazy, single-use sequence of batches assembled
// from records in input order.
//
// The sequence is pull-based: nothing is scanned until the consumer asks for
// a batch, and each batch is handed over as soon as it closes, before the
// rest of the input is examined. Stopping consumption early abandons the
// traversal; records buffered but not yet emitted are dropped, and counters
// already advanced stay as they are.
//
// A nil records slice yields ErrInvalidArgument before any element is
// examined. Elements are type-checked as they are reached: the first
// non-string element yields an error wrapping ErrInvalidArgument and ends
// the sequence. Batches emitted before that point remain valid.
//
// Every batch satisfies the count limit, and the size limit with one
// documented exception: an accepted record whose size alone exceeds
// MaxBatchBytes still forms a single-record batch, because the per-record
// and per-batch limits are independent.
func (p *Processor) CreateBatches(records []any) iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		if records == nil {
			yield(nil, fmt.Errorf("%w: records must be a sequence, got nil", ErrInvalidArgument))
			return
		}

		var (
			current      []string
			currentBytes int
		)

		for i, record := range records {
			p.metrics.recordsProcessed++

			valid, err := p.IsValidRecord(record)
			if err != nil {
				yield(nil, fmt.Errorf("record %d: %w", i, err))
				return
			}
			if !valid {
				continue
			}

			text := record.(string)
			size := p.RecordSize(text)

			// Close the running batch before appending when this record would
			// overflow the byte budget or the count limit is already met. The
			// check gates where the record goes, never whether it is kept.
			if currentBytes+size > p.constraints.MaxBatchBytes ||
				len(current) >= p.constraints.MaxRecordsPerBatch {
				if len(current) > 0 {
					p.metrics.batchesCreated++
					p.logger.Debug().
						Int("batch_records", len(current)).
						Int("batch_bytes", currentBytes).
						Msg("batch closed")
					if !yield(current, nil) {
						return
					}
				}
				current = nil
				currentBytes = 0
			}

			current = append(current, text)
			currentBytes += size
			p.metrics.totalBytesProcessed += int64(size)
		}

		if len(current) > 0 {
			p.metrics.batchesCreated++
			p.logger.Debug().
				Int("batch_records", len(current)).
				Int("batch_bytes", currentBytes).
				Msg("final batch closed")
			yield(current, nil)
		}
	}
}

// Metrics returns the current counters. It is safe to call at any point,
// including between pulls of a partially consumed CreateBatches sequence.
func (p *Processor) Metrics() Snapshot {
	return p.metrics.snapshot()
}

// ProcessRecords batches records in one shot, materializing the lazy
// sequence. On error the batches closed before the failure are returned
// alongside it.
func ProcessRecords(records []any, constraints Constraints, logger zerolog.Logger) ([][]string, error) {
	p := New(constraints, logger)

	var batches [][]string
	for b, err := range p.CreateBatches(records) {
		if err != nil {
			return batches, err
		}
		batches = append(batches, b)
	}
	return batches, nil
}

// Records converts a slice of strings into the record sequence form accepted
// by CreateBatches.
func Records(values []string) []any {
	records := make([]any, len(values))
	for i, v := range values {
		records[i] = v
	}
	return records
}
