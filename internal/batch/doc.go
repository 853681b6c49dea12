// Package batch groups variable-sized text records into bounded batches.
//
// A Processor applies three constraints in a single forward pass: a maximum
// encoded size for any one record, a maximum cumulative byte size per batch,
// and a maximum record count per batch. Batches are produced lazily — each
// batch is assembled only when the consumer asks for the next one — so a
// caller can start forwarding completed batches while the rest of the input
// is still unscanned. Key properties:
//   - Input order is preserved exactly across batch boundaries
//   - Records over the per-record limit are discarded, counted, and logged
//   - Sizes are UTF-8 encoded byte lengths, never character counts
//   - O(n) over the input with O(1) state beyond the current batch buffer
//
// A Processor owns its metrics and is not safe for concurrent use; callers
// needing shared access must synchronize externally.
package batch
