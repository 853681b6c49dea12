package batch

// Default batching constraints.
const (
	// DefaultMaxRecordBytes is the default per-record size limit (1 MB).
	DefaultMaxRecordBytes = 1_000_000

	// DefaultMaxBatchBytes is the default cumulative batch size limit (5 MB).
	DefaultMaxBatchBytes = 5_000_000

	// DefaultMaxRecordsPerBatch is the default record count limit per batch.
	DefaultMaxRecordsPerBatch = 500
)

// Constraints bounds record and batch sizes for a Processor. The zero value
// is not useful; use DefaultConstraints or construct explicitly.
//
// Constraints are not validated: nonsensical values (zero, negative, or
// MaxRecordBytes above MaxBatchBytes) degrade batching — every accepted
// record then closes the running batch and lands in a singleton — but never
// cause a failure. Keeping MaxRecordBytes at or below MaxBatchBytes is the
// caller's responsibility.
type Constraints struct {
	// MaxRecordBytes is the largest encoded size a single record may have
	// before it is discarded.
	MaxRecordBytes int

	// MaxBatchBytes is the largest cumulative encoded size of a batch. A
	// single accepted record bigger than this still forms a one-record batch;
	// the per-record and per-batch limits are independent.
	MaxBatchBytes int

	// MaxRecordsPerBatch is the largest number of records in a batch.
	MaxRecordsPerBatch int
}

// DefaultConstraints returns the standard limits: 1 MB per record, 5 MB per
// batch, 500 records per batch.
func DefaultConstraints() Constraints {
	return Constraints{
		MaxRecordBytes:     DefaultMaxRecordBytes,
		MaxBatchBytes:      DefaultMaxBatchBytes,
		MaxRecordsPerBatch: DefaultMaxRecordsPerBatch,
	}
}
