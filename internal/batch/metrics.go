package batch

// Snapshot keys. Every Snapshot contains exactly these four entries.
const (
	MetricRecordsProcessed    = "records_processed"
	MetricRecordsDiscarded    = "records_discarded"
	MetricBatchesCreated      = "batches_created"
	MetricTotalBytesProcessed = "total_bytes_processed"
)

// metrics holds the processing counters for one Processor. Counters start at
// zero, only ever increase, and are advanced solely by the owning Processor;
// constructing a new Processor is the only way to reset them.
type metrics struct {
	recordsProcessed    int64
	recordsDiscarded    int64
	batchesCreated      int64
	totalBytesProcessed int64
}

// Snapshot is a point-in-time copy of a Processor's counters, keyed by
// metric name.
type Snapshot map[string]int64

// snapshot copies the counters into a caller-owned map.
func (m *metrics) snapshot() Snapshot {
	return Snapshot{
		MetricRecordsProcessed:    m.recordsProcessed,
		MetricRecordsDiscarded:    m.recordsDiscarded,
		MetricBatchesCreated:      m.batchesCreated,
		MetricTotalBytesProcessed: m.totalBytesProcessed,
	}
}
