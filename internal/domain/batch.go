package domain

// Batch is an ordered group of records that is encoded into a single Frame.
// A non-empty batch holds between 1 and the configured batch size records.
type Batch struct {
	// Records in source order
	Records []Record

	// PayloadBytes is the sum of all record lengths, excluding delimiters
	PayloadBytes int
}

// NewBatch creates an empty batch with room for capacity records.
func NewBatch(capacity int) *Batch {
	if capacity < 0 {
		capacity = 0
	}
	return &Batch{
		Records: make([]Record, 0, capacity),
	}
}

// Add appends a record to the batch.
func (b *Batch) Add(r Record) {
	b.Records = append(b.Records, r)
	b.PayloadBytes += len(r)
}

// Size returns the number of records in the batch.
func (b *Batch) Size() int {
	return len(b.Records)
}

// Empty returns true if the batch has no records.
func (b *Batch) Empty() bool {
	return len(b.Records) == 0
}

// FrameLen returns the exact length of the encoded frame: every record plus
// one delimiter byte per record.
func (b *Batch) FrameLen() int {
	return b.PayloadBytes + len(b.Records)
}

// Reset clears the batch for reuse.
func (b *Batch) Reset() {
	for i := range b.Records {
		b.Records[i] = nil
	}
	b.Records = b.Records[:0]
	b.PayloadBytes = 0
}
