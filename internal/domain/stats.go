package domain

import "time"

// Config is the resolved engine configuration for one run.
type Config struct {
	// BatchSize is the maximum number of records per frame
	BatchSize int
}

// RunStats summarizes a replay run.
type RunStats struct {
	// RecordsSent counts records handed to the sink without error
	RecordsSent int

	// BatchesSent counts frames handed to the sink without error
	BatchesSent int

	// BytesSent counts frame bytes handed to the sink without error
	BytesSent int64

	// Elapsed is the wall-clock time from before the first send to after the sink was closed
	Elapsed time.Duration
}

// Rate returns records per second, or 0 when no time has elapsed.
func (s RunStats) Rate() float64 {
	secs := s.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(s.RecordsSent) / secs
}
