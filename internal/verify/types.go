package verify

import (
	"time"

	"FileHashValidator/internal/checksum"
	"FileHashValidator/internal/index"
)

type Status int

const (
	StatusMatch Status = iota
	StatusMismatch
	StatusReadError
)

func (s Status) String() string {
	switch s {
	case StatusMatch:
		return "match"
	case StatusMismatch:
		return "mismatch"
	case StatusReadError:
		return "read_error"
	default:
		return "unknown"
	}
}

// Outcome is the classified result of verifying one record.
type Outcome struct {
	Record index.Record
	Status Status
	// Actual is the computed digest, empty for read errors.
	Actual string
	Err    *checksum.ReadFailure
}

type Mismatch struct {
	Record index.Record
	Actual string
}

type ReadError struct {
	Record index.Record
	Err    *checksum.ReadFailure
}

// Summary aggregates all outcomes. Mismatches, ReadErrors and Outcomes follow manifest order.
type Summary struct {
	Total      int
	OK         int
	Mismatches []Mismatch
	ReadErrors []ReadError
	Outcomes   []Outcome
	Duration   time.Duration
}

type Options struct {
	ChunkSize int // bytes per read, checksum.DefaultChunkSize when <= 0
}
