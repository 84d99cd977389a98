package verify

import (
	"errors"
	"os"
	"strings"
	"time"

	"FileHashValidator/internal/checksum"
	"FileHashValidator/internal/index"
	"FileHashValidator/internal/logger"
	"FileHashValidator/internal/progress"
)

// Verify checks every record in order and returns the aggregated summary.
// A nil sink disables progress reporting.
func Verify(records []index.Record, sink progress.Sink, opts Options) *Summary {
	if sink == nil {
		sink = progress.Nop{}
	}
	started := time.Now()

	res := &Summary{
		Total:    len(records),
		Outcomes: make([]Outcome, 0, len(records)),
	}

	sink.OverallStarted(len(records))
	for _, rec := range records {
		out := verifyOne(rec, sink, opts)
		res.add(out)

		fields := map[string]interface{}{
			"path":      rec.Path,
			"algorithm": rec.Algorithm.String(),
			"status":    out.Status.String(),
		}
		if out.Err != nil {
			fields["error"] = out.Err.Error()
		}
		logger.LogDebug("record verified", fields)
	}
	sink.OverallFinished()

	res.Duration = time.Since(started)
	return res
}

func verifyOne(rec index.Record, sink progress.Sink, opts Options) (out Outcome) {
	out.Record = rec

	size := progress.UnknownSize
	if info, err := os.Stat(rec.Path); err == nil && info.Mode().IsRegular() {
		size = info.Size()
	}

	sink.FileStarted(rec.Path, size)
	defer sink.FileFinished()

	computed, err := checksum.Compute(rec.Path, rec.Algorithm, opts.ChunkSize, sink.BytesAdvanced)
	if err != nil {
		out.Status = StatusReadError
		out.Err = asReadFailure(rec.Path, err)
		return out
	}

	out.Actual = computed
	if strings.EqualFold(computed, rec.Expected) {
		out.Status = StatusMatch
	} else {
		out.Status = StatusMismatch
	}
	return out
}

// asReadFailure keeps every per-record failure inside the read error taxonomy.
// Records are validated at load time, so anything else is unexpected.
func asReadFailure(path string, err error) *checksum.ReadFailure {
	var rf *checksum.ReadFailure
	if errors.As(err, &rf) {
		return rf
	}
	return &checksum.ReadFailure{Kind: checksum.IOError, Path: path, Err: err}
}

func (s *Summary) add(out Outcome) {
	s.Outcomes = append(s.Outcomes, out)
	switch out.Status {
	case StatusMatch:
		s.OK++
	case StatusMismatch:
		s.Mismatches = append(s.Mismatches, Mismatch{Record: out.Record, Actual: out.Actual})
	case StatusReadError:
		s.ReadErrors = append(s.ReadErrors, ReadError{Record: out.Record, Err: out.Err})
	}
}

// Failed reports whether any record mismatched or could not be read.
func (s *Summary) Failed() bool {
	return len(s.Mismatches) > 0 || len(s.ReadErrors) > 0
}

// Process exit codes.
const (
	ExitOK       = 0
	ExitFailures = 1
	ExitManifest = 2
)

// ExitCode is ExitOK when every record matched and ExitFailures otherwise.
func (s *Summary) ExitCode() int {
	if s.Failed() {
		return ExitFailures
	}
	return ExitOK
}
