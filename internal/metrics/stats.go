package metrics

import (
	"sync/atomic"
	"time"
)

// Stats accumulates run counters. It implements progress.Sink so it can be
// attached next to the on-screen reporter.
type Stats struct {
	Total     int64
	Processed int64

	OK             int64
	HashMismatches int64
	ReadErrors     int64

	BytesHashed  int64
	BytesStatOK  int64
	UnknownSizes int64

	Started  time.Time
	Finished time.Time
}

func (s *Stats) Start() { s.Started = time.Now() }
func (s *Stats) Stop()  { s.Finished = time.Now() }
func (s *Stats) Duration() time.Duration {
	if s.Started.IsZero() {
		return 0
	}
	if s.Finished.IsZero() {
		return time.Since(s.Started)
	}
	return s.Finished.Sub(s.Started)
}

func (s *Stats) OverallStarted(totalFiles int) {
	atomic.StoreInt64(&s.Total, int64(totalFiles))
	s.Start()
}

func (s *Stats) FileStarted(_ string, size int64) {
	if size < 0 {
		atomic.AddInt64(&s.UnknownSizes, 1)
		return
	}
	atomic.AddInt64(&s.BytesStatOK, size)
}

func (s *Stats) BytesAdvanced(n int64) {
	if n > 0 {
		atomic.AddInt64(&s.BytesHashed, n)
	}
}

func (s *Stats) FileFinished()    { atomic.AddInt64(&s.Processed, 1) }
func (s *Stats) OverallFinished() { s.Stop() }

// SetOutcomes records the classified results once a run is over.
func (s *Stats) SetOutcomes(ok, mismatches, readErrors int) {
	atomic.StoreInt64(&s.OK, int64(ok))
	atomic.StoreInt64(&s.HashMismatches, int64(mismatches))
	atomic.StoreInt64(&s.ReadErrors, int64(readErrors))
}
