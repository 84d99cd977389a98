package metrics

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/dustin/go-humanize"
)

type Snapshot struct {
	DurationMs     int64
	Total          int64
	Processed      int64
	OK             int64
	HashMismatches int64
	ReadErrors     int64
	BytesHashed    int64
	BytesStatOK    int64
	UnknownSizes   int64
}

func (s *Stats) Snapshot() Snapshot {
	dur := s.Duration()

	return Snapshot{
		DurationMs:     dur.Milliseconds(),
		Total:          atomic.LoadInt64(&s.Total),
		Processed:      atomic.LoadInt64(&s.Processed),
		OK:             atomic.LoadInt64(&s.OK),
		HashMismatches: atomic.LoadInt64(&s.HashMismatches),
		ReadErrors:     atomic.LoadInt64(&s.ReadErrors),
		BytesHashed:    atomic.LoadInt64(&s.BytesHashed),
		BytesStatOK:    atomic.LoadInt64(&s.BytesStatOK),
		UnknownSizes:   atomic.LoadInt64(&s.UnknownSizes),
	}
}

// Throughput is the hashing rate in bytes per second, 0 when no time elapsed.
func (snap Snapshot) Throughput() float64 {
	if snap.DurationMs <= 0 {
		return 0
	}
	return float64(snap.BytesHashed) / (float64(snap.DurationMs) / 1000.0)
}

func Print(w io.Writer, s *Stats) {
	snap := s.Snapshot()

	fmt.Fprintln(w, "--- stats ---")
	fmt.Fprintln(w, "duration_ms:", snap.DurationMs)
	fmt.Fprintln(w, "total:", snap.Total)
	fmt.Fprintln(w, "processed:", snap.Processed)
	fmt.Fprintln(w, "ok:", snap.OK)
	fmt.Fprintln(w, "hash_mismatches:", snap.HashMismatches)
	fmt.Fprintln(w, "read_errors:", snap.ReadErrors)
	fmt.Fprintln(w, "unknown_sizes:", snap.UnknownSizes)
	fmt.Fprintf(w, "bytes_hashed: %d (%s)\n", snap.BytesHashed, humanize.IBytes(uint64(snap.BytesHashed)))
	fmt.Fprintf(w, "bytes_stat_ok: %d (%s)\n", snap.BytesStatOK, humanize.IBytes(uint64(snap.BytesStatOK)))

	if bps := snap.Throughput(); bps > 0 {
		fmt.Fprintf(w, "throughput: %s/s\n", humanize.IBytes(uint64(bps)))
	}
}
