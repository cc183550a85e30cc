package treehash

import (
	"sync/atomic"
	"time"
)

// Stats holds the live counters of a hashing run. All fields are
// updated atomically; a Stats can be polled from another goroutine
// while the run is in flight, which is how progress display works.
type Stats struct {
	entriesTotal atomic.Int64
	entriesDone  atomic.Int64
	bytesTotal   atomic.Int64
	bytesDone    atomic.Int64
	start        time.Time
}

// NewStats returns counters starting at zero. Elapsed time is measured
// from this call.
func NewStats() *Stats {
	return &Stats{start: time.Now()}
}

func (s *Stats) addTotal(entries, bytes int64) {
	s.entriesTotal.Add(entries)
	if bytes > 0 {
		s.bytesTotal.Add(bytes)
	}
}

func (s *Stats) doneEntry() {
	s.entriesDone.Add(1)
}

func (s *Stats) doneBytes(n int64) {
	if n > 0 {
		s.bytesDone.Add(n)
	}
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	EntriesTotal int64
	EntriesDone  int64
	BytesTotal   int64
	BytesDone    int64
	Elapsed      time.Duration
}

// Snapshot reads the counters. Totals grow as discovery proceeds, so
// a snapshot taken mid-run can show a smaller total than a later one.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		EntriesTotal: s.entriesTotal.Load(),
		EntriesDone:  s.entriesDone.Load(),
		BytesTotal:   s.bytesTotal.Load(),
		BytesDone:    s.bytesDone.Load(),
		Elapsed:      time.Since(s.start),
	}
}
