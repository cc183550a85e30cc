package display

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/arthur-debert/dirsum/pkg/style"
	"github.com/arthur-debert/dirsum/pkg/treehash"
)

// eraseLine clears the current terminal line after a carriage return.
const eraseLine = "\r\x1b[2K"

// Progress redraws a one-line progress bar from the engine's live
// counters while a scan runs. It writes carriage-return updates, so it
// belongs on an interactive terminal; machine formats and pipes skip
// progress entirely.
//
// The totals it draws against grow while discovery is still finding
// entries, so the bar can move backwards early in a large scan.
type Progress struct {
	out      io.Writer
	stats    *treehash.Stats
	renderer style.Renderer
	interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
	stop   sync.Once

	mu      sync.Mutex
	running bool
}

// NewProgress creates a progress display over the given counters. It
// does nothing until Start.
func NewProgress(out io.Writer, stats *treehash.Stats) *Progress {
	return &Progress{
		out:      out,
		stats:    stats,
		renderer: style.NewTerminalRenderer(),
		interval: 150 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins redrawing in a background goroutine. Calling it twice
// is a no-op.
func (p *Progress) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.running = true
	go p.loop()
}

// Stop halts the redraw loop, waits for it to finish, and clears the
// progress line. Safe to call more than once, or without Start.
func (p *Progress) Stop() {
	p.mu.Lock()
	running := p.running
	p.mu.Unlock()

	p.stop.Do(func() {
		close(p.stopCh)
		if running {
			<-p.doneCh
		}
		fmt.Fprint(p.out, eraseLine)
	})
}

func (p *Progress) loop() {
	defer close(p.doneCh)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			fmt.Fprint(p.out, eraseLine+p.Line())
		}
	}
}

// Line renders the current progress line without writing it.
func (p *Progress) Line() string {
	snap := p.stats.Snapshot()
	message := formatBytes(snap.BytesDone)
	if snap.BytesTotal > 0 {
		message += " / " + formatBytes(snap.BytesTotal)
	}
	return p.renderer.RenderProgress(snap.EntriesDone, snap.EntriesTotal, message)
}
