package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/coder/quartz"
)

// dotProgress shows clean progress without overlapping animations. It
// stands in for the dashboard when stdout is not a terminal or the
// dashboard is switched off.
type dotProgress struct {
	mu          sync.Mutex
	w           io.Writer
	clock       quartz.Clock
	total       int
	dotsPrinted int
	startTime   time.Time
}

// newDotProgress creates a dot progress printer for a run of total games.
func newDotProgress(w io.Writer, clock quartz.Clock, total int) *dotProgress {
	return &dotProgress{
		w:         w,
		clock:     clock,
		total:     total,
		startTime: clock.Now(),
	}
}

// Update prints dots as games complete. Forty dots span the whole run,
// so each dot is 2.5% progress; the completion line carries the rate.
func (p *dotProgress) Update(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if total == 0 {
		total = p.total
	}
	if total == 0 {
		total = 1
	}

	pct := done * 100 / total
	if pct > 100 {
		pct = 100
	}
	dotsTotal := 40

	targetDots := (pct * dotsTotal) / 100
	for i := p.dotsPrinted; i < targetDots; i++ {
		fmt.Fprint(p.w, ".")
		p.dotsPrinted++
	}

	if done >= total {
		for i := p.dotsPrinted; i < dotsTotal; i++ {
			fmt.Fprint(p.w, ".")
			p.dotsPrinted++
		}

		duration := p.clock.Now().Sub(p.startTime)
		gamesPerSec := float64(total) / duration.Seconds()
		fmt.Fprintf(p.w, " ✓ %d games in %.1fs (%.0f/sec)\n", total, duration.Seconds(), gamesPerSec)
	}
}
