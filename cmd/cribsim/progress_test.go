package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
)

func TestDotProgressPrintsFortyDots(t *testing.T) {
	var buf bytes.Buffer
	clock := quartz.NewMock(t)
	p := newDotProgress(&buf, clock, 10)

	clock.Advance(2 * time.Second)
	for done := 1; done <= 10; done++ {
		p.Update(done, 10)
	}

	out := buf.String()
	if got := strings.Count(out, "."); got != 40 {
		t.Errorf("printed %d dots, want 40", got)
	}
	if !strings.Contains(out, "✓ 10 games in 2.0s (5/sec)") {
		t.Errorf("missing completion line in %q", out)
	}
}

func TestDotProgressPartialRun(t *testing.T) {
	var buf bytes.Buffer
	p := newDotProgress(&buf, quartz.NewMock(t), 100)

	p.Update(50, 100)

	out := buf.String()
	if got := strings.Count(out, "."); got != 20 {
		t.Errorf("printed %d dots at halfway, want 20", got)
	}
	if strings.Contains(out, "✓") {
		t.Errorf("completion line printed before the run finished: %q", out)
	}
}
