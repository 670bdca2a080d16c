package core

import (
	"testing"
	"time"
)

func TestFixedStepAdvance(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return clock }
	fs.accumulator = 0

	if n := fs.Advance(); n != 0 {
		t.Fatalf("first call should prime the clock, got %d ticks", n)
	}
	clock = clock.Add(250 * time.Millisecond)
	if n := fs.Advance(); n != 2 {
		t.Fatalf("expected 2 ticks after 250ms at 10 TPS, got %d", n)
	}
	clock = clock.Add(10 * time.Second)
	if n := fs.Advance(); n != 4 {
		t.Fatalf("expected catch-up to cap at 4, got %d", n)
	}
	if n := fs.Advance(); n != 0 {
		t.Fatalf("stall backlog should be discarded, got %d", n)
	}
}
