package reaction

import (
	"testing"
	"time"

	"dotlab/internal/material"
)

func waitResults(t *testing.T, p *Pipeline, want int) []Result {
	t.Helper()
	var out []Result
	deadline := time.Now().Add(2 * time.Second)
	for len(out) < want && time.Now().Before(deadline) {
		out = p.Drain(out)
		if len(out) < want {
			time.Sleep(time.Millisecond)
		}
	}
	return out
}

func TestPipelineRoundTrip(t *testing.T) {
	p := Start(Config{Lanes: 2}, nil)
	defer p.Close()

	for i := 0; i < 10; i++ {
		ev := Event{
			A: contact(2*i, uint64(10+2*i), material.Solid),
			B: contact(2*i+1, uint64(11+2*i), material.Solid),
		}
		if !p.Submit(ev) {
			t.Fatalf("submit %d unexpectedly dropped", i)
		}
	}
	got := waitResults(t, p, 20)
	if len(got) != 20 {
		t.Fatalf("expected 20 results, got %d", len(got))
	}
	for i := 0; i < len(got); i += 2 {
		if got[i].DNA != got[i+1].DNA {
			t.Fatalf("results %d/%d should be a mutual pair", i, i+1)
		}
	}
	if s := p.Stats(); s.Submitted != 10 || s.Evaluated != 10 {
		t.Fatalf("unexpected stats %+v", s)
	}
}

func TestSubmitDropsWhenFull(t *testing.T) {
	p := newPipeline(Config{EventBuffer: 1}, nil)
	ev := Event{A: contact(0, 1, material.Solid), B: contact(1, 2, material.Solid)}
	if !p.Submit(ev) {
		t.Fatal("first submit should fit the buffer")
	}
	if p.Submit(ev) {
		t.Fatal("second submit should be dropped")
	}
	if s := p.Stats(); s.Dropped != 1 {
		t.Fatalf("expected one dropped event, got %d", s.Dropped)
	}
}

func TestDrainEmpty(t *testing.T) {
	p := newPipeline(Config{}, nil)
	if got := p.Drain(nil); len(got) != 0 {
		t.Fatalf("empty pipeline drained %d results", len(got))
	}
}

func TestCloseStopsBlockedWorker(t *testing.T) {
	p := Start(Config{ResultBuffer: 1, Lanes: 1}, nil)
	for i := 0; i < 8; i++ {
		p.Submit(Event{
			A: contact(0, uint64(100+i), material.Solid),
			B: contact(1, uint64(200+i), material.Solid),
		})
	}
	done := make(chan struct{})
	go func() {
		p.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return while results were undrained")
	}
	if p.Submit(Event{}) {
		t.Fatal("submit after close must report false")
	}
	p.Close()
}
