package sweep

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"dotlab/internal/sims/dots"
)

func smallConfig() dots.Config {
	cfg := dots.DefaultConfig()
	cfg.Width, cfg.Height = 120, 90
	cfg.Params.SpawnCount = 25
	cfg.Params.Lanes = 1
	return cfg
}

func TestRunCountsTicks(t *testing.T) {
	res, err := Run(context.Background(), smallConfig(), Options{Ticks: 30})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Ticks != 30 || res.Stats.Ticks != 30 || res.Live == 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRunStopsWhenIdle(t *testing.T) {
	cfg := smallConfig()
	cfg.Params.SpawnCount = 0
	res, err := Run(context.Background(), cfg, Options{Ticks: 100, StopIdle: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.IdleAt != 1 || res.Ticks != 1 {
		t.Fatalf("empty arena should be idle after one tick, got %+v", res)
	}
}

func TestSeedsOrderedAndParallel(t *testing.T) {
	var mu sync.Mutex
	seen := map[int64]bool{}
	results, err := Seeds(context.Background(), smallConfig(), []int64{9, 3, 5}, Options{
		Ticks:   20,
		Workers: 2,
		Progress: func(r Result) {
			mu.Lock()
			seen[r.Seed] = true
			mu.Unlock()
		},
	})
	if err != nil {
		t.Fatalf("Seeds: %v", err)
	}
	got := []int64{results[0].Seed, results[1].Seed, results[2].Seed}
	if diff := cmp.Diff([]int64{3, 5, 9}, got); diff != "" {
		t.Fatalf("results not ordered (-want +got):\n%s", diff)
	}
	if len(seen) != 3 {
		t.Fatalf("progress should fire once per seed, saw %v", seen)
	}
}

func TestSeedsHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Seeds(ctx, smallConfig(), []int64{1, 2}, Options{Ticks: 1000})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Result{
		{Seed: 1, Live: 10, IdleAt: 40, Stats: dots.Stats{Changed: 2, Explosions: 1}},
		{Seed: 2, Live: 20, IdleAt: -1, Stats: dots.Stats{Changed: 5, Decays: 1, Dropped: 3}},
	})
	want := Summary{
		Runs:          2,
		Idle:          1,
		MeanLive:      15,
		MeanIdleTick:  40,
		Explosions:    1,
		Changed:       7,
		Dropped:       3,
		BusiestSeed:   2,
		BusiestEvents: 6,
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
	if Summarize(nil).Runs != 0 {
		t.Fatal("empty batch should summarise to zero")
	}
}
