// Package sweep runs headless dots scenarios, alone or across many seeds in
// parallel, and summarises what happened.
package sweep

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"dotlab/internal/core"
	"dotlab/internal/sims/dots"
)

// Result summarises one scenario.
type Result struct {
	Seed    int64         `yaml:"seed"`
	Ticks   int           `yaml:"ticks"`
	IdleAt  int           `yaml:"idle_at"`
	Live    int           `yaml:"live"`
	Stats   dots.Stats    `yaml:"stats"`
	Elapsed time.Duration `yaml:"elapsed"`
}

func (r Result) String() string {
	idle := "never"
	if r.IdleAt >= 0 {
		idle = fmt.Sprintf("tick %d", r.IdleAt)
	}
	return fmt.Sprintf("seed %d: %d dots after %d ticks, idle %s, changed %d, vanished %d, explosions %d, decays %d, dropped %d (%s)",
		r.Seed, r.Live, r.Ticks, idle, r.Stats.Changed, r.Stats.Vanished, r.Stats.Explosions, r.Stats.Decays, r.Stats.Dropped, r.Elapsed.Round(time.Millisecond))
}

// Options tune a run. Progress and OnExplode may be called from several
// goroutines at once during Seeds.
type Options struct {
	Ticks     int
	StopIdle  bool
	Workers   int
	Logger    core.Logger
	Progress  func(Result)
	OnExplode func(seed int64, e dots.Explosion)
}

// Run simulates cfg for up to opts.Ticks ticks. With StopIdle it ends at the
// first tick that leaves the world at rest.
func Run(ctx context.Context, cfg dots.Config, opts Options) (Result, error) {
	start := time.Now()
	w := dots.NewWithLogger(cfg, opts.Logger)
	defer w.Close()
	if opts.OnExplode != nil {
		seed := cfg.Seed
		w.OnExplosion(func(e dots.Explosion) { opts.OnExplode(seed, e) })
	}
	w.Reset(cfg.Seed)

	res := Result{Seed: cfg.Seed, IdleAt: -1}
	for res.Ticks < opts.Ticks {
		if res.Ticks%64 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		w.Tick(cfg.TimeStep)
		res.Ticks++
		if res.IdleAt < 0 && w.AllStopped() {
			res.IdleAt = res.Ticks
			if opts.StopIdle {
				break
			}
		}
	}
	res.Stats = w.Stats()
	res.Live = w.Len()
	res.Elapsed = time.Since(start)
	return res, nil
}

// Seeds runs base once per seed on up to opts.Workers goroutines and returns
// the results ordered by seed.
func Seeds(ctx context.Context, base dots.Config, seeds []int64, opts Options) ([]Result, error) {
	results := make([]Result, len(seeds))
	g, ctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	for i, seed := range seeds {
		g.Go(func() error {
			cfg := base
			cfg.Seed = seed
			res, err := Run(ctx, cfg, opts)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			results[i] = res
			if opts.Progress != nil {
				opts.Progress(res)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Seed < results[j].Seed })
	return results, nil
}

// Summary aggregates a batch.
type Summary struct {
	Runs          int     `yaml:"runs"`
	Idle          int     `yaml:"idle"`
	MeanLive      float64 `yaml:"mean_live"`
	MeanIdleTick  float64 `yaml:"mean_idle_tick"`
	Explosions    uint64  `yaml:"explosions"`
	Changed       uint64  `yaml:"changed"`
	Vanished      uint64  `yaml:"vanished"`
	Dropped       uint64  `yaml:"dropped"`
	BusiestSeed   int64   `yaml:"busiest_seed"`
	BusiestEvents uint64  `yaml:"busiest_events"`
}

// Summarize folds results into a Summary.
func Summarize(results []Result) Summary {
	var s Summary
	s.Runs = len(results)
	if s.Runs == 0 {
		return s
	}
	s.BusiestSeed = results[0].Seed
	idleTicks := 0
	live := 0
	for _, r := range results {
		live += r.Live
		if r.IdleAt >= 0 {
			s.Idle++
			idleTicks += r.IdleAt
		}
		s.Explosions += r.Stats.Explosions
		s.Changed += r.Stats.Changed
		s.Vanished += r.Stats.Vanished
		s.Dropped += r.Stats.Dropped
		if events := r.Stats.Changed + r.Stats.Explosions + r.Stats.Decays; events > s.BusiestEvents {
			s.BusiestSeed = r.Seed
			s.BusiestEvents = events
		}
	}
	s.MeanLive = float64(live) / float64(s.Runs)
	if s.Idle > 0 {
		s.MeanIdleTick = float64(idleTicks) / float64(s.Idle)
	}
	return s
}
