package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"dotlab/internal/app"
	"dotlab/internal/logging"
	"dotlab/internal/sims/dots"
	"dotlab/internal/sweep"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	ticks := flag.Int("ticks", 1800, "ticks to simulate per seed")
	seeds := flag.String("seeds", "", "comma separated seeds or a range like 1-16; empty runs the config seed once")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel scenario runs")
	stopIdle := flag.Bool("stop-idle", false, "end a run at the first idle tick")
	dump := flag.Bool("dump-config", false, "print the resolved configuration as YAML and exit")
	report := flag.Bool("yaml", false, "print results as YAML")
	flag.Parse()

	if err := logging.Configure(cfg.LogLevel, os.Stderr); err != nil {
		log.Fatal(err)
	}
	logger := logging.Get("run")

	dcfg, err := cfg.DotsConfig()
	if err != nil {
		log.Fatal(err)
	}
	if *dump {
		out, err := yaml.Marshal(dcfg)
		if err != nil {
			log.Fatal(err)
		}
		os.Stdout.Write(out)
		return
	}

	list, err := parseSeeds(*seeds, dcfg.Seed)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := sweep.Options{
		Ticks:    *ticks,
		StopIdle: *stopIdle,
		Workers:  *workers,
		Logger:   logging.Get("dots"),
		OnExplode: func(seed int64, e dots.Explosion) {
			logger.Debugf("seed %d: explosion at (%.0f, %.0f) radius %.0f", seed, e.X, e.Y, e.Radius)
		},
	}
	if !*report {
		opts.Progress = func(r sweep.Result) { fmt.Println(r) }
	}

	logger.Infof("running %d scenario(s) of %d ticks on %d workers", len(list), *ticks, *workers)
	results, err := sweep.Seeds(ctx, dcfg, list, opts)
	if err != nil {
		log.Fatal(err)
	}
	summary := sweep.Summarize(results)

	if *report {
		out, err := yaml.Marshal(struct {
			Results []sweep.Result `yaml:"results"`
			Summary sweep.Summary  `yaml:"summary"`
		}{results, summary})
		if err != nil {
			log.Fatal(err)
		}
		os.Stdout.Write(out)
		return
	}
	fmt.Printf("\n%d runs, %d idle (mean idle tick %.0f), mean live %.1f\n", summary.Runs, summary.Idle, summary.MeanIdleTick, summary.MeanLive)
	fmt.Printf("changed %d, vanished %d, explosions %d, dropped events %d\n", summary.Changed, summary.Vanished, summary.Explosions, summary.Dropped)
	fmt.Printf("busiest seed %d with %d events\n", summary.BusiestSeed, summary.BusiestEvents)
}

// parseSeeds accepts "1,2,5", "1-16" or a mix; empty yields fallback.
func parseSeeds(spec string, fallback int64) ([]int64, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return []int64{fallback}, nil
	}
	var out []int64
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if lo, hi, ok := strings.Cut(part, "-"); ok && lo != "" {
			a, err := strconv.ParseInt(lo, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("seed range %q: %w", part, err)
			}
			b, err := strconv.ParseInt(hi, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("seed range %q: %w", part, err)
			}
			if b < a {
				return nil, fmt.Errorf("seed range %q is empty", part)
			}
			for s := a; s <= b; s++ {
				out = append(out, s)
			}
			continue
		}
		s, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", part, err)
		}
		out = append(out, s)
	}
	return out, nil
}
