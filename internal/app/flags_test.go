package app

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"dotlab/internal/core"
	"dotlab/internal/sims/dots"
)

func TestBindParsesFlags(t *testing.T) {
	c := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.Bind(fs)
	err := fs.Parse([]string{"-sim", "dots", "-seed", "9", "-set", "gravity=10", "-set", "lanes = 2"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := map[string]string{"gravity": "10", "lanes": "2"}
	if diff := cmp.Diff(want, c.Sets.Map()); diff != "" {
		t.Fatalf("sets mismatch (-want +got):\n%s", diff)
	}
	if err := fs.Parse([]string{"-set", "novalue"}); err == nil {
		t.Fatal("malformed -set should fail")
	}
}

func TestDotsConfigLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tune.yaml")
	if err := os.WriteFile(path, []byte("seed: 5\nparams:\n  gravity: 70\n  damping: 0.95\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := NewConfig()
	c.ConfigFile = path
	c.Sets = KVList{"damping=0.9"}
	c.TPS = 30

	cfg, err := c.DotsConfig()
	if err != nil {
		t.Fatalf("DotsConfig: %v", err)
	}
	if cfg.Params.Gravity != 70 || cfg.Params.Damping != 0.9 || cfg.Seed != 5 {
		t.Fatalf("layering wrong: %+v", cfg)
	}
	if cfg.Params.SpawnCount != dots.ScatterCount {
		t.Fatalf("scatter scene should auto-spawn, got %d", cfg.Params.SpawnCount)
	}
	if cfg.TimeStep != 1.0/30 {
		t.Fatalf("time step should follow tps, got %v", cfg.TimeStep)
	}

	c.Seed = 77
	cfg, _ = c.DotsConfig()
	if cfg.Seed != 77 {
		t.Fatal("seed flag should win over the file")
	}
}

func TestDotsConfigRejectsUnknownSim(t *testing.T) {
	c := NewConfig()
	c.Sim = "lava"
	if _, err := c.DotsConfig(); err == nil {
		t.Fatal("unknown sim should error")
	}
	c.Sim = "dots"
	c.ConfigFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := c.DotsConfig(); err == nil {
		t.Fatal("missing config file should error")
	}
}

func TestBuildResetsWorld(t *testing.T) {
	c := NewConfig()
	c.Sets = KVList{"w=120", "h=90", "spawn_count=20", "lanes=1"}
	w, err := c.Build(core.NopLogger{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer w.Close()
	if w.Len() == 0 || w.Size() != (core.Size{W: 120, H: 90}) {
		t.Fatalf("world not built as configured: %d dots, %+v", w.Len(), w.Size())
	}
}
