//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"dotlab/internal/app"
	"dotlab/internal/audio"
	"dotlab/internal/logging"
	"dotlab/internal/sims/dots"

	"github.com/hajimehoshi/ebiten/v2"
)

// audibleWorld plays decay and blend cues for the activity of each step.
type audibleWorld struct {
	*dots.World
	player *audio.Player
}

func (a audibleWorld) Step() {
	prev := a.Stats()
	a.World.Step()
	a.player.OnStats(prev, a.Stats())
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	sound := flag.Bool("audio", false, "play sound cues (needs the audio build tag)")
	volume := flag.Float64("volume", 0.6, "master volume in [0, 1]")
	flag.Parse()

	if err := logging.Configure(cfg.LogLevel, os.Stderr); err != nil {
		log.Fatal(err)
	}
	logger := logging.Get("gui")

	world, err := cfg.Build(logging.Get("dots"))
	if err != nil {
		log.Fatal(err)
	}
	defer world.Close()

	var sim app.World = world
	if *sound {
		player := audio.NewPlayer(*volume, world.Config().Seed)
		if err := audio.Start(player); err != nil {
			logger.Warningf("audio disabled: %v", err)
		} else {
			defer audio.Stop()
			world.OnExplosion(player.OnExplosion)
			sim = audibleWorld{World: world, player: player}
		}
	}

	game := app.New(sim, cfg.Scale, cfg.TPS, world.Config().Seed)
	size := world.Size()

	ebiten.SetWindowTitle("dotlab - " + cfg.Sim)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+app.PanelWidth, size.H*cfg.Scale)

	logger.Infof("running %s at %dx%d", cfg.Sim, size.W, size.H)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
