package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"dotlab/internal/app"
	"dotlab/internal/logging"
	"dotlab/internal/term"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	logFile := flag.String("log-file", filepath.Join(os.TempDir(), "dotlab-tui.log"), "where to write logs while the terminal is in use")
	flag.Parse()

	if err := run(cfg, *logFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *app.Config, logFile string) error {
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if err := logging.Configure(cfg.LogLevel, f); err != nil {
		return err
	}

	world, err := cfg.Build(logging.Get("dots"))
	if err != nil {
		return err
	}
	defer world.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	view := term.NewView(screen, world, world.Config().Seed)
	if err := view.Run(ctx, cfg.TPS); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
