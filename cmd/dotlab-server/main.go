package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"dotlab/internal/app"
	"dotlab/internal/logging"
	"dotlab/internal/stream"
)

func main() {
	cfg, err := loadServerConfig(flag.CommandLine, os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatal(err)
	}
	if err := logging.Configure(cfg.LogLevel, os.Stderr); err != nil {
		log.Fatal(err)
	}
	logger := logging.Get("server")

	appCfg := app.NewConfig()
	appCfg.Sim = cfg.Sim
	appCfg.ConfigFile = cfg.ConfigFile
	appCfg.Seed = cfg.Seed
	appCfg.TPS = cfg.TPS
	world, err := appCfg.Build(logging.Get("dots"))
	if err != nil {
		log.Fatal(err)
	}
	defer world.Close()

	hub := stream.NewHub(logging.Get("stream"))
	defer hub.Close()
	srv := NewServer(world, hub, logger, cfg.TPS, cfg.FPS)
	httpSrv := &http.Server{Addr: cfg.Addr, Handler: srv.Routes(), ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx) })
	g.Go(func() error {
		logger.Infof("dotlab-server listening on %s", cfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
	logger.Infof("shut down")
}
