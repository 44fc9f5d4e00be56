package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"easyshop/internal/config"
	"easyshop/internal/http/handlers"
	applog "easyshop/internal/log"
	"easyshop/internal/repos"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}

	closer, err := applog.Setup(cfg.Log)
	if err != nil {
		logrus.Fatal(err)
	}
	defer closer.Close()
	logger := applog.Logger()

	db, err := repos.OpenDB(cfg.DB)
	if err != nil {
		logger.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	if cfg.Seed.Demo {
		if err := repos.SeedIfEmpty(ctx, db); err != nil {
			logger.Fatalf("seed catalog: %v", err)
		}
	}
	if err := repos.SeedAdmin(ctx, db, cfg.Seed.AdminUsername, cfg.Seed.AdminPassword); err != nil {
		logger.Fatalf("seed admin: %v", err)
	}

	app := handlers.NewApp(handlers.NewDeps(db, cfg), cfg)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		logger.Info("shutting down")
		_ = app.Shutdown()
	}()

	logger.WithField("addr", cfg.Addr()).Info("listening")
	if err := app.Listen(cfg.Addr()); err != nil {
		logger.Fatal(err)
	}
}
