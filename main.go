package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"brandichat/app/client/completion"
	"brandichat/app/config"
	"brandichat/app/server"
	"brandichat/app/service/booking"
	"brandichat/app/service/chat"
	"brandichat/app/service/history"
	"brandichat/app/service/respcache"
	"brandichat/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	if !cfg.UpstreamConfigured() {
		slog.Warn("OpenAI API key not configured properly, running in fallback mode")
	}

	do.Provide(di, completion.New)
	do.Provide(di, respcache.New)
	do.Provide(di, history.New)
	do.Provide(di, chat.New)
	do.Provide(di, booking.New)
	do.Provide(di, server.New)

	slog.Info("Service started", "addr", cfg.Server.Addr)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	group, groupCtx := errgroup.WithContext(appCtx)

	group.Go(func() error {
		do.MustInvoke[*history.Service](di).RunSweepLoop(groupCtx)
		return nil
	})

	group.Go(func() error {
		return do.MustInvoke[*server.Server](di).Run(groupCtx)
	})

	if err := group.Wait(); err != nil {
		slog.Error("Service stopped", "error", err)
	}
}
