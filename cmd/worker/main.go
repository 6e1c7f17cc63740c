package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"floorplan/config"
	"floorplan/di"
	"floorplan/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := di.InitializeWorker()

	if err := w.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("worker failed")
	}
}
