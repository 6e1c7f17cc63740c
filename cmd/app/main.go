package main

import (
	"floorplan/config"
	"floorplan/di"
	"floorplan/helper"
	"floorplan/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	helper.AutoMigrate(cfg)

	log.Info().Str("app", cfg.App.Name).Str("env", cfg.Server.Env).Msg("starting floorplan api")

	di.InitializeService().Serve()
}
