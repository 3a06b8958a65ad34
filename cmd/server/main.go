package main

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/marketforge/marketsync/internal/config"
	"github.com/marketforge/marketsync/internal/handler"
	"github.com/marketforge/marketsync/internal/logger"
	"github.com/marketforge/marketsync/internal/ratelimit"
	"github.com/marketforge/marketsync/internal/server"
	"github.com/marketforge/marketsync/internal/service"
	"github.com/marketforge/marketsync/internal/store"
	"github.com/marketforge/marketsync/internal/workers"
	"github.com/marketforge/marketsync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// optional .env for local development; real deployments set env directly
	_ = godotenv.Load()

	log := logger.NewLogger("marketsync-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services := service.NewServices(storages, cfg, log)

	limiter := ratelimit.New()

	handlers, err := handler.NewHandlers(services, limiter, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	stopSweeper := make(chan struct{})
	defer close(stopSweeper)

	background := workers.NewWorkers(
		workers.WorkerFunc(func() {
			go limiter.SweepEvery(cfg.Workers.SweepInterval, stopSweeper)
		}),
	)
	background.Run()

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
