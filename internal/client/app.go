package client

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/marketforge/marketsync/internal/config"
	"github.com/marketforge/marketsync/internal/logger"
	"github.com/marketforge/marketsync/internal/service"
	"github.com/marketforge/marketsync/internal/store"
	"github.com/marketforge/marketsync/internal/workers"
)

// App is the headless client runtime: it keeps the local cart and wishlist
// converged with the server for as long as the process lives. Interactive
// surfaces embed the service layer directly; App only owns the background
// machinery.
type App struct {
	services *service.ClientServices
	storages *store.ClientStorages
	cfg      config.ClientWorkers

	logger *logger.Logger
}

func NewApp(services *service.ClientServices, storages *store.ClientStorages, cfg config.ClientWorkers, logger *logger.Logger) (*App, error) {
	if services == nil || storages == nil {
		return nil, errors.New("client app requires services and storages")
	}

	return &App{
		services: services,
		storages: storages,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Run starts the change-feed poller and the periodic reconciliation job,
// performs one immediate full sync, and blocks until the process receives a
// stop signal. A failed initial sync is logged, not fatal: the local stores
// stay usable offline and the reconnect hook replays buffered writes later.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()
	defer a.services.Close()

	background := workers.NewWorkers(
		workers.WorkerFunc(func() {
			if feed := a.storages.ChangeFeed(); feed != nil {
				go feed.Run(ctx)
			}
		}),
		workers.WorkerFunc(func() {
			a.services.SyncJob.Start(ctx, a.cfg.SyncInterval)
		}),
	)
	background.Run()

	if err := a.services.SyncService.FullSync(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("initial sync failed, continuing offline")
	}

	<-ctx.Done()
	a.logger.Info().Msg("client shutting down")

	return nil
}
