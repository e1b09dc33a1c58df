// Package server wires storage, services and both front ends together and
// runs them until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/localswap/internal/logging"
	"github.com/dmitrijs2005/localswap/internal/server/config"
	"github.com/dmitrijs2005/localswap/internal/server/httpapi"
	"github.com/dmitrijs2005/localswap/internal/server/realtime"
	"github.com/dmitrijs2005/localswap/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/localswap/internal/server/services"
	"github.com/dmitrijs2005/localswap/internal/server/transport"
	"github.com/jackc/pgx/v5/pgxpool"

	gs "github.com/dmitrijs2005/localswap/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	pool     *pgxpool.Pool
	hub      *realtime.Hub
	services transport.Services
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	ctx := context.Background()

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	// the listener keeps one connection busy with LISTEN, so it gets its own pool
	pool, err := pgxpool.New(ctx, c.DatabaseDSN)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("listener pool error: %w", err)
	}

	hub := realtime.NewHub(logger, realtime.DefaultBuffer)

	profiles := services.NewProfileService(db, rm, logger)
	images := services.NewImageService(c, logger)

	svc := transport.Services{
		Items:    services.NewItemService(db, rm, profiles, images, c, logger),
		Images:   images,
		Chat:     services.NewChatService(db, rm, profiles, hub, c, logger),
		Profiles: profiles,
		Ratings:  services.NewRatingService(db, rm, logger),
	}

	return &App{config: c, logger: logger, db: db, pool: pool, hub: hub, services: svc}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.services, app.config.SecretKey)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config, app.logger, app.services)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// startListener relays message inserts to the hub. A failing listener
// degrades live updates only, so it never stops the app.
func (app *App) startListener(ctx context.Context) {
	l := realtime.NewListener(app.pool, app.hub, app.logger)
	_ = l.Run(ctx)
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "http", app.config.EndpointAddrHTTP, "grpc", app.config.EndpointAddrGRPC)
	if app.config.DevMode {
		app.logger.Warn(ctx, "dev mode is on: test tokens can be issued without authentication")
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startListener(ctx)
	}()

	wg.Wait()

	app.pool.Close()
	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close error", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
