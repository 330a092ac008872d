// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"account-opening-api/config"
	"account-opening-api/db"
	"account-opening-api/events"
	"account-opening-api/handler"
	"account-opening-api/logger"
	"account-opening-api/repository"
	"account-opening-api/router"
	"account-opening-api/service"
)

// App holds the wired layers of the service.
type App struct {
	DB      *sql.DB
	Router  http.Handler
	Service *service.AccountService
}

// New wires repository, service, handler and router around an open database.
// cache and publisher may be nil.
func New(cfg *config.Config, database *sql.DB, cache service.ICacheClient, publisher events.Publisher) (*App, error) {
	rules, err := config.NewAccountRules(cfg.Accounts)
	if err != nil {
		return nil, err
	}

	accountRepo := repository.NewAccountRepository(database)
	accountService := service.NewAccountService(database, accountRepo, rules, cache, publisher)
	accountHandler := handler.NewAccountHandler(accountService)

	return &App{
		DB:      database,
		Router:  router.NewRouter(accountHandler, handler.NewHealthHandler(database)),
		Service: accountService,
	}, nil
}

// Run loads configuration, connects to the backing services and serves HTTP
// until SIGINT or SIGTERM.
func Run() {
	logger.Init()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Error loading configuration: %v", err)
	}
	if err := logger.Configure(cfg.Log.Level, cfg.Log.Format); err != nil {
		logger.Log.Fatalf("Error configuring logger: %v", err)
	}
	logger.Log.Info("Configuration loaded successfully")

	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if cfg.Database.AutoMigrate {
		if err := db.RunMigrations(cfg.Database); err != nil {
			logger.Log.Fatalf("Error running migrations: %v", err)
		}
	}

	var cache service.ICacheClient
	if cfg.Redis.Enabled {
		rdb, err := db.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			logger.Log.WithError(err).Warn("Redis unavailable, continuing without cache")
		} else {
			defer rdb.Close()
			cache = rdb
		}
	}

	var publisher events.Publisher = events.NewLogPublisher()
	if cfg.RabbitMQ.Enabled {
		producer, err := events.NewProducer(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			logger.Log.WithError(err).Warn("RabbitMQ unavailable, events will only be logged")
		} else {
			publisher = producer
		}
	}
	defer publisher.Close()

	application, err := New(cfg, database, cache, publisher)
	if err != nil {
		logger.Log.Fatalf("Error wiring application: %v", err)
	}

	if err := serve(application.Router, cfg.Server); err != nil {
		logger.Log.Errorf("Server stopped with error: %v", err)
	}
}

func serve(h http.Handler, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infof("Server starting on port :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Log.Info("Server exited properly")
	return nil
}
