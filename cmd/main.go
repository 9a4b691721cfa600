package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	userapp "github.com/muhammadheryan/contacts/application/user"
	"github.com/muhammadheryan/contacts/cmd/config"
	redisclient "github.com/muhammadheryan/contacts/cmd/redis"
	_ "github.com/muhammadheryan/contacts/docs"
	redisRepo "github.com/muhammadheryan/contacts/repository/redis"
	userRepo "github.com/muhammadheryan/contacts/repository/user"
	"github.com/muhammadheryan/contacts/thirdparty/rabbitmq"
	"github.com/muhammadheryan/contacts/transport"
	"github.com/muhammadheryan/contacts/utils/logger"
	"go.uber.org/zap"
)

// @title CONTACTS API
// @version 1.0
// @description Contacts user management API Documentation
// @host localhost:5000
// @BasePath /
func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Environment, cfg.LogLevel, cfg.ServiceName); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment), zap.String("db_driver", cfg.Database.Driver))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	UserRepo, closeDB, err := openUserRepository(ctx, cfg)
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}
	defer closeDB()

	// Initialize Redis client
	redisClient, err := redisclient.New(cfg)
	if err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
	}
	RedisRepo := redisRepo.NewRepository(redisClient)

	// Event publisher is optional; the interface stays nil when disabled.
	var publisher rabbitmq.EventPublisher
	if cfg.RabbitMQ.Enabled {
		p, err := rabbitmq.NewPublisher(cfg.GetAMQPURL())
		if err != nil {
			logger.Fatal("err connect rabbitmq", zap.Error(err))
		}
		defer p.Close()
		publisher = p
	}

	// Initialize application layers
	UserApp := userapp.NewUserApp(cfg, UserRepo, RedisRepo, publisher)

	httpTransport := transport.NewTransport(cfg, UserApp)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("err shutdown server", zap.Error(err))
	}
}

// openUserRepository connects the adapter selected by DB_DRIVER.
func openUserRepository(ctx context.Context, cfg *config.Config) (userRepo.UserRepository, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return userRepo.NewPostgresRepository(pool), pool.Close, nil
	default:
		db, err := sqlx.Connect("mysql", cfg.GetDSN())
		if err != nil {
			return nil, nil, err
		}

		// Set database connection pool settings
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

		return userRepo.NewUserRepository(db), func() { _ = db.Close() }, nil
	}
}
