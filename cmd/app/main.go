package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parcelhub/cmd"
	"parcelhub/internal/adapters/out/kafka"
	"parcelhub/internal/adapters/out/postgres"
	"parcelhub/internal/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := cmd.LoadConfig(".env")

	log, err := logger.New(logger.Config{Directory: configs.LogsDirectory, Level: zapcore.InfoLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(configs, log); err != nil {
		log.Fatal("parcelhub stopped with error", zap.Error(err))
	}
}

func run(configs cmd.Config, log *zap.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	db, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err := postgres.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	publisher := kafka.NewPublisher(configs.KafkaBrokers(), configs.KafkaParcelChangedTopic, log)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("failed to close kafka publisher", zap.Error(err))
		}
	}()

	app := cmd.NewCompositionRoot(configs, db, publisher, log)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	app.CreateHTTPServer().RegisterRoutes(e)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server started", zap.String("port", configs.HTTPPort))
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
