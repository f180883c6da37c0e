package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "tickermatch/internal/app/engine"
	orderreader "tickermatch/internal/usecase/order-reader"
	tradepublisher "tickermatch/internal/usecase/trade-publisher"
	"tickermatch/pkg/config"
	"tickermatch/pkg/logger"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	var err error
	cfg = &config.Config{}
	err = config.Load(cfg)
	if err != nil {
		panic(err)
	}

	logger, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}

	log = logger
}

func main() {
	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Initialize components
	oReader := orderreader.NewReader(cfg.OrderIntake, log)
	tPublisher := tradepublisher.NewPublisher(cfg.TradePublish, log)

	options := app.DefaultEngineOptions()
	options.SweepInterval = cfg.SweepInterval
	options.DirectoryCapacity = cfg.DirectoryCapacity

	engine := app.NewEngineWithOptions(oReader, tPublisher, log, options)

	// Start the engine
	if err := engine.Start(ctx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "start_engine",
		})
		return
	}

	log.Info("Matching engine started successfully",
		logger.Field{Key: "orderTopic", Value: cfg.OrderIntake.Topic},
		logger.Field{Key: "tradeTopic", Value: cfg.TradePublish.Topic},
	)

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info("Received shutdown signal", logger.Field{
		Key:   "signal",
		Value: sig.String(),
	})

	// Cancel the main context to signal shutdown
	cancel()

	// Create a timeout context for graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Stop the engine gracefully
	if err := engine.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "stop_engine",
		})
	}

	log.Info("Matching engine shutdown complete", logger.Field{
		Key:   "tradesRecorded",
		Value: engine.TradeCount(),
	})
}
