package main

import (
	"context"
	"errors"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-afisha/internal/config"
	"github.com/iliyamo/cinema-afisha/internal/logger"
	"github.com/iliyamo/cinema-afisha/internal/queue"
)

// order-consumer appends every order.created event from RabbitMQ to
// $ORDER_LOG_DIR/orders.log (default logs/orders.log).
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("config: %v", err)
	}
	log, err := logger.New(cfg.LogFormat(), cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("logger: %v", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir := os.Getenv("ORDER_LOG_DIR")
	if dir == "" {
		dir = "logs"
	}
	c := &queue.Consumer{URL: cfg.Events.RabbitURL, Queue: cfg.Events.Queue, Dir: dir, Log: log}
	log.Info("order-consumer started", zap.String("queue", cfg.Events.Queue), zap.String("dir", dir))
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("order-consumer stopped", zap.Error(err))
	}
}
