package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/barthig/Biblioteka-sub005/internal/cache"
	"github.com/barthig/Biblioteka-sub005/internal/circulation"
	"github.com/barthig/Biblioteka-sub005/internal/config"
	"github.com/barthig/Biblioteka-sub005/internal/db"
	"github.com/barthig/Biblioteka-sub005/internal/kafka"
	"github.com/barthig/Biblioteka-sub005/internal/logger"
	"github.com/barthig/Biblioteka-sub005/internal/notify"
	"github.com/barthig/Biblioteka-sub005/internal/repository/postgresql"
	"github.com/barthig/Biblioteka-sub005/internal/server"
)

func main() {
	log := logger.New()
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	database, err := db.NewDb(ctx)
	if err != nil {
		log.Fatal("Database init error", zap.Error(err))
	}
	defer database.GetPool().Close()

	copyRepo := postgresql.NewCopyRepo(database)
	reservationRepo := postgresql.NewReservationRepo(database)
	loanRepo := postgresql.NewLoanRepo(database)
	patronRepo := postgresql.NewPatronRepo(database)
	staffRepo := postgresql.NewStaffRepo(database)
	outboxRepo := postgresql.NewOutboxTaskRepo()

	seedStaffUser(ctx, staffRepo, log)

	loanCache := cache.NewLoanCache(loanRepo, log)
	if err := loanCache.LoadInitialData(ctx); err != nil {
		log.Fatal("Failed to warm loan cache", zap.Error(err))
	}

	dispatcher := notify.NewDispatcher(outboxRepo, cfg.NotificationTopic)
	engine := circulation.NewService(database, copyRepo, copyRepo, reservationRepo, loanRepo, patronRepo, dispatcher, loanCache, cfg, log)
	sweeper := circulation.NewSweeper(database, reservationRepo, copyRepo, engine.Queue(), dispatcher, loanCache, cfg, log)

	var producer kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = kafka.NewWriterProducer(cfg.KafkaBrokers)
	} else {
		producer = kafka.NewConsoleProducer()
	}
	publisher := notify.NewPublisher(database, outboxRepo, producer, notify.PublisherConfig{
		PollInterval: cfg.OutboxPollInterval,
		BatchSize:    cfg.OutboxBatchSize,
		MaxAttempts:  cfg.OutboxMaxAttempts,
	}, log)

	srv := server.New(engine, staffRepo, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx, cfg.HTTPPort)
	})
	g.Go(func() error {
		sweeper.Run(gctx)
		return nil
	})
	g.Go(func() error {
		publisher.Run(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Service exited with error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("Service stopped")
}

// seedStaffUser creates the bootstrap staff account when ADMIN_USERNAME is
// set and not yet present. Failures are logged, not fatal: an operator can
// always seed by hand.
func seedStaffUser(ctx context.Context, staff *postgresql.StaffRepo, log *zap.Logger) {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return
	}

	if ok, err := staff.ValidateUser(ctx, username, password); err == nil && ok {
		return
	}
	if err := staff.CreateUser(ctx, username, password); err != nil {
		log.Warn("Failed to seed staff user", zap.String("username", username), zap.Error(err))
		return
	}
	log.Info("Seeded staff user", zap.String("username", username))
}
