package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/clock"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/domain/reminder"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/infra/reminderstore"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barber-booking/internal/logging"
	"github.com/BruksfildServices01/barber-booking/internal/push"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucReminder "github.com/BruksfildServices01/barber-booking/internal/usecase/reminder"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

func main() {
	log := logging.New("info")
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	log = logging.New(cfg.LogLevel)
	slog.SetDefault(log)

	loc := timezone.Location(cfg.BusinessTimezone)
	clk := clock.NewRealClock()

	log.Info("starting",
		slog.String("addr", cfg.Addr()),
		slog.String("timezone", loc.String()),
		slog.String("log_level", cfg.LogLevel),
	)

	// --------------------------------------------------
	// Banco
	// --------------------------------------------------
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Error("database connection failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbpkg.Close(db); err != nil {
			log.Warn("database close failed", slog.Any("err", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------------------------------------
	// Lembretes: Redis quando configurado, memória caso contrário
	// --------------------------------------------------
	var store reminder.Store
	if cfg.RedisURL != "" {
		rdb, err := reminderstore.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Error("redis connection failed", slog.Any("err", err))
			os.Exit(1)
		}
		defer rdb.Close()
		store = reminderstore.NewRedis(rdb, reminderstore.DefaultKey)
		log.Info("reminder store: redis")
	} else {
		store = reminderstore.NewMemory()
		log.Warn("REDIS_URL not set, reminders kept in memory only")
	}

	// --------------------------------------------------
	// Workers assíncronos
	// --------------------------------------------------
	auditDispatcher := audit.NewDispatcher(audit.New(db), log)
	pushClient := push.NewClient(cfg.PushRelayURL, cfg.PushTimeout)
	pushDispatcher := push.NewDispatcher(pushClient, log, cfg.PushTimeout)

	scheduler := ucReminder.NewScheduler(store, clk, cfg.ReminderLead, loc, log)
	sweeper := ucReminder.NewSweeper(
		store,
		infraRepo.NewAppointmentGormRepository(db),
		pushClient,
		clk,
		cfg.ReminderSweepInterval,
		log,
	)

	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		sweeper.Run(ctx)
	}()

	// --------------------------------------------------
	// Imagens (opcional)
	// --------------------------------------------------
	var images handlers.ImageStore
	if cfg.S3.Enabled() {
		images = storage.NewS3Store(storage.NewS3Client(cfg.S3), cfg.S3.Bucket, cfg.S3.PublicBaseURL)
	} else {
		log.Warn("S3_BUCKET not set, barber image upload disabled")
	}

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------
	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		DB:        db,
		Config:    cfg,
		Log:       log,
		Clock:     clk,
		Location:  loc,
		Audit:     auditDispatcher,
		Notifier:  pushDispatcher,
		Reminders: scheduler,
		Emails:    validators.NewEmailValidator(nil),
		Images:    images,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Info("http server started", slog.String("addr", cfg.Addr()))

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped with error", slog.Any("err", err))
		}
		stop()
	}

	shutdown(log, srv, cfg.ShutdownTimeout)

	<-sweeperDone
	pushDispatcher.Close()
	auditDispatcher.Close()

	log.Info("stopped")
}

func shutdown(log *slog.Logger, srv *http.Server, timeout time.Duration) {
	log.Info("shutting down http server", slog.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("http shutdown timed out, closing", slog.Any("err", err))
		_ = srv.Close()
	}
}
