package main

import (
	"context"
	"errors"
	"labourdesk/backend/internal/api/handler"
	"labourdesk/backend/internal/auth"
	"labourdesk/backend/internal/chat"
	"labourdesk/backend/internal/complaint"
	"labourdesk/backend/internal/config"
	"labourdesk/backend/internal/contact"
	"labourdesk/backend/internal/localization"
	"labourdesk/backend/internal/logging"
	"labourdesk/backend/internal/newsletter"
	"labourdesk/backend/internal/notify"
	"labourdesk/backend/internal/storage"
	"labourdesk/backend/internal/telegram"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("backend stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Starting Labour Department backend...", zap.String("addr", cfg.HTTP.Addr))

	// 1. Dependencies
	db, err := storage.OpenPostgres(cfg.Database)
	if err != nil {
		return err
	}
	rdb, err := storage.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	s := storage.NewStorageService(db, rdb)
	if err := s.AutoMigrate(); err != nil {
		return err
	}
	logger.Info("Database connection established, migrations complete", zap.Bool("redis", rdb != nil))

	loc, err := localization.Default()
	if err != nil {
		return err
	}

	// 2. Notifications
	senders := notify.Senders{
		notify.ChannelEmail: notify.NewMailer(cfg.SMTP, cfg.SupportHotline, loc, logger),
	}
	if cfg.Telegram.Enabled() {
		alerter, err := telegram.NewAlerter(cfg.Telegram.BotToken, cfg.Telegram.StaffChatID, loc)
		if err != nil {
			return err
		}
		senders[notify.ChannelStaff] = alerter
	} else {
		logger.Warn("Telegram staff alerts disabled")
	}

	g, gctx := errgroup.WithContext(ctx)

	var dispatcher notify.Dispatcher = &notify.InlineDispatcher{Senders: senders}
	if rdb != nil {
		queue := notify.NewRedisQueue(rdb)
		dispatcher = queue
		worker := notify.NewWorker(queue, senders, logger)
		g.Go(func() error {
			worker.Run(gctx)
			return nil
		})
	}

	// 3. Services
	var generator chat.Generator
	if cfg.Gemini.Enabled() {
		gemini, err := chat.NewGeminiGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return err
		}
		generator = gemini
	} else {
		logger.Warn("Chat widget disabled: GEMINI_API_KEY not set")
	}

	h := handler.NewHandler(
		complaint.NewService(s, dispatcher, logger),
		contact.NewService(s, dispatcher, logger),
		newsletter.NewService(s, logger),
		chat.NewService(generator, loc, cfg.SupportHotline, logger),
		auth.NewAuthenticator(cfg.JWTSecret),
		s,
		logger,
	)

	// 4. HTTP server
	if cfg.HTTP.Development {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.NewRouter(h, cfg.HTTP),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      45 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}
	return err
}
