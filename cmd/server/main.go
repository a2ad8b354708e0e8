package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"feast-checkout/internal/config"
	"feast-checkout/internal/database"
	"feast-checkout/internal/notifier"
	"feast-checkout/internal/repo"
	"feast-checkout/internal/service"
	httpt "feast-checkout/internal/transport/http"
	"feast-checkout/internal/worker"
	"feast-checkout/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	db, err := database.New(cfg.DB)
	if err != nil {
		zl.Fatalw("database init failed", "error", err)
	}
	defer db.Close()

	var n notifier.Notifier
	if cfg.SMTP.Host != "" {
		n = notifier.NewSMTP(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	} else {
		zl.Warnw("no SMTP host configured, emails are discarded")
		n = notifier.NewNop()
	}

	productRepo := repo.NewProductRepo(db.DB())
	orderRepo := repo.NewOrderRepo(db.DB())
	otpRepo := repo.NewOtpRepo(db.DB())

	orderService := service.NewOrderService(productRepo, orderRepo, n, zl)
	otpService := service.NewOtpService(otpRepo, n, cfg.OTP.TTL, zl)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := worker.NewOtpSweeper(otpRepo, cfg.OTP.SweepInterval, cfg.OTP.SweepGrace, zl)
	go sweeper.Run(ctx)

	handler := httpt.NewHandler(orderService, otpService, db.Health, zl)
	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      httpt.NewRouter(handler),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		zl.Infow("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatalw("http server failed", "error", err)
		}
	}()

	<-ctx.Done()
	zl.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Errorw("graceful shutdown failed", "error", err)
	}
}
