package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/webstatus/digestmail/app/api"
	"github.com/webstatus/digestmail/app/cfg"
	"github.com/webstatus/digestmail/app/channels"
	"github.com/webstatus/digestmail/app/database"
	"github.com/webstatus/digestmail/app/digest"
	"github.com/webstatus/digestmail/app/mailer"
	"github.com/webstatus/digestmail/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting DigestMail server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to connect to database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	configCache := channels.NewConfigCache(appCfg.ChannelsDir)
	if err := configCache.Run(); err != nil {
		slog.Error("Failed to load channel configurations", "dir", appCfg.ChannelsDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Channel configurations loaded", "count", configCache.GetConfigCount())

	renderer, err := digest.NewRenderer(appCfg.BaseUrl)
	if err != nil {
		slog.Error("Failed to initialize digest renderer", "error", err)
		os.Exit(1)
	}

	var sender mailer.Sender
	if appCfg.SMTPHost != "" {
		sender = mailer.NewSMTPSender(appCfg.SMTPHost, appCfg.SMTPPort, appCfg.SMTPUsername, appCfg.SMTPPassword, appCfg.SMTPFrom)
		slog.Info("SMTP delivery enabled", "host", appCfg.SMTPHost, "port", appCfg.SMTPPort, "from", appCfg.SMTPFrom)
	} else {
		sender = mailer.NewLogSender()
		slog.Warn("SMTP host not configured, deliveries will be logged only")
	}

	channelRepo := database.NewChannelRepository(db)
	deliveryRepo := database.NewDeliveryRepository(db)

	scheduler := tasks.NewScheduler(configCache, channelRepo, deliveryRepo, renderer, sender)
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("Background scheduler started", "workers", appCfg.WorkerCount, "interval", appCfg.SchedulerInterval)

	apiHandler := api.NewHandler(configCache, channelRepo, deliveryRepo, renderer, sender, scheduler)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
