package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/danken4445/hospital-management/internal/analytics"
	"github.com/danken4445/hospital-management/internal/config"
	"github.com/danken4445/hospital-management/internal/repository/firebase"
	"github.com/danken4445/hospital-management/internal/repository/mongodb"
	"github.com/danken4445/hospital-management/internal/repository/sheets"
	"github.com/danken4445/hospital-management/internal/scheduler"
	"github.com/danken4445/hospital-management/internal/server/handlers"
	"github.com/danken4445/hospital-management/internal/server/router"
	dashboardsvc "github.com/danken4445/hospital-management/internal/service/dashboard"
	reportingsvc "github.com/danken4445/hospital-management/internal/service/reporting"
	whatsappsvc "github.com/danken4445/hospital-management/internal/service/whatsapp"
	whatsappclient "github.com/danken4445/hospital-management/pkg/clients/whatsapp"
	"github.com/danken4445/hospital-management/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	settings, err := config.LoadAnalyticsSettings(cfg.Analytics.SettingsPath)
	if err != nil {
		baseLogger.Fatal("failed to load analytics settings", zap.Error(err))
	}
	pipeline := analytics.New(settings, analytics.NewRand(cfg.Analytics.RandomSeed))

	var mongoRepo *mongodb.MongoDBRepository
	if cfg.Source.Kind == config.SourceMongoDB || cfg.ArchiveEnabled() {
		connectCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		mongoRepo, err = mongodb.NewMongoDBRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		cancel()
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
	}

	var source dashboardsvc.Source
	switch cfg.Source.Kind {
	case config.SourceMongoDB:
		source = mongoRepo
	default:
		firebaseClient, err := firebase.NewClient(cfg.Firebase, baseLogger.Named("repo.firebase"))
		if err != nil {
			baseLogger.Fatal("failed to init firebase client", zap.Error(err))
		}
		source = firebaseClient
	}
	baseLogger.Info("dashboard source selected", zap.String("source", cfg.Source.Kind))

	var archive mongodb.Repository
	if mongoRepo != nil {
		archive = mongoRepo
	}

	var sheetWriter sheets.RowWriter
	if cfg.SheetsEnabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetWriter = sheetsRepo
	} else {
		baseLogger.Warn("google sheet id missing, snapshot export disabled")
	}

	var (
		notifier scheduler.Notifier
		waClient *whatsappclient.APIClient
	)
	if cfg.DigestEnabled() {
		waClient = whatsappclient.NewClient(cfg.WhatsApp)
		notifier = waClient
		baseLogger.Info("whatsapp digest enabled")
	} else {
		baseLogger.Warn("whatsapp token missing, digest delivery disabled")
	}

	dashboardSvc := dashboardsvc.NewService(source, pipeline, baseLogger.Named("svc.dashboard"))
	reportingSvc := reportingsvc.NewService(dashboardSvc, archive, sheetWriter, baseLogger.Named("svc.reporting"))

	dashboardHandler := handlers.NewDashboardHandler(dashboardSvc, reportingSvc, baseLogger.Named("handlers.dashboard"))

	var webhookHandler *handlers.WebhookHandler
	if cfg.CommandsEnabled() {
		commandSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, waClient, reportingSvc, dashboardSvc,
			cfg.Reporting.DigestTimeline, baseLogger.Named("svc.whatsapp"))
		webhookHandler = handlers.NewWebhookHandler(commandSvc, baseLogger.Named("handlers.webhook"))
		baseLogger.Info("whatsapp commands enabled")
	}

	engine := router.New(dashboardHandler, webhookHandler, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, notifier, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
