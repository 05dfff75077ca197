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

	"github.com/mamadbah2/wms/internal/barcode"
	"github.com/mamadbah2/wms/internal/config"
	"github.com/mamadbah2/wms/internal/photostore"
	"github.com/mamadbah2/wms/internal/photostore/drive"
	"github.com/mamadbah2/wms/internal/repository/mongodb"
	"github.com/mamadbah2/wms/internal/repository/sheets"
	"github.com/mamadbah2/wms/internal/scheduler"
	"github.com/mamadbah2/wms/internal/server/handlers"
	"github.com/mamadbah2/wms/internal/server/router"
	catalogsvc "github.com/mamadbah2/wms/internal/service/catalog"
	notifysvc "github.com/mamadbah2/wms/internal/service/notify"
	reportingsvc "github.com/mamadbah2/wms/internal/service/reporting"
	warehousesvc "github.com/mamadbah2/wms/internal/service/warehouse"
	whatsappclient "github.com/mamadbah2/wms/pkg/clients/whatsapp"
	"github.com/mamadbah2/wms/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	tz, err := time.LoadLocation(cfg.Warehouse.Timezone)
	if err != nil {
		baseLogger.Fatal("failed to load timezone", zap.Error(err))
	}

	ctx := context.Background()

	wmsRepo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets.CredentialsPath, cfg.Sheets.WMSSpreadsheetID, baseLogger.Named("repo.sheets.wms"))
	if err != nil {
		baseLogger.Fatal("failed to init wms sheets repository", zap.Error(err))
	}
	masterRepo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets.CredentialsPath, cfg.Sheets.MasterSpreadsheetID, baseLogger.Named("repo.sheets.master"))
	if err != nil {
		baseLogger.Fatal("failed to init master sheets repository", zap.Error(err))
	}

	var photos photostore.PhotoStore
	if cfg.Drive.Enabled() {
		store, err := drive.NewStore(ctx, cfg.Drive, baseLogger.Named("photostore.drive"))
		if err != nil {
			baseLogger.Fatal("failed to init drive photo store", zap.Error(err))
		}
		photos = store
	} else {
		baseLogger.Warn("drive credentials missing, item photos disabled")
	}

	var archive reportingsvc.SnapshotArchive
	if cfg.MongoDB.URI != "" {
		mongoCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		mongoRepo, err := mongodb.NewMongoDBRepository(mongoCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		cancel()
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		archive = mongoRepo
	} else {
		baseLogger.Warn("mongodb uri missing, replenishment history disabled")
	}

	var messagingSvc notifysvc.MessagingService
	if cfg.WhatsApp.Enabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		messagingSvc = notifysvc.NewMetaWhatsAppService(whatsClient, baseLogger.Named("svc.notify"))
	} else {
		baseLogger.Warn("whatsapp credentials missing, replenishment alerts are logged only")
		messagingSvc = notifysvc.NewLogService(baseLogger.Named("svc.notify"))
	}

	catalog := catalogsvc.NewService(masterRepo, cfg.Catalog, tz, baseLogger.Named("svc.catalog"))
	warehouse := warehousesvc.NewService(wmsRepo, catalog, photos, cfg.Warehouse.Operator, tz, baseLogger.Named("svc.warehouse"))
	reportingSvc := reportingsvc.NewService(warehouse, messagingSvc, archive, cfg.Alerts.Recipient, baseLogger.Named("svc.reporting"))

	engine := router.New(router.Handlers{
		Warehouse: handlers.NewWarehouseHandler(warehouse, baseLogger.Named("handlers.warehouse")),
		Items:     handlers.NewItemHandler(warehouse, barcode.NewDecoder(), baseLogger.Named("handlers.items")),
		Reports:   handlers.NewReportHandler(reportingSvc, baseLogger.Named("handlers.reports")),
	}, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Alerts.CronSchedule, tz, reportingSvc, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-sigCtx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
