package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-console/internal/console"
	"github.com/noah-isme/academic-console/internal/handler"
	"github.com/noah-isme/academic-console/internal/repository"
	"github.com/noah-isme/academic-console/internal/service"
	"github.com/noah-isme/academic-console/pkg/cache"
	"github.com/noah-isme/academic-console/pkg/config"
	"github.com/noah-isme/academic-console/pkg/database"
	"github.com/noah-isme/academic-console/pkg/export"
	"github.com/noah-isme/academic-console/pkg/logger"
	"github.com/noah-isme/academic-console/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Database)
	if err != nil {
		logr.Fatal("failed to open database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer db.Close()

	if err := repository.Bootstrap(ctx, db, cfg.Database.SeedDemo); err != nil {
		logr.Fatal("failed to bootstrap database", zap.Error(err))
	}
	if err := service.NewCatalogService(repository.NewSubjectRepository(db), logr).Verify(ctx); err != nil {
		logr.Warn("subject catalog incomplete", zap.Error(err))
	}

	metrics := service.NewMetricsService()
	if cfg.Metrics.Addr != "" {
		srv := startMetricsServer(cfg.Metrics.Addr, metrics, logr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	cacheRepo := repository.NewCacheRepository(nil, logr)
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("report cache disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(client, logr)
		}
	}
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled)

	reportStore, err := storage.NewLocalStorage(cfg.Reports.Dir)
	if err != nil {
		logr.Fatal("failed to prepare reports directory", zap.String("dir", cfg.Reports.Dir), zap.Error(err))
	}

	validate := validator.New()
	userRepo := repository.NewUserRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, metrics, logr)
	studentSvc := service.NewStudentService(userRepo, gradeRepo, attendanceRepo, cacheSvc, metrics, logr)
	groupSvc := service.NewGroupService(userRepo, gradeRepo, attendanceRepo, studentSvc, cacheSvc, metrics, validate, logr)
	reportSvc := service.NewReportService(studentSvc, groupSvc, reportStore, renderers(cfg.Reports, logr), metrics, logr)

	app := console.New(console.NewPrompter(os.Stdin, os.Stdout), authSvc, console.Dependencies{
		Students: studentSvc,
		Groups:   groupSvc,
		Reports:  reportSvc,
		Logger:   logr,
	}, logr)

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logr.Error("console stopped", zap.Error(err))
	}

	snapshot := metrics.Snapshot()
	logr.Info("console finished",
		zap.Uint64("logins", snapshot.LoginsSucceeded),
		zap.Uint64("grades_recorded", snapshot.GradesRecorded),
		zap.Uint64("attendance_marked", snapshot.AttendanceMarked),
		zap.Uint64("reports_exported", snapshot.ReportsExported),
		zap.Float64("avg_db_query_ms", snapshot.AverageDBQueryMs),
	)
}

func renderers(cfg config.ReportsConfig, logr *zap.Logger) []service.DatasetRenderer {
	var result []service.DatasetRenderer
	for _, format := range cfg.ExtraFormats {
		switch format {
		case "csv":
			result = append(result, export.NewCSVExporter())
		case "pdf":
			result = append(result, export.NewPDFExporter(cfg.PDFFont))
		default:
			logr.Warn("unknown report format ignored", zap.String("format", format))
		}
	}
	return result
}

func startMetricsServer(addr string, metrics *service.MetricsService, logr *zap.Logger) *http.Server {
	router := handler.NewMetricsRouter(handler.NewMetricsHandler(metrics))
	srv := &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logr.Info("metrics listener starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Error("metrics listener failed", zap.Error(err))
		}
	}()
	return srv
}
