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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	"github.com/BruksfildServices01/barber-booking/internal/telemetry"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	zap.ReplaceGlobals(zl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, zl)
	stop()

	os.Exit(exitCode(zl, err))
}

// exitCode registra o erro final e descarrega o logger antes do os.Exit.
func exitCode(zl *zap.Logger, err error) int {
	code := 0
	if err != nil {
		zl.Error("server stopped with error", zap.Error(err))
		code = 1
	}
	_ = zl.Sync()
	return code
}

func run(ctx context.Context, cfg *config.Config, zl *zap.Logger) error {
	shutdownTracing, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		return err
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	if err := dbpkg.Migrate(ctx, db, zl); err != nil {
		return err
	}

	// ------------------------------
	// Cache de slots (opcional)
	// ------------------------------
	var slotCache ucAppointment.SlotCache = ucAppointment.NopSlotCache{}
	redisClient, err := cache.NewClient(ctx, cfg)
	switch {
	case err != nil:
		zl.Warn("redis unavailable, slot cache disabled", zap.Error(err))
	case redisClient != nil:
		defer func() { _ = redisClient.Close() }()
		slotCache = cache.NewRedisSlotCache(redisClient, time.Duration(cfg.SlotCacheTTLSeconds)*time.Second, zl)
		zl.Info("slot cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), zl)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(zl),
		middleware.CORSMiddleware(cfg),
		gin.Recovery(),
	)

	routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Config: cfg,
		Cache:  slotCache,
		Audit:  auditDispatcher,
		Log:    zl,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           telemetry.Handler(cfg, r),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server running", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		zl.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("http shutdown", zap.Error(err))
	}
	if err := auditDispatcher.Close(shutdownCtx); err != nil {
		zl.Warn("audit queue not drained", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		zl.Warn("tracer shutdown", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	return nil
}
