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

	"github.com/joho/godotenv"
	"github.com/shinyyama/harvestx-backend/internal/config"
	"github.com/shinyyama/harvestx-backend/internal/db"
	"github.com/shinyyama/harvestx-backend/internal/logging"
	"github.com/shinyyama/harvestx-backend/internal/media"
	"github.com/shinyyama/harvestx-backend/internal/metrics"
	appmw "github.com/shinyyama/harvestx-backend/internal/middleware"
	"github.com/shinyyama/harvestx-backend/internal/server"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	logger, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := db.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("close store", zap.Error(err))
		}
	}()

	verifier, err := newVerifier(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("init auth", zap.Error(err))
	}

	uploader, err := media.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("init media", zap.Error(err))
	}
	if uploader == nil {
		logger.Info("image uploads disabled; MEDIA_DRIVER is not set")
	}

	srv := server.New(server.Deps{
		Store:     store,
		Verifier:  verifier,
		Uploader:  uploader,
		Metrics:   metrics.NewRecorder(),
		Logger:    logger,
		GitSHA:    cfg.GitSHA,
		BuildTime: cfg.BuildTime,
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", addr), zap.String("store", cfg.StoreDriver))
		errCh <- srv.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}
}

// newVerifier returns nil when neither Firebase nor dev auth is configured;
// the API then serves only public operations.
func newVerifier(ctx context.Context, cfg *config.Config, logger *zap.Logger) (appmw.TokenVerifier, error) {
	switch {
	case cfg.FirebaseProjectID != "":
		v, err := appmw.NewFirebaseVerifier(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
		if err != nil {
			return nil, err
		}
		return v, nil
	case cfg.AuthInsecureDev:
		logger.Warn("AUTH_INSECURE_DEV is on; bearer tokens are trusted as uids")
		return appmw.DevVerifier{}, nil
	default:
		logger.Warn("FIREBASE_PROJECT_ID is not set; all callers are anonymous")
		return nil, nil
	}
}
