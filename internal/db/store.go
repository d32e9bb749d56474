package db

import (
	"context"
	"fmt"

	"github.com/shinyyama/harvestx-backend/internal/config"
	"github.com/shinyyama/harvestx-backend/internal/repository"
	"github.com/shinyyama/harvestx-backend/internal/repository/memory"
	"github.com/shinyyama/harvestx-backend/internal/repository/sqlite"
	"go.uber.org/zap"
)

// OpenStore builds the entity store named by cfg.StoreDriver. The returned
// close func releases the underlying database and is never nil.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.StoreDriver {
	case config.StoreMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		return memory.NewStore(), noop, nil
	case config.StoreSQLite:
		s, err := sqlite.NewStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.Info("sqlite store opened", zap.String("path", s.Path()))
		return s, s.Close, nil
	case config.StoreMySQL, config.StorePostgres:
		conn, err := Connect(cfg)
		if err != nil {
			return nil, noop, fmt.Errorf("connect %s: %w", cfg.StoreDriver, err)
		}
		s := repository.NewGormStore(conn)
		if err := s.Migrate(ctx); err != nil {
			return nil, noop, fmt.Errorf("auto migrate: %w", err)
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, noop, err
		}
		logger.Info("sql store opened", zap.String("driver", cfg.StoreDriver))
		return s, sqlDB.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
