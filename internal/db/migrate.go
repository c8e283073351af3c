package db

import (
	"context"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Migrate aplica as migrações pendentes. O schema não vem do AutoMigrate:
// colunas geradas e a constraint de exclusão só existem em SQL.
func Migrate(ctx context.Context, gdb *gorm.DB, log *zap.Logger) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	log.Info("applying database migrations")
	if err := goose.UpContext(ctx, sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("get version: %w", err)
	}
	log.Info("migrations applied", zap.Int64("version", version))

	return nil
}
