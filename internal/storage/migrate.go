package storage

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"github.com/goliatone/go-translatable/internal/logging"
	"github.com/goliatone/go-translatable/pkg/interfaces"
)

// Migrate applies the goose migrations found at the root of migrations.
func Migrate(ctx context.Context, db *bun.DB, migrations fs.FS, logger interfaces.Logger) error {
	if logger == nil {
		logger = logging.NoOp()
	}
	gooseDialect, err := gooseDialectFor(db.Dialect().Name())
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(gooseDialect, db.DB, migrations)
	if err != nil {
		return fmt.Errorf("storage: migration provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("storage: apply migrations: %w", err)
	}
	for _, result := range results {
		logger.Info("storage.migration.applied",
			"version", result.Source.Version,
			"path", result.Source.Path,
			"duration", result.Duration.String(),
		)
	}
	return nil
}

func gooseDialectFor(name dialect.Name) (goose.Dialect, error) {
	switch name {
	case dialect.SQLite:
		return goose.DialectSQLite3, nil
	case dialect.PG:
		return goose.DialectPostgres, nil
	case dialect.MySQL:
		return goose.DialectMySQL, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrDriverUnknown, name)
	}
}
