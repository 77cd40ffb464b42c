package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/extra/bundebug"
	"github.com/uptrace/bun/schema"

	"github.com/goliatone/go-translatable/internal/runtimeconfig"
)

var (
	ErrDriverRequired = errors.New("storage: driver is required")
	ErrDriverUnknown  = errors.New("storage: unknown driver")
)

// Driver names a database/sql driver and the bun dialect that speaks to it.
type Driver struct {
	Name    string
	SQLName string
	Dialect func() schema.Dialect
}

var drivers = map[string]Driver{
	"sqlite":   {Name: "sqlite", SQLName: "sqlite3", Dialect: func() schema.Dialect { return sqlitedialect.New() }},
	"postgres": {Name: "postgres", SQLName: "pgx", Dialect: func() schema.Dialect { return pgdialect.New() }},
	"mysql":    {Name: "mysql", SQLName: "mysql", Dialect: func() schema.Dialect { return mysqldialect.New() }},
}

var aliases = map[string]string{
	"sqlite3":    "sqlite",
	"pgx":        "postgres",
	"postgresql": "postgres",
}

// ResolveDriver maps a configured driver name onto a supported Driver.
func ResolveDriver(name string) (Driver, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Driver{}, ErrDriverRequired
	}
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	driver, ok := drivers[key]
	if !ok {
		return Driver{}, fmt.Errorf("%w: %s", ErrDriverUnknown, name)
	}
	return driver, nil
}

// Open connects to the configured database and wraps it with the matching
// bun dialect. Debug installs the bundebug query hook.
func Open(cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	driver, err := ResolveDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}
	sqlDB, err := sql.Open(driver.SQLName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", driver.Name, err)
	}
	if driver.Name == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	}

	db := bun.NewDB(sqlDB, driver.Dialect())
	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return db, nil
}
