package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrDefaultLocaleRequired = errors.New("translatable config: default locale is required")
var ErrTranslationSuffixRequired = errors.New("translatable config: translation suffix is required")
var ErrLanguageForeignKeyRequired = errors.New("translatable config: language foreign key is required")
var ErrIdentifierInvalid = errors.New("translatable config: identifier contains invalid characters")
var ErrStorageDriverUnknown = errors.New("translatable config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("translatable config: storage dsn is required when a driver is set")
var ErrCacheTTLInvalid = errors.New("translatable config: cache ttl must be zero or positive")
var ErrLoggingProviderRequired = errors.New("translatable config: logging provider is required when logging is enabled")
var ErrLoggingProviderUnknown = errors.New("translatable config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("translatable config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("translatable config: logging format is invalid")

// Config aggregates the runtime options of the translatable module.
type Config struct {
	DefaultLocale string
	Translations  TranslationsConfig
	Storage       StorageConfig
	Cache         CacheConfig
	Logging       LoggingConfig
}

// TranslationsConfig mirrors the keys the translation layer reads at runtime.
type TranslationsConfig struct {
	// Locale forces the active locale regardless of the request context.
	Locale             string
	FallbackLocale     string
	UseFallback        bool
	AlwaysFillable     bool
	TranslationSuffix  string
	LanguageForeignKey string
}

// StorageConfig selects the database backing repositories. An empty driver
// keeps the in-memory language repository.
type StorageConfig struct {
	Driver string
	DSN    string
	Debug  bool
}

// CacheConfig toggles repository caching for language lookups.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Enabled   bool
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "en",
		Translations: TranslationsConfig{
			FallbackLocale:     "en",
			UseFallback:        false,
			AlwaysFillable:     false,
			TranslationSuffix:  "Translation",
			LanguageForeignKey: "language_id",
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Enabled:  false,
			Provider: "gologger",
			Level:    "info",
			Format:   "json",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.DefaultLocale) == "" {
		return ErrDefaultLocaleRequired
	}
	if strings.TrimSpace(cfg.Translations.TranslationSuffix) == "" {
		return ErrTranslationSuffixRequired
	}
	fk := strings.TrimSpace(cfg.Translations.LanguageForeignKey)
	if fk == "" {
		return ErrLanguageForeignKeyRequired
	}
	if !isIdentifier(fk) {
		return fmt.Errorf("%w: %s", ErrIdentifierInvalid, fk)
	}
	if driver := normalize(cfg.Storage.Driver); driver != "" {
		if !isSupportedDriver(driver) {
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Logging.Enabled {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if provider != "gologger" {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedDriver(driver string) bool {
	switch driver {
	case "sqlite", "sqlite3", "postgres", "postgresql", "pgx", "mysql":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

func isIdentifier(value string) bool {
	for i, r := range value {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return value != ""
}
