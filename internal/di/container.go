package di

import (
	"fmt"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-translatable/internal/commands"
	seedcommands "github.com/goliatone/go-translatable/internal/commands/languages"
	"github.com/goliatone/go-translatable/internal/events"
	internallanguages "github.com/goliatone/go-translatable/internal/languages"
	"github.com/goliatone/go-translatable/internal/locale"
	"github.com/goliatone/go-translatable/internal/logging"
	"github.com/goliatone/go-translatable/internal/logging/gologger"
	"github.com/goliatone/go-translatable/internal/runtimeconfig"
	"github.com/goliatone/go-translatable/internal/storage"
	"github.com/goliatone/go-translatable/pkg/interfaces"
	"github.com/goliatone/go-translatable/translation"
)

// Container wires the collaborators shared by every translatable model.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	ownsDB        bool
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider
	languageRepo   internallanguages.Repository
	registry       *internallanguages.Registry
	locale         interfaces.LocaleResolver
	dispatcher     *events.Dispatcher
	seedHandler    *commands.Handler[seedcommands.SeedLanguagesCommand]
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB supplies an open database. The container does not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service used by the language repository.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithLanguageRepository overrides the repository chosen from the storage config.
func WithLanguageRepository(repo internallanguages.Repository) Option {
	return func(c *Container) {
		c.languageRepo = repo
	}
}

// WithLocaleResolver overrides the config-driven locale resolver.
func WithLocaleResolver(resolver interfaces.LocaleResolver) Option {
	return func(c *Container) {
		c.locale = resolver
	}
}

// NewContainer validates cfg and builds the shared collaborators.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()

	c.registry = internallanguages.NewRegistry(
		c.languageRepo,
		internallanguages.WithFallbackCode(cfg.Translations.FallbackLocale),
		internallanguages.WithLogger(logging.LanguagesLogger(c.loggerProvider)),
	)
	if c.locale == nil {
		c.locale = locale.NewResolver(cfg.Translations.Locale, cfg.DefaultLocale)
	}
	c.dispatcher = events.NewDispatcher(logging.ModuleLogger(c.loggerProvider, "translatable.events"))
	c.seedHandler = seedcommands.NewSeedLanguagesHandler(
		c.languageRepo,
		commands.Logger(c.loggerProvider, "languages.seed"),
	)

	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Logging.Enabled {
		return nil
	}
	provider, err := gologger.NewProvider(c.Config.Logging)
	if err != nil {
		return fmt.Errorf("configure logger provider: %w", err)
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureStorage() error {
	if c.bunDB != nil || strings.TrimSpace(c.Config.Storage.Driver) == "" {
		return nil
	}
	db, err := storage.Open(c.Config.Storage)
	if err != nil {
		return fmt.Errorf("configure storage: %w", err)
	}
	c.bunDB = db
	c.ownsDB = true
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.languageRepo != nil {
		return
	}
	switch {
	case c.bunDB != nil && c.cacheService != nil:
		c.languageRepo = internallanguages.NewBunLanguageRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	case c.bunDB != nil:
		c.languageRepo = internallanguages.NewBunLanguageRepository(c.bunDB)
	default:
		c.languageRepo = internallanguages.NewMemoryLanguageRepository()
	}
}

// DB returns the configured database, or nil when running in memory.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// Close releases the database opened from the storage config.
func (c *Container) Close() error {
	if c == nil || !c.ownsDB || c.bunDB == nil {
		return nil
	}
	c.ownsDB = false
	return c.bunDB.Close()
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Logger returns a module-scoped logger from the configured provider.
func (c *Container) Logger(module string) interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, module)
}

func (c *Container) LanguageRepository() internallanguages.Repository {
	return c.languageRepo
}

func (c *Container) LanguageRegistry() *internallanguages.Registry {
	return c.registry
}

func (c *Container) LocaleResolver() interfaces.LocaleResolver {
	return c.locale
}

func (c *Container) Dispatcher() *events.Dispatcher {
	return c.dispatcher
}

// SeedLanguagesHandler returns the command handler writing language reference rows.
func (c *Container) SeedLanguagesHandler() *commands.Handler[seedcommands.SeedLanguagesCommand] {
	return c.seedHandler
}

// TranslationSettings maps the translations config onto model settings.
func (c *Container) TranslationSettings() translation.Settings {
	cfg := c.Config.Translations
	return translation.Settings{
		UseFallback:        cfg.UseFallback,
		AlwaysFillable:     cfg.AlwaysFillable,
		TranslationSuffix:  cfg.TranslationSuffix,
		LanguageForeignKey: cfg.LanguageForeignKey,
	}
}

// ModelOptions returns the translation options that bind a model to this container.
func (c *Container) ModelOptions() []translation.Option {
	opts := []translation.Option{
		translation.WithLanguageRegistry(c.registry),
		translation.WithLocaleResolver(c.locale),
		translation.WithDispatcher(c.dispatcher),
		translation.WithLogger(logging.TranslationLogger(c.loggerProvider)),
		translation.WithSettings(c.TranslationSettings()),
	}
	if c.bunDB != nil {
		opts = append(opts, translation.WithDB(c.bunDB))
	}
	return opts
}
