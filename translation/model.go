package translation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-translatable/internal/logging"
	"github.com/goliatone/go-translatable/languages"
	"github.com/goliatone/go-translatable/pkg/interfaces"
	"github.com/uptrace/bun"
)

const (
	DefaultTranslationSuffix  = "Translation"
	DefaultLanguageForeignKey = "language_id"
)

// Settings carries the translation configuration shared by every model.
type Settings struct {
	// UseFallback enables fallback resolution for Translation and the
	// fallback branches of the query scopes.
	UseFallback bool
	// AlwaysFillable lets Fill write translated attributes regardless of
	// the fillable and guarded lists.
	AlwaysFillable     bool
	TranslationSuffix  string
	LanguageForeignKey string
}

// DefaultSettings returns the conventional naming with fallback disabled.
func DefaultSettings() Settings {
	return Settings{
		TranslationSuffix:  DefaultTranslationSuffix,
		LanguageForeignKey: DefaultLanguageForeignKey,
	}
}

// LanguageRegistry resolves languages by code and reports the fallback language.
// Unknown codes resolve to nil without an error.
type LanguageRegistry interface {
	ResolveByCode(ctx context.Context, code string) (*languages.Language, error)
	ResolveFallback(ctx context.Context) (*languages.Language, error)
}

type options struct {
	db       *bun.DB
	registry LanguageRegistry
	locale   interfaces.LocaleResolver
	events   interfaces.LifecycleDispatcher
	logger   interfaces.Logger
	settings Settings
}

// Option configures a Model.
type Option func(*options)

// WithDB sets the database used by the default bun store and the query scopes.
func WithDB(db *bun.DB) Option {
	return func(o *options) {
		o.db = db
	}
}

// WithLanguageRegistry sets the registry used to resolve language codes.
func WithLanguageRegistry(registry LanguageRegistry) Option {
	return func(o *options) {
		o.registry = registry
	}
}

// WithLocaleResolver sets the source of the active locale.
func WithLocaleResolver(resolver interfaces.LocaleResolver) Option {
	return func(o *options) {
		o.locale = resolver
	}
}

// WithDispatcher sets the receiver of lifecycle notifications.
func WithDispatcher(dispatcher interfaces.LifecycleDispatcher) Option {
	return func(o *options) {
		o.events = dispatcher
	}
}

// WithLogger sets the logger; models log resolution at debug and persistence
// failures at error.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSettings overrides DefaultSettings. Empty naming fields keep their defaults.
func WithSettings(settings Settings) Option {
	return func(o *options) {
		o.settings = settings
	}
}

// Model binds a Schema to its collaborators and exposes the translation
// behaviour for entities of type B.
type Model[B Entity[T], T Translation] struct {
	schema     Schema[B, T]
	names      naming
	settings   Settings
	attributes attributeSet[T]
	native     attributeSet[B]

	store    Store[B, T]
	db       *bun.DB
	registry LanguageRegistry
	locale   interfaces.LocaleResolver
	events   interfaces.LifecycleDispatcher
	logger   interfaces.Logger

	// eagerLoads maps an in-flight Find destination to its eager load flag.
	eagerLoads sync.Map
}

// NewModel builds a Model persisted through a bun store. WithDB is required.
func NewModel[B Entity[T], T Translation](schema Schema[B, T], opts ...Option) (*Model[B, T], error) {
	return newModel(schema, nil, opts...)
}

// NewModelWithStore builds a Model persisted through store. Query scopes
// still need WithDB.
func NewModelWithStore[B Entity[T], T Translation](schema Schema[B, T], store Store[B, T], opts ...Option) (*Model[B, T], error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	return newModel(schema, store, opts...)
}

func newModel[B Entity[T], T Translation](schema Schema[B, T], store Store[B, T], opts ...Option) (*Model[B, T], error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	cfg := options{
		settings: DefaultSettings(),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.registry == nil {
		return nil, ErrRegistryRequired
	}
	settings := cfg.settings
	if strings.TrimSpace(settings.TranslationSuffix) == "" {
		settings.TranslationSuffix = DefaultTranslationSuffix
	}
	if strings.TrimSpace(settings.LanguageForeignKey) == "" {
		settings.LanguageForeignKey = DefaultLanguageForeignKey
	}

	if store == nil {
		if cfg.db == nil {
			return nil, ErrStoreRequired
		}
		built, err := NewBunStore(cfg.db, schema, settings)
		if err != nil {
			return nil, err
		}
		store = built
	}

	return &Model[B, T]{
		schema:     schema,
		names:      resolveNaming(schema, settings),
		settings:   settings,
		attributes: newAttributeSet(schema.Attributes),
		native:     newAttributeSet(schema.Native),
		store:      store,
		db:         cfg.db,
		registry:   cfg.registry,
		locale:     cfg.locale,
		events:     cfg.events,
		logger:     logging.WithModelContext(cfg.logger, schema.Name, "", ""),
	}, nil
}

// Schema returns the declaration the model was built from.
func (m *Model[B, T]) Schema() Schema[B, T] {
	return m.schema
}

// Settings returns the effective settings.
func (m *Model[B, T]) Settings() Settings {
	return m.settings
}

// TranslationTable returns the resolved translation table name.
func (m *Model[B, T]) TranslationTable() string {
	return m.names.translations
}

// ForeignKey returns the owner key column on the translation table.
func (m *Model[B, T]) ForeignKey() string {
	return m.names.owner
}

// LanguageForeignKey returns the language key column on the translation table.
func (m *Model[B, T]) LanguageForeignKey() string {
	return m.names.language
}

// IsTranslatable reports whether key names a translatable column.
func (m *Model[B, T]) IsTranslatable(key string) bool {
	return m.attributes.has(key)
}

// ActiveLocale returns the locale code in effect for ctx.
func (m *Model[B, T]) ActiveLocale(ctx context.Context) string {
	if m.locale == nil {
		return ""
	}
	return strings.TrimSpace(m.locale.ActiveLocale(ctx))
}

func (m *Model[B, T]) activeLanguage(ctx context.Context) (*languages.Language, error) {
	code := m.ActiveLocale(ctx)
	if code == "" {
		return nil, nil
	}
	return m.registry.ResolveByCode(ctx, code)
}

// loadedTranslations returns the entity's collection, loading it on first access.
func (m *Model[B, T]) loadedTranslations(ctx context.Context, entity B) (*[]T, error) {
	set := entity.TranslationSet()
	if set == nil {
		return nil, ErrTranslationSetNil
	}
	if *set != nil {
		return set, nil
	}
	if !entity.Exists() {
		*set = []T{}
		return set, nil
	}
	rows, err := m.store.LoadTranslations(ctx, entity)
	if err != nil {
		m.logger.Error("translation.load.failed", "entity_id", entity.GetID().String(), "error", err)
		return nil, fmt.Errorf("translation: load %s translations: %w", m.names.model, err)
	}
	if rows == nil {
		rows = []T{}
	}
	*set = rows
	return set, nil
}

func (m *Model[B, T]) fire(ctx context.Context, entity B, translations int, names ...string) {
	if m.events == nil {
		return
	}
	for _, name := range names {
		m.events.Fire(ctx, interfaces.LifecycleEvent{
			Name:         name,
			Model:        m.names.model,
			Key:          entity.GetID(),
			Translations: translations,
		})
	}
}
