package translatable

import (
	"context"
	"errors"

	"github.com/goliatone/go-translatable/internal/di"
	"github.com/goliatone/go-translatable/internal/events"
	"github.com/goliatone/go-translatable/internal/locale"
	"github.com/goliatone/go-translatable/internal/storage"
	"github.com/goliatone/go-translatable/pkg/interfaces"
	"github.com/goliatone/go-translatable/translation"
)

var (
	errNilModule = errors.New("translatable: module not initialised")
	// ErrDatabaseRequired indicates the operation needs a configured database.
	ErrDatabaseRequired = translation.ErrDatabaseRequired
)

// Dispatcher exports the lifecycle event dispatcher.
type Dispatcher = events.Dispatcher

// LifecycleEvent exports the payload delivered to lifecycle hooks.
type LifecycleEvent = interfaces.LifecycleEvent

// LanguageRegistry exports the registry contract models resolve codes through.
type LanguageRegistry = translation.LanguageRegistry

// Module represents the top level translatable runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	if m == nil {
		return nil
	}
	return m.container
}

// Close releases resources the module opened from its configuration.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}

// Languages returns the registry shared by every registered model.
func (m *Module) Languages() LanguageRegistry {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.LanguageRegistry()
}

// Events returns the dispatcher receiving created, updated and saved notifications.
func (m *Module) Events() *Dispatcher {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Dispatcher()
}

// Migrate applies the embedded migrations to the configured database.
func (m *Module) Migrate(ctx context.Context) error {
	if m == nil || m.container == nil {
		return errNilModule
	}
	db := m.container.DB()
	if db == nil {
		return ErrDatabaseRequired
	}
	return storage.Migrate(ctx, db, GetMigrationsFS(), m.container.Logger("translatable.storage"))
}

// Register binds schema to the module's database, registry, locale resolver,
// dispatcher and logger. The module must have a database.
func Register[B translation.Entity[T], T translation.Translation](m *Module, schema translation.Schema[B, T], opts ...translation.Option) (*translation.Model[B, T], error) {
	if m == nil || m.container == nil {
		return nil, errNilModule
	}
	return translation.NewModel(schema, append(m.container.ModelOptions(), opts...)...)
}

// RegisterWithStore binds schema like Register but persists through store.
func RegisterWithStore[B translation.Entity[T], T translation.Translation](m *Module, schema translation.Schema[B, T], store translation.Store[B, T], opts ...translation.Option) (*translation.Model[B, T], error) {
	if m == nil || m.container == nil {
		return nil, errNilModule
	}
	return translation.NewModelWithStore(schema, store, append(m.container.ModelOptions(), opts...)...)
}

// WithLocale returns a context whose active locale is code. A configured
// locale override still takes precedence.
func WithLocale(ctx context.Context, code string) context.Context {
	return locale.WithCode(ctx, code)
}
