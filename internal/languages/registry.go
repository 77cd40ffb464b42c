package languages

import (
	"context"
	"errors"

	"github.com/goliatone/go-translatable/internal/locale"
	"github.com/goliatone/go-translatable/internal/logging"
	"github.com/goliatone/go-translatable/languages"
	"github.com/goliatone/go-translatable/pkg/interfaces"
)

// Registry resolves language records by code and exposes the configured fallback language.
// Unknown codes resolve to nil without an error; only storage failures are reported.
type Registry struct {
	repo         Repository
	fallbackCode string
	logger       interfaces.Logger
}

// RegistryOption mutates a Registry during construction.
type RegistryOption func(*Registry)

// WithFallbackCode sets the language code used when translations fall back.
func WithFallbackCode(code string) RegistryOption {
	return func(r *Registry) {
		r.fallbackCode = locale.Normalize(code)
	}
}

// WithLogger injects the logger used for lookup diagnostics.
func WithLogger(logger interfaces.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry constructs a registry backed by the supplied repository.
func NewRegistry(repo Repository, opts ...RegistryOption) *Registry {
	r := &Registry{
		repo:   repo,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// FallbackCode returns the configured fallback language code.
func (r *Registry) FallbackCode() string {
	if r == nil {
		return ""
	}
	return r.fallbackCode
}

// ResolveByCode performs a single lookup by code.
func (r *Registry) ResolveByCode(ctx context.Context, code string) (*languages.Language, error) {
	if r == nil || r.repo == nil {
		return nil, nil
	}
	code = locale.Normalize(code)
	if code == "" {
		return nil, nil
	}

	lang, err := r.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, languages.ErrUnknownLanguage) {
			r.logger.Debug("languages.resolve.not_found", "code", code)
			return nil, nil
		}
		r.logger.Error("languages.resolve.failed", "code", code, "error", err)
		return nil, err
	}
	return lang, nil
}

// ResolveFallback resolves the configured fallback language.
func (r *Registry) ResolveFallback(ctx context.Context) (*languages.Language, error) {
	if r == nil || r.fallbackCode == "" {
		return nil, nil
	}
	return r.ResolveByCode(ctx, r.fallbackCode)
}
