package translatable

import (
	"context"
	"errors"
	"strings"

	seedcommands "github.com/goliatone/go-translatable/internal/commands/languages"
	"github.com/goliatone/go-translatable/languages"
)

var (
	// ErrLanguageCodeRequired indicates language lookups require a non-empty code.
	ErrLanguageCodeRequired = errors.New("translatable: language code is required")
	// ErrUnknownLanguage indicates a lookup failed because the code is unknown.
	ErrUnknownLanguage = languages.ErrUnknownLanguage
)

// Language exports the language reference record.
type Language = languages.Language

// LanguageSeed describes one language ensured by SeedLanguages.
type LanguageSeed = seedcommands.LanguageSeed

// ResolveLanguage looks a language up by code. Unlike the registry it reports
// unknown codes as a *languages.NotFoundError.
func (m *Module) ResolveLanguage(ctx context.Context, code string) (*Language, error) {
	if m == nil || m.container == nil {
		return nil, errNilModule
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrLanguageCodeRequired
	}
	lang, err := m.container.LanguageRegistry().ResolveByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if lang == nil {
		return nil, &languages.NotFoundError{Code: code}
	}
	return lang, nil
}

// ListLanguages returns every known language ordered by code.
func (m *Module) ListLanguages(ctx context.Context) ([]*Language, error) {
	if m == nil || m.container == nil {
		return nil, errNilModule
	}
	return m.container.LanguageRepository().List(ctx)
}

// SeedLanguages creates the listed languages that do not exist yet.
func (m *Module) SeedLanguages(ctx context.Context, seeds ...LanguageSeed) error {
	if m == nil || m.container == nil {
		return errNilModule
	}
	return m.container.SeedLanguagesHandler().Execute(ctx, seedcommands.SeedLanguagesCommand{Languages: seeds})
}
