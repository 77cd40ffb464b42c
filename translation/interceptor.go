package translation

import (
	"context"
	"reflect"
	"strings"

	"github.com/goliatone/go-translatable/internal/locale"
	"github.com/goliatone/go-translatable/languages"
)

// localeSeparator splits "field:locale" keys.
const localeSeparator = ":"

func splitKey(key string) (field, code string) {
	field, rest, found := strings.Cut(key, localeSeparator)
	if !found {
		return key, ""
	}
	code, _, _ = strings.Cut(rest, localeSeparator)
	return field, code
}

// Get reads key from entity. Translatable keys resolve through the entity's
// fallback policy and accept a "field:locale" suffix; other keys read native
// attributes. The boolean is false when nothing resolves.
func (m *Model[B, T]) Get(ctx context.Context, entity B, key string) (any, bool, error) {
	field, code := splitKey(key)

	attr, translatable := m.attributes.lookup(field)
	if !translatable {
		native, ok := m.native.lookup(key)
		if !ok {
			return nil, false, nil
		}
		return native.Get(entity), true, nil
	}

	var lang *languages.Language
	if code != "" {
		resolved, err := m.languageForCode(ctx, entity, code)
		if err != nil {
			return nil, false, err
		}
		if resolved == nil {
			return nil, false, nil
		}
		lang = resolved
	}

	row, ok, err := m.Translation(ctx, entity, lang)
	if err != nil || !ok {
		return nil, false, err
	}
	return attr.Get(row), true, nil
}

// Set writes value under key. Translatable keys land on the row for the
// explicit or active language, creating it when missing; the base entity is
// not marked dirty. Other keys write native attributes.
func (m *Model[B, T]) Set(ctx context.Context, entity B, key string, value any) error {
	field, code := splitKey(key)

	attr, translatable := m.attributes.lookup(field)
	if !translatable {
		native, ok := m.native.lookup(key)
		if !ok {
			return &UnknownAttributeError{Attribute: key}
		}
		return native.Set(entity, value)
	}

	var lang *languages.Language
	if code != "" {
		resolved, err := m.languageForCode(ctx, entity, code)
		if err != nil {
			return err
		}
		if resolved == nil {
			return &UnknownLanguageError{Code: code}
		}
		lang = resolved
	}

	row, err := m.TranslateOrNew(ctx, entity, lang)
	if err != nil {
		return err
	}
	return attr.Set(row, value)
}

// IsSet reports whether key names a translatable attribute or a native
// attribute currently holding a value.
func (m *Model[B, T]) IsSet(entity B, key string) bool {
	field, _ := splitKey(key)
	if m.attributes.has(field) {
		return true
	}
	native, ok := m.native.lookup(key)
	if !ok {
		return false
	}
	return !isNil(native.Get(entity))
}

// languageForCode compares codes in their canonical BCP 47 form, both against
// eagerly loaded languages and through the registry.
func (m *Model[B, T]) languageForCode(ctx context.Context, entity B, code string) (*languages.Language, error) {
	code = locale.Normalize(code)
	if carrier, ok := any(entity).(LanguageCarrier); ok {
		if loaded, isLoaded := carrier.LoadedLanguages(); isLoaded {
			for _, lang := range loaded {
				if lang != nil && locale.Normalize(lang.Code) == code {
					return lang, nil
				}
			}
			return nil, nil
		}
	}
	return m.registry.ResolveByCode(ctx, code)
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
