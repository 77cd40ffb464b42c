package translation

import (
	"context"

	"github.com/google/uuid"

	"github.com/goliatone/go-translatable/languages"
)

// Translate returns the entity's translation row for lang. A nil lang selects
// the active language. When the row is missing and withFallback is set, the
// fallback language row is returned instead. The first matching row wins.
func (m *Model[B, T]) Translate(ctx context.Context, entity B, lang *languages.Language, withFallback bool) (T, bool, error) {
	var zero T
	if lang == nil {
		active, err := m.activeLanguage(ctx)
		if err != nil {
			return zero, false, err
		}
		if active == nil {
			return zero, false, nil
		}
		lang = active
	}

	set, err := m.loadedTranslations(ctx, entity)
	if err != nil {
		return zero, false, err
	}
	if row, ok := findByLanguage(*set, lang.ID); ok {
		return row, true, nil
	}
	if !withFallback {
		return zero, false, nil
	}

	fallback, err := m.registry.ResolveFallback(ctx)
	if err != nil {
		return zero, false, err
	}
	if fallback == nil || fallback.ID == lang.ID {
		return zero, false, nil
	}
	if row, ok := findByLanguage(*set, fallback.ID); ok {
		m.logger.Debug("translation.resolve.fallback",
			"entity_id", entity.GetID().String(),
			"language", lang.Code,
			"fallback", fallback.Code,
		)
		return row, true, nil
	}
	return zero, false, nil
}

// Translation resolves lang honoring the entity's fallback policy, then the
// configured default.
func (m *Model[B, T]) Translation(ctx context.Context, entity B, lang *languages.Language) (T, bool, error) {
	return m.Translate(ctx, entity, lang, m.useFallback(entity))
}

// TranslateOrDefault resolves lang with fallback forced on.
func (m *Model[B, T]) TranslateOrDefault(ctx context.Context, entity B, lang *languages.Language) (T, bool, error) {
	return m.Translate(ctx, entity, lang, true)
}

// TranslateOrNew returns the row for lang, creating and attaching an unsaved
// row when none exists. Repeated calls return the same row until it is saved.
func (m *Model[B, T]) TranslateOrNew(ctx context.Context, entity B, lang *languages.Language) (T, error) {
	var zero T
	if lang == nil {
		active, err := m.activeLanguage(ctx)
		if err != nil {
			return zero, err
		}
		if active == nil {
			return zero, &UnknownLanguageError{Code: m.ActiveLocale(ctx)}
		}
		lang = active
	}

	row, ok, err := m.Translate(ctx, entity, lang, false)
	if err != nil {
		return zero, err
	}
	if ok {
		return row, nil
	}
	return m.attachTranslation(ctx, entity, lang)
}

// HasTranslation reports whether a row exists for lang without fallback.
func (m *Model[B, T]) HasTranslation(ctx context.Context, entity B, lang *languages.Language) (bool, error) {
	_, ok, err := m.Translate(ctx, entity, lang, false)
	return ok, err
}

func (m *Model[B, T]) attachTranslation(ctx context.Context, entity B, lang *languages.Language) (T, error) {
	var zero T
	set, err := m.loadedTranslations(ctx, entity)
	if err != nil {
		return zero, err
	}
	row := m.schema.NewTranslation()
	row.SetLanguageID(lang.ID)
	row.SetOwnerID(entity.GetID())
	row.MarkDirty(m.names.language, m.names.owner)
	*set = append(*set, row)

	m.logger.Debug("translation.attach",
		"entity_id", entity.GetID().String(),
		"language", lang.Code,
	)
	return row, nil
}

func (m *Model[B, T]) useFallback(entity B) bool {
	if policy, ok := any(entity).(FallbackPolicy); ok {
		if override := policy.UseTranslationFallback(); override != nil {
			return *override
		}
	}
	return m.settings.UseFallback
}

func findByLanguage[T Translation](rows []T, id uuid.UUID) (T, bool) {
	for _, row := range rows {
		if row.GetLanguageID() == id {
			return row, true
		}
	}
	var zero T
	return zero, false
}
