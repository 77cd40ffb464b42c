package translation

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-translatable/languages"
)

// Scope composes a filter, join, projection or eager load onto a select
// query. It works with bun's SelectQuery.Apply and go-repository-bun's
// SelectRawProcessor.
type Scope func(*bun.SelectQuery) *bun.SelectQuery

// ListedTranslation is one row produced by ListTranslations.
type ListedTranslation struct {
	Key   uuid.UUID `bun:"base_key"`
	Value *string   `bun:"translated_value"`
}

// languageKey resolves lang, or the active language when nil. Unresolved
// languages map to uuid.Nil, which matches no stored row.
func (m *Model[B, T]) languageKey(ctx context.Context, lang *languages.Language) (uuid.UUID, error) {
	if lang != nil {
		return lang.ID, nil
	}
	active, err := m.activeLanguage(ctx)
	if err != nil || active == nil {
		return uuid.Nil, err
	}
	return active.ID, nil
}

func (m *Model[B, T]) fallbackKey(ctx context.Context) (uuid.UUID, error) {
	fallback, err := m.registry.ResolveFallback(ctx)
	if err != nil || fallback == nil {
		return uuid.Nil, err
	}
	return fallback.ID, nil
}

// TranslatedIn keeps entities with a row for lang (nil selects the active language).
func (m *Model[B, T]) TranslatedIn(ctx context.Context, lang *languages.Language) (Scope, error) {
	id, err := m.languageKey(ctx, lang)
	if err != nil {
		return nil, err
	}
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("EXISTS (SELECT 1 FROM ? AS trn WHERE trn.? = ?TableAlias.? AND trn.? = ?)",
			bun.Ident(m.names.translations), bun.Ident(m.names.owner), bun.Ident(m.names.key),
			bun.Ident(m.names.language), id)
	}, nil
}

// NotTranslatedIn keeps entities without a row for lang.
func (m *Model[B, T]) NotTranslatedIn(ctx context.Context, lang *languages.Language) (Scope, error) {
	id, err := m.languageKey(ctx, lang)
	if err != nil {
		return nil, err
	}
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("NOT EXISTS (SELECT 1 FROM ? AS trn WHERE trn.? = ?TableAlias.? AND trn.? = ?)",
			bun.Ident(m.names.translations), bun.Ident(m.names.owner), bun.Ident(m.names.key),
			bun.Ident(m.names.language), id)
	}, nil
}

// Translated keeps entities with at least one row in any language.
func (m *Model[B, T]) Translated() Scope {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("EXISTS (SELECT 1 FROM ? AS trn WHERE trn.? = ?TableAlias.?)",
			bun.Ident(m.names.translations), bun.Ident(m.names.owner), bun.Ident(m.names.key))
	}
}

// WhereTranslation keeps entities with a row where field equals value,
// optionally restricted to lang.
func (m *Model[B, T]) WhereTranslation(field string, value any, lang *languages.Language) (Scope, error) {
	return m.whereTranslation(field, "=", value, lang)
}

// WhereTranslationLike is WhereTranslation with a LIKE pattern.
func (m *Model[B, T]) WhereTranslationLike(field string, pattern string, lang *languages.Language) (Scope, error) {
	return m.whereTranslation(field, "LIKE", pattern, lang)
}

func (m *Model[B, T]) whereTranslation(field, operator string, value any, lang *languages.Language) (Scope, error) {
	if !m.attributes.has(field) {
		return nil, &NotTranslatableError{Attribute: field}
	}
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if lang == nil {
			return q.Where("EXISTS (SELECT 1 FROM ? AS trn WHERE trn.? = ?TableAlias.? AND trn.? "+operator+" ?)",
				bun.Ident(m.names.translations), bun.Ident(m.names.owner), bun.Ident(m.names.key),
				bun.Ident(field), value)
		}
		return q.Where("EXISTS (SELECT 1 FROM ? AS trn WHERE trn.? = ?TableAlias.? AND trn.? "+operator+" ? AND trn.? = ?)",
			bun.Ident(m.names.translations), bun.Ident(m.names.owner), bun.Ident(m.names.key),
			bun.Ident(field), value, bun.Ident(m.names.language), lang.ID)
	}, nil
}

// ListTranslationsQuery projects (base key, field) in the active language.
// With fallback enabled it adds fallback rows for entities the active
// language does not cover, so each entity appears once.
func (m *Model[B, T]) ListTranslationsQuery(ctx context.Context, field string) (*bun.SelectQuery, error) {
	if m.db == nil {
		return nil, ErrDatabaseRequired
	}
	if !m.attributes.has(field) {
		return nil, &NotTranslatableError{Attribute: field}
	}
	active, err := m.languageKey(ctx, nil)
	if err != nil {
		return nil, err
	}

	var model B
	q := m.db.NewSelect().
		Model(model).
		ColumnExpr("?TableAlias.? AS base_key", bun.Ident(m.names.key)).
		ColumnExpr("trn.? AS translated_value", bun.Ident(field)).
		Join("LEFT JOIN ? AS trn ON trn.? = ?TableAlias.?",
			bun.Ident(m.names.translations), bun.Ident(m.names.owner), bun.Ident(m.names.key)).
		Where("trn.? = ?", bun.Ident(m.names.language), active)

	if m.settings.UseFallback {
		fallback, err := m.fallbackKey(ctx)
		if err != nil {
			return nil, err
		}
		q = q.WhereOr("trn.? = ? AND trn.? NOT IN (SELECT ? FROM ? WHERE ? = ?)",
			bun.Ident(m.names.language), fallback,
			bun.Ident(m.names.owner),
			bun.Ident(m.names.owner), bun.Ident(m.names.translations), bun.Ident(m.names.language), active)
	}
	return q, nil
}

// ListTranslations runs ListTranslationsQuery ordered by base key.
func (m *Model[B, T]) ListTranslations(ctx context.Context, field string) ([]ListedTranslation, error) {
	q, err := m.ListTranslationsQuery(ctx, field)
	if err != nil {
		return nil, err
	}
	var out []ListedTranslation
	if err := q.OrderExpr("base_key ASC").Scan(ctx, &out); err != nil {
		return nil, fmt.Errorf("translation: list %s.%s: %w", m.names.model, field, err)
	}
	return out, nil
}

// WithTranslation eager loads rows for the active language. With fallback
// enabled the filter repeats the active language, so fallback rows are not
// loaded; use WithTranslationAndFallback for those.
func (m *Model[B, T]) WithTranslation(ctx context.Context) (Scope, error) {
	active, err := m.languageKey(ctx, nil)
	if err != nil {
		return nil, err
	}
	return m.withTranslation(active, active, m.settings.UseFallback), nil
}

// WithTranslationAndFallback eager loads rows for the active language and,
// with fallback enabled, the fallback language.
func (m *Model[B, T]) WithTranslationAndFallback(ctx context.Context) (Scope, error) {
	active, err := m.languageKey(ctx, nil)
	if err != nil {
		return nil, err
	}
	fallback, err := m.fallbackKey(ctx)
	if err != nil {
		return nil, err
	}
	return m.withTranslation(active, fallback, m.settings.UseFallback), nil
}

func (m *Model[B, T]) withTranslation(active, alt uuid.UUID, orAlt bool) Scope {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		m.markEagerLoad(q)
		return q.Relation(m.names.translationsRel, func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.WhereGroup(" AND ", func(g *bun.SelectQuery) *bun.SelectQuery {
				g = g.Where("?TableAlias.? = ?", bun.Ident(m.names.language), active)
				if orAlt {
					g = g.WhereOr("?TableAlias.? = ?", bun.Ident(m.names.language), alt)
				}
				return g
			})
		})
	}
}

// WithLanguages eager loads the many-to-many languages relation. The
// translation model must be registered with db.RegisterModel.
func (m *Model[B, T]) WithLanguages() Scope {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Relation(m.names.languagesRel)
	}
}

// WithLanguagesAndTranslation combines WithLanguages and WithTranslation.
func (m *Model[B, T]) WithLanguagesAndTranslation(ctx context.Context) (Scope, error) {
	withTranslation, err := m.WithTranslation(ctx)
	if err != nil {
		return nil, err
	}
	withLanguages := m.WithLanguages()
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return withTranslation(withLanguages(q))
	}, nil
}

// markEagerLoad flags the Find call scanning into q's destination as
// eager loading the translations relation.
func (m *Model[B, T]) markEagerLoad(q *bun.SelectQuery) {
	model := q.GetModel()
	if model == nil {
		return
	}
	dest, ok := model.Value().(*[]B)
	if !ok {
		return
	}
	if flag, ok := m.eagerLoads.Load(dest); ok {
		flag.(*atomic.Bool).Store(true)
	}
}

// Find runs a select on the entity table with scopes applied. Entities and
// eager loaded rows come back marked persisted. When a scope eager loads
// translations, entities without matching rows get an empty collection, so
// later reads do not query again.
func (m *Model[B, T]) Find(ctx context.Context, scopes ...Scope) ([]B, error) {
	if m.db == nil {
		return nil, ErrDatabaseRequired
	}
	var rows []B
	dest := &rows
	eager := new(atomic.Bool)
	m.eagerLoads.Store(dest, eager)
	defer m.eagerLoads.Delete(dest)

	q := m.db.NewSelect().Model(dest)
	for _, scope := range scopes {
		if scope != nil {
			q = q.Apply(scope)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("translation: find %s: %w", m.names.model, err)
	}
	for _, row := range rows {
		row.MarkPersisted()
		set := row.TranslationSet()
		if set == nil {
			continue
		}
		if *set == nil && eager.Load() {
			*set = []T{}
		}
		for _, tr := range *set {
			tr.MarkPersisted()
		}
	}
	return rows, nil
}
