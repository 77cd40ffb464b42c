package translation

import (
	"context"
	"maps"
	"slices"

	"github.com/google/uuid"
)

// FillInput carries a mass assignment. Translations is keyed by language id,
// then attribute name.
type FillInput struct {
	Attributes   map[string]any
	Translations map[uuid.UUID]map[string]any
}

// Fill mass assigns native and translated attributes. Keys that are not
// fillable are skipped, unless the schema is totally guarded, in which case
// a *MassAssignmentError is returned. Keys are applied in sorted order.
func (m *Model[B, T]) Fill(ctx context.Context, entity B, input FillInput) error {
	for _, languageID := range sortedIDs(input.Translations) {
		values := input.Translations[languageID]
		for _, key := range slices.Sorted(maps.Keys(values)) {
			attr, ok := m.attributes.lookup(key)
			if !ok {
				continue
			}
			if !m.settings.AlwaysFillable && !m.schema.isFillable(key) {
				if m.schema.totallyGuarded() {
					return &MassAssignmentError{Model: m.names.model, Attribute: key}
				}
				continue
			}
			row, err := m.translationForID(ctx, entity, languageID)
			if err != nil {
				return err
			}
			if err := attr.Set(row, values[key]); err != nil {
				return err
			}
		}
	}

	for _, key := range slices.Sorted(maps.Keys(input.Attributes)) {
		field, _ := splitKey(key)
		if !m.schema.isFillable(field) {
			if m.schema.totallyGuarded() {
				return &MassAssignmentError{Model: m.names.model, Attribute: key}
			}
			continue
		}
		if err := m.Set(ctx, entity, key, input.Attributes[key]); err != nil {
			return err
		}
	}
	return nil
}

// translationForID resolves or attaches the row for a language id without
// consulting the registry.
func (m *Model[B, T]) translationForID(ctx context.Context, entity B, languageID uuid.UUID) (T, error) {
	var zero T
	set, err := m.loadedTranslations(ctx, entity)
	if err != nil {
		return zero, err
	}
	if row, ok := findByLanguage(*set, languageID); ok {
		return row, nil
	}
	row := m.schema.NewTranslation()
	row.SetLanguageID(languageID)
	row.SetOwnerID(entity.GetID())
	row.MarkDirty(m.names.language, m.names.owner)
	*set = append(*set, row)
	return row, nil
}

// ToMap returns native attributes and the current translation's attributes,
// omitting hidden keys. Translated keys are absent when nothing resolves.
func (m *Model[B, T]) ToMap(ctx context.Context, entity B) (map[string]any, error) {
	out := make(map[string]any, len(m.native.order)+len(m.attributes.order))
	for _, name := range m.native.order {
		if m.schema.isHidden(name) {
			continue
		}
		attr, _ := m.native.lookup(name)
		out[name] = attr.Get(entity)
	}

	row, ok, err := m.Translation(ctx, entity, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return out, nil
	}
	for _, name := range m.attributes.order {
		if m.schema.isHidden(name) {
			continue
		}
		attr, _ := m.attributes.lookup(name)
		out[name] = attr.Get(row)
	}
	return out, nil
}

func sortedIDs(values map[uuid.UUID]map[string]any) []uuid.UUID {
	ids := slices.Collect(maps.Keys(values))
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return slices.Compare(a[:], b[:])
	})
	return ids
}
