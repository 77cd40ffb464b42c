package translation

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-translatable/pkg/interfaces"
)

// Save persists the entity and then its dirty translation rows. Translation
// rows are never written when the entity write fails, and a translation
// failure does not undo an entity write that already happened.
func (m *Model[B, T]) Save(ctx context.Context, entity B) error {
	switch {
	case entity.Exists() && entity.IsDirty():
		if err := m.saveEntity(ctx, entity); err != nil {
			return err
		}
		m.fire(ctx, entity, 0, interfaces.LifecycleUpdated, interfaces.LifecycleSaved)
		_, err := m.SaveTranslations(ctx, entity)
		return err

	case entity.Exists():
		written, err := m.SaveTranslations(ctx, entity)
		if err != nil {
			return err
		}
		if written > 0 {
			// the entity write was a no-op, so notify on its behalf
			m.fire(ctx, entity, written, interfaces.LifecycleSaved, interfaces.LifecycleUpdated)
		}
		return nil

	default:
		if err := m.saveEntity(ctx, entity); err != nil {
			return err
		}
		m.fire(ctx, entity, 0, interfaces.LifecycleCreated, interfaces.LifecycleSaved)
		_, err := m.SaveTranslations(ctx, entity)
		return err
	}
}

func (m *Model[B, T]) saveEntity(ctx context.Context, entity B) error {
	if err := m.store.SaveEntity(ctx, entity); err != nil {
		m.logger.Error("translation.save.entity_failed", "entity_id", entity.GetID().String(), "error", err)
		return fmt.Errorf("%w: %s: %w", ErrEntityNotSaved, m.names.model, err)
	}
	entity.MarkPersisted()
	return nil
}

// SaveTranslations writes every dirty row of the loaded collection, in
// order, after pointing it at the entity. Every dirty row is attempted; the
// returned error joins each failure. The count reports rows written.
func (m *Model[B, T]) SaveTranslations(ctx context.Context, entity B) (int, error) {
	set := entity.TranslationSet()
	if set == nil || len(*set) == 0 {
		return 0, nil
	}

	var (
		written int
		errs    []error
	)
	for _, row := range *set {
		if !row.IsDirty() {
			continue
		}
		row.SetOwnerID(entity.GetID())
		row.MarkDirty(m.names.owner)
		if err := m.store.SaveTranslation(ctx, row); err != nil {
			m.logger.Error("translation.save.translation_failed",
				"entity_id", entity.GetID().String(),
				"language_id", row.GetLanguageID().String(),
				"error", err,
			)
			errs = append(errs, err)
			continue
		}
		row.MarkPersisted()
		written++
	}
	if len(errs) > 0 {
		return written, fmt.Errorf("%w: %s: %w", ErrTranslationNotSaved, m.names.model, errors.Join(errs...))
	}
	return written, nil
}
