package translation

import (
	"context"
	"fmt"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Store persists base entities and their translation rows.
type Store[B Entity[T], T Translation] interface {
	// SaveEntity inserts a new entity or updates its dirty columns.
	SaveEntity(ctx context.Context, entity B) error
	// SaveTranslation inserts a new row or updates its dirty columns.
	SaveTranslation(ctx context.Context, row T) error
	// LoadTranslations returns every translation row owned by entity.
	LoadTranslations(ctx context.Context, entity B) ([]T, error)
}

type bunStore[B Entity[T], T Translation] struct {
	db           *bun.DB
	names        naming
	entities     repository.Repository[B]
	translations repository.Repository[T]
}

// NewBunStore builds a Store on bun. Inserts go through go-repository-bun
// repositories, updates write only dirty columns keyed on the primary key.
func NewBunStore[B Entity[T], T Translation](db *bun.DB, schema Schema[B, T], settings Settings) (Store[B, T], error) {
	if db == nil {
		return nil, ErrStoreRequired
	}
	if schema.NewEntity == nil {
		return nil, fmt.Errorf("%w: NewEntity is required for the bun store", ErrSchemaInvalid)
	}
	if schema.NewTranslation == nil {
		return nil, fmt.Errorf("%w: NewTranslation is required for the bun store", ErrSchemaInvalid)
	}
	return &bunStore[B, T]{
		db:           db,
		names:        resolveNaming(schema, settings),
		entities:     repository.MustNewRepository(db, recordHandlers(schema.NewEntity)),
		translations: repository.MustNewRepository(db, recordHandlers(schema.NewTranslation)),
	}, nil
}

func recordHandlers[M Record](factory func() M) repository.ModelHandlers[M] {
	return repository.ModelHandlers[M]{
		NewRecord: factory,
		GetID: func(record M) uuid.UUID {
			return record.GetID()
		},
		SetID: func(record M, id uuid.UUID) {
			record.SetID(id)
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record M) string {
			return record.GetID().String()
		},
	}
}

func (s *bunStore[B, T]) SaveEntity(ctx context.Context, entity B) error {
	if !entity.Exists() {
		if entity.GetID() == uuid.Nil {
			entity.SetID(uuid.New())
		}
		_, err := s.entities.Create(ctx, entity)
		return err
	}
	return s.update(ctx, entity, entity.DirtyColumns())
}

func (s *bunStore[B, T]) SaveTranslation(ctx context.Context, row T) error {
	if !row.Exists() {
		if row.GetID() == uuid.Nil {
			row.SetID(uuid.New())
		}
		_, err := s.translations.Create(ctx, row)
		return err
	}
	return s.update(ctx, row, row.DirtyColumns())
}

func (s *bunStore[B, T]) update(ctx context.Context, model any, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	_, err := s.db.NewUpdate().
		Model(model).
		Column(columns...).
		WherePK().
		Exec(ctx)
	return err
}

func (s *bunStore[B, T]) LoadTranslations(ctx context.Context, entity B) ([]T, error) {
	var rows []T
	err := s.db.NewSelect().
		Model(&rows).
		Where("?TableAlias.? = ?", bun.Ident(s.names.owner), entity.GetID()).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		row.MarkPersisted()
	}
	return rows, nil
}
