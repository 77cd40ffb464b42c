package languages

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-translatable/languages"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository persists and resolves language reference data.
type Repository interface {
	GetByCode(ctx context.Context, code string) (*languages.Language, error)
	Create(ctx context.Context, record *languages.Language) (*languages.Language, error)
	List(ctx context.Context) ([]*languages.Language, error)
}

func NewLanguageRepository(db *bun.DB) repository.Repository[*languages.Language] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*languages.Language]{
		NewRecord: func() *languages.Language { return &languages.Language{} },
		GetID: func(l *languages.Language) uuid.UUID {
			return l.ID
		},
		SetID: func(l *languages.Language, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(l *languages.Language) string {
			return l.Code
		},
	})
}
