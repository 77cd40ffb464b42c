package languages

import (
	"context"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/goliatone/go-translatable/languages"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BunLanguageRepository struct {
	repo repository.Repository[*languages.Language]
}

var _ Repository = (*BunLanguageRepository)(nil)

func NewBunLanguageRepository(db *bun.DB) *BunLanguageRepository {
	return NewBunLanguageRepositoryWithCache(db, nil, nil)
}

// NewBunLanguageRepositoryWithCache constructs a language repository with optional caching.
func NewBunLanguageRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunLanguageRepository {
	base := NewLanguageRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunLanguageRepository{repo: wrapped}
}

func (r *BunLanguageRepository) GetByCode(ctx context.Context, code string) (*languages.Language, error) {
	result, err := r.repo.GetByIdentifier(ctx, code)
	if err != nil {
		return nil, mapRepositoryError(err, code)
	}
	return result, nil
}

func (r *BunLanguageRepository) Create(ctx context.Context, record *languages.Language) (*languages.Language, error) {
	if record == nil {
		return nil, languages.ErrCodeRequired
	}
	if strings.TrimSpace(record.Code) == "" {
		return nil, languages.ErrCodeRequired
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("language repository error: %w", err)
	}
	return created, nil
}

func (r *BunLanguageRepository) List(ctx context.Context) ([]*languages.Language, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.code ASC")
	}))
	return records, err
}

func mapRepositoryError(err error, code string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &languages.NotFoundError{Code: code}
	}
	return fmt.Errorf("language repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
