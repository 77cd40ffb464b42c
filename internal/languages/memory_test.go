package languages_test

import (
	"context"
	"errors"
	"testing"

	internallanguages "github.com/goliatone/go-translatable/internal/languages"
	"github.com/goliatone/go-translatable/languages"
)

func TestMemoryLanguageRepository(t *testing.T) {
	repo := internallanguages.NewMemoryLanguageRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, &languages.Language{}); !errors.Is(err, languages.ErrCodeRequired) {
		t.Fatalf("expected ErrCodeRequired, got %v", err)
	}

	created, err := repo.Create(ctx, &languages.Language{Code: "fr", Name: "French"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("expected an identifier to be assigned")
	}
	if _, err := repo.Create(ctx, &languages.Language{Code: "en", Name: "English"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByCode(ctx, " FR ")
	if err != nil {
		t.Fatalf("GetByCode() error = %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("GetByCode() returned %+v", got)
	}

	_, err = repo.GetByCode(ctx, "xx")
	var notFound *languages.NotFoundError
	if !errors.As(err, &notFound) || !errors.Is(err, languages.ErrUnknownLanguage) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 || list[0].Code != "en" || list[1].Code != "fr" {
		t.Fatalf("List() returned %+v", list)
	}
}
