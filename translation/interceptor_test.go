package translation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-translatable/languages"
	"github.com/goliatone/go-translatable/translation"
)

func TestSetThenGetExplicitLocaleWithoutSave(t *testing.T) {
	h := newMemoryHarness(t, translation.DefaultSettings(), "en")
	country := existingCountry("fr", map[*languages.Language]string{langEN: "France"})
	ctx := context.Background()

	if err := h.model.Set(ctx, country, "name:fr", "Bonjour"); err != nil {
		t.Fatalf("set name:fr: %v", err)
	}
	value, ok, err := h.model.Get(ctx, country, "name:fr")
	if err != nil {
		t.Fatalf("get name:fr: %v", err)
	}
	if !ok || value != "Bonjour" {
		t.Fatalf("expected Bonjour, got ok=%v value=%v", ok, value)
	}

	value, ok, err = h.model.Get(ctx, country, "name")
	if err != nil || !ok || value != "France" {
		t.Fatalf("expected active language value France, got ok=%v value=%v err=%v", ok, value, err)
	}

	if country.IsDirty() {
		t.Fatal("expected the entity to stay clean")
	}
	row, ok, _ := h.model.Translate(ctx, country, langFR, false)
	if !ok || !row.IsDirty() {
		t.Fatal("expected a dirty french row")
	}
	if h.store.translationWrites() != 0 {
		t.Fatal("expected no writes before save")
	}
}

func TestLocaleSegmentEndsAtNextSeparator(t *testing.T) {
	h := newMemoryHarness(t, translation.DefaultSettings(), "en")
	country := existingCountry("de", map[*languages.Language]string{langDE: "Deutschland"})

	value, ok, err := h.model.Get(context.Background(), country, "name:de:ignored")
	if err != nil || !ok || value != "Deutschland" {
		t.Fatalf("expected Deutschland, got ok=%v value=%v err=%v", ok, value, err)
	}
}

func TestUnknownExplicitLocale(t *testing.T) {
	h := newMemoryHarness(t, translation.DefaultSettings(), "en")
	country := existingCountry("gr", map[*languages.Language]string{langEN: "Greece"})
	ctx := context.Background()

	_, ok, err := h.model.Get(ctx, country, "name:xx")
	if err != nil {
		t.Fatalf("get name:xx: %v", err)
	}
	if ok {
		t.Fatal("expected absent value for unknown locale")
	}

	err = h.model.Set(ctx, country, "name:xx", "nope")
	var unknown *translation.UnknownLanguageError
	if !errors.As(err, &unknown) || unknown.Code != "xx" {
		t.Fatalf("expected unknown language error for xx, got %v", err)
	}
	if len(country.Translations) != 1 {
		t.Fatalf("expected nothing attached, got %d rows", len(country.Translations))
	}
}

func TestExplicitLocaleUsesLoadedLanguages(t *testing.T) {
	h := newMemoryHarness(t, translation.DefaultSettings(), "en")
	country := existingCountry("gr", map[*languages.Language]string{langEN: "Greece", langDE: "Griechenland"})
	country.Languages = []*languages.Language{langEN}

	value, ok, err := h.model.Get(context.Background(), country, "name:en")
	if err != nil || !ok || value != "Greece" {
		t.Fatalf("expected Greece, got ok=%v value=%v err=%v", ok, value, err)
	}

	if _, ok, _ := h.model.Get(context.Background(), country, "name:de"); ok {
		t.Fatal("expected languages outside the loaded set to be unknown")
	}
}

func TestLocaleSuffixMatchesCaseInsensitively(t *testing.T) {
	h := newMemoryHarness(t, translation.DefaultSettings(), "en")
	ctx := context.Background()

	eager := existingCountry("gr", map[*languages.Language]string{langEN: "Greece"})
	eager.Languages = []*languages.Language{langEN}
	lazy := existingCountry("gr", map[*languages.Language]string{langEN: "Greece"})

	for name, country := range map[string]*Country{"loaded languages": eager, "registry": lazy} {
		value, ok, err := h.model.Get(ctx, country, "name:EN")
		if err != nil || !ok || value != "Greece" {
			t.Fatalf("%s: expected Greece, got ok=%v value=%v err=%v", name, ok, value, err)
		}
	}

	if err := h.model.Set(ctx, lazy, "name:FR", "Grèce"); err != nil {
		t.Fatalf("set name:FR: %v", err)
	}
	value, ok, err := h.model.Get(ctx, lazy, "name:fr")
	if err != nil || !ok || value != "Grèce" {
		t.Fatalf("expected Grèce, got ok=%v value=%v err=%v", ok, value, err)
	}
}

func TestNativeAttributes(t *testing.T) {
	h := newMemoryHarness(t, translation.DefaultSettings(), "en")
	country := existingCountry("gr", nil)
	ctx := context.Background()

	if err := h.model.Set(ctx, country, "code", "hr"); err != nil {
		t.Fatalf("set code: %v", err)
	}
	if country.Code != "hr" {
		t.Fatalf("expected code hr, got %q", country.Code)
	}
	if got := country.DirtyColumns(); len(got) != 1 || got[0] != "code" {
		t.Fatalf("expected code to be dirty, got %v", got)
	}

	value, ok, err := h.model.Get(ctx, country, "code")
	if err != nil || !ok || value != "hr" {
		t.Fatalf("expected hr, got ok=%v value=%v err=%v", ok, value, err)
	}

	if _, ok, _ := h.model.Get(ctx, country, "population"); ok {
		t.Fatal("expected unknown attribute to be absent")
	}
	if err := h.model.Set(ctx, country, "population", 10); !errors.Is(err, translation.ErrUnknownAttribute) {
		t.Fatalf("expected unknown attribute error, got %v", err)
	}
	if err := h.model.Set(ctx, country, "code", 42); !errors.Is(err, translation.ErrAttributeType) {
		t.Fatalf("expected attribute type error, got %v", err)
	}
}

func TestIsSet(t *testing.T) {
	h := newMemoryHarness(t, translation.DefaultSettings(), "en")
	country := existingCountry("gr", nil)

	if !h.model.IsSet(country, "name") {
		t.Fatal("expected translatable attribute to be set")
	}
	if !h.model.IsSet(country, "name:fr") {
		t.Fatal("expected translatable attribute with locale to be set")
	}
	if !h.model.IsSet(country, "code") {
		t.Fatal("expected native attribute to be set")
	}
	if h.model.IsSet(country, "population") {
		t.Fatal("expected unknown attribute to be unset")
	}
}

func TestGreeceFallbackScenario(t *testing.T) {
	ctx := withLocale("fr")

	enabled := newMemoryHarness(t, translation.Settings{UseFallback: true}, "en")
	greece := existingCountry("gr", map[*languages.Language]string{langEN: "Greece", langDE: "Griechenland"})
	value, ok, err := enabled.model.Get(ctx, greece, "name")
	if err != nil {
		t.Fatalf("get with fallback: %v", err)
	}
	if !ok || value != "Griechenland" {
		t.Fatalf("expected Griechenland, got ok=%v value=%v", ok, value)
	}

	disabled := newMemoryHarness(t, translation.Settings{UseFallback: false}, "en")
	greece = existingCountry("gr", map[*languages.Language]string{langEN: "Greece", langDE: "Griechenland"})
	if _, ok, err := disabled.model.Get(ctx, greece, "name"); err != nil || ok {
		t.Fatalf("expected absent value without fallback, got ok=%v err=%v", ok, err)
	}
}
