package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	translatable "github.com/goliatone/go-translatable"
	"github.com/goliatone/go-translatable/translation"
)

type Country struct {
	bun.BaseModel       `bun:"table:countries,alias:c"`
	translation.Tracker `bun:"-" json:"-"`

	ID           uuid.UUID             `bun:"id,pk,type:uuid" json:"id"`
	Code         string                `bun:"code,notnull" json:"code"`
	Translations []*CountryTranslation `bun:"rel:has-many,join:id=country_id" json:"-"`
}

func (c *Country) GetID() uuid.UUID                       { return c.ID }
func (c *Country) SetID(id uuid.UUID)                     { c.ID = id }
func (c *Country) TranslationSet() *[]*CountryTranslation { return &c.Translations }

type CountryTranslation struct {
	bun.BaseModel       `bun:"table:country_translations,alias:ct"`
	translation.Tracker `bun:"-" json:"-"`

	ID         uuid.UUID `bun:"id,pk,type:uuid"`
	CountryID  uuid.UUID `bun:"country_id,notnull,type:uuid"`
	LanguageID uuid.UUID `bun:"language_id,notnull,type:uuid"`
	Name       string    `bun:"name"`
}

func (t *CountryTranslation) GetID() uuid.UUID           { return t.ID }
func (t *CountryTranslation) SetID(id uuid.UUID)         { t.ID = id }
func (t *CountryTranslation) GetLanguageID() uuid.UUID   { return t.LanguageID }
func (t *CountryTranslation) SetLanguageID(id uuid.UUID) { t.LanguageID = id }
func (t *CountryTranslation) SetOwnerID(id uuid.UUID)    { t.CountryID = id }

func main() {
	ctx := context.Background()

	cfg := translatable.DefaultConfig()
	cfg.Storage.Driver = "sqlite"
	cfg.Storage.DSN = "file:translatable_example?mode=memory&cache=shared"
	cfg.Storage.Debug = os.Getenv("TRANSLATABLE_SQL_DEBUG") != ""
	cfg.Translations.FallbackLocale = "de"
	cfg.Translations.UseFallback = true
	cfg.Logging.Enabled = true
	cfg.Logging.Format = "console"
	cfg.Logging.Level = "info"

	module, err := translatable.New(cfg)
	if err != nil {
		log.Fatalf("new module: %v", err)
	}
	defer module.Close()

	if err := module.Migrate(ctx); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := createTables(ctx, module.Container().DB()); err != nil {
		log.Fatalf("create tables: %v", err)
	}
	err = module.SeedLanguages(ctx,
		translatable.LanguageSeed{Code: "en", Name: "English"},
		translatable.LanguageSeed{Code: "fr", Name: "French"},
		translatable.LanguageSeed{Code: "de", Name: "German"},
		translatable.LanguageSeed{Code: "el", Name: "Greek"},
	)
	if err != nil {
		log.Fatalf("seed languages: %v", err)
	}

	module.Events().On("", func(_ context.Context, evt translatable.LifecycleEvent) {
		fmt.Printf("event %-8s model=%s key=%s translations=%d\n", evt.Name, evt.Model, evt.Key, evt.Translations)
	})

	countries, err := translatable.Register(module, translation.Schema[*Country, *CountryTranslation]{
		Name:           "country",
		Table:          "countries",
		NewEntity:      func() *Country { return &Country{} },
		NewTranslation: func() *CountryTranslation { return &CountryTranslation{} },
		Attributes: []translation.Attribute[*CountryTranslation]{
			translation.Field("name", func(t *CountryTranslation) *string { return &t.Name }),
		},
		Native: []translation.Attribute[*Country]{
			translation.Field("code", func(c *Country) *string { return &c.Code }),
		},
		Fillable: []string{"code", "name"},
	})
	if err != nil {
		log.Fatalf("register country: %v", err)
	}

	greece := &Country{}
	if err := countries.Fill(ctx, greece, translation.FillInput{
		Attributes: map[string]any{"code": "gr", "name:en": "Greece", "name:de": "Griechenland"},
	}); err != nil {
		log.Fatalf("fill greece: %v", err)
	}
	if err := countries.Save(ctx, greece); err != nil {
		log.Fatalf("save greece: %v", err)
	}

	france := &Country{}
	for key, value := range map[string]any{"code": "fr", "name:fr": "France", "name:de": "Frankreich"} {
		if err := countries.Set(ctx, france, key, value); err != nil {
			log.Fatalf("set %s: %v", key, err)
		}
	}
	if err := countries.Save(ctx, france); err != nil {
		log.Fatalf("save france: %v", err)
	}

	if err := countries.Set(ctx, greece, "name:el", "Ελλάδα"); err != nil {
		log.Fatalf("set name:el: %v", err)
	}
	if err := countries.Save(ctx, greece); err != nil {
		log.Fatalf("save greek name: %v", err)
	}

	for _, code := range []string{"en", "fr", "el"} {
		localized := translatable.WithLocale(ctx, code)
		rows, err := countries.ListTranslations(localized, "name")
		if err != nil {
			log.Fatalf("list translations %s: %v", code, err)
		}
		for _, row := range rows {
			value := "<none>"
			if row.Value != nil {
				value = *row.Value
			}
			fmt.Printf("list[%s] %s -> %s\n", code, row.Key, value)
		}
	}

	scope, err := countries.TranslatedIn(ctx, nil)
	if err != nil {
		log.Fatalf("translated in: %v", err)
	}
	english, err := countries.Find(ctx, scope)
	if err != nil {
		log.Fatalf("find english: %v", err)
	}
	for _, country := range english {
		snapshot, err := countries.ToMap(ctx, country)
		if err != nil {
			log.Fatalf("to map: %v", err)
		}
		payload, _ := json.Marshal(snapshot)
		fmt.Printf("translated in en: %s\n", payload)
	}
}

func createTables(ctx context.Context, db *bun.DB) error {
	for _, model := range []any{(*Country)(nil), (*CountryTranslation)(nil)} {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
