package translation_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-translatable/internal/events"
	internallanguages "github.com/goliatone/go-translatable/internal/languages"
	"github.com/goliatone/go-translatable/internal/locale"
	"github.com/goliatone/go-translatable/languages"
	"github.com/goliatone/go-translatable/pkg/interfaces"
	"github.com/goliatone/go-translatable/pkg/testsupport"
	"github.com/goliatone/go-translatable/translation"
)

type Country struct {
	bun.BaseModel       `bun:"table:countries,alias:c"`
	translation.Tracker `bun:"-" json:"-"`

	ID           uuid.UUID             `bun:"id,pk,type:uuid"`
	Code         string                `bun:"code,notnull"`
	Translations []*CountryTranslation `bun:"rel:has-many,join:id=country_id"`
	Languages    []*languages.Language `bun:"m2m:country_translations,join:Country=Language"`

	fallback *bool
}

func (c *Country) GetID() uuid.UUID                               { return c.ID }
func (c *Country) SetID(id uuid.UUID)                             { c.ID = id }
func (c *Country) TranslationSet() *[]*CountryTranslation         { return &c.Translations }
func (c *Country) UseTranslationFallback() *bool                  { return c.fallback }
func (c *Country) LoadedLanguages() ([]*languages.Language, bool) { return c.Languages, c.Languages != nil }

type CountryTranslation struct {
	bun.BaseModel       `bun:"table:country_translations,alias:ct"`
	translation.Tracker `bun:"-" json:"-"`

	ID         uuid.UUID `bun:"id,pk,type:uuid"`
	CountryID  uuid.UUID `bun:"country_id,notnull,type:uuid"`
	LanguageID uuid.UUID `bun:"language_id,notnull,type:uuid"`
	Name       string    `bun:"name"`

	Country  *Country            `bun:"rel:belongs-to,join:country_id=id"`
	Language *languages.Language `bun:"rel:belongs-to,join:language_id=id"`
}

func (t *CountryTranslation) GetID() uuid.UUID           { return t.ID }
func (t *CountryTranslation) SetID(id uuid.UUID)         { t.ID = id }
func (t *CountryTranslation) GetLanguageID() uuid.UUID   { return t.LanguageID }
func (t *CountryTranslation) SetLanguageID(id uuid.UUID) { t.LanguageID = id }
func (t *CountryTranslation) SetOwnerID(id uuid.UUID)    { t.CountryID = id }

var (
	langEN = &languages.Language{ID: uuid.MustParse("00000000-0000-0000-0000-0000000000e1"), Code: "en", Name: "English"}
	langFR = &languages.Language{ID: uuid.MustParse("00000000-0000-0000-0000-0000000000f1"), Code: "fr", Name: "French"}
	langDE = &languages.Language{ID: uuid.MustParse("00000000-0000-0000-0000-0000000000d1"), Code: "de", Name: "German"}
	langEL = &languages.Language{ID: uuid.MustParse("00000000-0000-0000-0000-0000000000a1"), Code: "el", Name: "Greek"}
)

func allLanguages() []*languages.Language {
	return []*languages.Language{langEN, langFR, langDE, langEL}
}

type CountrySchema = translation.Schema[*Country, *CountryTranslation]
type CountryModel = translation.Model[*Country, *CountryTranslation]

func countrySchema() CountrySchema {
	return CountrySchema{
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
	}
}

func newMemoryRegistry(fallback string) *internallanguages.Registry {
	repo := internallanguages.NewMemoryLanguageRepository()
	for _, lang := range allLanguages() {
		repo.Put(lang)
	}
	return internallanguages.NewRegistry(repo, internallanguages.WithFallbackCode(fallback))
}

// existingCountry returns a persisted, clean entity with loaded rows.
func existingCountry(code string, names map[*languages.Language]string) *Country {
	country := &Country{ID: uuid.New(), Code: code, Translations: []*CountryTranslation{}}
	for _, lang := range allLanguages() {
		name, ok := names[lang]
		if !ok {
			continue
		}
		row := &CountryTranslation{ID: uuid.New(), CountryID: country.ID, LanguageID: lang.ID, Name: name}
		row.MarkPersisted()
		country.Translations = append(country.Translations, row)
	}
	country.MarkPersisted()
	return country
}

type recordingStore struct {
	mu               sync.Mutex
	entityWrites     int
	translationWrite []uuid.UUID
	loads            int
	failEntity       error
	failLanguages    map[uuid.UUID]error
	stored           map[uuid.UUID][]*CountryTranslation
}

func newRecordingStore() *recordingStore {
	return &recordingStore{
		failLanguages: map[uuid.UUID]error{},
		stored:        map[uuid.UUID][]*CountryTranslation{},
	}
}

func (s *recordingStore) SaveEntity(_ context.Context, entity *Country) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failEntity != nil {
		return s.failEntity
	}
	if entity.ID == uuid.Nil {
		entity.ID = uuid.New()
	}
	s.entityWrites++
	return nil
}

func (s *recordingStore) SaveTranslation(_ context.Context, row *CountryTranslation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failLanguages[row.LanguageID]; err != nil {
		return err
	}
	s.translationWrite = append(s.translationWrite, row.LanguageID)
	s.stored[row.CountryID] = append(s.stored[row.CountryID], row)
	return nil
}

func (s *recordingStore) LoadTranslations(_ context.Context, entity *Country) ([]*CountryTranslation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	return append([]*CountryTranslation(nil), s.stored[entity.ID]...), nil
}

func (s *recordingStore) translationWrites() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.translationWrite)
}

type eventLog struct {
	mu     sync.Mutex
	events []interfaces.LifecycleEvent
}

func (l *eventLog) hook(_ context.Context, evt interfaces.LifecycleEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, evt)
}

func (l *eventLog) names() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.events))
	for _, evt := range l.events {
		out = append(out, evt.Name)
	}
	return out
}

type memoryHarness struct {
	model  *CountryModel
	store  *recordingStore
	events *eventLog
}

func newMemoryHarness(t *testing.T, settings translation.Settings, defaultLocale string) *memoryHarness {
	t.Helper()

	store := newRecordingStore()
	log := &eventLog{}
	dispatcher := events.NewDispatcher(nil)
	dispatcher.On("", log.hook)

	model, err := translation.NewModelWithStore(countrySchema(), translation.Store[*Country, *CountryTranslation](store),
		translation.WithLanguageRegistry(newMemoryRegistry("de")),
		translation.WithLocaleResolver(locale.NewResolver("", defaultLocale)),
		translation.WithDispatcher(dispatcher),
		translation.WithSettings(settings),
	)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return &memoryHarness{model: model, store: store, events: log}
}

type sqlHarness struct {
	db       *bun.DB
	model    *CountryModel
	registry *internallanguages.Registry
}

func newSQLHarness(t *testing.T, settings translation.Settings, fallback string) *sqlHarness {
	t.Helper()
	ctx := context.Background()

	db := testsupport.NewBunDB(t)
	db.RegisterModel((*CountryTranslation)(nil))
	testsupport.CreateTables(t, db,
		(*languages.Language)(nil),
		(*Country)(nil),
		(*CountryTranslation)(nil),
	)

	repo := internallanguages.NewBunLanguageRepository(db)
	for _, lang := range allLanguages() {
		copied := *lang
		if _, err := repo.Create(ctx, &copied); err != nil {
			t.Fatalf("seed language %s: %v", lang.Code, err)
		}
	}
	registry := internallanguages.NewRegistry(repo, internallanguages.WithFallbackCode(fallback))

	model, err := translation.NewModel(countrySchema(),
		translation.WithDB(db),
		translation.WithLanguageRegistry(registry),
		translation.WithLocaleResolver(locale.NewResolver("", "en")),
		translation.WithSettings(settings),
	)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return &sqlHarness{db: db, model: model, registry: registry}
}

// seedCountry saves a country and one row per entry of names.
func (h *sqlHarness) seedCountry(t *testing.T, code string, names map[*languages.Language]string) *Country {
	t.Helper()
	ctx := context.Background()

	country := &Country{Code: code}
	for _, lang := range allLanguages() {
		name, ok := names[lang]
		if !ok {
			continue
		}
		if err := h.model.Set(ctx, country, "name:"+lang.Code, name); err != nil {
			t.Fatalf("set name:%s: %v", lang.Code, err)
		}
	}
	if err := h.model.Save(ctx, country); err != nil {
		t.Fatalf("save %s: %v", code, err)
	}
	return country
}

func withLocale(code string) context.Context {
	return locale.WithCode(context.Background(), code)
}

var errBoom = errors.New("boom")

func interfacesLocale(code string) interfaces.LocaleResolver {
	return interfaces.LocaleResolverFunc(func(context.Context) string {
		return code
	})
}
