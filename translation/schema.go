package translation

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-translatable/languages"
)

// Record is the persistence surface shared by base entities and translation rows.
type Record interface {
	GetID() uuid.UUID
	SetID(uuid.UUID)
	Exists() bool
	IsDirty() bool
	DirtyColumns() []string
	MarkDirty(columns ...string)
	MarkPersisted()
}

// Translation is one row holding the translated columns of an entity for a
// single language.
type Translation interface {
	Record
	GetLanguageID() uuid.UUID
	SetLanguageID(uuid.UUID)
	SetOwnerID(uuid.UUID)
}

// Entity is a base model owning an ordered translation collection.
// TranslationSet must return a stable pointer; a nil slice behind it means
// the collection has not been loaded yet.
type Entity[T Translation] interface {
	Record
	TranslationSet() *[]T
}

// FallbackPolicy lets a single entity override the configured fallback toggle.
type FallbackPolicy interface {
	UseTranslationFallback() *bool
}

// LanguageCarrier exposes languages eagerly loaded with the entity.
type LanguageCarrier interface {
	LoadedLanguages() ([]*languages.Language, bool)
}

// Schema declares how a base type maps onto its translation table.
type Schema[B Entity[T], T Translation] struct {
	// Name is the singular snake case model name, e.g. "country".
	Name  string
	Table string
	// KeyColumn defaults to "id".
	KeyColumn          string
	ForeignKey         string
	LanguageForeignKey string
	TranslationTable   string

	TranslationsRelation string
	LanguagesRelation    string

	NewEntity      func() B
	NewTranslation func() T

	Attributes []Attribute[T]
	Native     []Attribute[B]

	Fillable []string
	Guarded  []string
	Hidden   []string
}

// Validate checks the declaration before a Model is built.
func (s Schema[B, T]) Validate() error {
	err := validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.Table, validation.Required),
		validation.Field(&s.Attributes, validation.Required),
	)
	errs, _ := err.(validation.Errors)
	if err != nil && errs == nil {
		return fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	if errs == nil {
		errs = validation.Errors{}
	}
	if s.NewTranslation == nil {
		errs["NewTranslation"] = validation.NewError("validation_required", "cannot be blank")
	}
	for _, attr := range s.Attributes {
		if attr.name == "" {
			errs["Attributes"] = validation.NewError("validation_attribute_name", "attribute names cannot be blank")
			break
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrSchemaInvalid, errs)
}

// TranslatedAttributes lists the translatable columns in declaration order.
func (s Schema[B, T]) TranslatedAttributes() []string {
	out := make([]string, 0, len(s.Attributes))
	for _, attr := range s.Attributes {
		out = append(out, attr.name)
	}
	return out
}

func (s Schema[B, T]) isFillable(key string) bool {
	if slices.Contains(s.Fillable, key) {
		return true
	}
	if slices.Contains(s.Guarded, key) || slices.Contains(s.Guarded, "*") {
		return false
	}
	return len(s.Fillable) == 0
}

func (s Schema[B, T]) totallyGuarded() bool {
	return len(s.Fillable) == 0 && len(s.Guarded) == 1 && s.Guarded[0] == "*"
}

func (s Schema[B, T]) isHidden(key string) bool {
	return slices.Contains(s.Hidden, key)
}

// naming holds the resolved table and column names for one schema.
type naming struct {
	model           string
	table           string
	key             string
	owner           string
	language        string
	translations    string
	translationsRel string
	languagesRel    string
}

func resolveNaming[B Entity[T], T Translation](s Schema[B, T], settings Settings) naming {
	n := naming{
		model:           s.Name,
		table:           s.Table,
		key:             firstNonEmpty(s.KeyColumn, "id"),
		translationsRel: firstNonEmpty(s.TranslationsRelation, "Translations"),
		languagesRel:    firstNonEmpty(s.LanguagesRelation, "Languages"),
	}
	switch {
	case s.ForeignKey != "":
		n.owner = s.ForeignKey
	case n.key != "id":
		n.owner = n.key
	default:
		n.owner = s.Name + "_id"
	}
	n.language = firstNonEmpty(s.LanguageForeignKey, settings.LanguageForeignKey, DefaultLanguageForeignKey)
	if s.TranslationTable != "" {
		n.translations = s.TranslationTable
	} else {
		suffix := firstNonEmpty(settings.TranslationSuffix, DefaultTranslationSuffix)
		n.translations = s.Name + "_" + snake(suffix) + "s"
	}
	return n
}

func snake(value string) string {
	var b strings.Builder
	runes := []rune(strings.TrimSpace(value))
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
