package translation

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-translatable/languages"
)

var (
	ErrSchemaInvalid       = errors.New("translation: schema invalid")
	ErrStoreRequired       = errors.New("translation: store or database required")
	ErrDatabaseRequired    = errors.New("translation: database required for query scopes")
	ErrRegistryRequired    = errors.New("translation: language registry required")
	ErrTranslationSetNil   = errors.New("translation: entity returned a nil translation set")
	ErrUnknownAttribute    = errors.New("translation: unknown attribute")
	ErrNotTranslatable     = errors.New("translation: attribute is not translatable")
	ErrAttributeType       = errors.New("translation: attribute value has the wrong type")
	ErrMassAssignment      = errors.New("translation: mass assignment rejected")
	ErrEntityNotSaved      = errors.New("translation: entity not saved")
	ErrTranslationNotSaved = errors.New("translation: translation not saved")
)

// UnknownLanguageError reports an explicit locale that resolved to no language.
type UnknownLanguageError struct {
	Code string
}

func (e *UnknownLanguageError) Error() string {
	return fmt.Sprintf("translation: unknown language %q", e.Code)
}

func (e *UnknownLanguageError) Unwrap() error {
	return languages.ErrUnknownLanguage
}

// UnknownAttributeError reports a key that is neither native nor translatable.
type UnknownAttributeError struct {
	Attribute string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("translation: unknown attribute %q", e.Attribute)
}

func (e *UnknownAttributeError) Unwrap() error {
	return ErrUnknownAttribute
}

// NotTranslatableError reports a query on a column that has no translations.
type NotTranslatableError struct {
	Attribute string
}

func (e *NotTranslatableError) Error() string {
	return fmt.Sprintf("translation: attribute %q is not translatable", e.Attribute)
}

func (e *NotTranslatableError) Unwrap() error {
	return ErrNotTranslatable
}

type AttributeTypeError struct {
	Attribute string
	Expected  string
	Got       string
}

func (e *AttributeTypeError) Error() string {
	return fmt.Sprintf("translation: attribute %q expects %s, got %s", e.Attribute, e.Expected, e.Got)
}

func (e *AttributeTypeError) Unwrap() error {
	return ErrAttributeType
}

// MassAssignmentError is raised when a totally guarded model receives a
// non-fillable attribute.
type MassAssignmentError struct {
	Model     string
	Attribute string
}

func (e *MassAssignmentError) Error() string {
	return fmt.Sprintf("translation: %s: attribute %q is not mass assignable", e.Model, e.Attribute)
}

func (e *MassAssignmentError) Unwrap() error {
	return ErrMassAssignment
}
