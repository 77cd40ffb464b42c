package languages

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownLanguage = errors.New("languages: unknown language")
	ErrCodeRequired    = errors.New("languages: code is required")
)

// NotFoundError describes unknown language-code lookups and unwraps to ErrUnknownLanguage.
type NotFoundError struct {
	Code string
}

func (e *NotFoundError) Error() string {
	code := strings.TrimSpace(e.Code)
	if code == "" {
		return ErrUnknownLanguage.Error()
	}
	return fmt.Sprintf("%s: code=%s", ErrUnknownLanguage.Error(), code)
}

func (e *NotFoundError) Unwrap() error {
	return ErrUnknownLanguage
}
