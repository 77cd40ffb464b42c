package locale

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

type contextKeyType struct{}

var tagKey = contextKeyType{}

// WithTag stores t in ctx. Passing the zero value of language.Tag clears any
// previously stored locale for downstream lookups.
func WithTag(ctx context.Context, t language.Tag) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, tagKey, t)
}

// WithCode parses code as a BCP 47 tag and stores it in ctx. Unparseable codes
// leave ctx untouched.
func WithCode(ctx context.Context, code string) context.Context {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		if ctx == nil {
			return context.Background()
		}
		return ctx
	}
	return WithTag(ctx, tag)
}

// TagFrom returns the tag stored in ctx and whether one was present.
func TagFrom(ctx context.Context) (language.Tag, bool) {
	if ctx == nil {
		return language.Tag{}, false
	}
	t, _ := ctx.Value(tagKey).(language.Tag)
	if t == (language.Tag{}) {
		return language.Tag{}, false
	}
	return t, true
}

// CodeFrom returns the canonical locale code stored in ctx, or "" when absent.
func CodeFrom(ctx context.Context) string {
	t, ok := TagFrom(ctx)
	if !ok {
		return ""
	}
	return t.String()
}

// Normalize canonicalises a locale code ("EN_us" becomes "en-US"). Codes that
// do not parse are returned trimmed and lower-cased.
func Normalize(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(trimmed, "_", "-"))
	if err != nil {
		return strings.ToLower(trimmed)
	}
	return tag.String()
}

// Valid reports whether code is a well-formed BCP 47 tag.
func Valid(code string) bool {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return false
	}
	_, err := language.Parse(trimmed)
	return err == nil
}
