package interfaces

import "context"

// LocaleResolver reports the locale code that applies to the current operation
// when callers do not pass a language explicitly.
type LocaleResolver interface {
	ActiveLocale(ctx context.Context) string
}

// LocaleResolverFunc adapts a plain function to LocaleResolver.
type LocaleResolverFunc func(ctx context.Context) string

// ActiveLocale satisfies LocaleResolver.
func (f LocaleResolverFunc) ActiveLocale(ctx context.Context) string {
	if f == nil {
		return ""
	}
	return f(ctx)
}
