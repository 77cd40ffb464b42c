package locale

import (
	"context"
	"strings"

	"github.com/goliatone/go-translatable/pkg/interfaces"
)

// Resolver picks the active locale: a configured override wins, then the
// locale carried by the context, then the configured default.
type Resolver struct {
	override      string
	defaultLocale string
}

var _ interfaces.LocaleResolver = (*Resolver)(nil)

// NewResolver constructs a resolver. Either argument may be empty.
func NewResolver(override, defaultLocale string) *Resolver {
	return &Resolver{
		override:      strings.TrimSpace(override),
		defaultLocale: strings.TrimSpace(defaultLocale),
	}
}

// ActiveLocale satisfies interfaces.LocaleResolver.
func (r *Resolver) ActiveLocale(ctx context.Context) string {
	if r != nil && r.override != "" {
		return r.override
	}
	if code := CodeFrom(ctx); code != "" {
		return code
	}
	if r == nil {
		return ""
	}
	return r.defaultLocale
}
