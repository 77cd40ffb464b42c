package languages

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-translatable/internal/commands"
	internallanguages "github.com/goliatone/go-translatable/internal/languages"
	"github.com/goliatone/go-translatable/internal/locale"
	"github.com/goliatone/go-translatable/internal/logging"
	"github.com/goliatone/go-translatable/languages"
	"github.com/goliatone/go-translatable/pkg/interfaces"
)

// LanguageSeed is one reference row to ensure.
type LanguageSeed struct {
	Code string
	Name string
}

// SeedLanguagesCommand makes sure every listed language exists. Existing
// codes are left untouched.
type SeedLanguagesCommand struct {
	Languages []LanguageSeed
}

func (SeedLanguagesCommand) Type() string { return "translatable.languages.seed" }

func (c SeedLanguagesCommand) Validate() error {
	errs := validation.Errors{}
	if len(c.Languages) == 0 {
		errs["languages"] = validation.NewError("validation_required", "at least one language is required")
		return errs
	}
	seen := make(map[string]struct{}, len(c.Languages))
	for i, seed := range c.Languages {
		field := fmt.Sprintf("languages[%d].code", i)
		code := locale.Normalize(seed.Code)
		switch {
		case code == "":
			errs[field] = validation.NewError("validation_required", "code is required")
		case !locale.Valid(code):
			errs[field] = validation.NewError("validation_locale_invalid", "code is not a valid BCP 47 tag")
		default:
			if _, dup := seen[code]; dup {
				errs[field] = validation.NewError("validation_locale_duplicate", "code is listed more than once")
			}
			seen[code] = struct{}{}
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NewSeedLanguagesHandler builds the command handler writing through repo.
func NewSeedLanguagesHandler(repo internallanguages.Repository, logger interfaces.Logger, opts ...commands.Option[SeedLanguagesCommand]) *commands.Handler[SeedLanguagesCommand] {
	if logger == nil {
		logger = logging.NoOp()
	}
	seed := func(ctx context.Context, cmd SeedLanguagesCommand) error {
		for _, entry := range cmd.Languages {
			code := locale.Normalize(entry.Code)
			existing, err := repo.GetByCode(ctx, code)
			if err == nil && existing != nil {
				logger.Debug("languages.seed.exists", "code", code)
				continue
			}
			if err != nil && !errors.Is(err, languages.ErrUnknownLanguage) {
				return fmt.Errorf("seed language %s: %w", code, err)
			}
			if _, err := repo.Create(ctx, &languages.Language{Code: code, Name: entry.Name}); err != nil {
				return fmt.Errorf("seed language %s: %w", code, err)
			}
			logger.Info("languages.seed.created", "code", code)
		}
		return nil
	}
	opts = append([]commands.Option[SeedLanguagesCommand]{commands.WithLogger[SeedLanguagesCommand](logger)}, opts...)
	return commands.NewHandler[SeedLanguagesCommand](seed, opts...)
}
