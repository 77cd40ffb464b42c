package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-translatable/pkg/interfaces"
)

const (
	rootModule        = "translatable"
	translationModule = "translatable.translation"
	languagesModule   = "translatable.languages"
)

const (
	fieldModel    = "model"
	fieldLanguage = "language"
	fieldEntityID = "entity_id"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// TranslationLogger returns the logger namespace reserved for translation models.
func TranslationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, translationModule)
}

// LanguagesLogger returns the logger namespace reserved for the language registry.
func LanguagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, languagesModule)
}

// WithModelContext enriches the logger with the translatable model name and,
// when known, the entity key and language code. Empty values are ignored.
func WithModelContext(logger interfaces.Logger, model, entityID, language string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(model); trimmed != "" {
		fields[fieldModel] = trimmed
	}
	if trimmed := strings.TrimSpace(entityID); trimmed != "" {
		fields[fieldEntityID] = trimmed
	}
	if trimmed := strings.TrimSpace(language); trimmed != "" {
		fields[fieldLanguage] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
