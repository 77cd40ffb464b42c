package commands

import (
	"context"
	"strings"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-translatable/internal/logging"
	"github.com/goliatone/go-translatable/pkg/interfaces"
)

// DefaultTimeout bounds a single command execution.
const DefaultTimeout = 15 * time.Second

const loggerRoot = "translatable.commands"

// Option configures a Handler.
type Option[T command.Message] func(*Handler[T])

// Handler runs a command function behind validation, a timeout, structured
// logging and go-errors categorisation. It satisfies command.Commander[T].
type Handler[T command.Message] struct {
	run     command.CommandFunc[T]
	logger  interfaces.Logger
	timeout time.Duration
}

// NewHandler wraps fn. It panics when fn is nil.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...Option[T]) *Handler[T] {
	if fn == nil {
		panic("commands: nil command function")
	}
	h := &Handler[T]{
		run:     fn,
		logger:  logging.NoOp(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// WithTimeout overrides DefaultTimeout. Zero or negative disables the timeout.
func WithTimeout[T command.Message](timeout time.Duration) Option[T] {
	return func(h *Handler[T]) {
		h.timeout = max(timeout, 0)
	}
}

// WithLogger sets the execution logger.
func WithLogger[T command.Message](logger interfaces.Logger) Option[T] {
	return func(h *Handler[T]) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// Execute validates msg and runs the command function.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if err := command.ValidateMessage(msg); err != nil {
		return validationFailed(err)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return contextFailed(err)
	}

	ctx = logging.ContextWithFields(ctx, map[string]any{
		"command": command.GetMessageType(msg),
	})
	logger := h.logger.WithContext(ctx)
	started := time.Now()
	logger.Debug("command.start")

	if err := h.run(ctx, msg); err != nil {
		logger.Error("command.failed", "error", err, "duration", time.Since(started).String())
		return executionFailed(err)
	}
	if err := ctx.Err(); err != nil {
		logger.Error("command.context_error", "error", err)
		return contextFailed(err)
	}
	logger.Info("command.done", "duration", time.Since(started).String())
	return nil
}

// Logger returns the logger for the named command module.
func Logger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = "core"
	}
	return logging.WithFields(logging.ModuleLogger(provider, loggerRoot+"."+module), map[string]any{
		"component": "command",
	})
}
