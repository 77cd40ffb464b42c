package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type pingMessage struct {
	Target string
}

func (pingMessage) Type() string { return "translatable.test.ping" }

func (m pingMessage) Validate() error {
	if m.Target == "" {
		return errors.New("target required")
	}
	return nil
}

func TestHandlerRunsValidMessages(t *testing.T) {
	var got string
	h := NewHandler[pingMessage](func(_ context.Context, msg pingMessage) error {
		got = msg.Target
		return nil
	})

	if err := h.Execute(context.Background(), pingMessage{Target: "languages"}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got != "languages" {
		t.Fatalf("expected command to receive the message, got %q", got)
	}
}

func TestHandlerRejectsInvalidMessages(t *testing.T) {
	called := false
	h := NewHandler[pingMessage](func(context.Context, pingMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), pingMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected invalid messages to skip execution")
	}
}

func TestHandlerCategorisesFailures(t *testing.T) {
	boom := errors.New("boom")
	h := NewHandler[pingMessage](func(context.Context, pingMessage) error {
		return boom
	})

	err := h.Execute(context.Background(), pingMessage{Target: "x"})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestHandlerStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[pingMessage](func(context.Context, pingMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(ctx, pingMessage{Target: "x"}); !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected canceled context to skip execution")
	}
}

func TestHandlerTimeout(t *testing.T) {
	h := NewHandler[pingMessage](func(ctx context.Context, _ pingMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	}, WithTimeout[pingMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), pingMessage{Target: "x"})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}
