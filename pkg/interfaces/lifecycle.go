package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// Lifecycle event names emitted around persistence of translatable entities.
const (
	LifecycleCreated = "created"
	LifecycleUpdated = "updated"
	LifecycleSaved   = "saved"
)

// LifecycleEvent describes a persistence milestone for a translatable entity.
type LifecycleEvent struct {
	Name         string
	Model        string
	Key          uuid.UUID
	Translations int
}

// LifecycleDispatcher delivers lifecycle events to interested hooks.
type LifecycleDispatcher interface {
	Fire(ctx context.Context, evt LifecycleEvent)
}
