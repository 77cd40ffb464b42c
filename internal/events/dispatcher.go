package events

import (
	"context"
	"strings"
	"sync"

	"github.com/goliatone/go-translatable/internal/logging"
	"github.com/goliatone/go-translatable/pkg/interfaces"
)

// Hook reacts to a lifecycle event synchronously.
type Hook func(ctx context.Context, evt interfaces.LifecycleEvent)

// Dispatcher fans lifecycle events out to named hooks and channel subscribers.
type Dispatcher struct {
	mu       sync.Mutex
	hooks    map[string][]Hook
	watchers map[uint64]chan interfaces.LifecycleEvent
	nextID   uint64
	logger   interfaces.Logger
}

var _ interfaces.LifecycleDispatcher = (*Dispatcher)(nil)

// NewDispatcher constructs an empty dispatcher. A nil logger disables logging.
func NewDispatcher(logger interfaces.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Dispatcher{
		hooks:    make(map[string][]Hook),
		watchers: make(map[uint64]chan interfaces.LifecycleEvent),
		logger:   logger,
	}
}

// On registers hook for events named name. An empty name matches every event.
func (d *Dispatcher) On(name string, hook Hook) {
	if d == nil || hook == nil {
		return
	}
	name = strings.TrimSpace(name)

	d.mu.Lock()
	d.hooks[name] = append(d.hooks[name], hook)
	d.mu.Unlock()
}

// Subscribe delivers events until the context is cancelled. Slow subscribers
// drop events rather than blocking Fire.
func (d *Dispatcher) Subscribe(ctx context.Context) (<-chan interfaces.LifecycleEvent, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		ch := make(chan interfaces.LifecycleEvent)
		close(ch)
		return ch, nil
	}
	ch := make(chan interfaces.LifecycleEvent, 8)

	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.watchers[id] = ch
	d.mu.Unlock()

	go func() {
		<-ctx.Done()
		d.mu.Lock()
		delete(d.watchers, id)
		close(ch)
		d.mu.Unlock()
	}()

	return ch, nil
}

// Fire runs the hooks registered for evt.Name, then the catch-all hooks, then
// notifies subscribers.
func (d *Dispatcher) Fire(ctx context.Context, evt interfaces.LifecycleEvent) {
	if d == nil {
		return
	}

	d.mu.Lock()
	hooks := make([]Hook, 0, len(d.hooks[evt.Name])+len(d.hooks[""]))
	hooks = append(hooks, d.hooks[evt.Name]...)
	if evt.Name != "" {
		hooks = append(hooks, d.hooks[""]...)
	}
	d.mu.Unlock()

	d.logger.Debug("events.fire", "event", evt.Name, "model", evt.Model, "key", evt.Key.String())

	for _, hook := range hooks {
		hook(ctx, evt)
	}

	// Sends happen under the lock so a cancelled subscriber cannot close its
	// channel mid-send.
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, ch := range d.watchers {
		select {
		case ch <- evt:
		default:
			d.logger.Warn("events.subscriber.dropped", "event", evt.Name, "model", evt.Model)
		}
	}
}
