package events

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-translatable/pkg/interfaces"
	"github.com/google/uuid"
)

func TestDispatcherRunsNamedAndCatchAllHooks(t *testing.T) {
	d := NewDispatcher(nil)
	var named, all []string

	d.On(interfaces.LifecycleSaved, func(_ context.Context, evt interfaces.LifecycleEvent) {
		named = append(named, evt.Name)
	})
	d.On("", func(_ context.Context, evt interfaces.LifecycleEvent) {
		all = append(all, evt.Name)
	})

	ctx := context.Background()
	d.Fire(ctx, interfaces.LifecycleEvent{Name: interfaces.LifecycleSaved, Model: "country"})
	d.Fire(ctx, interfaces.LifecycleEvent{Name: interfaces.LifecycleUpdated, Model: "country"})

	if len(named) != 1 || named[0] != interfaces.LifecycleSaved {
		t.Fatalf("expected one saved hook call, got %v", named)
	}
	if len(all) != 2 {
		t.Fatalf("expected catch-all hook to see both events, got %v", all)
	}
}

func TestDispatcherSubscribe(t *testing.T) {
	d := NewDispatcher(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := d.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	key := uuid.New()
	d.Fire(context.Background(), interfaces.LifecycleEvent{Name: interfaces.LifecycleUpdated, Model: "country", Key: key})

	select {
	case evt := <-ch:
		if evt.Name != interfaces.LifecycleUpdated || evt.Key != key {
			t.Fatalf("unexpected event %+v", evt)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}

	cancel()
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected channel to close after cancellation")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestDispatcherSubscribeWithCancelledContext(t *testing.T) {
	d := NewDispatcher(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch, err := d.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel")
	}
}

func TestNilDispatcherIsSafe(t *testing.T) {
	var d *Dispatcher
	d.On(interfaces.LifecycleSaved, func(context.Context, interfaces.LifecycleEvent) {})
	d.Fire(context.Background(), interfaces.LifecycleEvent{Name: interfaces.LifecycleSaved})
}
