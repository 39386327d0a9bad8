package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan DomainEvent) DomainEvent {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestPublishDeliversToSubscribersOfType(t *testing.T) {
	b := New(nil)
	defer b.Close()

	got := make(chan DomainEvent, 4)
	b.Subscribe(EventSectionLoadRequested, func(e DomainEvent) { got <- e })
	b.Subscribe(EventSectionLoaded, func(e DomainEvent) {
		t.Errorf("unexpected delivery of %s", e.Type())
	})

	b.Publish(SectionLoadRequestedEvent{RequestID: "r1", Name: "Tutorial 1"})

	e := receive(t, got)
	req, ok := e.(SectionLoadRequestedEvent)
	require.True(t, ok)
	assert.Equal(t, "Tutorial 1", req.Name)
	assert.Equal(t, "r1", req.RequestID)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New(nil)
	defer b.Close()

	var mu sync.Mutex
	calls := 0
	unsubscribe := b.Subscribe(EventError, func(DomainEvent) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	done := make(chan DomainEvent, 1)
	b.Subscribe(EventError, func(e DomainEvent) { done <- e })

	unsubscribe()
	b.Publish(ErrorEvent{Message: "boom"})
	receive(t, done)

	// give a stray handler goroutine a chance to run
	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, calls)
}

func TestHandlerPanicDoesNotStopDispatch(t *testing.T) {
	b := New(nil)
	defer b.Close()

	got := make(chan DomainEvent, 2)
	b.Subscribe(EventSectionLoadFailed, func(DomainEvent) { panic("handler failure") })
	b.Subscribe(EventSectionLoadFailed, func(e DomainEvent) { got <- e })

	b.Publish(SectionLoadFailedEvent{Name: "a"})
	b.Publish(SectionLoadFailedEvent{Name: "b"})

	names := map[string]bool{}
	for i := 0; i < 2; i++ {
		names[receive(t, got).(SectionLoadFailedEvent).Name] = true
	}
	assert.Equal(t, map[string]bool{"a": true, "b": true}, names)
}

func TestHandlerPanicPublishesErrorEvent(t *testing.T) {
	b := New(nil)
	defer b.Close()

	errs := make(chan DomainEvent, 4)
	b.Subscribe(EventError, func(e DomainEvent) { errs <- e })
	b.Subscribe(EventSectionLoaded, func(DomainEvent) { panic("render failure") })

	b.Publish(SectionLoadedEvent{Name: "Tutorial 1"})

	ev := receive(t, errs).(ErrorEvent)
	assert.Equal(t, "SectionLoaded handler failed", ev.Message)
	require.Error(t, ev.Err)
	assert.Contains(t, ev.Err.Error(), "render failure")
}

func TestPanicInErrorHandlerIsNotRepublished(t *testing.T) {
	b := New(nil)
	defer b.Close()

	var mu sync.Mutex
	calls := 0
	b.Subscribe(EventError, func(DomainEvent) {
		mu.Lock()
		calls++
		mu.Unlock()
		panic("error handler failure")
	})

	b.Publish(ErrorEvent{Message: "boom"})

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New(nil)
	called := make(chan struct{}, 1)
	b.Subscribe(EventConfigSaved, func(DomainEvent) { called <- struct{}{} })

	b.Close()
	b.Close() // idempotent
	b.Publish(ConfigSavedEvent{Path: "x"})

	select {
	case <-called:
		t.Fatal("handler ran after Close")
	case <-time.After(20 * time.Millisecond):
	}
}
