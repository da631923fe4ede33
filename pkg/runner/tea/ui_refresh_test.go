package teaui

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/paddock/pkg/store"
)

func TestRefreshPicksUpExternalChanges(t *testing.T) {
	m, fp := newTestModel(t, newRecord(1, "Monaco GP", "2026-05-24"))
	m = loadInto(t, m)
	if got := len(m.recList.Items()); got != 1 {
		t.Fatalf("expected 1 entry, got %d", got)
	}

	// Another process rewrites the collection.
	fp.mu.Lock()
	fp.records = append(fp.records, newRecord(2, "Quali notes", "2026-05-24"))
	fp.mu.Unlock()

	m = loadInto(t, m)
	if got := len(m.recList.Items()); got != 2 {
		t.Fatalf("expected reload to pick up external change, got %d entries", got)
	}
}

func TestNextEventWithoutWatcher(t *testing.T) {
	m, _ := newTestModel(t)
	if cmd := m.nextEvent(); cmd != nil {
		t.Fatalf("expected nil command without a watch channel")
	}
}

func TestNextEventDeliversStoreChange(t *testing.T) {
	m, _ := newTestModel(t)
	ch := make(chan store.Event, 1)
	m.events = ch

	cmd := m.nextEvent()
	if cmd == nil {
		t.Fatalf("expected watch command")
	}

	ch <- store.Event{}
	done := make(chan struct{})
	var msg interface{}
	go func() {
		msg = cmd()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("watch command did not return")
	}
	if _, ok := msg.(storeChangedMsg); !ok {
		t.Fatalf("expected storeChangedMsg, got %T", msg)
	}
}

func TestNextEventClosedChannel(t *testing.T) {
	m, _ := newTestModel(t)
	ctx, cancel := context.WithCancel(context.Background())
	fp := &fakePersistence{}
	ch, err := fp.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	m.events = ch
	cancel()

	cmd := m.nextEvent()
	if cmd == nil {
		t.Fatalf("expected watch command")
	}
	if msg := cmd(); msg != nil {
		t.Fatalf("expected nil message on closed channel, got %T", msg)
	}
}
