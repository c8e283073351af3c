package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	err    error
	block  chan struct{}
}

func (s *memorySink) Log(_ context.Context, ev Event) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func (s *memorySink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestDispatcher_DeliversAndDrainsOnClose(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, nil)

	for i := 0; i < 5; i++ {
		d.Dispatch(Event{Action: "appointment_created", Entity: "appointment"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if sink.len() != 5 {
		t.Fatalf("expected 5 events, got %d", sink.len())
	}

	// depois de fechado, Dispatch é ignorado
	d.Dispatch(Event{Action: "late"})
	if err := d.Close(ctx); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestDispatcher_SinkErrorDoesNotStopWorker(t *testing.T) {
	sink := &memorySink{err: errors.New("db down")}
	d := NewDispatcher(sink, nil)

	d.Dispatch(Event{Action: "a"})
	d.Dispatch(Event{Action: "b"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if sink.len() != 2 {
		t.Fatalf("expected 2 attempts, got %d", sink.len())
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	sink := &memorySink{block: make(chan struct{})}
	d := NewDispatcher(sink, nil)

	// worker preso no primeiro evento; a fila comporta 100
	for i := 0; i < 150; i++ {
		d.Dispatch(Event{Action: "x"})
	}
	close(sink.block)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if n := sink.len(); n > 101 || n < 100 {
		t.Fatalf("expected about 101 delivered events, got %d", n)
	}
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: "x"})
	if err := d.Close(context.Background()); err != nil {
		t.Fatal(err)
	}
}
