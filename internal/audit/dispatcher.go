package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Event struct {
	Actor    string
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Sink grava um evento de auditoria.
type Sink interface {
	Log(ctx context.Context, ev Event) error
}

// Dispatcher grava a auditoria fora do caminho da requisição.
// Um Dispatcher nil é válido e descarta tudo.
type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(sink Sink, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}

	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.sink.Log(ctx, ev); err != nil {
			d.log.Error("audit write failed",
				zap.String("action", ev.Action),
				zap.String("entity", ev.Entity),
				zap.Error(err),
			)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close para de aceitar eventos e espera a fila esvaziar.
func (d *Dispatcher) Close(ctx context.Context) error {
	if d == nil {
		return nil
	}

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
