package audit

import (
	"context"
	"log/slog"
	"sync"
)

type Event struct {
	ProfileID *string
	Action    string
	Entity    string
	EntityID  *string
	Metadata  any
}

// Sink grava um evento; *Logger é a implementação com banco.
type Sink interface {
	Log(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	sink  Sink
	log   *slog.Logger
	queue chan Event
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sink Sink, log *slog.Logger) *Dispatcher {
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
		if err := d.sink.Log(context.Background(), ev); err != nil {
			d.log.Warn("audit write failed", slog.String("action", ev.Action), slog.Any("err", err))
		}
	}
}

// Dispatch nunca bloqueia: fila cheia descarta o evento.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn("audit dispatcher closed, dropping event", slog.String("action", ev.Action))
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", slog.String("action", ev.Action))
	}
}

// Close drena a fila e espera o worker terminar. Eventos despachados
// depois disso são descartados.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}

// Ptr ajuda a montar os campos opcionais do evento.
func Ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
