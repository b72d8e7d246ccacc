package push

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Dispatcher envia notificações em segundo plano. Falhas são logadas e
// nunca repetidas; fila cheia descarta a mensagem.
type Dispatcher struct {
	sender  Sender
	log     *slog.Logger
	timeout time.Duration
	queue   chan Message
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sender Sender, log *slog.Logger, timeout time.Duration) *Dispatcher {
	d := &Dispatcher{
		sender:  sender,
		log:     log,
		timeout: timeout,
		queue:   make(chan Message, 100),
		done:    make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		if err := d.sender.Send(ctx, msg); err != nil {
			d.log.Warn("push notification failed", slog.String("title", msg.Title), slog.Any("err", err))
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(msg Message) {
	if msg.To == "" {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn("push dispatcher closed, dropping notification", slog.String("title", msg.Title))
		return
	}

	select {
	case d.queue <- msg:
	default:
		d.log.Warn("push queue full, dropping notification", slog.String("title", msg.Title))
	}
}

// Close drena a fila; envios posteriores são descartados.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}
