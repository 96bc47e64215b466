// Package notify entrega avisos sin bloquear ni afectar la operación que los origina.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/navbahor-erp/internal/application/ports"
	"github.com/rs/zerolog"
)

const defaultTimeout = 5 * time.Second

// Dispatcher reparte cada aviso a todos los sumideros en segundo plano.
// Los errores solo se registran en el log.
type Dispatcher struct {
	sinks   []ports.AdminNotifier
	log     zerolog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher construye el dispatcher; sinks nil se ignoran.
func NewDispatcher(log zerolog.Logger, sinks ...ports.AdminNotifier) *Dispatcher {
	d := &Dispatcher{log: log, timeout: defaultTimeout}
	for _, s := range sinks {
		if s != nil {
			d.sinks = append(d.sinks, s)
		}
	}
	return d
}

// Dispatch no bloquea: cada sumidero recibe el aviso en su propia goroutine con timeout propio,
// desacoplado del contexto de la petición.
func (d *Dispatcher) Dispatch(ev ports.AdminEvent) {
	for _, sink := range d.sinks {
		d.wg.Add(1)
		go func(s ports.AdminNotifier) {
			defer d.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					d.log.Error().Interface("panic", r).Str("batch_id", ev.BatchID).Msg("notificación: pánico en sumidero")
				}
			}()
			ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
			defer cancel()
			if err := s.NotifyAdmins(ctx, ev); err != nil {
				d.log.Warn().Err(err).Str("batch_id", ev.BatchID).Msg("notificación no entregada")
			}
		}(sink)
	}
}

// Wait espera los envíos en curso (apagado ordenado y tests).
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
