// Package warehouse orquestador del libro de inventario: registra lotes de forma atómica
// sobre el almacén central y las reservas de los brigadieres, y expone sus consultas.
package warehouse

import (
	"context"
	"time"

	"github.com/jhoicas/navbahor-erp/internal/application/numbering"
	"github.com/jhoicas/navbahor-erp/internal/application/ports"
	"github.com/rs/zerolog"
)

const defaultCacheTTL = 2 * time.Minute

// Service caso de uso del almacén.
type Service struct {
	tx        TxRunner
	read      Readers
	numbering *numbering.Service
	cache     ports.ViewCache
	cacheTTL  time.Duration
	events    EventDispatcher
	cfg       Config
	log       zerolog.Logger
	now       func() time.Time
}

// Deps dependencias del servicio; Cache y Events son opcionales.
type Deps struct {
	TxRunner  TxRunner
	Readers   Readers
	Numbering *numbering.Service
	Cache     ports.ViewCache
	CacheTTL  time.Duration // por defecto 2 minutos
	Events    EventDispatcher
	Config    Config
	Log       zerolog.Logger
	Now       func() time.Time
}

// NewService construye el servicio.
func NewService(d Deps) *Service {
	s := &Service{
		tx:        d.TxRunner,
		read:      d.Readers,
		numbering: d.Numbering,
		cache:     d.Cache,
		cacheTTL:  d.CacheTTL,
		events:    d.Events,
		cfg:       d.Config.withDefaults(),
		log:       d.Log,
		now:       d.Now,
	}
	if s.numbering == nil {
		s.numbering = numbering.NewService()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.cacheTTL <= 0 {
		s.cacheTTL = defaultCacheTTL
	}
	return s
}

// invalidate borra las vistas dependientes. Un fallo de caché no afecta al lote ya confirmado.
func (s *Service) invalidate(keys ...string) {
	if s.cache == nil || len(keys) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn().Err(err).Strs("keys", keys).Msg("invalidar caché de vistas")
	}
}

func (s *Service) dispatch(ev ports.AdminEvent) {
	if s.events != nil {
		s.events.Dispatch(ev)
	}
}

// cached lee key de la caché o la calcula con load y la guarda.
func cached[T any](ctx context.Context, s *Service, key string, load func() (T, error)) (T, error) {
	var out T
	if s.cache != nil {
		hit, err := s.cache.Get(ctx, key, &out)
		if err != nil {
			s.log.Debug().Err(err).Str("key", key).Msg("leer caché")
		} else if hit {
			return out, nil
		}
	}
	out, err := load()
	if err != nil {
		return out, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, out, s.cacheTTL); err != nil {
			s.log.Debug().Err(err).Str("key", key).Msg("guardar caché")
		}
	}
	return out, nil
}
