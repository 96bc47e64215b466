// Package monitoring tablero general del clúster: niveles del almacén,
// avance de las etapas de campo y últimos movimientos.
package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/navbahor-erp/internal/application/dto"
	"github.com/jhoicas/navbahor-erp/internal/application/ports"
	"github.com/jhoicas/navbahor-erp/internal/domain/access"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	recentTransactions = 5 // filas del widget de últimos movimientos
	cacheTTL           = time.Minute
)

var hundred = decimal.NewFromInt(100)

// DashboardUseCase arma el tablero de monitoreo.
//
// Fuentes: productos y libro (stock, entradas históricas, últimos asientos)
// y contornos/actividades (superficie completada por etapa).
type DashboardUseCase struct {
	products     repository.ProductRepository
	transactions repository.TransactionRepository
	monitoring   repository.MonitoringRepository
	cache        ports.ViewCache
	log          zerolog.Logger
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(
	products repository.ProductRepository,
	transactions repository.TransactionRepository,
	monitoring repository.MonitoringRepository,
	cache ports.ViewCache,
	log zerolog.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{products: products, transactions: transactions, monitoring: monitoring, cache: cache, log: log}
}

// GetSummary construye el tablero. Cinco consultas en paralelo:
//  1. productos            → stock actual y umbral
//  2. entradas históricas  → pico de cada producto
//  3. superficie total     → denominador del avance
//  4. avance por etapa     → superficie COMPLETED
//  5. últimos asientos
func (uc *DashboardUseCase) GetSummary(ctx context.Context, actor access.Actor) (*dto.MonitoringDTO, error) {
	if err := access.Require(actor, access.ViewMonitoring); err != nil {
		return nil, err
	}
	if uc.cache != nil {
		var hit dto.MonitoringDTO
		if ok, err := uc.cache.Get(ctx, ports.CacheKeyMonitoring, &hit); err == nil && ok {
			return &hit, nil
		}
	}

	var (
		products  []*entity.Product
		inbound   map[string]decimal.Decimal
		totalArea decimal.Decimal
		stages    []repository.StageProgressRow
		recent    []*entity.TransactionDetail
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = uc.products.List(gctx)
		return wrap("productos", err)
	})
	g.Go(func() (err error) {
		inbound, err = uc.monitoring.InboundTotals(gctx)
		return wrap("entradas", err)
	})
	g.Go(func() (err error) {
		totalArea, err = uc.monitoring.TotalContourArea(gctx)
		return wrap("superficie", err)
	})
	g.Go(func() (err error) {
		stages, err = uc.monitoring.StageProgress(gctx)
		return wrap("etapas", err)
	})
	g.Go(func() (err error) {
		recent, err = uc.transactions.List(gctx, repository.TransactionFilter{Limit: recentTransactions})
		return wrap("últimos asientos", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.MonitoringDTO{
		Inventory: make([]dto.InventoryGaugeDTO, 0, len(products)),
		TotalArea: totalArea,
		Stages:    make([]dto.StageProgressDTO, 0, len(stages)),
		Recent:    dto.FromTransactions(recent),
	}
	for _, p := range products {
		gauge := Gauge(p, inbound[p.ID])
		if gauge.LowStock {
			out.LowStockCount++
		}
		out.Inventory = append(out.Inventory, gauge)
	}
	for _, s := range stages {
		out.Stages = append(out.Stages, dto.StageProgressDTO{
			StageID:       s.StageID,
			Name:          s.StageName,
			Order:         s.StageOrder,
			CompletedArea: s.CompletedArea,
			Percent:       Percent(s.CompletedArea, totalArea),
		})
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, ports.CacheKeyMonitoring, out, cacheTTL); err != nil {
			uc.log.Debug().Err(err).Msg("guardar tablero en caché")
		}
	}
	return out, nil
}

// Gauge nivel de un producto: pico = max(entradas históricas, stock actual, 1).
func Gauge(p *entity.Product, totalIn decimal.Decimal) dto.InventoryGaugeDTO {
	peak := decimal.Max(totalIn, p.CurrentStock, decimal.NewFromInt(1))
	return dto.InventoryGaugeDTO{
		ProductID:     p.ID,
		Name:          p.Name,
		Unit:          string(p.Unit),
		CurrentStock:  p.CurrentStock,
		PeakStock:     peak,
		Percent:       Percent(p.CurrentStock, peak),
		MinStockAlert: p.MinStockAlert,
		LowStock:      p.IsLowStock(),
	}
}

// Percent part/total en porcentaje con un decimal; 0 si total no es positivo.
func Percent(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(total).Round(1)
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("monitoreo: %s: %w", what, err)
	}
	return nil
}
