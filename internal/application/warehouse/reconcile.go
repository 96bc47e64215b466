package warehouse

import (
	"context"
	"fmt"

	"github.com/jhoicas/navbahor-erp/internal/application/ports"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/access"
	"github.com/jhoicas/navbahor-erp/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// ReconcileReport diferencia entre el stock cacheado y el reconstruido desde el libro.
type ReconcileReport struct {
	ProductID   string
	ProductName string
	Cached      decimal.Decimal
	Ledger      decimal.Decimal
	Drift       decimal.Decimal // Cached - Ledger
	Applied     bool
}

// ReconcileProduct recalcula el stock central de un producto a partir de sus asientos
// (IN - OUT - TRANSFER) con la fila bloqueada. Con apply reescribe la proyección.
func (s *Service) ReconcileProduct(ctx context.Context, actor access.Actor, productID string, apply bool) (*ReconcileReport, error) {
	if err := access.Require(actor, access.ReconcileStock); err != nil {
		return nil, err
	}
	if err := validateID("producto", productID); err != nil {
		return nil, err
	}

	var rep *ReconcileReport
	err := s.tx.Run(ctx, func(ctx context.Context, r TxRepos) error {
		p, err := r.Products.GetForUpdate(ctx, productID)
		if err != nil {
			return fmt.Errorf("bloquear producto: %w", err)
		}
		if p == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
		}
		totals, err := r.Transactions.TotalsByType(ctx, productID, "")
		if err != nil {
			return fmt.Errorf("totales del libro: %w", err)
		}
		projected := ledger.CentralStock(totals)
		rep = &ReconcileReport{
			ProductID:   p.ID,
			ProductName: p.Name,
			Cached:      p.CurrentStock,
			Ledger:      projected,
			Drift:       p.CurrentStock.Sub(projected),
		}
		if !apply || rep.Drift.IsZero() {
			return nil
		}
		if projected.IsNegative() {
			return fmt.Errorf("%w: el libro de %s proyecta stock negativo (%s)", domain.ErrConflict, p.Name, projected)
		}
		if err := r.Products.SetStock(ctx, productID, projected); err != nil {
			return fmt.Errorf("reescribir stock: %w", err)
		}
		rep.Applied = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if rep.Applied {
		s.invalidate(ports.CacheKeyProducts, ports.CacheKeyMonitoring)
		s.log.Warn().Str("product_id", rep.ProductID).Str("drift", rep.Drift.String()).Msg("stock central conciliado")
	}
	return rep, nil
}
