package warehouse

import (
	"context"
	"fmt"

	"github.com/jhoicas/navbahor-erp/internal/application/ports"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/access"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// CreateBrigadierTransaction operación del brigadier sobre su propia reserva.
// TRANSFER descuenta del almacén y suma a la reserva (con nota de despacho);
// CONSUMPTION descuenta de la reserva, que debe existir y cubrir la cantidad.
func (s *Service) CreateBrigadierTransaction(ctx context.Context, actor access.Actor, in BrigadierInput) (*Result, error) {
	if err := access.RequireBrigadier(actor, access.BrigadierTransaction, in.BrigadierID); err != nil {
		return nil, err
	}
	if err := validateID("brigadier", in.BrigadierID); err != nil {
		return nil, err
	}
	typ, err := ledger.BrigadierType(in.Type)
	if err != nil {
		return nil, err
	}
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}

	brigadier, err := s.read.Brigadiers.GetByID(ctx, in.BrigadierID)
	if err != nil {
		return nil, fmt.Errorf("buscar brigadier: %w", err)
	}
	if brigadier == nil {
		return nil, fmt.Errorf("%w: brigadier %s", domain.ErrNotFound, in.BrigadierID)
	}
	if in.ContourID != "" {
		if err := validateID("contorno", in.ContourID); err != nil {
			return nil, err
		}
		c, err := s.read.Contours.GetByID(ctx, in.ContourID)
		if err != nil {
			return nil, fmt.Errorf("buscar contorno: %w", err)
		}
		if c == nil {
			return nil, fmt.Errorf("%w: contorno %s", domain.ErrNotFound, in.ContourID)
		}
	}

	order, totals := totalsByProduct(in.Items)
	products, err := s.loadProducts(ctx, order)
	if err != nil {
		return nil, err
	}
	if typ == entity.TransactionTRANSFER {
		if err := checkCentral(products, order, totals, typ); err != nil {
			return nil, err
		}
	} else if err := s.checkPool(ctx, in.BrigadierID, products, order, totals); err != nil {
		return nil, err
	}

	batchID := ledger.NewBatchID()
	now := s.now()
	var res *Result

	err = s.tx.Run(ctx, func(ctx context.Context, r TxRepos) error {
		b := batch{
			typ:         typ,
			id:          batchID,
			items:       in.Items,
			brigadierID: &brigadier.ID,
			contourID:   optional(in.ContourID),
			description: optional(in.Description),
			actorID:     actor.UserID,
			date:        now,
			names:       productNames(products),
		}
		res = &Result{BatchID: batchID, Type: typ}

		if ledger.NeedsWaybill(typ) {
			locked, err := lockProducts(ctx, r, order)
			if err != nil {
				return err
			}
			if err := checkCentral(locked, order, totals, typ); err != nil {
				return err
			}
			w, err := s.issueWaybill(ctx, r, typ, nonEmpty(brigadier.FullName, "Brigadir"), now)
			if err != nil {
				return err
			}
			b.waybillID = &w.ID
			res.WaybillID, res.WaybillNumber = w.ID, w.Number
		}

		// Consume resta solo si la fila cubre la cantidad; la comprobación previa puede haber quedado vieja.
		ids, err := post(ctx, r, b)
		if err != nil {
			return err
		}
		res.TransactionID = ids[0]
		res.TransactionIDs = ids
		return nil
	})
	if err != nil {
		s.log.Warn().Err(err).Str("batch_id", batchID).Str("brigadier_id", in.BrigadierID).
			Str("type", string(typ)).Msg("lote de brigadier rechazado")
		return nil, err
	}

	keys := []string{ports.CacheKeyBrigadierInventory(brigadier.ID), ports.CacheKeyMonitoring}
	if typ == entity.TransactionTRANSFER {
		keys = append(keys, ports.CacheKeyProducts)
	}
	s.committed(res, len(in.Items), keys)
	return res, nil
}

// checkPool prevalidación del consumo: la fila debe existir y cubrir el total por producto.
func (s *Service) checkPool(ctx context.Context, brigadierID string, products map[string]*entity.Product, order []string, totals map[string]decimal.Decimal) error {
	for _, id := range order {
		bs, err := s.read.BrigadierStocks.Get(ctx, brigadierID, id)
		if err != nil {
			return fmt.Errorf("leer reserva: %w", err)
		}
		if bs == nil || bs.Amount.LessThan(totals[id]) {
			return fmt.Errorf("%w: %s", domain.ErrBrigadierStockInsufficient, products[id].Name)
		}
	}
	return nil
}
