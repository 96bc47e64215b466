package warehouse

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/navbahor-erp/internal/application/ports"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/access"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// Document datos para imprimir la nota de despacho o el poder: el asiento pedido,
// su nota y todos los asientos del mismo lote.
type Document struct {
	Transaction *entity.TransactionDetail
	Waybill     *entity.Waybill
	Items       []*entity.TransactionDetail
}

// ListProducts catálogo con stock central (vista del almacén, cacheada).
func (s *Service) ListProducts(ctx context.Context, actor access.Actor) ([]*entity.Product, error) {
	if err := access.Require(actor, access.ViewCatalog); err != nil {
		return nil, err
	}
	return cached(ctx, s, ports.CacheKeyProducts, func() ([]*entity.Product, error) {
		return s.read.Products.List(ctx)
	})
}

// ListTransactions últimos asientos, del más reciente al más antiguo.
func (s *Service) ListTransactions(ctx context.Context, actor access.Actor, f repository.TransactionFilter) ([]*entity.TransactionDetail, error) {
	if err := access.Require(actor, access.ViewLedger); err != nil {
		return nil, err
	}
	if f.Type != "" && !f.Type.Valid() {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, f.Type)
	}
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	return s.read.Transactions.List(ctx, f)
}

// GetTransactionDocument asiento con su nota y los hermanos de lote.
// El brigadier solo ve los documentos de su propia reserva.
func (s *Service) GetTransactionDocument(ctx context.Context, actor access.Actor, id string) (*Document, error) {
	if err := validateID("transacción", id); err != nil {
		return nil, err
	}
	errLedger := access.Require(actor, access.ViewLedger)
	if errLedger != nil && !(errors.Is(errLedger, domain.ErrForbidden) && actor.Role == entity.RoleBrigadier) {
		return nil, errLedger
	}

	t, err := s.read.Transactions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar asiento: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: transacción %s", domain.ErrNotFound, id)
	}
	if errLedger != nil && (t.BrigadierID == nil || *t.BrigadierID != actor.BrigadierID) {
		return nil, errLedger
	}

	doc := &Document{Transaction: t}
	if t.WaybillID != nil {
		if doc.Waybill, err = s.read.Waybills.GetByID(ctx, *t.WaybillID); err != nil {
			return nil, fmt.Errorf("buscar nota: %w", err)
		}
	}
	if doc.Items, err = s.read.Transactions.ListByBatch(ctx, t.BatchID); err != nil {
		return nil, fmt.Errorf("buscar lote: %w", err)
	}
	return doc, nil
}

// GetBrigadierInventory saldos positivos de la reserva del brigadier (tablero del brigadier, cacheado).
func (s *Service) GetBrigadierInventory(ctx context.Context, actor access.Actor, brigadierID string) ([]*entity.BrigadierStockItem, error) {
	if err := access.RequireBrigadier(actor, access.ViewBrigadierInventory, brigadierID); err != nil {
		return nil, err
	}
	if err := validateID("brigadier", brigadierID); err != nil {
		return nil, err
	}
	return cached(ctx, s, ports.CacheKeyBrigadierInventory(brigadierID), func() ([]*entity.BrigadierStockItem, error) {
		return s.read.BrigadierStocks.ListByBrigadier(ctx, brigadierID, true)
	})
}
