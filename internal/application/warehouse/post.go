package warehouse

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// batch lote listo para asentar dentro de la transacción.
type batch struct {
	typ         entity.TransactionType
	id          string
	items       []LineItem
	farmerID    *string
	brigadierID *string
	contourID   *string
	waybillID   *string
	description *string
	actorID     string
	date        time.Time
	names       map[string]string // producto -> nombre para los mensajes
}

// post crea un asiento por línea y luego aplica los efectos sobre los saldos en orden
// de producto, igual que lockProducts, para que dos lotes sobre las mismas filas de
// reserva no se bloqueen mutuamente.
func post(ctx context.Context, r TxRepos, b batch) ([]string, error) {
	ids := make([]string, 0, len(b.items))
	effects := make([]ledger.Effect, 0, len(b.items))
	for _, it := range b.items {
		eff, err := ledger.EffectOf(b.typ, it.Amount)
		if err != nil {
			return nil, err
		}
		if !eff.Brigadier.IsZero() && b.brigadierID == nil {
			return nil, fmt.Errorf("%w: %s requiere brigadier", domain.ErrInvalidInput, b.typ)
		}
		t := &entity.Transaction{
			ID:          uuid.NewString(),
			Type:        b.typ,
			Amount:      it.Amount,
			ProductID:   it.ProductID,
			FarmerID:    b.farmerID,
			BrigadierID: b.brigadierID,
			ContourID:   b.contourID,
			BatchNumber: optional(it.BatchNumber),
			BatchID:     b.id,
			Description: b.description,
			CreatedByID: b.actorID,
			Date:        b.date,
			WaybillID:   b.waybillID,
		}
		if err := r.Transactions.Create(ctx, t); err != nil {
			return nil, fmt.Errorf("crear asiento: %w", err)
		}
		ids = append(ids, t.ID)
		effects = append(effects, eff)
	}

	for _, i := range byProduct(b.items) {
		if err := applyEffect(ctx, r, b, b.items[i].ProductID, effects[i]); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// byProduct índices de items ordenados por id de producto (estable).
func byProduct(items []LineItem) []int {
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, c int) bool { return items[idx[a]].ProductID < items[idx[c]].ProductID })
	return idx
}

func applyEffect(ctx context.Context, r TxRepos, b batch, productID string, eff ledger.Effect) error {
	if !eff.Central.IsZero() {
		if _, err := r.Products.AdjustStock(ctx, productID, eff.Central); err != nil {
			return stockError(err, b.names[productID])
		}
	}
	switch {
	case eff.Brigadier.IsPositive():
		if _, err := r.BrigadierStocks.Add(ctx, *b.brigadierID, productID, eff.Brigadier); err != nil {
			return fmt.Errorf("sumar a la reserva: %w", err)
		}
	case eff.Brigadier.IsNegative():
		if _, err := r.BrigadierStocks.Consume(ctx, *b.brigadierID, productID, eff.Brigadier.Neg()); err != nil {
			return stockError(err, b.names[productID])
		}
	}
	return nil
}

func stockError(err error, product string) error {
	if errors.Is(err, domain.ErrInsufficientStock) || errors.Is(err, domain.ErrBrigadierStockInsufficient) {
		return fmt.Errorf("%w: %s", err, product)
	}
	return fmt.Errorf("actualizar saldo de %s: %w", product, err)
}

// lockProducts bloquea las filas de producto en orden de id para que dos lotes
// con los mismos productos no se bloqueen mutuamente.
func lockProducts(ctx context.Context, r TxRepos, ids []string) (map[string]*entity.Product, error) {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	out := make(map[string]*entity.Product, len(sorted))
	for _, id := range sorted {
		p, err := r.Products.GetForUpdate(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("bloquear producto: %w", err)
		}
		if p == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		out[id] = p
	}
	return out, nil
}

// checkCentral verifica que el almacén cubra las salidas del lote.
func checkCentral(products map[string]*entity.Product, order []string, totals map[string]decimal.Decimal, typ entity.TransactionType) error {
	eff, err := ledger.EffectOf(typ, decimal.NewFromInt(1))
	if err != nil {
		return err
	}
	if !eff.Central.IsNegative() {
		return nil
	}
	for _, id := range order {
		p := products[id]
		if p.CurrentStock.LessThan(totals[id]) {
			return fmt.Errorf("%w: %s (disponible %s, solicitado %s)",
				domain.ErrInsufficientStock, p.Name, p.CurrentStock.String(), totals[id].String())
		}
	}
	return nil
}

func productNames(products map[string]*entity.Product) map[string]string {
	names := make(map[string]string, len(products))
	for id, p := range products {
		names[id] = p.Name
	}
	return names
}
