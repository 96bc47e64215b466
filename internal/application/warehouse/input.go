package warehouse

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// LineItem una línea de la operación.
type LineItem struct {
	ProductID   string
	Amount      decimal.Decimal
	BatchNumber string // sublote libre, opcional
}

// RecordInput operación iniciada en el almacén (IN u OUT).
type RecordInput struct {
	Type        entity.TransactionType
	Items       []LineItem
	Recipient   ledger.Recipient // obligatorio en OUT, prohibido en IN
	Description string
}

// BrigadierInput operación iniciada por el brigadier sobre su reserva.
// Type admite IN/TRANSFER (recibir del almacén) y OUT/CONSUMPTION (aplicar en campo).
type BrigadierInput struct {
	Type        entity.TransactionType
	BrigadierID string
	ContourID   string
	Items       []LineItem
	Description string
}

// Result respuesta de una operación confirmada; base para imprimir la nota y el poder.
type Result struct {
	TransactionID  string // primer asiento del lote
	TransactionIDs []string
	WaybillID      string // vacío si el lote no emite nota
	WaybillNumber  string
	BatchID        string
	Type           entity.TransactionType // tipo efectivo de los asientos
}

func validateItems(items []LineItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: la operación requiere al menos una línea", domain.ErrInvalidInput)
	}
	for i, it := range items {
		if _, err := uuid.Parse(it.ProductID); err != nil {
			return fmt.Errorf("%w: línea %d: producto %q inválido", domain.ErrInvalidInput, i+1, it.ProductID)
		}
		if !it.Amount.IsPositive() {
			return fmt.Errorf("%w: línea %d: la cantidad debe ser positiva", domain.ErrInvalidInput, i+1)
		}
		if !ledger.FitsScale(it.Amount) {
			return fmt.Errorf("%w: línea %d: la cantidad admite como máximo %d decimales", domain.ErrInvalidInput, i+1, ledger.AmountScale)
		}
	}
	return nil
}

func validateID(name, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s %q inválido", domain.ErrInvalidInput, name, id)
	}
	return nil
}

// totalsByProduct suma las cantidades por producto, conservando el orden de aparición.
func totalsByProduct(items []LineItem) ([]string, map[string]decimal.Decimal) {
	order := make([]string, 0, len(items))
	totals := make(map[string]decimal.Decimal, len(items))
	for _, it := range items {
		if _, ok := totals[it.ProductID]; !ok {
			order = append(order, it.ProductID)
			totals[it.ProductID] = decimal.Zero
		}
		totals[it.ProductID] = totals[it.ProductID].Add(it.Amount)
	}
	return order, totals
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
