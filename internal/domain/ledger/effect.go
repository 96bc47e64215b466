// Package ledger reglas puras del libro de inventario: tipo efectivo, efecto sobre los saldos,
// numeración de notas de despacho y proyección del stock a partir de los asientos.
package ledger

import (
	"fmt"

	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AmountScale decimales que guardan las columnas de cantidad y saldo (NUMERIC(18,3)).
const AmountScale = 3

// FitsScale indica si d se guarda sin redondeo con AmountScale decimales.
func FitsScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(AmountScale))
}

// Effect variación que un asiento produce en el almacén central y en la reserva del brigadier.
type Effect struct {
	Central   decimal.Decimal
	Brigadier decimal.Decimal
}

// EffectOf devuelve el efecto de un asiento de tipo t por amount (> 0).
func EffectOf(t entity.TransactionType, amount decimal.Decimal) (Effect, error) {
	if !amount.IsPositive() {
		return Effect{}, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	switch t {
	case entity.TransactionIN:
		return Effect{Central: amount, Brigadier: decimal.Zero}, nil
	case entity.TransactionOUT:
		return Effect{Central: amount.Neg(), Brigadier: decimal.Zero}, nil
	case entity.TransactionTRANSFER:
		return Effect{Central: amount.Neg(), Brigadier: amount}, nil
	case entity.TransactionCONSUMPTION:
		return Effect{Central: decimal.Zero, Brigadier: amount.Neg()}, nil
	}
	return Effect{}, fmt.Errorf("%w: tipo %q sin efecto definido", domain.ErrInvalidInput, t)
}

// WarehouseType tipo efectivo de una línea registrada desde el almacén.
// Una salida hacia un brigadier se asienta como TRANSFER.
func WarehouseType(requested entity.TransactionType, r Recipient) (entity.TransactionType, error) {
	switch requested {
	case entity.TransactionIN:
		if r != nil {
			return "", fmt.Errorf("%w: una entrada no lleva destinatario", domain.ErrInvalidInput)
		}
		return entity.TransactionIN, nil
	case entity.TransactionOUT:
		if r == nil {
			return "", fmt.Errorf("%w: una salida requiere destinatario", domain.ErrInvalidInput)
		}
		if _, ok := r.(ToBrigadier); ok {
			return entity.TransactionTRANSFER, nil
		}
		return entity.TransactionOUT, nil
	}
	return "", fmt.Errorf("%w: el almacén solo registra IN u OUT", domain.ErrInvalidInput)
}

// BrigadierType tipo efectivo de una operación iniciada por el brigadier.
// IN (recibir del almacén) es TRANSFER y OUT (aplicar en campo) es CONSUMPTION.
func BrigadierType(requested entity.TransactionType) (entity.TransactionType, error) {
	switch requested {
	case entity.TransactionIN, entity.TransactionTRANSFER:
		return entity.TransactionTRANSFER, nil
	case entity.TransactionOUT, entity.TransactionCONSUMPTION:
		return entity.TransactionCONSUMPTION, nil
	}
	return "", fmt.Errorf("%w: tipo %q no admitido para el brigadier", domain.ErrInvalidInput, requested)
}

// NeedsWaybill indica si una operación de ese tipo efectivo emite nota de despacho.
// El consumo en campo no mueve mercancía entre custodios y no la lleva.
func NeedsWaybill(t entity.TransactionType) bool {
	return t != entity.TransactionCONSUMPTION
}
