package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemRequest una línea de la operación.
type LineItemRequest struct {
	ProductID   string          `json:"product_id" validate:"required,uuid"`
	Amount      decimal.Decimal `json:"amount"`
	BatchNumber string          `json:"batch_number" validate:"omitempty,max=100"`
}

// FarmerProfileRequest datos para dar de alta un fermer dentro de una salida.
type FarmerProfileRequest struct {
	INN            string `json:"inn" validate:"required,min=1,max=20"`
	NI             string `json:"ni" validate:"omitempty,max=200"`
	DirectorName   string `json:"director_name" validate:"omitempty,max=200"`
	PassportSerial string `json:"passport_serial" validate:"omitempty,max=10"`
	PassportNumber string `json:"passport_number" validate:"omitempty,max=20"`
	PINFL          string `json:"pinfl" validate:"omitempty,max=20"`
	Address        string `json:"address" validate:"omitempty,max=300"`
	Phone          string `json:"phone" validate:"omitempty,max=30"`
}

// RecordTransactionRequest operación del almacén. OUT exige un único destinatario.
type RecordTransactionRequest struct {
	Type        string                `json:"type" validate:"required,oneof=IN OUT"`
	Items       []LineItemRequest     `json:"items" validate:"required,min=1,dive"`
	FarmerID    string                `json:"farmer_id" validate:"omitempty,uuid"`
	BrigadierID string                `json:"brigadier_id" validate:"omitempty,uuid"`
	NewFarmer   *FarmerProfileRequest `json:"new_farmer" validate:"omitempty"`
	Description string                `json:"description" validate:"omitempty,max=500"`
}

// BrigadierTransactionRequest operación del brigadier sobre su reserva.
type BrigadierTransactionRequest struct {
	Type        string            `json:"type" validate:"required,oneof=IN OUT TRANSFER CONSUMPTION"`
	BrigadierID string            `json:"brigadier_id" validate:"omitempty,uuid"`
	ContourID   string            `json:"contour_id" validate:"omitempty,uuid"`
	Items       []LineItemRequest `json:"items" validate:"required,min=1,dive"`
	Description string            `json:"description" validate:"omitempty,max=500"`
}

// TransactionResultResponse resultado de una operación confirmada.
type TransactionResultResponse struct {
	TransactionID  string   `json:"transaction_id"`
	TransactionIDs []string `json:"transaction_ids"`
	WaybillID      string   `json:"waybill_id,omitempty"`
	WaybillNumber  string   `json:"waybill_number,omitempty"`
	BatchID        string   `json:"batch_id"`
	Type           string   `json:"type"`
}

// TransactionResponse asiento del libro con nombres resueltos.
type TransactionResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	ProductUnit   string          `json:"product_unit"`
	FarmerID      *string         `json:"farmer_id,omitempty"`
	FarmerName    *string         `json:"farmer_name,omitempty"`
	BrigadierID   *string         `json:"brigadier_id,omitempty"`
	BrigadierName *string         `json:"brigadier_name,omitempty"`
	ContourID     *string         `json:"contour_id,omitempty"`
	BatchNumber   *string         `json:"batch_number,omitempty"`
	BatchID       string          `json:"batch_id"`
	Description   *string         `json:"description,omitempty"`
	WaybillID     *string         `json:"waybill_id,omitempty"`
	WaybillNumber *string         `json:"waybill_number,omitempty"`
	CreatedByID   string          `json:"created_by_id"`
	CreatedByName string          `json:"created_by_name"`
	Date          time.Time       `json:"date"`
}

// WaybillResponse nota de despacho.
type WaybillResponse struct {
	ID           string    `json:"id"`
	Number       string    `json:"number"`
	Type         string    `json:"type"`
	ReceiverName string    `json:"receiver_name"`
	ShipperName  string    `json:"shipper_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// DocumentResponse datos para imprimir la nota de despacho o el poder.
type DocumentResponse struct {
	Transaction TransactionResponse   `json:"transaction"`
	Waybill     *WaybillResponse      `json:"waybill,omitempty"`
	Items       []TransactionResponse `json:"items"`
}

// BrigadierStockResponse saldo de un producto en la reserva del brigadier.
type BrigadierStockResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductUnit string          `json:"product_unit"`
	Amount      decimal.Decimal `json:"amount"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ReconcileResponse comparación entre stock cacheado y libro.
type ReconcileResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Cached      decimal.Decimal `json:"cached"`
	Ledger      decimal.Decimal `json:"ledger"`
	Drift       decimal.Decimal `json:"drift"`
	Applied     bool            `json:"applied"`
}
