package entity

import "time"

// Waybill nota de despacho (yuk xati) emitida por operación.
type Waybill struct {
	ID           string
	Number       string
	Type         TransactionType
	ReceiverName string
	ShipperName  string
	CreatedAt    time.Time
}
