package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Farmer perfil de un fermer (empresa agrícola). INN es el identificador fiscal único.
type Farmer struct {
	ID             string
	UserID         string
	INN            string
	NI             string // nombre de la empresa
	DirectorName   string
	PassportSerial string
	PassportNumber string
	PINFL          string
	Address        string
	Phone          string
	LandArea       decimal.Decimal
	ContractNumber string
	CreatedAt      time.Time
}

// DisplayName nombre a imprimir en documentos.
func (f *Farmer) DisplayName() string {
	switch {
	case f.NI != "":
		return f.NI
	case f.DirectorName != "":
		return f.DirectorName
	default:
		return f.INN
	}
}
