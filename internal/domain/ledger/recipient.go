package ledger

import (
	"fmt"
	"strings"

	"github.com/jhoicas/navbahor-erp/internal/domain"
)

// Recipient destinatario de una salida del almacén. Exactamente una de las variantes.
type Recipient interface {
	isRecipient()
}

// ExistingFarmer fermer ya registrado.
type ExistingFarmer struct {
	FarmerID string
}

// NewFarmer fermer a dar de alta en la misma operación (o reutilizar si su INN ya existe).
type NewFarmer struct {
	Profile FarmerProfile
}

// ToBrigadier reserva personal de un brigadier; convierte la salida en TRANSFER.
type ToBrigadier struct {
	BrigadierID string
}

func (ExistingFarmer) isRecipient() {}
func (NewFarmer) isRecipient()      {}
func (ToBrigadier) isRecipient()    {}

// FarmerProfile datos mínimos para aprovisionar un fermer.
type FarmerProfile struct {
	INN            string
	NI             string
	DirectorName   string
	PassportSerial string
	PassportNumber string
	PINFL          string
	Address        string
	Phone          string
}

// FullName nombre para el usuario aprovisionado: NI, director o INN.
func (p FarmerProfile) FullName() string {
	switch {
	case strings.TrimSpace(p.NI) != "":
		return strings.TrimSpace(p.NI)
	case strings.TrimSpace(p.DirectorName) != "":
		return strings.TrimSpace(p.DirectorName)
	default:
		return p.INN
	}
}

// RecipientFields forma plana del destinatario tal como llega por la API.
type RecipientFields struct {
	FarmerID    string
	BrigadierID string
	NewFarmer   *FarmerProfile
}

// ResolveRecipient convierte la forma plana en la variante; exige como máximo un destinatario.
// Devuelve nil si no viene ninguno.
func ResolveRecipient(f RecipientFields) (Recipient, error) {
	var out []Recipient
	if f.FarmerID != "" {
		out = append(out, ExistingFarmer{FarmerID: f.FarmerID})
	}
	if f.BrigadierID != "" {
		out = append(out, ToBrigadier{BrigadierID: f.BrigadierID})
	}
	if f.NewFarmer != nil {
		if strings.TrimSpace(f.NewFarmer.INN) == "" {
			return nil, fmt.Errorf("%w: el nuevo fermer requiere INN", domain.ErrInvalidInput)
		}
		out = append(out, NewFarmer{Profile: *f.NewFarmer})
	}
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0], nil
	default:
		return nil, fmt.Errorf("%w: indique un solo destinatario", domain.ErrInvalidInput)
	}
}
