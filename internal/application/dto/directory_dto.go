package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateFarmerRequest alta de fermer; el usuario se crea con username = inn.
type CreateFarmerRequest struct {
	FarmerProfileRequest
	LandArea       decimal.Decimal `json:"land_area"`
	ContractNumber string          `json:"contract_number" validate:"omitempty,max=50"`
}

// FarmerResponse salida de un fermer.
type FarmerResponse struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	INN            string          `json:"inn"`
	NI             string          `json:"ni"`
	DirectorName   string          `json:"director_name"`
	PassportSerial string          `json:"passport_serial"`
	PassportNumber string          `json:"passport_number"`
	PINFL          string          `json:"pinfl"`
	Address        string          `json:"address"`
	Phone          string          `json:"phone"`
	LandArea       decimal.Decimal `json:"land_area"`
	ContractNumber string          `json:"contract_number"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CreateBrigadierRequest alta de brigadier con su usuario.
type CreateBrigadierRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required,min=1,max=200"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	Address  string `json:"address" validate:"omitempty,max=300"`
}

// BrigadierResponse salida de un brigadier.
type BrigadierResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateContourRequest alta de contorno.
type CreateContourRequest struct {
	Number      string          `json:"number" validate:"required,min=1,max=50"`
	Name        string          `json:"name" validate:"omitempty,max=200"`
	Area        decimal.Decimal `json:"area"`
	BrigadierID string          `json:"brigadier_id" validate:"omitempty,uuid"`
}

// AssignContourRequest brigadier vacío desasigna.
type AssignContourRequest struct {
	BrigadierID string `json:"brigadier_id" validate:"omitempty,uuid"`
}

// ContourResponse salida de un contorno.
type ContourResponse struct {
	ID          string          `json:"id"`
	Number      string          `json:"number"`
	Name        string          `json:"name"`
	Area        decimal.Decimal `json:"area"`
	BrigadierID *string         `json:"brigadier_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// UpdateFarmerRequest reescribe el perfil; el usuario del fermer pasa a username = inn.
type UpdateFarmerRequest struct {
	FarmerProfileRequest
	LandArea       decimal.Decimal `json:"land_area"`
	ContractNumber string          `json:"contract_number" validate:"omitempty,max=50"`
}

// FarmerCredentialsRequest nueva contraseña del fermer.
type FarmerCredentialsRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// UpsertContractRequest plan anual; status vacío = ACTIVE.
type UpsertContractRequest struct {
	Year       int             `json:"year" validate:"required,min=2000,max=2100"`
	PlanAmount decimal.Decimal `json:"plan_amount"`
	Status     string          `json:"status" validate:"omitempty,oneof=ACTIVE COMPLETED CANCELLED"`
}

// ContractResponse salida de un contrato.
type ContractResponse struct {
	ID         string          `json:"id"`
	FarmerID   string          `json:"farmer_id"`
	Year       int             `json:"year"`
	PlanAmount decimal.Decimal `json:"plan_amount"`
	Status     string          `json:"status"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// FarmerDetailResponse ficha del fermer con contratos y últimos asientos.
type FarmerDetailResponse struct {
	FarmerResponse
	Contracts    []ContractResponse    `json:"contracts"`
	Transactions []TransactionResponse `json:"transactions"`
}

// BrigadierDetailResponse ficha del brigadier con sus contornos y últimos asientos.
type BrigadierDetailResponse struct {
	BrigadierResponse
	Contours     []ContourResponse     `json:"contours"`
	Transactions []TransactionResponse `json:"transactions"`
}
