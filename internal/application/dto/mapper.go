package dto

import (
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/ledger"
)

// Profile convierte la solicitud en el perfil de dominio.
func (r FarmerProfileRequest) Profile() ledger.FarmerProfile {
	return ledger.FarmerProfile{
		INN:            r.INN,
		NI:             r.NI,
		DirectorName:   r.DirectorName,
		PassportSerial: r.PassportSerial,
		PassportNumber: r.PassportNumber,
		PINFL:          r.PINFL,
		Address:        r.Address,
		Phone:          r.Phone,
	}
}

// RecipientFields forma plana del destinatario para ledger.ResolveRecipient.
func (r RecordTransactionRequest) RecipientFields() ledger.RecipientFields {
	f := ledger.RecipientFields{FarmerID: r.FarmerID, BrigadierID: r.BrigadierID}
	if r.NewFarmer != nil {
		p := r.NewFarmer.Profile()
		f.NewFarmer = &p
	}
	return f
}

func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		Unit:          string(p.Unit),
		CurrentStock:  p.CurrentStock,
		MinStockAlert: p.MinStockAlert,
		LowStock:      p.IsLowStock(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func FromTransaction(t *entity.TransactionDetail) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		Type:          string(t.Type),
		Amount:        t.Amount,
		ProductID:     t.ProductID,
		ProductName:   t.ProductName,
		ProductUnit:   string(t.ProductUnit),
		FarmerID:      t.FarmerID,
		FarmerName:    t.FarmerName,
		BrigadierID:   t.BrigadierID,
		BrigadierName: t.BrigadierName,
		ContourID:     t.ContourID,
		BatchNumber:   t.BatchNumber,
		BatchID:       t.BatchID,
		Description:   t.Description,
		WaybillID:     t.WaybillID,
		WaybillNumber: t.WaybillNumber,
		CreatedByID:   t.CreatedByID,
		CreatedByName: t.CreatedByName,
		Date:          t.Date,
	}
}

func FromTransactions(list []*entity.TransactionDetail) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, FromTransaction(t))
	}
	return out
}

func FromWaybill(w *entity.Waybill) *WaybillResponse {
	if w == nil {
		return nil
	}
	return &WaybillResponse{
		ID:           w.ID,
		Number:       w.Number,
		Type:         string(w.Type),
		ReceiverName: w.ReceiverName,
		ShipperName:  w.ShipperName,
		CreatedAt:    w.CreatedAt,
	}
}

func FromFarmer(f *entity.Farmer) FarmerResponse {
	return FarmerResponse{
		ID:             f.ID,
		UserID:         f.UserID,
		INN:            f.INN,
		NI:             f.NI,
		DirectorName:   f.DirectorName,
		PassportSerial: f.PassportSerial,
		PassportNumber: f.PassportNumber,
		PINFL:          f.PINFL,
		Address:        f.Address,
		Phone:          f.Phone,
		LandArea:       f.LandArea,
		ContractNumber: f.ContractNumber,
		CreatedAt:      f.CreatedAt,
	}
}

func FromBrigadier(b *entity.BrigadierProfile) BrigadierResponse {
	return BrigadierResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		Username:  b.Username,
		FullName:  b.FullName,
		Phone:     b.Phone,
		Address:   b.Address,
		CreatedAt: b.CreatedAt,
	}
}

func FromContour(c *entity.Contour) ContourResponse {
	return ContourResponse{
		ID:          c.ID,
		Number:      c.Number,
		Name:        c.Name,
		Area:        c.Area,
		BrigadierID: c.BrigadierID,
		CreatedAt:   c.CreatedAt,
	}
}

func FromWorkStage(s *entity.WorkStage) WorkStageResponse {
	return WorkStageResponse{ID: s.ID, Name: s.Name, Order: s.Order, Description: s.Description}
}

func FromActivity(a *entity.FieldActivityDetail) FieldActivityResponse {
	return FieldActivityResponse{
		ID:             a.ID,
		ContourID:      a.ContourID,
		ContourNumber:  a.ContourNumber,
		ContourName:    a.ContourName,
		WorkStageID:    a.WorkStageID,
		StageName:      a.StageName,
		StageOrder:     a.StageOrder,
		BrigadierID:    a.BrigadierID,
		BrigadierName:  a.BrigadierName,
		Status:         string(a.Status),
		Comment:        a.Comment,
		CompletionDate: a.CompletionDate,
		UpdatedAt:      a.UpdatedAt,
	}
}

func FromContract(c *entity.Contract) ContractResponse {
	return ContractResponse{
		ID:         c.ID,
		FarmerID:   c.FarmerID,
		Year:       c.Year,
		PlanAmount: c.PlanAmount,
		Status:     string(c.Status),
		UpdatedAt:  c.UpdatedAt,
	}
}

func FromContracts(list []*entity.Contract) []ContractResponse {
	out := make([]ContractResponse, 0, len(list))
	for _, c := range list {
		out = append(out, FromContract(c))
	}
	return out
}
