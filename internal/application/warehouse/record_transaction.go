package warehouse

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/navbahor-erp/internal/application/ports"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/access"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/ledger"
	"github.com/jhoicas/navbahor-erp/pkg/phone"
	"github.com/jhoicas/navbahor-erp/pkg/textnorm"
	"github.com/shopspring/decimal"
)

// RecordTransaction registra una entrada (IN) o una salida (OUT) del almacén central.
//
// Fases:
//  1. Validación y prevalidación de solo lectura (productos, stock, destinatario).
//  2. Transacción: alta del fermer nuevo si hace falta, bloqueo de productos, nota de despacho,
//     un asiento por línea y su efecto sobre los saldos. Cualquier error deshace todo el lote.
//  3. Tras el commit: invalidación de vistas y aviso a administradores (sin afectar al resultado).
func (s *Service) RecordTransaction(ctx context.Context, actor access.Actor, in RecordInput) (*Result, error) {
	if err := access.Require(actor, access.RecordTransaction); err != nil {
		return nil, err
	}
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}
	typ, err := ledger.WarehouseType(in.Type, in.Recipient)
	if err != nil {
		return nil, err
	}
	recipient, err := s.normalizeRecipient(in.Recipient)
	if err != nil {
		return nil, err
	}

	order, totals := totalsByProduct(in.Items)
	products, err := s.loadProducts(ctx, order)
	if err != nil {
		return nil, err
	}
	if err := checkCentral(products, order, totals, typ); err != nil {
		return nil, err
	}

	var (
		farmer      *entity.Farmer
		brigadier   *entity.BrigadierProfile
		newFarmerPw string
	)
	switch rc := recipient.(type) {
	case ledger.ExistingFarmer:
		if farmer, err = s.read.Farmers.GetByID(ctx, rc.FarmerID); err != nil {
			return nil, fmt.Errorf("buscar fermer: %w", err)
		}
		if farmer == nil {
			return nil, fmt.Errorf("%w: fermer %s", domain.ErrNotFound, rc.FarmerID)
		}
	case ledger.ToBrigadier:
		if brigadier, err = s.read.Brigadiers.GetByID(ctx, rc.BrigadierID); err != nil {
			return nil, fmt.Errorf("buscar brigadier: %w", err)
		}
		if brigadier == nil {
			return nil, fmt.Errorf("%w: brigadier %s", domain.ErrNotFound, rc.BrigadierID)
		}
	case ledger.NewFarmer:
		// bcrypt fuera de la transacción para no alargar los bloqueos.
		if newFarmerPw, err = s.cfg.HashPassword(s.cfg.FarmerDefaultPassword); err != nil {
			return nil, fmt.Errorf("hash de contraseña: %w", err)
		}
	}

	batchID := ledger.NewBatchID()
	now := s.now()
	var res *Result

	err = s.tx.Run(ctx, func(ctx context.Context, r TxRepos) error {
		b := batch{
			typ:         typ,
			id:          batchID,
			items:       in.Items,
			description: optional(in.Description),
			actorID:     actor.UserID,
			date:        now,
			names:       productNames(products),
		}
		receiver := s.cfg.WarehouseName
		switch rc := recipient.(type) {
		case ledger.ExistingFarmer:
			b.farmerID = &farmer.ID
			receiver = nonEmpty(farmer.NI, "Fermer")
		case ledger.NewFarmer:
			f, err := s.resolveFarmer(ctx, r, rc.Profile, newFarmerPw, now)
			if err != nil {
				return err
			}
			farmer = f
			b.farmerID = &f.ID
			receiver = nonEmpty(f.NI, "Fermer")
		case ledger.ToBrigadier:
			b.brigadierID = &brigadier.ID
			receiver = nonEmpty(brigadier.FullName, "Brigadir")
		}

		locked, err := lockProducts(ctx, r, order)
		if err != nil {
			return err
		}
		if err := checkCentral(locked, order, totals, typ); err != nil {
			return err
		}

		w, err := s.issueWaybill(ctx, r, typ, receiver, now)
		if err != nil {
			return err
		}
		b.waybillID = &w.ID

		ids, err := post(ctx, r, b)
		if err != nil {
			return err
		}
		res = &Result{
			TransactionID:  ids[0],
			TransactionIDs: ids,
			WaybillID:      w.ID,
			WaybillNumber:  w.Number,
			BatchID:        batchID,
			Type:           typ,
		}
		return nil
	})
	if err != nil {
		s.log.Warn().Err(err).Str("batch_id", batchID).Str("type", string(typ)).Msg("lote rechazado")
		return nil, err
	}

	keys := []string{ports.CacheKeyProducts, ports.CacheKeyMonitoring}
	if brigadier != nil {
		keys = append(keys, ports.CacheKeyBrigadierInventory(brigadier.ID))
	}
	s.committed(res, len(in.Items), keys)
	return res, nil
}

// normalizeRecipient valida ids y limpia los datos del fermer nuevo.
func (s *Service) normalizeRecipient(r ledger.Recipient) (ledger.Recipient, error) {
	switch rc := r.(type) {
	case ledger.ExistingFarmer:
		return rc, validateID("fermer", rc.FarmerID)
	case ledger.ToBrigadier:
		return rc, validateID("brigadier", rc.BrigadierID)
	case ledger.NewFarmer:
		p := rc.Profile
		p.INN = textnorm.Code(p.INN)
		if p.INN == "" {
			return nil, fmt.Errorf("%w: el nuevo fermer requiere INN", domain.ErrInvalidInput)
		}
		p.NI = textnorm.Name(p.NI)
		p.DirectorName = textnorm.Name(p.DirectorName)
		p.PINFL = textnorm.Code(p.PINFL)
		p.PassportSerial = strings.ToUpper(textnorm.Code(p.PassportSerial))
		p.PassportNumber = textnorm.Code(p.PassportNumber)
		p.Address = textnorm.Name(p.Address)
		if p.Address == "" {
			p.Address = s.cfg.FarmerDefaultAddress
		}
		tel, err := phone.Normalize(p.Phone, phone.DefaultRegion)
		if err != nil {
			return nil, err
		}
		p.Phone = tel
		return ledger.NewFarmer{Profile: p}, nil
	}
	return r, nil
}

// resolveFarmer reutiliza el fermer con el mismo INN o lo da de alta con su usuario.
// Si otra petición lo crea a la vez, la restricción única devuelve conflicto y el lote se deshace.
func (s *Service) resolveFarmer(ctx context.Context, r TxRepos, p ledger.FarmerProfile, passwordHash string, now time.Time) (*entity.Farmer, error) {
	existing, err := r.Farmers.GetByINN(ctx, p.INN)
	if err != nil {
		return nil, fmt.Errorf("buscar fermer por INN: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	u := &entity.User{
		ID:           uuid.NewString(),
		Username:     p.INN,
		PasswordHash: passwordHash,
		FullName:     p.FullName(),
		Role:         entity.RoleFarmer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := r.Users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: ya existe un usuario %q", domain.ErrConflict, p.INN)
		}
		return nil, fmt.Errorf("crear usuario del fermer: %w", err)
	}
	f := &entity.Farmer{
		ID:             uuid.NewString(),
		UserID:         u.ID,
		INN:            p.INN,
		NI:             p.NI,
		DirectorName:   p.DirectorName,
		PassportSerial: p.PassportSerial,
		PassportNumber: p.PassportNumber,
		PINFL:          p.PINFL,
		Address:        p.Address,
		Phone:          p.Phone,
		LandArea:       decimal.Zero,
		CreatedAt:      now,
	}
	if err := r.Farmers.Create(ctx, f); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: el INN %s ya está registrado", domain.ErrConflict, p.INN)
		}
		return nil, fmt.Errorf("crear fermer: %w", err)
	}
	return f, nil
}

// issueWaybill numera e inserta la nota del lote dentro de la transacción.
func (s *Service) issueWaybill(ctx context.Context, r TxRepos, typ entity.TransactionType, receiver string, now time.Time) (*entity.Waybill, error) {
	number, err := s.numbering.Next(ctx, r.Waybills)
	if err != nil {
		return nil, err
	}
	w := &entity.Waybill{
		ID:           uuid.NewString(),
		Number:       number,
		Type:         typ,
		ReceiverName: receiver,
		ShipperName:  s.cfg.ShipperName,
		CreatedAt:    now,
	}
	if err := r.Waybills.Create(ctx, w); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: número de nota %s ya emitido", domain.ErrConflict, number)
		}
		return nil, fmt.Errorf("crear nota de despacho: %w", err)
	}
	return w, nil
}

// loadProducts comprueba que existan todos los productos (lectura sin bloqueo).
func (s *Service) loadProducts(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		p, err := s.read.Products.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("buscar producto: %w", err)
		}
		if p == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		out[id] = p
	}
	return out, nil
}

var eventTitles = map[entity.TransactionType]string{
	entity.TransactionIN:          "Entrada al almacén",
	entity.TransactionOUT:         "Salida del almacén",
	entity.TransactionTRANSFER:    "Entrega a brigadier",
	entity.TransactionCONSUMPTION: "Consumo en campo",
}

// committed efectos posteriores al commit; ninguno puede fallar la operación.
func (s *Service) committed(res *Result, items int, keys []string) {
	s.invalidate(keys...)

	evType := ports.NotificationInfo
	if res.Type == entity.TransactionIN {
		evType = ports.NotificationSuccess
	}
	msg := fmt.Sprintf("%d línea(s), lote %s", items, res.BatchID)
	if res.WaybillNumber != "" {
		msg += ", nota " + res.WaybillNumber
	}
	s.dispatch(ports.AdminEvent{
		Title:     eventTitles[res.Type],
		Message:   msg,
		Type:      evType,
		Link:      "/warehouse",
		BatchID:   res.BatchID,
		WaybillID: res.WaybillID,
		TxType:    res.Type,
		Items:     items,
	})

	s.log.Info().
		Str("batch_id", res.BatchID).
		Str("type", string(res.Type)).
		Str("waybill", res.WaybillNumber).
		Int("items", items).
		Msg("lote registrado")
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
