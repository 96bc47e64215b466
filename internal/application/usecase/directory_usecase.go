package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/navbahor-erp/internal/application/dto"
	"github.com/jhoicas/navbahor-erp/internal/application/ports"
	"github.com/jhoicas/navbahor-erp/internal/application/warehouse"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/access"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/ledger"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
	"github.com/jhoicas/navbahor-erp/pkg/phone"
	"github.com/jhoicas/navbahor-erp/pkg/textnorm"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// detailTransactions asientos recientes en las fichas de fermer y brigadier.
const detailTransactions = 100

// DirectoryUseCase altas, fichas y listados de fermers, brigadieres, contornos y contratos.
// El usuario y su perfil se crean y editan en la misma transacción.
type DirectoryUseCase struct {
	tx           warehouse.TxRunner
	farmers      repository.FarmerRepository
	brigadiers   repository.BrigadierRepository
	contours     repository.ContourRepository
	contracts    repository.ContractRepository
	transactions repository.TransactionRepository
	hash         func(string) (string, error)
	defaultAdr   string
	cache        ports.ViewCache
	log          zerolog.Logger
}

// NewDirectoryUseCase construye el caso de uso. hash por defecto bcrypt; cache puede ser nil.
func NewDirectoryUseCase(
	tx warehouse.TxRunner,
	farmers repository.FarmerRepository,
	brigadiers repository.BrigadierRepository,
	contours repository.ContourRepository,
	contracts repository.ContractRepository,
	transactions repository.TransactionRepository,
	cfg warehouse.Config,
	cache ports.ViewCache,
	log zerolog.Logger,
) *DirectoryUseCase {
	d := warehouse.DefaultConfig()
	if cfg.HashPassword == nil {
		cfg.HashPassword = d.HashPassword
	}
	if cfg.FarmerDefaultAddress == "" {
		cfg.FarmerDefaultAddress = d.FarmerDefaultAddress
	}
	return &DirectoryUseCase{
		tx: tx, farmers: farmers, brigadiers: brigadiers, contours: contours,
		contracts: contracts, transactions: transactions,
		hash: cfg.HashPassword, defaultAdr: cfg.FarmerDefaultAddress, cache: cache, log: log,
	}
}

// ── fermers ──────────────────────────────────────────────────────────────────

// CreateFarmer alta de fermer con usuario FARMER (username y contraseña inicial = INN).
func (uc *DirectoryUseCase) CreateFarmer(ctx context.Context, actor access.Actor, in dto.CreateFarmerRequest) (*dto.FarmerResponse, error) {
	if err := access.Require(actor, access.ManageDirectory); err != nil {
		return nil, err
	}
	f, err := uc.farmerFields(in.FarmerProfileRequest, in.LandArea, in.ContractNumber)
	if err != nil {
		return nil, err
	}
	hash, err := uc.hash(f.INN)
	if err != nil {
		return nil, fmt.Errorf("hash de contraseña: %w", err)
	}

	now := time.Now()
	f.ID = uuid.NewString()
	f.CreatedAt = now
	err = uc.tx.Run(ctx, func(ctx context.Context, r warehouse.TxRepos) error {
		u := &entity.User{
			ID:           uuid.NewString(),
			Username:     f.INN,
			PasswordHash: hash,
			FullName:     f.DisplayName(),
			Role:         entity.RoleFarmer,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := r.Users.Create(ctx, u); err != nil {
			return err
		}
		f.UserID = u.ID
		return r.Farmers.Create(ctx, f)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: el INN %s ya está registrado", domain.ErrConflict, f.INN)
		}
		return nil, err
	}
	uc.log.Info().Str("farmer_id", f.ID).Str("inn", f.INN).Msg("fermer registrado")
	out := dto.FromFarmer(f)
	return &out, nil
}

// ListFarmers fermers por nombre.
func (uc *DirectoryUseCase) ListFarmers(ctx context.Context, actor access.Actor) ([]dto.FarmerResponse, error) {
	if err := access.Require(actor, access.ViewDirectory); err != nil {
		return nil, err
	}
	list, err := uc.farmers.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FarmerResponse, 0, len(list))
	for _, f := range list {
		out = append(out, dto.FromFarmer(f))
	}
	return out, nil
}

// GetFarmer ficha con contratos (año descendente) y últimos asientos. El fermer solo ve la suya.
func (uc *DirectoryUseCase) GetFarmer(ctx context.Context, actor access.Actor, id string) (*dto.FarmerDetailResponse, error) {
	if err := access.RequireFarmer(actor, access.ViewFarmer, id); err != nil {
		return nil, err
	}
	f, err := uc.farmer(ctx, uc.farmers, id)
	if err != nil {
		return nil, err
	}
	contracts, err := uc.contracts.ListByFarmer(ctx, f.ID)
	if err != nil {
		return nil, err
	}
	txs, err := uc.transactions.List(ctx, repository.TransactionFilter{FarmerID: f.ID, Limit: detailTransactions})
	if err != nil {
		return nil, err
	}
	return &dto.FarmerDetailResponse{
		FarmerResponse: dto.FromFarmer(f),
		Contracts:      dto.FromContracts(contracts),
		Transactions:   dto.FromTransactions(txs),
	}, nil
}

// UpdateFarmer reescribe el perfil y sincroniza su usuario (username = INN, nombre visible).
func (uc *DirectoryUseCase) UpdateFarmer(ctx context.Context, actor access.Actor, id string, in dto.UpdateFarmerRequest) (*dto.FarmerResponse, error) {
	if err := access.Require(actor, access.ManageDirectory); err != nil {
		return nil, err
	}
	fields, err := uc.farmerFields(in.FarmerProfileRequest, in.LandArea, in.ContractNumber)
	if err != nil {
		return nil, err
	}
	var f *entity.Farmer
	err = uc.tx.Run(ctx, func(ctx context.Context, r warehouse.TxRepos) error {
		cur, err := uc.farmer(ctx, r.Farmers, id)
		if err != nil {
			return err
		}
		fields.ID, fields.UserID, fields.CreatedAt = cur.ID, cur.UserID, cur.CreatedAt
		if err := r.Farmers.Update(ctx, fields); err != nil {
			return err
		}
		u, err := r.Users.GetByID(ctx, cur.UserID)
		if err != nil {
			return err
		}
		if u == nil {
			return fmt.Errorf("%w: usuario del fermer %s", domain.ErrNotFound, id)
		}
		u.Username = fields.INN
		u.FullName = fields.DisplayName()
		u.UpdatedAt = time.Now()
		if err := r.Users.Update(ctx, u); err != nil {
			return err
		}
		f = fields
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: el INN %s ya está registrado", domain.ErrConflict, fields.INN)
		}
		return nil, err
	}
	uc.log.Info().Str("farmer_id", f.ID).Str("inn", f.INN).Msg("fermer actualizado")
	out := dto.FromFarmer(f)
	return &out, nil
}

// UpdateFarmerCredentials fija una nueva contraseña para el usuario del fermer.
func (uc *DirectoryUseCase) UpdateFarmerCredentials(ctx context.Context, actor access.Actor, id string, in dto.FarmerCredentialsRequest) error {
	if err := access.Require(actor, access.ManageDirectory); err != nil {
		return err
	}
	if len(in.Password) < 6 {
		return fmt.Errorf("%w: la contraseña requiere al menos 6 caracteres", domain.ErrInvalidInput)
	}
	hash, err := uc.hash(in.Password)
	if err != nil {
		return fmt.Errorf("hash de contraseña: %w", err)
	}
	return uc.tx.Run(ctx, func(ctx context.Context, r warehouse.TxRepos) error {
		f, err := uc.farmer(ctx, r.Farmers, id)
		if err != nil {
			return err
		}
		u, err := r.Users.GetByID(ctx, f.UserID)
		if err != nil {
			return err
		}
		if u == nil {
			return fmt.Errorf("%w: usuario del fermer %s", domain.ErrNotFound, id)
		}
		u.PasswordHash = hash
		u.UpdatedAt = time.Now()
		return r.Users.Update(ctx, u)
	})
}

// UpsertContract crea o reemplaza el contrato del fermer para el año.
func (uc *DirectoryUseCase) UpsertContract(ctx context.Context, actor access.Actor, farmerID string, in dto.UpsertContractRequest) (*dto.ContractResponse, error) {
	if err := access.Require(actor, access.ManageDirectory); err != nil {
		return nil, err
	}
	if in.Year < 2000 || in.Year > 2100 {
		return nil, fmt.Errorf("%w: año %d fuera de rango", domain.ErrInvalidInput, in.Year)
	}
	if in.PlanAmount.IsNegative() || !ledger.FitsScale(in.PlanAmount) {
		return nil, fmt.Errorf("%w: plan %s", domain.ErrInvalidInput, in.PlanAmount)
	}
	status := entity.ContractStatus(strings.ToUpper(strings.TrimSpace(in.Status)))
	if status == "" {
		status = entity.ContractActive
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: estado de contrato %q", domain.ErrInvalidInput, in.Status)
	}
	f, err := uc.farmer(ctx, uc.farmers, farmerID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Contract{
		ID:         uuid.NewString(),
		FarmerID:   f.ID,
		Year:       in.Year,
		PlanAmount: in.PlanAmount,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.contracts.Upsert(ctx, c); err != nil {
		return nil, err
	}
	out := dto.FromContract(c)
	return &out, nil
}

// ── brigadieres ──────────────────────────────────────────────────────────────

// CreateBrigadier alta de brigadier con usuario BRIGADIER.
func (uc *DirectoryUseCase) CreateBrigadier(ctx context.Context, actor access.Actor, in dto.CreateBrigadierRequest) (*dto.BrigadierResponse, error) {
	if err := access.Require(actor, access.ManageDirectory); err != nil {
		return nil, err
	}
	username := strings.ToLower(textnorm.Code(in.Username))
	fullName := textnorm.Name(in.FullName)
	if username == "" || fullName == "" || len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: usuario, nombre y contraseña (mínimo 6) son obligatorios", domain.ErrInvalidInput)
	}
	tel, err := phone.Normalize(in.Phone, phone.DefaultRegion)
	if err != nil {
		return nil, err
	}
	hash, err := uc.hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash de contraseña: %w", err)
	}

	now := time.Now()
	b := &entity.BrigadierProfile{
		Brigadier: entity.Brigadier{
			ID:        uuid.NewString(),
			Phone:     tel,
			Address:   textnorm.Name(in.Address),
			CreatedAt: now,
		},
		FullName: fullName,
		Username: username,
	}
	err = uc.tx.Run(ctx, func(ctx context.Context, r warehouse.TxRepos) error {
		u := &entity.User{
			ID:           uuid.NewString(),
			Username:     username,
			PasswordHash: hash,
			FullName:     fullName,
			Role:         entity.RoleBrigadier,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := r.Users.Create(ctx, u); err != nil {
			return err
		}
		b.UserID = u.ID
		return r.Brigadiers.Create(ctx, &b.Brigadier)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: el usuario %q ya existe", domain.ErrConflict, username)
		}
		return nil, err
	}
	out := dto.FromBrigadier(b)
	return &out, nil
}

// ListBrigadiers brigadieres por nombre.
func (uc *DirectoryUseCase) ListBrigadiers(ctx context.Context, actor access.Actor) ([]dto.BrigadierResponse, error) {
	if err := access.Require(actor, access.ViewDirectory); err != nil {
		return nil, err
	}
	list, err := uc.brigadiers.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BrigadierResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.FromBrigadier(b))
	}
	return out, nil
}

// GetBrigadier ficha con contornos y últimos asientos. El brigadier solo ve la suya.
func (uc *DirectoryUseCase) GetBrigadier(ctx context.Context, actor access.Actor, id string) (*dto.BrigadierDetailResponse, error) {
	if err := access.RequireBrigadier(actor, access.ViewBrigadier, id); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: brigadier %q", domain.ErrInvalidInput, id)
	}
	b, err := uc.brigadiers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: brigadier %s", domain.ErrNotFound, id)
	}
	contours, err := uc.contours.List(ctx, id)
	if err != nil {
		return nil, err
	}
	txs, err := uc.transactions.List(ctx, repository.TransactionFilter{BrigadierID: id, Limit: detailTransactions})
	if err != nil {
		return nil, err
	}
	out := &dto.BrigadierDetailResponse{
		BrigadierResponse: dto.FromBrigadier(b),
		Contours:          make([]dto.ContourResponse, 0, len(contours)),
		Transactions:      dto.FromTransactions(txs),
	}
	for _, c := range contours {
		out.Contours = append(out.Contours, dto.FromContour(c))
	}
	return out, nil
}

// ── contornos ────────────────────────────────────────────────────────────────

// CreateContour alta de contorno; el brigadier es opcional.
func (uc *DirectoryUseCase) CreateContour(ctx context.Context, actor access.Actor, in dto.CreateContourRequest) (*dto.ContourResponse, error) {
	if err := access.Require(actor, access.ManageDirectory); err != nil {
		return nil, err
	}
	number := textnorm.Code(in.Number)
	if number == "" {
		return nil, fmt.Errorf("%w: número de contorno obligatorio", domain.ErrInvalidInput)
	}
	if !in.Area.IsPositive() {
		return nil, fmt.Errorf("%w: la superficie debe ser positiva", domain.ErrInvalidInput)
	}
	brigadierID, err := uc.brigadierRef(ctx, in.BrigadierID)
	if err != nil {
		return nil, err
	}
	c := &entity.Contour{
		ID:          uuid.NewString(),
		Number:      number,
		Name:        textnorm.Name(in.Name),
		Area:        in.Area,
		BrigadierID: brigadierID,
		CreatedAt:   time.Now(),
	}
	if err := uc.contours.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: el contorno %s ya existe", domain.ErrConflict, number)
		}
		return nil, err
	}
	invalidate(uc.log, uc.cache, ports.CacheKeyMonitoring)
	out := dto.FromContour(c)
	return &out, nil
}

// AssignContour asigna o quita (brigadierID vacío) el brigadier del contorno.
func (uc *DirectoryUseCase) AssignContour(ctx context.Context, actor access.Actor, contourID, brigadierID string) (*dto.ContourResponse, error) {
	if err := access.Require(actor, access.ManageDirectory); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(contourID); err != nil {
		return nil, fmt.Errorf("%w: contorno %q", domain.ErrInvalidInput, contourID)
	}
	c, err := uc.contours.GetByID(ctx, contourID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: contorno %s", domain.ErrNotFound, contourID)
	}
	ref, err := uc.brigadierRef(ctx, brigadierID)
	if err != nil {
		return nil, err
	}
	if err := uc.contours.AssignBrigadier(ctx, contourID, ref); err != nil {
		return nil, err
	}
	c.BrigadierID = ref
	out := dto.FromContour(c)
	return &out, nil
}

// ListContours contornos; un brigadier solo ve los suyos.
func (uc *DirectoryUseCase) ListContours(ctx context.Context, actor access.Actor, brigadierID string) ([]dto.ContourResponse, error) {
	if actor.Role == entity.RoleBrigadier {
		if err := access.RequireBrigadier(actor, access.ViewFieldActivities, actor.BrigadierID); err != nil {
			return nil, err
		}
		brigadierID = actor.BrigadierID
	} else if err := access.Require(actor, access.ViewDirectory); err != nil {
		if err2 := access.Require(actor, access.ViewFieldActivities); err2 != nil {
			return nil, err
		}
	}
	list, err := uc.contours.List(ctx, brigadierID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContourResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.FromContour(c))
	}
	return out, nil
}

func (uc *DirectoryUseCase) brigadierRef(ctx context.Context, id string) (*string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: brigadier %q", domain.ErrInvalidInput, id)
	}
	b, err := uc.brigadiers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: brigadier %s", domain.ErrNotFound, id)
	}
	return &id, nil
}

// farmerFields normaliza el perfil recibido. Dirección vacía = dirección por defecto.
func (uc *DirectoryUseCase) farmerFields(p dto.FarmerProfileRequest, landArea decimal.Decimal, contract string) (*entity.Farmer, error) {
	inn := textnorm.Code(p.INN)
	if inn == "" {
		return nil, fmt.Errorf("%w: INN obligatorio", domain.ErrInvalidInput)
	}
	if landArea.IsNegative() {
		return nil, fmt.Errorf("%w: superficie negativa", domain.ErrInvalidInput)
	}
	tel, err := phone.Normalize(p.Phone, phone.DefaultRegion)
	if err != nil {
		return nil, err
	}
	address := textnorm.Name(p.Address)
	if address == "" {
		address = uc.defaultAdr
	}
	return &entity.Farmer{
		INN:            inn,
		NI:             textnorm.Name(p.NI),
		DirectorName:   textnorm.Name(p.DirectorName),
		PassportSerial: strings.ToUpper(textnorm.Code(p.PassportSerial)),
		PassportNumber: textnorm.Code(p.PassportNumber),
		PINFL:          textnorm.Code(p.PINFL),
		Address:        address,
		Phone:          tel,
		LandArea:       landArea,
		ContractNumber: textnorm.Code(contract),
	}, nil
}

func (uc *DirectoryUseCase) farmer(ctx context.Context, repo repository.FarmerRepository, id string) (*entity.Farmer, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: fermer %q", domain.ErrInvalidInput, id)
	}
	f, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("%w: fermer %s", domain.ErrNotFound, id)
	}
	return f, nil
}
