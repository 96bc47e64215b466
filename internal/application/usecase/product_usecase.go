package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/navbahor-erp/internal/application/dto"
	"github.com/jhoicas/navbahor-erp/internal/application/ports"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/access"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/ledger"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
	"github.com/jhoicas/navbahor-erp/pkg/textnorm"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ProductUseCase alta de productos del catálogo. El stock solo cambia vía el libro de transacciones.
type ProductUseCase struct {
	repo  repository.ProductRepository
	cache ports.ViewCache
	log   zerolog.Logger
}

// NewProductUseCase construye el caso de uso. cache puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, cache ports.ViewCache, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, cache: cache, log: log}
}

// Create crea un producto con stock 0. El nombre es único tras normalizarlo.
func (uc *ProductUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := access.Require(actor, access.ManageCatalog); err != nil {
		return nil, err
	}
	name := textnorm.Name(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
	}
	unit := entity.Unit(in.Unit)
	if !unit.Valid() {
		return nil, fmt.Errorf("%w: unidad %q", domain.ErrInvalidInput, in.Unit)
	}
	if in.MinStockAlert.IsNegative() || !ledger.FitsScale(in.MinStockAlert) {
		return nil, fmt.Errorf("%w: umbral de alerta inválido", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: producto %q", domain.ErrConflict, name)
	}

	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          name,
		Category:      textnorm.Name(in.Category),
		Unit:          unit,
		CurrentStock:  decimal.Zero,
		MinStockAlert: in.MinStockAlert,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: producto %q", domain.ErrConflict, name)
		}
		return nil, err
	}
	invalidate(uc.log, uc.cache, ports.CacheKeyProducts, ports.CacheKeyMonitoring)
	out := dto.FromProduct(product)
	return &out, nil
}

// LowStock productos en o por debajo de su umbral de alerta.
func (uc *ProductUseCase) LowStock(ctx context.Context, actor access.Actor) ([]dto.ProductResponse, error) {
	if err := access.Require(actor, access.ViewCatalog); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.FromProduct(p))
	}
	return out, nil
}

// invalidate borra vistas dependientes; el alta ya está guardada, un fallo solo se registra.
func invalidate(log zerolog.Logger, cache ports.ViewCache, keys ...string) {
	if cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := cache.Invalidate(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("invalidar caché de vistas")
	}
}
