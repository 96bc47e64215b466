package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
)

var _ repository.FarmerRepository = (*FarmerRepo)(nil)

const farmerColumns = `id, user_id, inn, ni, director_name, passport_serial, passport_number, pinfl,
	address, phone, land_area, contract_number, created_at`

// FarmerRepo perfiles de fermer.
type FarmerRepo struct {
	q Querier
}

// NewFarmerRepository construye el repositorio sobre pool o tx.
func NewFarmerRepository(q Querier) *FarmerRepo {
	return &FarmerRepo{q: q}
}

// Create inserta el perfil; INN o usuario repetido = ErrDuplicate.
func (r *FarmerRepo) Create(ctx context.Context, f *entity.Farmer) error {
	query := `
		INSERT INTO farmers (id, user_id, inn, ni, director_name, passport_serial, passport_number, pinfl,
			address, phone, land_area, contract_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		f.ID, f.UserID, f.INN, f.NI, f.DirectorName, f.PassportSerial, f.PassportNumber, f.PINFL,
		f.Address, f.Phone, f.LandArea, f.ContractNumber, f.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert farmer: %w", err)
	}
	return nil
}

// Update el usuario vinculado y created_at no cambian.
func (r *FarmerRepo) Update(ctx context.Context, f *entity.Farmer) error {
	query := `
		UPDATE farmers SET inn = $2, ni = $3, director_name = $4, passport_serial = $5, passport_number = $6,
			pinfl = $7, address = $8, phone = $9, land_area = $10, contract_number = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		f.ID, f.INN, f.NI, f.DirectorName, f.PassportSerial, f.PassportNumber,
		f.PINFL, f.Address, f.Phone, f.LandArea, f.ContractNumber,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update farmer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *FarmerRepo) GetByID(ctx context.Context, id string) (*entity.Farmer, error) {
	return r.getOne(ctx, "SELECT "+farmerColumns+" FROM farmers WHERE id = $1", id)
}

func (r *FarmerRepo) GetByINN(ctx context.Context, inn string) (*entity.Farmer, error) {
	return r.getOne(ctx, "SELECT "+farmerColumns+" FROM farmers WHERE inn = $1", inn)
}

func (r *FarmerRepo) GetByUserID(ctx context.Context, userID string) (*entity.Farmer, error) {
	return r.getOne(ctx, "SELECT "+farmerColumns+" FROM farmers WHERE user_id = $1", userID)
}

// List fermers por nombre a imprimir.
func (r *FarmerRepo) List(ctx context.Context) ([]*entity.Farmer, error) {
	var out []*entity.Farmer
	query := "SELECT " + farmerColumns + " FROM farmers ORDER BY COALESCE(NULLIF(ni, ''), NULLIF(director_name, ''), inn)"
	if err := pgxscan.Select(ctx, r.q, &out, query); err != nil {
		return nil, fmt.Errorf("list farmers: %w", err)
	}
	return out, nil
}

func (r *FarmerRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Farmer, error) {
	var f entity.Farmer
	if err := pgxscan.Get(ctx, r.q, &f, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get farmer: %w", err)
	}
	return &f, nil
}
