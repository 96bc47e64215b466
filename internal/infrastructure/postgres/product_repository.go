package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = "id, name, category, unit, current_stock, min_stock_alert, created_at, updated_at"

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, category, unit, current_stock, min_stock_alert, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Category, p.Unit, p.CurrentStock, p.MinStockAlert, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
}

// GetByName obtiene un producto por nombre exacto (ya normalizado).
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	return r.getOne(ctx, "SELECT "+productColumns+" FROM products WHERE name = $1", name)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1 FOR UPDATE", id)
}

// List productos ordenados por nombre.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	if err := pgxscan.Select(ctx, r.q, &out, "SELECT "+productColumns+" FROM products ORDER BY name"); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

// ListLowStock productos en o por debajo del umbral.
func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	query := "SELECT " + productColumns + " FROM products WHERE current_stock <= min_stock_alert ORDER BY current_stock, name"
	if err := pgxscan.Select(ctx, r.q, &out, query); err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return out, nil
}

// AdjustStock suma delta en una sola sentencia condicionada a no quedar en negativo.
func (r *ProductRepo) AdjustStock(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE products
		SET current_stock = current_stock + $2, updated_at = $3
		WHERE id = $1 AND current_stock + $2 >= 0
		RETURNING current_stock`
	var stock decimal.Decimal
	err := r.q.QueryRow(ctx, query, id, delta, time.Now()).Scan(&stock)
	if err != nil {
		if pgxscan.NotFound(err) || isCheckViolation(err) {
			return decimal.Zero, r.adjustError(ctx, id)
		}
		return decimal.Zero, fmt.Errorf("adjust stock: %w", err)
	}
	return stock, nil
}

// SetStock reescribe la proyección (conciliación).
func (r *ProductRepo) SetStock(ctx context.Context, id string, qty decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, "UPDATE products SET current_stock = $2, updated_at = $3 WHERE id = $1", id, qty, time.Now())
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("set stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// adjustError distingue producto inexistente de saldo insuficiente.
func (r *ProductRepo) adjustError(ctx context.Context, id string) error {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return domain.ErrInsufficientStock
}

func (r *ProductRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	var p entity.Product
	if err := pgxscan.Get(ctx, r.q, &p, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}
