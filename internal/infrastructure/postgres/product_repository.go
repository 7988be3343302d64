package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
	"github.com/jhoicas/reposicion-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, supplier_id, unit_price, units_in_stock, units_on_order, reorder_level, discontinued`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.SupplierID, &p.UnitPrice,
		&p.UnitsInStock, &p.UnitsOnOrder, &p.ReorderLevel, &p.Discontinued)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID obtiene un producto por ID. Devuelve nil, nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// AdjustStock suma los deltas a los contadores. Los CHECK (>= 0) del esquema rechazan negativos.
func (r *ProductRepo) AdjustStock(ctx context.Context, id int64, inStockDelta, onOrderDelta int) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products
		SET units_in_stock = units_in_stock + $2,
		    units_on_order = units_on_order + $3
		WHERE id = $1`,
		id, inStockDelta, onOrderDelta,
	)
	if err != nil {
		return writeError("adjust product stock", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListRestockCandidatesForUpdate productos activos en o bajo el umbral, bloqueados hasta el fin de la tx.
func (r *ProductRepo) ListRestockCandidatesForUpdate(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE NOT discontinued
		  AND reorder_level > 0
		  AND units_in_stock + units_on_order <= reorder_level
		ORDER BY id
		FOR UPDATE`)
	if err != nil {
		return nil, fmt.Errorf("list restock candidates: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ListSupplierContacts LEFT JOIN producto → proveedor; sin proveedor los campos quedan NULL.
func (r *ProductRepo) ListSupplierContacts(ctx context.Context, productIDs []int64) ([]entity.ProductSupplier, error) {
	if len(productIDs) == 0 {
		return []entity.ProductSupplier{}, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.name,
		       s.company_name, s.contact_title, s.contact_name,
		       s.phone, s.fax, s.homepage
		FROM products p
		LEFT JOIN suppliers s ON s.id = p.supplier_id
		WHERE p.id = ANY($1)
		ORDER BY p.id`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("list supplier contacts: %w", err)
	}
	defer rows.Close()

	var out []entity.ProductSupplier
	for rows.Next() {
		var ps entity.ProductSupplier
		if err := rows.Scan(&ps.ProductID, &ps.ProductName,
			&ps.SupplierCompany, &ps.SupplierContactTitle, &ps.SupplierContactName,
			&ps.SupplierPhone, &ps.SupplierFax, &ps.SupplierHomePage); err != nil {
			return nil, fmt.Errorf("scan supplier contact: %w", err)
		}
		out = append(out, ps)
	}
	return out, rows.Err()
}
