package repository

import (
	"context"

	"github.com/jhoicas/reposicion-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las implementaciones pueden estar atadas al pool o a una transacción.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// AdjustStock suma los deltas a units_in_stock y units_on_order del producto.
	// Si algún contador quedaría negativo devuelve domain.ErrConstraintViolation.
	AdjustStock(ctx context.Context, id int64, inStockDelta, onOrderDelta int) error
	// ListRestockCandidatesForUpdate devuelve los productos activos con
	// units_in_stock + units_on_order <= reorder_level (y reorder_level > 0), bloqueados para update.
	ListRestockCandidatesForUpdate(ctx context.Context) ([]*entity.Product, error)
	// ListSupplierContacts hace LEFT JOIN con proveedores para los productos dados.
	ListSupplierContacts(ctx context.Context, productIDs []int64) ([]entity.ProductSupplier, error)
}
