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

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo lotes sobre PostgreSQL.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create inserta el lote solo si la orden referenciada existe, es del mismo producto y ya está recibida.
// Si no, no se inserta nada y se devuelve domain.ErrConstraintViolation.
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO batches (purchase_order_id, product_id, expiry_date, quantity)
		SELECT po.id, po.product_id, $3, $4
		FROM purchase_orders po
		WHERE po.id = $1 AND po.product_id = $2 AND po.received
		RETURNING batch_number`,
		b.PurchaseOrderID, b.ProductID, b.ExpiryDate, b.Quantity,
	).Scan(&b.BatchNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("insert batch: %w: orden %d no recibida", domain.ErrConstraintViolation, b.PurchaseOrderID)
		}
		return writeError("insert batch", err)
	}
	return nil
}
