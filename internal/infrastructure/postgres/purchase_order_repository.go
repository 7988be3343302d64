package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
	"github.com/jhoicas/reposicion-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes de compra sobre PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const purchaseOrderColumns = `po.id, po.order_date, po.product_id, po.quantity, po.unit_cost, po.received, po.received_date`

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	if err := row.Scan(&po.ID, &po.OrderDate, &po.ProductID, &po.Quantity,
		&po.UnitCost, &po.Received, &po.ReceivedDate); err != nil {
		return nil, err
	}
	return &po, nil
}

// GetByID obtiene una orden por ID. Devuelve nil, nil si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	po, err := scanPurchaseOrder(r.q.QueryRow(ctx,
		`SELECT `+purchaseOrderColumns+` FROM purchase_orders po WHERE po.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return po, nil
}

// FindOldestOutstandingForUpdate coincidencia por subcadena sin distinguir mayúsculas
// (strpos sobre lower(name)), sin comodines LIKE. Bloquea solo la fila de la orden.
func (r *PurchaseOrderRepo) FindOldestOutstandingForUpdate(ctx context.Context, nameFragment string, quantity int) (*entity.PurchaseOrder, error) {
	po, err := scanPurchaseOrder(r.q.QueryRow(ctx, `
		SELECT `+purchaseOrderColumns+`
		FROM purchase_orders po
		JOIN products p ON p.id = po.product_id
		WHERE strpos(lower(p.name), lower($1)) > 0
		  AND po.received = false
		  AND po.received_date IS NULL
		  AND po.quantity = $2
		ORDER BY po.order_date, po.id
		LIMIT 1
		FOR UPDATE OF po`,
		nameFragment, quantity,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, writeError("find outstanding purchase order", err)
	}
	return po, nil
}

// MarkReceived marca la orden recibida solo si sigue pendiente.
func (r *PurchaseOrderRepo) MarkReceived(ctx context.Context, id int64, on time.Time) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE purchase_orders
		SET received = true, received_date = $2
		WHERE id = $1 AND received = false AND received_date IS NULL`,
		id, on,
	)
	if err != nil {
		return writeError("mark purchase order received", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// CreateBatch inserta las órdenes en un único round-trip (pgx.Batch) y asigna los IDs generados.
func (r *PurchaseOrderRepo) CreateBatch(ctx context.Context, orders []*entity.PurchaseOrder) error {
	if len(orders) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, po := range orders {
		batch.Queue(`
			INSERT INTO purchase_orders (order_date, product_id, quantity, unit_cost, received, received_date)
			VALUES ($1, $2, $3, $4, false, NULL)
			RETURNING id`,
			po.OrderDate, po.ProductID, po.Quantity, po.UnitCost,
		)
	}

	br := r.q.SendBatch(ctx, batch)
	for _, po := range orders {
		if err := br.QueryRow().Scan(&po.ID); err != nil {
			_ = br.Close()
			return writeError("insert purchase order", err)
		}
	}
	if err := br.Close(); err != nil {
		return writeError("insert purchase orders", err)
	}
	return nil
}
