package repository

import (
	"context"
	"time"

	"github.com/jhoicas/reposicion-api/internal/domain/entity"
)

// PurchaseOrderRepository puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.PurchaseOrder, error)
	// FindOldestOutstandingForUpdate busca, entre las órdenes pendientes cuyo producto contiene
	// nameFragment (sin distinguir mayúsculas) y con la cantidad exacta, la de fecha más antigua,
	// y la bloquea. Devuelve nil, nil si no hay coincidencia.
	FindOldestOutstandingForUpdate(ctx context.Context, nameFragment string, quantity int) (*entity.PurchaseOrder, error)
	// MarkReceived pasa la orden a recibida con la fecha dada.
	// Si la orden ya no está pendiente devuelve domain.ErrConflict.
	MarkReceived(ctx context.Context, id int64, on time.Time) error
	// CreateBatch inserta varias órdenes y asigna su ID.
	CreateBatch(ctx context.Context, orders []*entity.PurchaseOrder) error
}
