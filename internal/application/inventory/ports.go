package inventory

import (
	"context"

	"github.com/jhoicas/reposicion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Garantiza atomicidad para recepción y reposición.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
		batchRepo repository.BatchRepository,
	) error) error
}

// EventPublisher publica los hechos de inventario después del commit.
type EventPublisher interface {
	PublishReceipt(ctx context.Context, event ReceiptRecorded) error
	PublishReorders(ctx context.Context, events []ReorderPlaced) error
}

// RestockLocker evita que dos corridas de reposición se solapen entre instancias.
// Acquire devuelve domain.ErrRestockInProgress si otra corrida tiene el lock.
type RestockLocker interface {
	Acquire(ctx context.Context) (release func(), err error)
}
