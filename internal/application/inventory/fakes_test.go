package inventory_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/reposicion-api/internal/application/inventory"
	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
	"github.com/jhoicas/reposicion-api/internal/domain/repository"
)

type recordingPublisher struct {
	mu       sync.Mutex
	receipts []inventory.ReceiptRecorded
	reorders []inventory.ReorderPlaced
	err      error
}

func (p *recordingPublisher) PublishReceipt(_ context.Context, e inventory.ReceiptRecorded) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.receipts = append(p.receipts, e)
	return nil
}

func (p *recordingPublisher) PublishReorders(_ context.Context, events []inventory.ReorderPlaced) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.reorders = append(p.reorders, events...)
	return nil
}

type freeLocker struct{ released int }

func (l *freeLocker) Acquire(context.Context) (func(), error) {
	return func() { l.released++ }, nil
}

type busyLocker struct{}

func (busyLocker) Acquire(context.Context) (func(), error) {
	return nil, domain.ErrRestockInProgress
}

var errBatchInsert = errors.New("insert batch: disk full")

// failingBatchRunner delega en un TxRunner real pero hace fallar la inserción del lote,
// para comprobar que lo ya escrito en la unidad de trabajo se revierte.
type failingBatchRunner struct {
	inner inventory.TxRunner
}

func (r failingBatchRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	orderRepo repository.PurchaseOrderRepository,
	batchRepo repository.BatchRepository,
) error) error {
	return r.inner.Run(ctx, func(p repository.ProductRepository, o repository.PurchaseOrderRepository, _ repository.BatchRepository) error {
		return fn(p, o, failingBatchRepo{})
	})
}

type failingBatchRepo struct{}

func (failingBatchRepo) Create(context.Context, *entity.Batch) error { return errBatchInsert }

// failingOrdersRunner hace fallar la creación de órdenes de reposición con err
// (domain.ErrConstraintViolation si es nil).
type failingOrdersRunner struct {
	inner inventory.TxRunner
	err   error
}

func (r failingOrdersRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	orderRepo repository.PurchaseOrderRepository,
	batchRepo repository.BatchRepository,
) error) error {
	return r.inner.Run(ctx, func(p repository.ProductRepository, o repository.PurchaseOrderRepository, b repository.BatchRepository) error {
		err := r.err
		if err == nil {
			err = domain.ErrConstraintViolation
		}
		return fn(p, failingCreateOrders{PurchaseOrderRepository: o, err: err}, b)
	})
}

type failingCreateOrders struct {
	repository.PurchaseOrderRepository
	err error
}

func (f failingCreateOrders) CreateBatch(context.Context, []*entity.PurchaseOrder) error {
	return f.err
}
