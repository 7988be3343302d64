package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reposicion-api/internal/application/inventory"
	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
	"github.com/jhoicas/reposicion-api/internal/infrastructure/memory"
	"github.com/jhoicas/reposicion-api/pkg/logger"
)

func strPtr(s string) *string { return &s }
func idPtr(v int64) *int64    { return &v }

func seedCatalog(store *memory.Store) {
	store.AddSupplier(entity.Supplier{
		ID: 1, CompanyName: "Exotic Liquids",
		ContactName: strPtr("Charlotte Cooper"), ContactTitle: strPtr("Purchasing Manager"),
		Phone: strPtr("(171) 555-2222"),
	})
	// En el umbral exacto: califica.
	store.AddProduct(entity.Product{ID: 1, Name: "Chai", SupplierID: idPtr(1), UnitsInStock: 5, UnitsOnOrder: 5, ReorderLevel: 10})
	// Por encima: no califica.
	store.AddProduct(entity.Product{ID: 2, Name: "Chang", SupplierID: idPtr(1), UnitsInStock: 17, UnitsOnOrder: 40, ReorderLevel: 25})
	// Sin proveedor: califica, el aviso sale con proveedor nulo.
	store.AddProduct(entity.Product{ID: 5, Name: "Chef Anton's Gumbo Mix", UnitsInStock: 0, ReorderLevel: 8})
	// Descontinuado: nunca.
	store.AddProduct(entity.Product{ID: 9, Name: "Mishi Kobe Niku", UnitsInStock: 0, ReorderLevel: 10, Discontinued: true})
	// Sin umbral: nunca.
	store.AddProduct(entity.Product{ID: 11, Name: "Queso Cabrales", UnitsInStock: 0, ReorderLevel: 0})
}

func newRestockUC(runner inventory.TxRunner, locker inventory.RestockLocker, pub inventory.EventPublisher) *inventory.AutoRestockUseCase {
	uc := inventory.NewAutoRestockUseCase(runner, locker, pub, logger.Nop())
	uc.SetClock(func() time.Time { return fixedNow })
	return uc
}

func TestAutoRestock_OrdersTwiceTheReorderLevel(t *testing.T) {
	store := memory.New()
	seedCatalog(store)
	pub := &recordingPublisher{}
	locker := &freeLocker{}

	res, err := newRestockUC(store, locker, pub).Run(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, day(2017, 2, 20), res.OrderDate)
	assert.Equal(t, 1, locker.released)

	require.Len(t, res.Advice, 2)
	chai, gumbo := res.Advice[0], res.Advice[1]

	assert.Equal(t, "Chai", chai.ProductName)
	assert.Equal(t, 20, chai.Quantity)
	require.NotNil(t, chai.SupplierCompany)
	assert.Equal(t, "Exotic Liquids", *chai.SupplierCompany)
	require.NotNil(t, chai.SupplierContactName)
	assert.Equal(t, "Charlotte Cooper", *chai.SupplierContactName)
	assert.Nil(t, chai.SupplierFax)

	assert.Equal(t, "Chef Anton's Gumbo Mix", gumbo.ProductName)
	assert.Equal(t, 16, gumbo.Quantity)
	assert.Nil(t, gumbo.SupplierCompany)
	assert.Nil(t, gumbo.SupplierPhone)

	p1, _ := store.Product(1)
	assert.Equal(t, 25, p1.UnitsOnOrder)
	p5, _ := store.Product(5)
	assert.Equal(t, 16, p5.UnitsOnOrder)
	p2, _ := store.Product(2)
	assert.Equal(t, 40, p2.UnitsOnOrder)

	orders := store.PurchaseOrders()
	require.Len(t, orders, 2)
	for _, po := range orders {
		assert.False(t, po.Received)
		assert.Nil(t, po.ReceivedDate)
		assert.Equal(t, day(2017, 2, 20), po.OrderDate)
	}
	assert.Equal(t, orders[0].ID, chai.PurchaseOrderID)

	require.Len(t, pub.reorders, 2)
	assert.Equal(t, res.RunID, pub.reorders[0].RunID)
	assert.Equal(t, inventory.EventReorderPlaced, pub.reorders[1].Type)
}

func TestAutoRestock_NotIdempotent(t *testing.T) {
	store := memory.New()
	store.AddProduct(entity.Product{ID: 1, Name: "Chai", UnitsInStock: 0, ReorderLevel: 10})
	uc := newRestockUC(store, &freeLocker{}, &recordingPublisher{})

	_, err := uc.Run(context.Background())
	require.NoError(t, err)
	// Tras la primera corrida: 0 + 20 > 10, ya no califica.
	res, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Advice)

	// Si el pedido se cancela por fuera y vuelve a quedar bajo el umbral, se pide otra vez.
	store.AddProduct(entity.Product{ID: 1, Name: "Chai", UnitsInStock: 0, UnitsOnOrder: 0, ReorderLevel: 10})
	res, err = uc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Advice, 1)
	assert.Len(t, store.PurchaseOrders(), 2)
}

func TestAutoRestock_NothingToOrder(t *testing.T) {
	store := memory.New()
	store.AddProduct(entity.Product{ID: 2, Name: "Chang", UnitsInStock: 17, UnitsOnOrder: 40, ReorderLevel: 25})
	pub := &recordingPublisher{}

	res, err := newRestockUC(store, &freeLocker{}, pub).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Advice)
	assert.Empty(t, store.PurchaseOrders())
	assert.Empty(t, pub.reorders)
}

func TestAutoRestock_LockBusy(t *testing.T) {
	store := memory.New()
	seedCatalog(store)

	_, err := newRestockUC(store, busyLocker{}, &recordingPublisher{}).Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrRestockInProgress)
	assert.NotErrorIs(t, err, domain.ErrTransactionFailed)
	assert.Empty(t, store.PurchaseOrders())
}

// Un deadlock dentro de la tx es un fallo de la corrida, no un lock ocupado.
func TestAutoRestock_DeadlockIsTransactionFailure(t *testing.T) {
	store := memory.New()
	seedCatalog(store)
	pub := &recordingPublisher{}
	deadlock := fmt.Errorf("create purchase orders: %w: %w", domain.ErrConflict,
		&pgconn.PgError{Code: "40P01", Message: "deadlock detected"})

	_, err := newRestockUC(failingOrdersRunner{inner: store, err: deadlock}, &freeLocker{}, pub).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransactionFailed)
	assert.NotErrorIs(t, err, domain.ErrRestockInProgress)

	p1, _ := store.Product(1)
	assert.Equal(t, 5, p1.UnitsOnOrder)
	assert.Empty(t, store.PurchaseOrders())
	assert.Empty(t, pub.reorders)
}

func TestAutoRestock_FailureRollsBack(t *testing.T) {
	store := memory.New()
	seedCatalog(store)
	pub := &recordingPublisher{}

	_, err := newRestockUC(failingOrdersRunner{inner: store}, &freeLocker{}, pub).Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrTransactionFailed)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)

	p1, _ := store.Product(1)
	assert.Equal(t, 5, p1.UnitsOnOrder)
	assert.Empty(t, store.PurchaseOrders())
	assert.Empty(t, pub.reorders)
}

func TestAutoRestock_PublishFailureKeepsOrders(t *testing.T) {
	store := memory.New()
	seedCatalog(store)

	res, err := newRestockUC(store, &freeLocker{}, &recordingPublisher{err: errors.New("broker down")}).Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Advice, 2)
	assert.Len(t, store.PurchaseOrders(), 2)
}
