// Package memory implementa los puertos del almacén en memoria.
// Cada unidad de trabajo corre en exclusión mutua sobre una copia del estado que solo se
// publica si la función termina sin error, así que el Rollback es descartar la copia.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/reposicion-api/internal/application/inventory"
	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
	"github.com/jhoicas/reposicion-api/internal/domain/repository"
	"github.com/jhoicas/reposicion-api/internal/domain/sales"
)

var (
	_ inventory.TxRunner         = (*Store)(nil)
	_ repository.SalesRepository = (*Store)(nil)
)

type state struct {
	products        map[int64]entity.Product
	suppliers       map[int64]entity.Supplier
	orders          map[int64]entity.PurchaseOrder
	batches         []entity.Batch
	employees       map[int64]entity.Employee
	salesOrders     []entity.SalesOrder
	salesLines      []entity.SalesOrderLine
	nextOrderID     int64
	nextBatchNumber int64
}

func newState() *state {
	return &state{
		products:        make(map[int64]entity.Product),
		suppliers:       make(map[int64]entity.Supplier),
		orders:          make(map[int64]entity.PurchaseOrder),
		employees:       make(map[int64]entity.Employee),
		nextOrderID:     1,
		nextBatchNumber: 1,
	}
}

// clone copia mapas y slices. Los punteros internos de las entidades se comparten:
// ninguna operación modifica el valor apuntado, solo reemplaza el puntero.
func (s *state) clone() *state {
	c := &state{
		products:        make(map[int64]entity.Product, len(s.products)),
		suppliers:       make(map[int64]entity.Supplier, len(s.suppliers)),
		orders:          make(map[int64]entity.PurchaseOrder, len(s.orders)),
		batches:         append([]entity.Batch(nil), s.batches...),
		employees:       s.employees,
		salesOrders:     s.salesOrders,
		salesLines:      s.salesLines,
		nextOrderID:     s.nextOrderID,
		nextBatchNumber: s.nextBatchNumber,
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	return c
}

// Store almacén en memoria.
type Store struct {
	mu sync.RWMutex
	st *state
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{st: newState()}
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	orderRepo repository.PurchaseOrderRepository,
	batchRepo repository.BatchRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(&productRepo{st: work}, &orderRepo{st: work}, &batchRepo{st: work}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// ── Carga de datos (catálogo externo) ────────────────────────────────────────

// AddProduct inserta o reemplaza un producto.
func (s *Store) AddProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.products[p.ID] = p
}

// AddSupplier inserta o reemplaza un proveedor.
func (s *Store) AddSupplier(sup entity.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.suppliers[sup.ID] = sup
}

// AddPurchaseOrder inserta una orden existente (carga retroactiva) y devuelve su ID.
func (s *Store) AddPurchaseOrder(po entity.PurchaseOrder) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if po.ID == 0 {
		po.ID = s.st.nextOrderID
	}
	if po.ID >= s.st.nextOrderID {
		s.st.nextOrderID = po.ID + 1
	}
	s.st.orders[po.ID] = po
	return po.ID
}

// AddEmployee inserta un empleado.
func (s *Store) AddEmployee(e entity.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.employees[e.ID] = e
}

// AddSalesOrder inserta un pedido de venta con sus líneas.
func (s *Store) AddSalesOrder(o entity.SalesOrder, lines ...entity.SalesOrderLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.salesOrders = append(append([]entity.SalesOrder(nil), s.st.salesOrders...), o)
	lc := append([]entity.SalesOrderLine(nil), s.st.salesLines...)
	for _, l := range lines {
		l.OrderID = o.ID
		lc = append(lc, l)
	}
	s.st.salesLines = lc
}

// ── Consultas de inspección ──────────────────────────────────────────────────

// Product devuelve una copia del producto.
func (s *Store) Product(id int64) (entity.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.st.products[id]
	return p, ok
}

// PurchaseOrder devuelve una copia de la orden.
func (s *Store) PurchaseOrder(id int64) (entity.PurchaseOrder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	po, ok := s.st.orders[id]
	return po, ok
}

// PurchaseOrders devuelve todas las órdenes por ID.
func (s *Store) PurchaseOrders() []entity.PurchaseOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.PurchaseOrder, 0, len(s.st.orders))
	for _, po := range s.st.orders {
		out = append(out, po)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Batches devuelve los lotes en orden de creación.
func (s *Store) Batches() []entity.Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Batch(nil), s.st.batches...)
}

// ── SalesRepository ──────────────────────────────────────────────────────────

// MonthlyEmployeeSales implementa repository.SalesRepository.
func (s *Store) MonthlyEmployeeSales(ctx context.Context, start, end time.Time) ([]entity.EmployeeMonthSales, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	type key struct {
		employeeID int64
		month      time.Time
	}
	revenueByOrder := make(map[int64]decimal.Decimal)
	hasLines := make(map[int64]bool)
	for _, l := range s.st.salesLines {
		revenueByOrder[l.OrderID] = revenueByOrder[l.OrderID].Add(l.Revenue())
		hasLines[l.OrderID] = true
	}

	from, to := entity.Day(start), entity.Day(end)
	acc := make(map[key]*entity.EmployeeMonthSales)
	for _, o := range s.st.salesOrders {
		day := entity.Day(o.OrderDate)
		if day.Before(from) || day.After(to) || !hasLines[o.ID] {
			continue
		}
		emp, ok := s.st.employees[o.EmployeeID]
		if !ok {
			continue
		}
		k := key{employeeID: o.EmployeeID, month: sales.MonthStart(day)}
		row, ok := acc[k]
		if !ok {
			row = &entity.EmployeeMonthSales{EmployeeID: emp.ID, EmployeeName: emp.FullName(), Month: k.month}
			acc[k] = row
		}
		row.OrderCount++
		row.Revenue = row.Revenue.Add(revenueByOrder[o.ID])
	}

	out := make([]entity.EmployeeMonthSales, 0, len(acc))
	for _, r := range acc {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EmployeeID != out[j].EmployeeID {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		return out[i].Month.Before(out[j].Month)
	})
	return out, nil
}

// ── Repositorios atados a la unidad de trabajo ───────────────────────────────

type productRepo struct{ st *state }

func (r *productRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := r.st.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) AdjustStock(_ context.Context, id int64, inStockDelta, onOrderDelta int) error {
	p, ok := r.st.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.UnitsInStock += inStockDelta
	p.UnitsOnOrder += onOrderDelta
	if p.UnitsInStock < 0 || p.UnitsOnOrder < 0 {
		return domain.ErrConstraintViolation
	}
	r.st.products[id] = p
	return nil
}

func (r *productRepo) ListRestockCandidatesForUpdate(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.st.products {
		if p.Discontinued || p.ReorderLevel <= 0 || p.Available() > p.ReorderLevel {
			continue
		}
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *productRepo) ListSupplierContacts(_ context.Context, productIDs []int64) ([]entity.ProductSupplier, error) {
	out := make([]entity.ProductSupplier, 0, len(productIDs))
	for _, id := range productIDs {
		p, ok := r.st.products[id]
		if !ok {
			continue
		}
		ps := entity.ProductSupplier{ProductID: p.ID, ProductName: p.Name}
		if p.SupplierID != nil {
			if sup, ok := r.st.suppliers[*p.SupplierID]; ok {
				company := sup.CompanyName
				ps.SupplierCompany = &company
				ps.SupplierContactTitle = sup.ContactTitle
				ps.SupplierContactName = sup.ContactName
				ps.SupplierPhone = sup.Phone
				ps.SupplierFax = sup.Fax
				ps.SupplierHomePage = sup.HomePage
			}
		}
		out = append(out, ps)
	}
	return out, nil
}

type orderRepo struct{ st *state }

func (r *orderRepo) GetByID(_ context.Context, id int64) (*entity.PurchaseOrder, error) {
	po, ok := r.st.orders[id]
	if !ok {
		return nil, nil
	}
	return &po, nil
}

func (r *orderRepo) FindOldestOutstandingForUpdate(_ context.Context, nameFragment string, quantity int) (*entity.PurchaseOrder, error) {
	needle := strings.ToLower(nameFragment)
	var best *entity.PurchaseOrder
	for _, po := range r.st.orders {
		if !po.Outstanding() || po.Quantity != quantity {
			continue
		}
		p, ok := r.st.products[po.ProductID]
		if !ok || !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if best == nil || po.OrderDate.Before(best.OrderDate) ||
			(po.OrderDate.Equal(best.OrderDate) && po.ID < best.ID) {
			po := po
			best = &po
		}
	}
	return best, nil
}

func (r *orderRepo) MarkReceived(_ context.Context, id int64, on time.Time) error {
	po, ok := r.st.orders[id]
	if !ok || !po.Outstanding() {
		return domain.ErrConflict
	}
	if err := po.MarkReceived(on); err != nil {
		return domain.ErrConflict
	}
	r.st.orders[id] = po
	return nil
}

func (r *orderRepo) CreateBatch(_ context.Context, orders []*entity.PurchaseOrder) error {
	for _, po := range orders {
		if _, ok := r.st.products[po.ProductID]; !ok || po.Quantity <= 0 {
			return domain.ErrConstraintViolation
		}
		po.ID = r.st.nextOrderID
		r.st.nextOrderID++
		r.st.orders[po.ID] = *po
	}
	return nil
}

type batchRepo struct{ st *state }

func (r *batchRepo) Create(_ context.Context, b *entity.Batch) error {
	po, ok := r.st.orders[b.PurchaseOrderID]
	if !ok || !po.Received || po.ProductID != b.ProductID || b.Quantity <= 0 {
		return domain.ErrConstraintViolation
	}
	for _, existing := range r.st.batches {
		if existing.PurchaseOrderID == b.PurchaseOrderID && existing.ProductID == b.ProductID {
			return domain.ErrConstraintViolation
		}
	}
	b.BatchNumber = r.st.nextBatchNumber
	r.st.nextBatchNumber++
	r.st.batches = append(r.st.batches, *b)
	return nil
}
