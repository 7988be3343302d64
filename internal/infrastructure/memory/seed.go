package memory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
)

const seedDateLayout = "2006-01-02"

// Seed datos iniciales del almacén en memoria (STORE_SEED_FILE). Fechas en YYYY-MM-DD.
type Seed struct {
	Suppliers      []seedSupplier      `json:"suppliers"`
	Products       []seedProduct       `json:"products"`
	PurchaseOrders []seedPurchaseOrder `json:"purchase_orders"`
	Employees      []seedEmployee      `json:"employees"`
	SalesOrders    []seedSalesOrder    `json:"sales_orders"`
}

type seedSupplier struct {
	ID           int64   `json:"id"`
	CompanyName  string  `json:"company_name"`
	ContactName  *string `json:"contact_name"`
	ContactTitle *string `json:"contact_title"`
	Phone        *string `json:"phone"`
	Fax          *string `json:"fax"`
	HomePage     *string `json:"home_page"`
}

type seedProduct struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	SupplierID   *int64          `json:"supplier_id"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	UnitsInStock int             `json:"units_in_stock"`
	UnitsOnOrder int             `json:"units_on_order"`
	ReorderLevel int             `json:"reorder_level"`
	Discontinued bool            `json:"discontinued"`
}

type seedPurchaseOrder struct {
	ID           int64            `json:"id"`
	OrderDate    string           `json:"order_date"`
	ProductID    int64            `json:"product_id"`
	Quantity     int              `json:"quantity"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
	ReceivedDate *string          `json:"received_date"`
}

type seedEmployee struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type seedSalesOrder struct {
	ID         int64           `json:"id"`
	EmployeeID int64           `json:"employee_id"`
	OrderDate  string          `json:"order_date"`
	Lines      []seedSalesLine `json:"lines"`
}

type seedSalesLine struct {
	ProductID int64           `json:"product_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// LoadSeedFile abre path y carga su contenido con LoadSeed.
func LoadSeedFile(s *Store, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir seed: %w", err)
	}
	defer f.Close()
	return LoadSeed(s, f)
}

// LoadSeed valida el documento completo antes de insertar: un seed inválido no deja datos a medias.
func LoadSeed(s *Store, r io.Reader) error {
	var doc Seed
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: seed: %w", domain.ErrInvalidInput, err)
	}

	orders := make([]entity.PurchaseOrder, 0, len(doc.PurchaseOrders))
	for _, po := range doc.PurchaseOrders {
		orderDate, err := parseSeedDate(po.OrderDate)
		if err != nil {
			return fmt.Errorf("orden de compra %d: %w", po.ID, err)
		}
		if po.Quantity <= 0 {
			return fmt.Errorf("%w: orden de compra %d: quantity debe ser mayor que 0", domain.ErrInvalidInput, po.ID)
		}
		order := entity.PurchaseOrder{
			ID: po.ID, OrderDate: orderDate, ProductID: po.ProductID,
			Quantity: po.Quantity, UnitCost: po.UnitCost,
		}
		if po.ReceivedDate != nil {
			received, err := parseSeedDate(*po.ReceivedDate)
			if err != nil {
				return fmt.Errorf("orden de compra %d: %w", po.ID, err)
			}
			if err := order.MarkReceived(received); err != nil {
				return err
			}
		}
		orders = append(orders, order)
	}

	sales := make([]entity.SalesOrder, 0, len(doc.SalesOrders))
	for _, so := range doc.SalesOrders {
		orderDate, err := parseSeedDate(so.OrderDate)
		if err != nil {
			return fmt.Errorf("pedido de venta %d: %w", so.ID, err)
		}
		sales = append(sales, entity.SalesOrder{ID: so.ID, EmployeeID: so.EmployeeID, OrderDate: orderDate})
	}

	for _, p := range doc.Products {
		if p.UnitsInStock < 0 || p.UnitsOnOrder < 0 {
			return fmt.Errorf("%w: producto %d: contadores negativos", domain.ErrInvalidInput, p.ID)
		}
	}

	for _, sup := range doc.Suppliers {
		s.AddSupplier(entity.Supplier(sup))
	}
	for _, p := range doc.Products {
		s.AddProduct(entity.Product(p))
	}
	for _, po := range orders {
		s.AddPurchaseOrder(po)
	}
	for _, e := range doc.Employees {
		s.AddEmployee(entity.Employee(e))
	}
	for i, so := range doc.SalesOrders {
		lines := make([]entity.SalesOrderLine, 0, len(so.Lines))
		for _, l := range so.Lines {
			lines = append(lines, entity.SalesOrderLine{ProductID: l.ProductID, UnitPrice: l.UnitPrice, Quantity: l.Quantity})
		}
		s.AddSalesOrder(sales[i], lines...)
	}
	return nil
}

func parseSeedDate(v string) (time.Time, error) {
	t, err := time.Parse(seedDateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q debe ser YYYY-MM-DD", domain.ErrInvalidInput, v)
	}
	return t, nil
}
