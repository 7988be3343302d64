package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo con sus contadores de inventario perpetuo.
// UnitsInStock y UnitsOnOrder nunca son negativos; solo los mueven recepción y reposición.
type Product struct {
	ID           int64
	Name         string
	SupplierID   *int64          // nil si el producto no tiene proveedor asignado
	UnitPrice    decimal.Decimal // precio de venta
	UnitsInStock int
	UnitsOnOrder int
	ReorderLevel int // umbral de reorden
	Discontinued bool
}

// Available devuelve el stock disponible más lo que ya está pedido.
func (p *Product) Available() int {
	return p.UnitsInStock + p.UnitsOnOrder
}
