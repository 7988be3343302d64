package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee vendedor o miembro del personal. Solo lectura para el motor.
type Employee struct {
	ID        int64
	FirstName string
	LastName  string
}

// FullName devuelve "Nombre Apellido".
func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// SalesOrder pedido de venta atendido por un empleado.
type SalesOrder struct {
	ID         int64
	EmployeeID int64
	OrderDate  time.Time
}

// SalesOrderLine línea de un pedido de venta.
type SalesOrderLine struct {
	OrderID   int64
	ProductID int64
	UnitPrice decimal.Decimal
	Quantity  int
}

// Revenue devuelve cantidad × precio unitario.
func (l SalesOrderLine) Revenue() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// EmployeeMonthSales agregación base por empleado y mes calendario.
// Month es el primer día del mes.
type EmployeeMonthSales struct {
	EmployeeID   int64
	EmployeeName string
	Month        time.Time
	OrderCount   int
	Revenue      decimal.Decimal
}
