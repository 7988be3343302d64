package repository

import (
	"context"
	"time"

	"github.com/jhoicas/reposicion-api/internal/domain/entity"
)

// SalesRepository consultas de solo lectura sobre pedidos de venta.
type SalesRepository interface {
	// MonthlyEmployeeSales devuelve una fila por empleado y mes calendario con pedidos
	// distintos e ingreso (cantidad × precio) para pedidos con fecha en [start, end].
	// Orden: empleado, mes.
	MonthlyEmployeeSales(ctx context.Context, start, end time.Time) ([]entity.EmployeeMonthSales, error)
}
