package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/reposicion-api/internal/domain/entity"
	"github.com/jhoicas/reposicion-api/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo consultas de solo lectura sobre pedidos de venta.
type SalesRepo struct {
	q Querier
}

// NewSalesRepository construye el adaptador de ventas.
func NewSalesRepository(q Querier) *SalesRepo {
	return &SalesRepo{q: q}
}

// MonthlyEmployeeSales pedidos distintos e ingreso (cantidad × precio) por empleado y mes.
// JOIN interno: empleados sin pedidos en el rango no aparecen.
func (r *SalesRepo) MonthlyEmployeeSales(ctx context.Context, start, end time.Time) ([]entity.EmployeeMonthSales, error) {
	const query = `
	SELECT
	    e.id                                              AS employee_id,
	    concat_ws(' ', e.first_name, e.last_name)         AS employee_name,
	    date_trunc('month', o.order_date)::date           AS month,
	    COUNT(DISTINCT o.id)                              AS order_count,
	    SUM(l.quantity * l.unit_price)                    AS revenue
	FROM sales_orders o
	JOIN employees         e ON e.id       = o.employee_id
	JOIN sales_order_lines l ON l.order_id = o.id
	WHERE o.order_date BETWEEN $1::date AND $2::date
	GROUP BY e.id, e.first_name, e.last_name, date_trunc('month', o.order_date)
	ORDER BY e.id, month`

	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("sales.MonthlyEmployeeSales: %w", err)
	}
	defer rows.Close()

	var results []entity.EmployeeMonthSales
	for rows.Next() {
		var row entity.EmployeeMonthSales
		if err := rows.Scan(
			&row.EmployeeID,
			&row.EmployeeName,
			&row.Month,
			&row.OrderCount,
			&row.Revenue,
		); err != nil {
			return nil, fmt.Errorf("sales.MonthlyEmployeeSales scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
