package dto

import "github.com/shopspring/decimal"

// SalesPerformanceRequest query params de GET /api/reports/sales-performance.
// SortBy es la pista libre ("average revenue"); Basis+Metric es la forma estructurada y tiene prioridad.
type SalesPerformanceRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD, obligatorio
	EndDate   string `query:"end_date"`   // YYYY-MM-DD, obligatorio
	SortBy    string `query:"sort_by"`
	Basis     string `query:"basis"`  // average|total|max
	Metric    string `query:"metric"` // sales|revenue
}

// EmployeeSummaryDTO fila del reporte por empleado.
type EmployeeSummaryDTO struct {
	EmployeeID        int64           `json:"employee_id"`
	EmployeeName      string          `json:"employee_name"`
	AvgMonthlySales   decimal.Decimal `json:"avg_monthly_sales"`
	AvgMonthlyRevenue decimal.Decimal `json:"avg_monthly_revenue"`
	TotalSales        int             `json:"total_sales"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	MaxMonthlySales   int             `json:"max_monthly_sales"`
	PeakSalesMonths   string          `json:"peak_sales_months"`
	MaxMonthlyRevenue decimal.Decimal `json:"max_monthly_revenue"`
	PeakRevenueMonth  string          `json:"peak_revenue_month"`
}

// PeriodDTO rango de fechas del reporte.
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// SalesPerformanceResponse respuesta del reporte.
type SalesPerformanceResponse struct {
	Period    PeriodDTO            `json:"period"`
	Months    int                  `json:"months"`
	SortBy    string               `json:"sort_by,omitempty"`
	Employees []EmployeeSummaryDTO `json:"employees"`
}
