package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/reposicion-api/internal/domain/sales"
)

// ReportCache cache del reporte de desempeño. Un miss devuelve ok=false sin error.
type ReportCache interface {
	GetSalesPerformance(ctx context.Context, key string) (report *SalesPerformanceReport, ok bool, err error)
	SetSalesPerformance(ctx context.Context, key string, report *SalesPerformanceReport, ttl time.Duration) error
}

// ReportPDFGenerator genera la representación PDF del reporte.
type ReportPDFGenerator interface {
	GenerateSalesPerformancePDF(ctx context.Context, report *SalesPerformanceReport) ([]byte, error)
}

// SalesPerformanceReport reporte listo para serializar o imprimir.
type SalesPerformanceReport struct {
	StartDate time.Time               `json:"start_date"`
	EndDate   time.Time               `json:"end_date"`
	Months    int                     `json:"months"`
	SortBy    string                  `json:"sort_by"`
	Employees []sales.EmployeeSummary `json:"employees"`
}
