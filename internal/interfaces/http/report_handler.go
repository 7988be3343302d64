package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reposicion-api/internal/application/analytics"
	"github.com/jhoicas/reposicion-api/internal/application/dto"
	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/sales"
)

// ReportHandler reportes de desempeño de ventas.
type ReportHandler struct {
	uc *analytics.SalesPerformanceUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.SalesPerformanceUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// SalesPerformance godoc
// @Summary      Desempeño mensual de ventas por empleado
// @Description  Promedios por mes, totales y meses pico en [start_date, end_date].
//
//	Orden opcional: basis+metric (average|total|max, sales|revenue) o sort_by en texto libre.
//
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  true   "Inicio (YYYY-MM-DD)"
// @Param        end_date    query  string  true   "Fin (YYYY-MM-DD)"
// @Param        sort_by     query  string  false  "Ej: average revenue"
// @Param        basis       query  string  false  "average|total|max"
// @Param        metric      query  string  false  "sales|revenue"
// @Success      200  {object}  dto.SalesPerformanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/sales-performance [get]
func (h *ReportHandler) SalesPerformance(c *fiber.Ctx) error {
	q, err := parseSalesPerformanceQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	report, err := h.uc.Report(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toSalesPerformanceResponse(report))
}

// SalesPerformancePDF godoc
// @Summary      Desempeño mensual de ventas por empleado (PDF)
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        start_date  query  string  true   "Inicio (YYYY-MM-DD)"
// @Param        end_date    query  string  true   "Fin (YYYY-MM-DD)"
// @Param        sort_by     query  string  false  "Ej: average revenue"
// @Param        basis       query  string  false  "average|total|max"
// @Param        metric      query  string  false  "sales|revenue"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/sales-performance/pdf [get]
func (h *ReportHandler) SalesPerformancePDF(c *fiber.Ctx) error {
	q, err := parseSalesPerformanceQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	b, err := h.uc.ReportPDF(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	filename := fmt.Sprintf("desempeno-ventas-%s-%s.pdf", q.Start.Format(dto.DateLayout), q.End.Format(dto.DateLayout))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(b)
}

// parseSalesPerformanceQuery basis/metric tienen prioridad sobre sort_by.
func parseSalesPerformanceQuery(c *fiber.Ctx) (analytics.SalesPerformanceQuery, error) {
	var req dto.SalesPerformanceRequest
	if err := c.QueryParser(&req); err != nil {
		return analytics.SalesPerformanceQuery{}, fmt.Errorf("%w: parámetros de consulta inválidos", domain.ErrInvalidInput)
	}
	start, err := time.Parse(dto.DateLayout, req.StartDate)
	if err != nil {
		return analytics.SalesPerformanceQuery{}, fmt.Errorf("%w: start_date debe ser YYYY-MM-DD", domain.ErrInvalidInput)
	}
	end, err := time.Parse(dto.DateLayout, req.EndDate)
	if err != nil {
		return analytics.SalesPerformanceQuery{}, fmt.Errorf("%w: end_date debe ser YYYY-MM-DD", domain.ErrInvalidInput)
	}

	var key sales.SortKey
	if strings.TrimSpace(req.Basis) != "" || strings.TrimSpace(req.Metric) != "" {
		key, err = sales.NewSortKey(req.Basis, req.Metric)
	} else {
		key, err = sales.ParseSortKey(req.SortBy)
	}
	if err != nil {
		return analytics.SalesPerformanceQuery{}, err
	}
	return analytics.SalesPerformanceQuery{Start: start, End: end, Sort: key}, nil
}

func toSalesPerformanceResponse(r *analytics.SalesPerformanceReport) dto.SalesPerformanceResponse {
	employees := make([]dto.EmployeeSummaryDTO, 0, len(r.Employees))
	for _, e := range r.Employees {
		employees = append(employees, dto.EmployeeSummaryDTO{
			EmployeeID:        e.EmployeeID,
			EmployeeName:      e.EmployeeName,
			AvgMonthlySales:   e.AvgMonthlySales,
			AvgMonthlyRevenue: e.AvgMonthlyRevenue,
			TotalSales:        e.TotalSales,
			TotalRevenue:      e.TotalRevenue,
			MaxMonthlySales:   e.MaxMonthlySales,
			PeakSalesMonths:   e.PeakSalesMonths,
			MaxMonthlyRevenue: e.MaxMonthlyRevenue,
			PeakRevenueMonth:  e.PeakRevenueMonth,
		})
	}
	return dto.SalesPerformanceResponse{
		Period: dto.PeriodDTO{
			StartDate: r.StartDate.Format(dto.DateLayout),
			EndDate:   r.EndDate.Format(dto.DateLayout),
		},
		Months:    r.Months,
		SortBy:    r.SortBy,
		Employees: employees,
	}
}
