package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/reposicion-api/internal/domain/repository"
	"github.com/jhoicas/reposicion-api/internal/domain/sales"
	"github.com/jhoicas/reposicion-api/pkg/logger"
)

// SalesPerformanceUseCase reporte mensual de desempeño por empleado.
// Solo lectura: no guarda estado entre llamadas salvo el cache opcional.
type SalesPerformanceUseCase struct {
	salesRepo repository.SalesRepository
	cache     ReportCache
	cacheTTL  time.Duration
	pdf       ReportPDFGenerator
	log       *logger.Logger
}

// NewSalesPerformanceUseCase construye el caso de uso. cacheTTL <= 0 desactiva el cache.
func NewSalesPerformanceUseCase(
	salesRepo repository.SalesRepository,
	cache ReportCache,
	cacheTTL time.Duration,
	pdf ReportPDFGenerator,
	log *logger.Logger,
) *SalesPerformanceUseCase {
	return &SalesPerformanceUseCase{
		salesRepo: salesRepo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		pdf:       pdf,
		log:       log,
	}
}

// SalesPerformanceQuery parámetros del reporte. Start y End son inclusivos.
type SalesPerformanceQuery struct {
	Start time.Time
	End   time.Time
	Sort  sales.SortKey
}

func (q SalesPerformanceQuery) cacheKey() string {
	return fmt.Sprintf("sales-performance:%s:%s:%s",
		q.Start.Format("2006-01-02"), q.End.Format("2006-01-02"), q.Sort.String())
}

// Report calcula el reporte. Errores de validación (rango de meses nulo, fechas invertidas)
// se devuelven como domain.ErrInvalidInput antes de consultar el almacén.
func (uc *SalesPerformanceUseCase) Report(ctx context.Context, q SalesPerformanceQuery) (*SalesPerformanceReport, error) {
	months, err := sales.MonthSpan(q.Start, q.End)
	if err != nil {
		return nil, err
	}

	key := q.cacheKey()
	if uc.cacheTTL > 0 {
		cached, ok, err := uc.cache.GetSalesPerformance(ctx, key)
		if err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("cache de reporte no disponible")
		} else if ok {
			return cached, nil
		}
	}

	rows, err := uc.salesRepo.MonthlyEmployeeSales(ctx, q.Start, q.End)
	if err != nil {
		return nil, fmt.Errorf("sales performance: %w", err)
	}

	report := &SalesPerformanceReport{
		StartDate: q.Start,
		EndDate:   q.End,
		Months:    months,
		SortBy:    q.Sort.String(),
		Employees: sales.Summarize(rows, months, q.Sort),
	}

	if uc.cacheTTL > 0 {
		if err := uc.cache.SetSalesPerformance(ctx, key, report, uc.cacheTTL); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar el reporte en cache")
		}
	}
	return report, nil
}

// ReportPDF calcula el reporte y lo devuelve en PDF.
func (uc *SalesPerformanceUseCase) ReportPDF(ctx context.Context, q SalesPerformanceQuery) ([]byte, error) {
	report, err := uc.Report(ctx, q)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateSalesPerformancePDF(ctx, report)
}
