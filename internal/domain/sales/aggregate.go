package sales

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/reposicion-api/internal/domain/entity"
)

// EmployeeSummary fila del reporte de desempeño por empleado.
type EmployeeSummary struct {
	EmployeeID        int64
	EmployeeName      string
	AvgMonthlySales   decimal.Decimal
	AvgMonthlyRevenue decimal.Decimal
	TotalSales        int
	TotalRevenue      decimal.Decimal
	MaxMonthlySales   int
	PeakSalesMonths   string // meses empatados unidos por ", "
	MaxMonthlyRevenue decimal.Decimal
	PeakRevenueMonth  string
}

// AveragePlaces decimales de los promedios.
const AveragePlaces = 2

const peakSeparator = ", "

type employeeAcc struct {
	summary        EmployeeSummary
	salesPeaks     []time.Time
	revenuePeak    time.Time
	hasRevenuePeak bool
}

// Summarize consolida las filas empleado-mes en una fila por empleado.
// months es el divisor de los promedios (ver MonthSpan) y debe ser > 0.
// Los empleados sin filas no aparecen. Sin orden, las filas salen por ID de empleado.
func Summarize(rows []entity.EmployeeMonthSales, months int, key SortKey) []EmployeeSummary {
	byEmployee := make(map[int64]*employeeAcc)
	ids := make([]int64, 0)

	// Meses en orden cronológico para que las etiquetas de empate salgan ordenadas.
	sorted := make([]entity.EmployeeMonthSales, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].EmployeeID != sorted[j].EmployeeID {
			return sorted[i].EmployeeID < sorted[j].EmployeeID
		}
		return sorted[i].Month.Before(sorted[j].Month)
	})

	for _, r := range sorted {
		acc, ok := byEmployee[r.EmployeeID]
		if !ok {
			acc = &employeeAcc{summary: EmployeeSummary{EmployeeID: r.EmployeeID, EmployeeName: r.EmployeeName}}
			byEmployee[r.EmployeeID] = acc
			ids = append(ids, r.EmployeeID)
		}
		s := &acc.summary
		s.TotalSales += r.OrderCount
		s.TotalRevenue = s.TotalRevenue.Add(r.Revenue)

		switch {
		case len(acc.salesPeaks) == 0 || r.OrderCount > s.MaxMonthlySales:
			s.MaxMonthlySales = r.OrderCount
			acc.salesPeaks = []time.Time{r.Month}
		case r.OrderCount == s.MaxMonthlySales:
			acc.salesPeaks = append(acc.salesPeaks, r.Month)
		}

		// empate en ingreso: se queda el mes más antiguo
		if !acc.hasRevenuePeak || r.Revenue.GreaterThan(s.MaxMonthlyRevenue) {
			s.MaxMonthlyRevenue = r.Revenue
			acc.revenuePeak = r.Month
			acc.hasRevenuePeak = true
		}
	}

	divisor := decimal.NewFromInt(int64(months))
	out := make([]EmployeeSummary, 0, len(ids))
	for _, id := range ids {
		acc := byEmployee[id]
		s := acc.summary
		if months > 0 {
			s.AvgMonthlySales = decimal.NewFromInt(int64(s.TotalSales)).Div(divisor).Round(AveragePlaces)
			s.AvgMonthlyRevenue = s.TotalRevenue.Div(divisor).Round(AveragePlaces)
		}
		labels := make([]string, 0, len(acc.salesPeaks))
		for _, m := range acc.salesPeaks {
			labels = append(labels, MonthLabel(m))
		}
		s.PeakSalesMonths = strings.Join(labels, peakSeparator)
		s.PeakRevenueMonth = MonthLabel(acc.revenuePeak)
		out = append(out, s)
	}

	SortSummaries(out, key)
	return out
}

// SortSummaries ordena en forma descendente por el valor que indica key.
// Empates por ID de empleado. key vacío deja el orden intacto.
func SortSummaries(list []EmployeeSummary, key SortKey) {
	if key.IsZero() {
		return
	}
	value := sortValue(key)
	sort.SliceStable(list, func(i, j int) bool {
		a, b := value(list[i]), value(list[j])
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return list[i].EmployeeID < list[j].EmployeeID
	})
}

func sortValue(key SortKey) func(EmployeeSummary) decimal.Decimal {
	switch key {
	case SortKey{BasisAverage, MetricSales}:
		return func(s EmployeeSummary) decimal.Decimal { return s.AvgMonthlySales }
	case SortKey{BasisAverage, MetricRevenue}:
		return func(s EmployeeSummary) decimal.Decimal { return s.AvgMonthlyRevenue }
	case SortKey{BasisTotal, MetricSales}:
		return func(s EmployeeSummary) decimal.Decimal { return decimal.NewFromInt(int64(s.TotalSales)) }
	case SortKey{BasisTotal, MetricRevenue}:
		return func(s EmployeeSummary) decimal.Decimal { return s.TotalRevenue }
	case SortKey{BasisMax, MetricSales}:
		return func(s EmployeeSummary) decimal.Decimal { return decimal.NewFromInt(int64(s.MaxMonthlySales)) }
	default:
		return func(s EmployeeSummary) decimal.Decimal { return s.MaxMonthlyRevenue }
	}
}
