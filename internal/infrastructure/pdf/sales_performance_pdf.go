// Package pdf genera el reporte de desempeño de ventas en PDF.
//
// Layout de la página A4 horizontal:
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│  HEADER: Título              │  Periodo + meses + orden           │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  TABLA: Empleado | Prom. | Totales | Máximos + meses pico         │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  TOTALES: pedidos e ingreso del periodo                           │
//	└──────────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/reposicion-api/internal/application/analytics"
	"github.com/jhoicas/reposicion-api/internal/domain/sales"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 235, Green: 241, Blue: 247}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ analytics.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa analytics.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	now func() time.Time
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{now: time.Now} }

// GenerateSalesPerformancePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSalesPerformancePDF(_ context.Context, report *analytics.SalesPerformanceReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Desempeño de ventas por empleado", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(report.Employees)...)
	if len(report.Employees) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin pedidos en el periodo.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(report.Employees)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report *analytics.SalesPerformanceReport, generatedAt time.Time) core.Row {
	period := fmt.Sprintf("Periodo: %s a %s (%d meses)",
		report.StartDate.Format("02/01/2006"), report.EndDate.Format("02/01/2006"), report.Months)
	sortBy := "Orden: por empleado"
	if report.SortBy != "" {
		sortBy = "Orden: " + report.SortBy + " (desc.)"
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New("DESEMPEÑO DE VENTAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(period, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New(sortBy, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(9).Add(
		h("Empleado", 2, align.Left),
		h("Prom. pedidos", 1, align.Right),
		h("Prom. ingreso", 1, align.Right),
		h("Pedidos", 1, align.Right),
		h("Ingreso total", 2, align.Right),
		h("Máx. pedidos", 1, align.Right),
		h("Mes(es) pico pedidos", 2, align.Left),
		h("Máx. ingreso", 1, align.Right),
		h("Mes pico ingreso", 1, align.Left),
	)
}

// tableDetailRows: una fila por empleado, en el orden del reporte.
func tableDetailRows(employees []sales.EmployeeSummary) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 7.5, Align: a, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	result := make([]core.Row, 0, len(employees))
	for i, e := range employees {
		r := row.New(8).Add(
			cell(e.EmployeeName, 2, align.Left),
			cell(e.AvgMonthlySales.StringFixed(sales.AveragePlaces), 1, align.Right),
			cell("$"+formatMoney(e.AvgMonthlyRevenue), 1, align.Right),
			cell(strconv.Itoa(e.TotalSales), 1, align.Right),
			cell("$"+formatMoney(e.TotalRevenue), 2, align.Right),
			cell(strconv.Itoa(e.MaxMonthlySales), 1, align.Right),
			cell(e.PeakSalesMonths, 2, align.Left),
			cell("$"+formatMoney(e.MaxMonthlyRevenue), 1, align.Right),
			cell(e.PeakRevenueMonth, 1, align.Left),
		)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	return result
}

func totalsRows(employees []sales.EmployeeSummary) []core.Row {
	orders := 0
	revenue := decimal.Zero
	for _, e := range employees {
		orders += e.TotalSales
		revenue = revenue.Add(e.TotalRevenue)
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 1,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Right: 1, Top: 1,
		})
	}

	return []core.Row{
		row.New(7).Add(
			col.New(6),
			col.New(3).Add(label("Pedidos del periodo:")),
			col.New(3).Add(value(strconv.Itoa(orders))),
		),
		row.New(7).Add(
			col.New(6),
			col.New(3).Add(label("Ingreso del periodo:")),
			col.New(3).Add(value("$"+formatMoney(revenue))),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney dos decimales, puntos de miles y coma decimal.
// Ej: 1250000.5 → "1.250.000,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "," + frac
}
