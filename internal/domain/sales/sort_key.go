package sales

import (
	"fmt"
	"strings"

	"github.com/jhoicas/reposicion-api/internal/domain"
)

// Basis base de agregación para ordenar el reporte.
type Basis string

// Metric métrica a ordenar.
type Metric string

const (
	BasisNone    Basis = ""
	BasisAverage Basis = "average"
	BasisTotal   Basis = "total"
	BasisMax     Basis = "max"

	MetricNone    Metric = ""
	MetricSales   Metric = "sales"
	MetricRevenue Metric = "revenue"
)

// SortKey combinación cerrada base × métrica. El valor cero significa "sin orden".
type SortKey struct {
	Basis  Basis
	Metric Metric
}

// IsZero indica que no se pidió orden.
func (k SortKey) IsZero() bool {
	return k.Basis == BasisNone && k.Metric == MetricNone
}

// String devuelve "basis_metric" o "" si no hay orden.
func (k SortKey) String() string {
	if k.IsZero() {
		return ""
	}
	return string(k.Basis) + "_" + string(k.Metric)
}

// NewSortKey valida una combinación explícita. Ambos vacíos es válido (sin orden).
func NewSortKey(basis, metric string) (SortKey, error) {
	k := SortKey{
		Basis:  Basis(strings.ToLower(strings.TrimSpace(basis))),
		Metric: Metric(strings.ToLower(strings.TrimSpace(metric))),
	}
	if k.IsZero() {
		return k, nil
	}
	switch k.Basis {
	case BasisAverage, BasisTotal, BasisMax:
	default:
		return SortKey{}, fmt.Errorf("%w: base de orden %q", domain.ErrInvalidInput, basis)
	}
	switch k.Metric {
	case MetricSales, MetricRevenue:
	default:
		return SortKey{}, fmt.Errorf("%w: métrica de orden %q", domain.ErrInvalidInput, metric)
	}
	return k, nil
}

var (
	basisTerms = map[Basis][]string{
		BasisAverage: {"avg", "average", "mean"},
		BasisTotal:   {"total", "sum"},
		BasisMax:     {"max", "peak", "highest"},
	}
	metricTerms = map[Metric][]string{
		MetricSales:   {"sales", "orders", "count"},
		MetricRevenue: {"revenue", "income", "amount"},
	}
	basisOrder  = []Basis{BasisAverage, BasisTotal, BasisMax}
	metricOrder = []Metric{MetricSales, MetricRevenue}
)

// ParseSortKey interpreta una pista de texto libre ("average revenue", "max_sales"...).
// Una base y una métrica deben coincidir para ordenar; si coincide solo una de las dos,
// o ninguna, el reporte queda sin orden. Si la pista coincide con más de una base o más
// de una métrica se rechaza con ErrInvalidInput.
func ParseSortKey(hint string) (SortKey, error) {
	h := strings.ToLower(strings.TrimSpace(hint))
	if h == "" {
		return SortKey{}, nil
	}

	var bases []Basis
	for _, b := range basisOrder {
		if containsAny(h, basisTerms[b]) {
			bases = append(bases, b)
		}
	}
	var metrics []Metric
	for _, m := range metricOrder {
		if containsAny(h, metricTerms[m]) {
			metrics = append(metrics, m)
		}
	}

	if len(bases) > 1 || len(metrics) > 1 {
		return SortKey{}, fmt.Errorf("%w: orden ambiguo %q", domain.ErrInvalidInput, hint)
	}
	if len(bases) == 0 || len(metrics) == 0 {
		return SortKey{}, nil
	}
	return SortKey{Basis: bases[0], Metric: metrics[0]}, nil
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
