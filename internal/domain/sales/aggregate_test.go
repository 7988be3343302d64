package sales

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func row(id int64, name string, m time.Time, orders int, revenue string) entity.EmployeeMonthSales {
	return entity.EmployeeMonthSales{
		EmployeeID:   id,
		EmployeeName: name,
		Month:        m,
		OrderCount:   orders,
		Revenue:      decimal.RequireFromString(revenue),
	}
}

func fixture() []entity.EmployeeMonthSales {
	return []entity.EmployeeMonthSales{
		row(1, "Nancy Davolio", month(2017, time.March), 5, "1200.50"),
		row(1, "Nancy Davolio", month(2017, time.January), 5, "800"),
		row(1, "Nancy Davolio", month(2017, time.February), 2, "3000"),
		row(2, "Andrew Fuller", month(2017, time.January), 9, "900"),
		row(3, "Janet Leverling", month(2017, time.June), 1, "5000"),
	}
}

func TestMonthSpan(t *testing.T) {
	n, err := MonthSpan(time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	n, err = MonthSpan(time.Date(2017, 1, 31, 0, 0, 0, 0, time.UTC), time.Date(2017, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = MonthSpan(time.Date(2017, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2017, 3, 31, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "mismo mes => divisor cero")

	_, err = MonthSpan(time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSummarize_TotalesMaximosYPicos(t *testing.T) {
	got := Summarize(fixture(), 12, SortKey{})
	require.Len(t, got, 3)

	// sin orden: por ID de empleado
	nancy := got[0]
	assert.Equal(t, "Nancy Davolio", nancy.EmployeeName)
	assert.Equal(t, 12, nancy.TotalSales)
	assert.True(t, decimal.RequireFromString("5000.50").Equal(nancy.TotalRevenue))
	assert.Equal(t, 5, nancy.MaxMonthlySales)
	assert.Equal(t, "January 2017, March 2017", nancy.PeakSalesMonths)
	assert.True(t, decimal.NewFromInt(3000).Equal(nancy.MaxMonthlyRevenue))
	assert.Equal(t, "February 2017", nancy.PeakRevenueMonth)

	assert.Equal(t, int64(2), got[1].EmployeeID)
	assert.Equal(t, "January 2017", got[1].PeakSalesMonths)
}

func TestSummarize_PromedioUsaMesesDelRango(t *testing.T) {
	const span = 12
	for _, s := range Summarize(fixture(), span, SortKey{}) {
		wantSales := decimal.NewFromInt(int64(s.TotalSales)).Div(decimal.NewFromInt(span)).Round(AveragePlaces)
		wantRevenue := s.TotalRevenue.Div(decimal.NewFromInt(span)).Round(AveragePlaces)
		assert.True(t, wantSales.Equal(s.AvgMonthlySales), "avg sales de %s", s.EmployeeName)
		assert.True(t, wantRevenue.Equal(s.AvgMonthlyRevenue), "avg revenue de %s", s.EmployeeName)
	}

	nancy := Summarize(fixture(), span, SortKey{})[0]
	assert.Equal(t, "1", nancy.AvgMonthlySales.String())
	assert.Equal(t, "416.71", nancy.AvgMonthlyRevenue.String())
}

func TestSummarize_EmpateDeIngresoTomaMesMasAntiguo(t *testing.T) {
	rows := []entity.EmployeeMonthSales{
		row(4, "Margaret Peacock", month(2017, time.May), 1, "100"),
		row(4, "Margaret Peacock", month(2017, time.April), 3, "100"),
	}
	got := Summarize(rows, 2, SortKey{})
	require.Len(t, got, 1)
	assert.Equal(t, "April 2017", got[0].PeakRevenueMonth)
	assert.Equal(t, "April 2017", got[0].PeakSalesMonths)
}

func TestSummarize_Orden(t *testing.T) {
	cases := []struct {
		key  SortKey
		want []int64
	}{
		{SortKey{BasisAverage, MetricRevenue}, []int64{1, 3, 2}},
		{SortKey{BasisTotal, MetricSales}, []int64{1, 2, 3}},
		{SortKey{BasisMax, MetricSales}, []int64{2, 1, 3}},
		{SortKey{BasisMax, MetricRevenue}, []int64{3, 1, 2}},
		{SortKey{BasisAverage, MetricSales}, []int64{1, 2, 3}},
		{SortKey{BasisTotal, MetricRevenue}, []int64{1, 3, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.key.String(), func(t *testing.T) {
			got := Summarize(fixture(), 12, tc.key)
			ids := make([]int64, 0, len(got))
			for _, s := range got {
				ids = append(ids, s.EmployeeID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestSummarize_SinFilas(t *testing.T) {
	assert.Empty(t, Summarize(nil, 3, SortKey{BasisTotal, MetricSales}))
}

func TestParseSortKey(t *testing.T) {
	cases := []struct {
		hint string
		want SortKey
	}{
		{"average revenue", SortKey{BasisAverage, MetricRevenue}},
		{"AVG_SALES", SortKey{BasisAverage, MetricSales}},
		{"total sales", SortKey{BasisTotal, MetricSales}},
		{"max revenue", SortKey{BasisMax, MetricRevenue}},
		{"maximum sales", SortKey{BasisMax, MetricSales}},
		{"", SortKey{}},
		{"revenue", SortKey{}},
		{"whatever", SortKey{}},
	}
	for _, tc := range cases {
		t.Run(tc.hint, func(t *testing.T) {
			got, err := ParseSortKey(tc.hint)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseSortKey_AmbiguoSeRechaza(t *testing.T) {
	for _, hint := range []string{"average total revenue", "max sales revenue"} {
		_, err := ParseSortKey(hint)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, hint)
	}
}

func TestNewSortKey(t *testing.T) {
	k, err := NewSortKey("Average", "revenue")
	require.NoError(t, err)
	assert.Equal(t, SortKey{BasisAverage, MetricRevenue}, k)

	k, err = NewSortKey("", "")
	require.NoError(t, err)
	assert.True(t, k.IsZero())

	_, err = NewSortKey("median", "revenue")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = NewSortKey("total", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
