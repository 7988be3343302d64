package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reposicion-api/internal/application/analytics"
	"github.com/jhoicas/reposicion-api/internal/application/dto"
	"github.com/jhoicas/reposicion-api/internal/application/inventory"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
	"github.com/jhoicas/reposicion-api/internal/infrastructure/cache"
	"github.com/jhoicas/reposicion-api/internal/infrastructure/memory"
	"github.com/jhoicas/reposicion-api/internal/infrastructure/messaging"
	"github.com/jhoicas/reposicion-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/reposicion-api/internal/interfaces/http"
	"github.com/jhoicas/reposicion-api/pkg/logger"
)

func strPtr(s string) *string { return &s }

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

// newTestAPI arma la app completa sobre el almacén en memoria.
func newTestAPI(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.New()
	log := logger.Nop()

	store.AddSupplier(entity.Supplier{ID: 1, CompanyName: "Exotic Liquids", ContactName: strPtr("Charlotte Cooper")})
	store.AddProduct(entity.Product{ID: 2, Name: "Chang", SupplierID: ptrInt64(1), UnitsInStock: 17, UnitsOnOrder: 40, ReorderLevel: 25})
	store.AddProduct(entity.Product{ID: 5, Name: "Chef Anton's Gumbo Mix", UnitsInStock: 0, UnitsOnOrder: 0, ReorderLevel: 10})
	store.AddPurchaseOrder(entity.PurchaseOrder{OrderDate: day(2017, 1, 10), ProductID: 2, Quantity: 40})

	store.AddEmployee(entity.Employee{ID: 1, FirstName: "Nancy", LastName: "Davolio"})
	store.AddEmployee(entity.Employee{ID: 2, FirstName: "Andrew", LastName: "Fuller"})
	store.AddSalesOrder(entity.SalesOrder{ID: 10, EmployeeID: 1, OrderDate: day(2024, 1, 15)},
		entity.SalesOrderLine{ProductID: 2, UnitPrice: decimal.NewFromInt(10), Quantity: 10})
	store.AddSalesOrder(entity.SalesOrder{ID: 11, EmployeeID: 1, OrderDate: day(2024, 3, 2)},
		entity.SalesOrderLine{ProductID: 2, UnitPrice: decimal.NewFromInt(25), Quantity: 2})
	store.AddSalesOrder(entity.SalesOrder{ID: 12, EmployeeID: 2, OrderDate: day(2024, 2, 20)},
		entity.SalesOrderLine{ProductID: 5, UnitPrice: decimal.NewFromInt(100), Quantity: 3})

	publisher := messaging.NoopPublisher{}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ReceivePurchase:  inventory.NewReceivePurchaseUseCase(store, publisher, log),
		AutoRestock:      inventory.NewAutoRestockUseCase(store, cache.NoopLocker{}, publisher, log),
		SalesPerformance: analytics.NewSalesPerformanceUseCase(store, cache.NoopReportCache{}, 0, pdf.NewMarotoPDFGenerator(), log),
		JWTSecret:        testJWTSecret,
	})
	return app, store
}

func ptrInt64(v int64) *int64 { return &v }

func call(t *testing.T, app *fiber.App, method, target, role, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestReceiveHandler_MatchesAndMovesStock(t *testing.T) {
	app, store := newTestAPI(t)

	resp := call(t, app, http.MethodPost, "/api/inventory/receipts", "bodeguero",
		`{"product_name":"Chang","quantity":40,"expiry_date":"2017-03-08"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.ReceivePurchaseResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Matched)
	assert.Equal(t, 1, out.RowsAffected)
	assert.Equal(t, int64(2), out.ProductID)
	assert.Equal(t, 57, out.UnitsInStock)
	assert.Equal(t, 0, out.UnitsOnOrder)
	assert.NotZero(t, out.BatchNumber)

	p, ok := store.Product(2)
	require.True(t, ok)
	assert.Equal(t, 57, p.UnitsInStock)
	require.Len(t, store.Batches(), 1)
}

func TestReceiveHandler_NoMatch(t *testing.T) {
	app, store := newTestAPI(t)

	resp := call(t, app, http.MethodPost, "/api/inventory/receipts", "admin",
		`{"product_name":"Chang","quantity":41,"expiry_date":"2030-01-01"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.ReceivePurchaseResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.Matched)
	assert.Equal(t, 0, out.RowsAffected)
	assert.Empty(t, store.Batches())
}

func TestReceiveHandler_Validation(t *testing.T) {
	app, _ := newTestAPI(t)

	cases := map[string]string{
		"fecha inválida":   `{"product_name":"Chang","quantity":40,"expiry_date":"08/03/2017"}`,
		"cantidad cero":    `{"product_name":"Chang","quantity":0,"expiry_date":"2030-01-01"}`,
		"nombre en blanco": `{"product_name":"  ","quantity":40,"expiry_date":"2030-01-01"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp := call(t, app, http.MethodPost, "/api/inventory/receipts", "admin", body)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRestockHandler(t *testing.T) {
	app, store := newTestAPI(t)

	resp := call(t, app, http.MethodPost, "/api/inventory/restock", "bodeguero", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.RestockResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, 1, out.Total)
	a := out.Advice[0]
	assert.Equal(t, int64(5), a.ProductID)
	assert.Equal(t, "Chef Anton's Gumbo Mix", a.ProductName)
	assert.Equal(t, 20, a.Quantity)
	assert.Nil(t, a.SupplierCompany)

	p, _ := store.Product(5)
	assert.Equal(t, 20, p.UnitsOnOrder)
}

func TestSalesPerformanceHandler_SortedByAverageRevenue(t *testing.T) {
	app, _ := newTestAPI(t)

	resp := call(t, app, http.MethodGet,
		"/api/reports/sales-performance?start_date=2024-01-01&end_date=2024-04-01&sort_by=average%20revenue", "gerente", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.SalesPerformanceResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 3, out.Months)
	assert.Equal(t, "average_revenue", out.SortBy)
	require.Len(t, out.Employees, 2)
	assert.Equal(t, "Andrew Fuller", out.Employees[0].EmployeeName)
	assert.True(t, out.Employees[0].AvgMonthlyRevenue.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "Nancy Davolio", out.Employees[1].EmployeeName)
	assert.True(t, out.Employees[1].AvgMonthlyRevenue.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "January 2024, March 2024", out.Employees[1].PeakSalesMonths)
}

func TestSalesPerformanceHandler_BasisMetricOverridesSortBy(t *testing.T) {
	app, _ := newTestAPI(t)

	resp := call(t, app, http.MethodGet,
		"/api/reports/sales-performance?start_date=2024-01-01&end_date=2024-04-01&sort_by=average%20revenue&basis=total&metric=sales", "admin", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.SalesPerformanceResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "total_sales", out.SortBy)
	require.Len(t, out.Employees, 2)
	assert.Equal(t, "Nancy Davolio", out.Employees[0].EmployeeName)
}

func TestSalesPerformanceHandler_BadRequests(t *testing.T) {
	app, _ := newTestAPI(t)

	targets := []string{
		"/api/reports/sales-performance?start_date=2024-01-01&end_date=2024-01-20",
		"/api/reports/sales-performance?start_date=2024-05-01&end_date=2024-01-01",
		"/api/reports/sales-performance?start_date=2024-01-01",
		"/api/reports/sales-performance?start_date=2024-01-01&end_date=2024-04-01&sort_by=average%20total%20revenue",
		"/api/reports/sales-performance?start_date=2024-01-01&end_date=2024-04-01&basis=median&metric=sales",
	}
	for _, target := range targets {
		resp := call(t, app, http.MethodGet, target, "admin", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, target)
		resp.Body.Close()
	}
}

func TestSalesPerformancePDFHandler(t *testing.T) {
	app, _ := newTestAPI(t)

	resp := call(t, app, http.MethodGet,
		"/api/reports/sales-performance/pdf?start_date=2024-01-01&end_date=2024-04-01", "admin", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "%PDF"))
}
