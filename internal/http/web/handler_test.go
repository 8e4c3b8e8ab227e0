package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
	"github.com/MrJamesThe3rd/billbook/internal/bill/store"
	"github.com/MrJamesThe3rd/billbook/internal/config"
	"github.com/MrJamesThe3rd/billbook/internal/database"
	"github.com/MrJamesThe3rd/billbook/internal/export"
	"github.com/MrJamesThe3rd/billbook/internal/http/web"
)

type testApp struct {
	router http.Handler
	bills  *bill.Service
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := database.New(config.DriverSQLite, filepath.Join(t.TempDir(), "web.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := store.New(db, config.DriverSQLite)
	require.NoError(t, s.Migrate(context.Background()))

	bills := bill.NewService(s, bill.WithClock(func() time.Time {
		return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	}))

	h, err := web.NewHandler("Billbook", bills, export.NewService(bills, "Billbook"), web.NewFlasher("test-secret"))
	require.NoError(t, err)

	r := chi.NewRouter()
	h.Routes(r)

	return &testApp{router: r, bills: bills}
}

func (a *testApp) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	return rec
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return req
}

// follow performs the redirect in rec, carrying its cookies, and returns the rendered page.
func (a *testApp) follow(t *testing.T, rec *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	t.Helper()

	require.Equal(t, http.StatusSeeOther, rec.Code)

	return a.do(httptest.NewRequest(http.MethodGet, rec.Header().Get("Location"), nil), rec.Result().Cookies()...)
}

func widgetForm() url.Values {
	return url.Values{
		"customer_name":    {"Acme"},
		"customer_address": {"1 Main St"},
		"customer_phone":   {"555-0100"},
		"bill_date":        {""},
		"due_date":         {"2026-04-14"},
		"item_name[]":      {"Widget", ""},
		"item_quantity[]":  {"2", ""},
		"item_price[]":     {"9.99", ""},
		"tax":              {"8"},
		"discount":         {""},
		"notes":            {"Net 30"},
	}
}

func TestCreateBill(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(postForm("/create_bill", widgetForm()))
	assert.Equal(t, "/view_bills", rec.Header().Get("Location"))

	page := app.follow(t, rec)
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Bill created successfully!")
	assert.Contains(t, page.Body.String(), "Acme")
	assert.Contains(t, page.Body.String(), "21.58")

	bills, err := app.bills.List(context.Background())
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "2026-03-14", bills[0].BillDate)
	assert.InDelta(t, 21.5784, bills[0].Total, 1e-9)
}

func TestCreateBill_InvalidNumberReturnsToForm(t *testing.T) {
	app := newTestApp(t)

	form := widgetForm()
	form.Set("item_quantity[]", "abc")

	rec := app.do(postForm("/create_bill", form))
	assert.Equal(t, "/create_bill", rec.Header().Get("Location"))

	page := app.follow(t, rec)
	assert.Contains(t, page.Body.String(), "invalid number format")

	bills, err := app.bills.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bills)
}

func TestCreateBill_OverflowingNumberReturnsToForm(t *testing.T) {
	app := newTestApp(t)

	form := widgetForm()
	form.Set("item_quantity[]", "1e400")

	rec := app.do(postForm("/create_bill", form))
	assert.Equal(t, "/create_bill", rec.Header().Get("Location"))

	page := app.follow(t, rec)
	assert.Contains(t, page.Body.String(), "Could not save bill")
	assert.Contains(t, page.Body.String(), "invalid number format")

	bills, err := app.bills.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bills)
}

func TestCreateBill_MissingCustomerReturnsToForm(t *testing.T) {
	app := newTestApp(t)

	form := widgetForm()
	form.Del("customer_name")

	rec := app.do(postForm("/create_bill", form))
	assert.Equal(t, "/create_bill", rec.Header().Get("Location"))

	page := app.follow(t, rec)
	assert.Contains(t, page.Body.String(), "customer name is required")
}

func TestCreateForm_PrefillsToday(t *testing.T) {
	rec := newTestApp(t).do(httptest.NewRequest(http.MethodGet, "/create_bill", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="item_name[]"`)
}

func TestBillDetail(t *testing.T) {
	app := newTestApp(t)
	app.do(postForm("/create_bill", widgetForm()))

	rec := app.do(httptest.NewRequest(http.MethodGet, "/bill/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Widget")
	assert.Contains(t, body, "19.98")
	assert.Contains(t, body, "/bill/1/pdf")
}

func TestBillDetail_NotFound(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/bill/999", nil))
	assert.Equal(t, "/view_bills", rec.Header().Get("Location"))
	assert.Contains(t, app.follow(t, rec).Body.String(), "Bill not found!")
}

func TestBillDetail_NonNumericID(t *testing.T) {
	rec := newTestApp(t).do(httptest.NewRequest(http.MethodGet, "/bill/abc", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEditBill(t *testing.T) {
	app := newTestApp(t)
	app.do(postForm("/create_bill", widgetForm()))

	rec := app.do(httptest.NewRequest(http.MethodGet, "/edit_bill/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="tax" value="8"`)

	form := widgetForm()
	form.Set("customer_name", "Globex")
	form.Set("bill_date", "2026-02-01")

	rec = app.do(postForm("/edit_bill/1", form))
	assert.Equal(t, "/bill/1", rec.Header().Get("Location"))
	assert.Contains(t, app.follow(t, rec).Body.String(), "Bill updated successfully!")

	b, err := app.bills.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Globex", b.CustomerName)
	assert.Equal(t, "2026-02-01", b.BillDate)
}

func TestEditBill_Missing(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(postForm("/edit_bill/42", widgetForm()))
	assert.Equal(t, "/view_bills", rec.Header().Get("Location"))
	assert.Contains(t, app.follow(t, rec).Body.String(), "Bill not found!")
}

func TestDeleteBill(t *testing.T) {
	app := newTestApp(t)
	app.do(postForm("/create_bill", widgetForm()))

	for range 2 {
		rec := app.do(postForm("/delete_bill/1", url.Values{}))
		assert.Equal(t, "/view_bills", rec.Header().Get("Location"))
		assert.Contains(t, app.follow(t, rec).Body.String(), "Bill deleted successfully!")
	}

	bills, err := app.bills.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bills)
}

func TestDownloads(t *testing.T) {
	app := newTestApp(t)
	app.do(postForm("/create_bill", widgetForm()))

	rec := app.do(httptest.NewRequest(http.MethodGet, "/bill/1/pdf", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentTypePDF, rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))

	rec = app.do(httptest.NewRequest(http.MethodGet, "/view_bills/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
}
