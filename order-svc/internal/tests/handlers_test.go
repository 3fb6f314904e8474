package tests

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpapi "chatchat-order/order-svc/internal/api/http"
	"chatchat-order/order-svc/internal/domain"
	"chatchat-order/order-svc/internal/mocks"
	"chatchat-order/order-svc/internal/service"
	"chatchat-order/order-svc/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const staffToken = "s3cret"

var staffHeader = map[string]string{"Authorization": "Bearer " + staffToken}

func testMenu() []domain.MenuItem {
	return []domain.MenuItem{
		{ID: 3, Name: "Cake", Price: 45, Available: true, SortOrder: 2},
		{ID: 1, Name: "Tea", Price: 30, Available: true, SortOrder: 1},
		{ID: 2, Name: "Sold-out Pie", Price: 50, Available: false, SortOrder: 0},
	}
}

func setupRouter(store service.Store) http.Handler {
	svc := service.NewOrderService(store, nil, nil)
	handler := httpapi.NewHandler(svc, service.TableQR{BaseURL: "https://order.example.com"}, httpapi.NewStaffAuth(staffToken))
	return httpapi.NewRouter(handler, httpapi.RouterConfig{})
}

func setupMockRouter(svc *mocks.OrderServiceInterface, qr service.QRGenerator) (*httpapi.Handler, http.Handler) {
	handler := httpapi.NewHandler(svc, qr, httpapi.NewStaffAuth(staffToken))
	return handler, httpapi.NewRouter(handler, httpapi.RouterConfig{})
}

func doRequest(router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func placeOrder(t *testing.T, router http.Handler, body string) domain.OrderReceipt {
	t.Helper()
	recorder := doRequest(router, http.MethodPost, "/order", body, nil)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var receipt domain.OrderReceipt
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&receipt))
	return receipt
}

func listOrders(t *testing.T, router http.Handler) []domain.Order {
	t.Helper()
	recorder := doRequest(router, http.MethodGet, "/orders", "", staffHeader)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var orders []domain.Order
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&orders))
	return orders
}

func errorMessage(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	return body["error"]
}

func assertCORS(t *testing.T, recorder *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, PATCH, OPTIONS", recorder.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization", recorder.Header().Get("Access-Control-Allow-Headers"))
}

func TestHandler_getMenu(t *testing.T) {
	store := storage.NewMemoryStore(testMenu(), []domain.Setting{{Key: "restaurant_name", Value: "Corner Cafe"}})
	router := setupRouter(store)

	recorder := doRequest(router, http.MethodGet, "/menu", "", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assertCORS(t, recorder)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "application/json")

	var menu domain.Menu
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&menu))
	assert.Equal(t, "Corner Cafe", menu.RestaurantName)
	require.Len(t, menu.Items, 2)
	assert.Equal(t, "Tea", menu.Items[0].Name)
	assert.Equal(t, "Cake", menu.Items[1].Name)
	for _, item := range menu.Items {
		assert.True(t, item.Available)
	}
}

func TestHandler_getMenuDefaultName(t *testing.T) {
	router := setupRouter(storage.NewMemoryStore(nil, nil))

	recorder := doRequest(router, http.MethodGet, "/menu", "", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"restaurant_name":"叙叙 chat chat","items":[]}`, recorder.Body.String())
}

func TestHandler_placeOrderThenList(t *testing.T) {
	store := storage.NewMemoryStore(testMenu(), nil)
	router := setupRouter(store)

	receipt := placeOrder(t, router, `{"items":[{"menu_item_id":1,"name":"Tea","price":30,"qty":2}]}`)

	assert.Equal(t, 60.0, receipt.Total)
	assert.Equal(t, domain.StatusNew, receipt.Status)
	_, err := uuid.Parse(receipt.OrderID)
	require.NoError(t, err)
	assert.Equal(t, 1, store.ItemCount(receipt.OrderID))

	orders := listOrders(t, router)
	require.Len(t, orders, 1)
	assert.Equal(t, receipt.OrderID, orders[0].ID)
	assert.Equal(t, domain.TakeoutTableID, orders[0].TableID)
	assert.Equal(t, 1, orders[0].GuestCount)
	assert.Equal(t, 60.0, orders[0].Total)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Tea", orders[0].Items[0].Name)
	assert.Equal(t, 2, orders[0].Items[0].Qty)
}

func TestHandler_placeOrderTotals(t *testing.T) {
	store := storage.NewMemoryStore(nil, nil)
	router := setupRouter(store)

	tests := []struct {
		name      string
		body      string
		wantTotal float64
		wantItems int
	}{
		{
			name:      "single line",
			body:      `{"items":[{"menu_item_id":1,"name":"Tea","price":30,"qty":1}]}`,
			wantTotal: 30,
			wantItems: 1,
		},
		{
			name:      "several lines with table",
			body:      `{"table_id":"A3","guest_count":3,"note":"no ice","items":[{"menu_item_id":1,"name":"Tea","price":30,"qty":3},{"menu_item_id":3,"name":"Cake","price":45.5,"qty":2}]}`,
			wantTotal: 181,
			wantItems: 2,
		},
		{
			name:      "free item",
			body:      `{"items":[{"menu_item_id":9,"name":"Water","price":0,"qty":4}]}`,
			wantTotal: 0,
			wantItems: 1,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			receipt := placeOrder(t, router, testCase.body)
			assert.Equal(t, testCase.wantTotal, receipt.Total)
			assert.Equal(t, testCase.wantItems, store.ItemCount(receipt.OrderID))

			order, ok := store.Order(receipt.OrderID)
			require.True(t, ok)
			assert.Equal(t, testCase.wantTotal, order.Total)
		})
	}
}

func TestHandler_placeOrderInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `bad json`},
		{name: "missing items", body: `{"table_id":"A1"}`},
		{name: "empty items", body: `{"items":[]}`},
		{name: "non-numeric price", body: `{"items":[{"menu_item_id":1,"name":"Tea","price":"thirty","qty":1}]}`},
		{name: "non-numeric qty", body: `{"items":[{"menu_item_id":1,"name":"Tea","price":30,"qty":"two"}]}`},
		{name: "zero qty", body: `{"items":[{"menu_item_id":1,"name":"Tea","price":30,"qty":0}]}`},
		{name: "negative price", body: `{"items":[{"menu_item_id":1,"name":"Tea","price":-30,"qty":1}]}`},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store := storage.NewMemoryStore(nil, nil)
			router := setupRouter(store)

			recorder := doRequest(router, http.MethodPost, "/order", testCase.body, nil)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Contains(t, errorMessage(t, recorder), "invalid order")
			orders, _ := store.ListActiveOrders(context.Background(), 100)
			assert.Empty(t, orders)
		})
	}
}

func TestHandler_placeOrderOutOfRange(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{
			name:      "price overflows a float total",
			body:      `{"items":[{"menu_item_id":1,"name":"Tea","price":1e308,"qty":10}]}`,
			wantError: "items[0].price failed lte",
		},
		{
			name:      "qty above limit",
			body:      `{"items":[{"menu_item_id":1,"name":"Tea","price":30,"qty":3000000000}]}`,
			wantError: "items[0].qty failed max",
		},
		{
			name:      "guest count above limit",
			body:      `{"guest_count":5000,"items":[{"menu_item_id":1,"name":"Tea","price":30,"qty":1}]}`,
			wantError: "guest_count failed max",
		},
		{
			name:      "total above column range",
			body:      `{"items":[{"menu_item_id":1,"name":"Tea","price":99999999.99,"qty":10000}]}`,
			wantError: "total exceeds 9999999999.99",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store := storage.NewMemoryStore(nil, nil)
			router := setupRouter(store)

			recorder := doRequest(router, http.MethodPost, "/order", testCase.body, nil)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Contains(t, errorMessage(t, recorder), testCase.wantError)

			recorder = doRequest(router, http.MethodGet, "/orders", "", staffHeader)
			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.JSONEq(t, `[]`, recorder.Body.String())
		})
	}
}

func TestHandler_unencodableResponseIsServerError(t *testing.T) {
	mockSvc := mocks.NewOrderServiceInterface(t)
	_, router := setupMockRouter(mockSvc, nil)

	mockSvc.On("ListOrders", mock.Anything).
		Return([]domain.Order{{ID: "o-1", Total: math.Inf(1), Items: []domain.OrderItem{}}}, nil).Once()

	recorder := doRequest(router, http.MethodGet, "/orders", "", staffHeader)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assertCORS(t, recorder)
	assert.Equal(t, "internal error", errorMessage(t, recorder))
}

func TestHandler_staffEndpointsRequireToken(t *testing.T) {
	store := storage.NewMemoryStore(nil, nil)
	router := setupRouter(store)
	receipt := placeOrder(t, router, `{"items":[{"menu_item_id":1,"name":"Tea","price":30,"qty":1}]}`)

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		headers map[string]string
	}{
		{name: "list without header", method: http.MethodGet, path: "/orders"},
		{name: "list with wrong token", method: http.MethodGet, path: "/orders", headers: map[string]string{"Authorization": "Bearer nope"}},
		{name: "list with bare token", method: http.MethodGet, path: "/orders", headers: map[string]string{"Authorization": staffToken}},
		{name: "list with lowercase scheme", method: http.MethodGet, path: "/orders", headers: map[string]string{"Authorization": "bearer " + staffToken}},
		{name: "patch without header", method: http.MethodPatch, path: "/order/" + receipt.OrderID + "/status", body: `{"status":"done"}`},
		{name: "patch with wrong token", method: http.MethodPatch, path: "/order/" + receipt.OrderID + "/status", body: `{"status":"done"}`, headers: map[string]string{"Authorization": "Bearer " + staffToken + "x"}},
		{name: "stats without header", method: http.MethodGet, path: "/stats/today"},
		{name: "qrcode without header", method: http.MethodGet, path: "/table/A1/qrcode"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := doRequest(router, testCase.method, testCase.path, testCase.body, testCase.headers)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assertCORS(t, recorder)
			assert.Equal(t, "unauthorized", errorMessage(t, recorder))
		})
	}

	order, ok := store.Order(receipt.OrderID)
	require.True(t, ok)
	assert.Equal(t, domain.StatusNew, order.Status)
}

func TestHandler_updateOrderStatus(t *testing.T) {
	store := storage.NewMemoryStore(nil, nil)
	router := setupRouter(store)
	receipt := placeOrder(t, router, `{"items":[{"menu_item_id":1,"name":"Tea","price":30,"qty":2}]}`)
	path := "/order/" + receipt.OrderID + "/status"

	tests := []struct {
		name       string
		path       string
		body       string
		wantCode   int
		wantError  string
		wantStatus domain.OrderStatus
	}{
		{name: "bogus status", path: path, body: `{"status":"bogus"}`, wantCode: http.StatusBadRequest, wantError: "invalid status", wantStatus: domain.StatusNew},
		{name: "missing status", path: path, body: `{}`, wantCode: http.StatusBadRequest, wantError: "invalid status", wantStatus: domain.StatusNew},
		{name: "malformed body", path: path, body: `status=done`, wantCode: http.StatusBadRequest, wantError: "invalid status", wantStatus: domain.StatusNew},
		{name: "to preparing", path: path, body: `{"status":"preparing"}`, wantCode: http.StatusOK, wantStatus: domain.StatusPreparing},
		{name: "back to new", path: path, body: `{"status":"new"}`, wantCode: http.StatusOK, wantStatus: domain.StatusNew},
		{name: "to done", path: path, body: `{"status":"done"}`, wantCode: http.StatusOK, wantStatus: domain.StatusDone},
		{name: "unknown order", path: "/order/" + uuid.NewString() + "/status", body: `{"status":"done"}`, wantCode: http.StatusNotFound, wantError: "order not found", wantStatus: domain.StatusDone},
		{name: "malformed order id", path: "/order/42/status", body: `{"status":"done"}`, wantCode: http.StatusNotFound, wantError: "order not found", wantStatus: domain.StatusDone},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := doRequest(router, http.MethodPatch, testCase.path, testCase.body, staffHeader)

			assert.Equal(t, testCase.wantCode, recorder.Code)
			if testCase.wantError != "" {
				assert.Equal(t, testCase.wantError, errorMessage(t, recorder))
			} else {
				assert.JSONEq(t, `{"ok":true}`, recorder.Body.String())
			}

			order, ok := store.Order(receipt.OrderID)
			require.True(t, ok)
			assert.Equal(t, testCase.wantStatus, order.Status)
		})
	}
}

func TestHandler_archivedOrdersAreHidden(t *testing.T) {
	store := storage.NewMemoryStore(nil, nil)
	router := setupRouter(store)

	kept := placeOrder(t, router, `{"items":[{"menu_item_id":1,"name":"Tea","price":30,"qty":1}]}`)
	archived := placeOrder(t, router, `{"items":[{"menu_item_id":3,"name":"Cake","price":45,"qty":1}]}`)

	recorder := doRequest(router, http.MethodPatch, "/order/"+archived.OrderID+"/status", `{"status":"archived"}`, staffHeader)
	require.Equal(t, http.StatusOK, recorder.Code)

	orders := listOrders(t, router)
	require.Len(t, orders, 1)
	assert.Equal(t, kept.OrderID, orders[0].ID)
}

func TestHandler_listOrdersLimitAndOrdering(t *testing.T) {
	store := storage.NewMemoryStore(nil, nil)
	base := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 70; i++ {
		status := domain.StatusNew
		if i%5 == 0 {
			status = domain.StatusArchived
		}
		id := uuid.NewString()
		require.NoError(t, store.CreateOrder(context.Background(), &domain.Order{
			ID:         id,
			TableID:    fmt.Sprintf("T%d", i),
			GuestCount: 1,
			Status:     status,
			Total:      30,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
			Items:      []domain.OrderItem{{OrderID: id, MenuItemID: 1, Name: "Tea", Price: 30, Qty: 1}},
		}))
	}
	router := setupRouter(store)

	orders := listOrders(t, router)

	assert.Len(t, orders, service.ActiveOrderLimit)
	for i, order := range orders {
		assert.NotEqual(t, domain.StatusArchived, order.Status)
		assert.Len(t, order.Items, 1)
		if i > 0 {
			assert.True(t, orders[i-1].CreatedAt.After(order.CreatedAt))
		}
	}
	assert.Equal(t, "T69", orders[0].TableID)
}

func TestHandler_listOrdersEmpty(t *testing.T) {
	router := setupRouter(storage.NewMemoryStore(nil, nil))

	recorder := doRequest(router, http.MethodGet, "/orders", "", staffHeader)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[]`, recorder.Body.String())
}

func TestRouter_preflight(t *testing.T) {
	router := setupRouter(storage.NewMemoryStore(nil, nil))

	tests := []struct {
		name    string
		path    string
		headers map[string]string
	}{
		{name: "known path", path: "/menu"},
		{name: "unknown path", path: "/does/not/exist"},
		{name: "staff path without token", path: "/orders"},
		{name: "doubled slash", path: "//menu"},
		{name: "dot segments", path: "/a/../b"},
		{
			name: "browser preflight",
			path: "/order/abc/status",
			headers: map[string]string{
				"Origin":                         "https://guest.example.com",
				"Access-Control-Request-Method":  "PATCH",
				"Access-Control-Request-Headers": "authorization,content-type",
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := doRequest(router, http.MethodOptions, testCase.path, "", testCase.headers)

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			assert.Empty(t, recorder.Body.String())
			assert.Empty(t, recorder.Header().Get("Location"))
			assertCORS(t, recorder)
		})
	}
}

func TestRouter_browserPreflightIsCacheable(t *testing.T) {
	router := setupRouter(storage.NewMemoryStore(nil, nil))

	recorder := doRequest(router, http.MethodOptions, "/order", "", map[string]string{
		"Origin":                         "https://guest.example.com",
		"Access-Control-Request-Method":  "POST",
		"Access-Control-Request-Headers": "content-type",
	})

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "600", recorder.Header().Get("Access-Control-Max-Age"))
	assert.Contains(t, strings.Join(recorder.Header().Values("Vary"), ", "), "Origin")
	assertCORS(t, recorder)
}

func TestRouter_notFound(t *testing.T) {
	router := setupRouter(storage.NewMemoryStore(nil, nil))

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "unknown path", method: http.MethodGet, path: "/nope"},
		{name: "wrong method on menu", method: http.MethodDelete, path: "/menu"},
		{name: "get on order", method: http.MethodGet, path: "/order"},
		{name: "status without id", method: http.MethodPatch, path: "/order/status"},
		{name: "doubled slash", method: http.MethodGet, path: "//menu"},
		{name: "dot segments", method: http.MethodGet, path: "/a/../menu"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := doRequest(router, testCase.method, testCase.path, "", nil)

			assert.Equal(t, http.StatusNotFound, recorder.Code)
			assertCORS(t, recorder)
			assert.Equal(t, "not found", errorMessage(t, recorder))
		})
	}
}

func TestRouter_ignoresTrailingSlashAndQuery(t *testing.T) {
	router := setupRouter(storage.NewMemoryStore(testMenu(), nil))

	for _, path := range []string{"/menu/", "/menu?lang=zh", "/menu/?lang=zh"} {
		recorder := doRequest(router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, recorder.Code, path)
	}

	recorder := doRequest(router, http.MethodGet, "/orders/?limit=1", "", staffHeader)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouter_basePath(t *testing.T) {
	svc := service.NewOrderService(storage.NewMemoryStore(testMenu(), nil), nil, nil)
	handler := httpapi.NewHandler(svc, nil, httpapi.NewStaffAuth(staffToken))
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{BasePath: "/api/"})

	assert.Equal(t, http.StatusOK, doRequest(router, http.MethodGet, "/api/menu", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(router, http.MethodGet, "/menu", "", nil).Code)
	assert.Equal(t, http.StatusNoContent, doRequest(router, http.MethodOptions, "/elsewhere", "", nil).Code)
}

func TestHandler_storeNotConfigured(t *testing.T) {
	router := setupRouter(storage.UnconfiguredStore{Missing: []string{"STORE_URL", "STORE_KEY"}})

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		headers map[string]string
	}{
		{name: "menu", method: http.MethodGet, path: "/menu"},
		{name: "order", method: http.MethodPost, path: "/order", body: `{"items":[{"menu_item_id":1,"name":"Tea","price":30,"qty":1}]}`},
		{name: "orders", method: http.MethodGet, path: "/orders", headers: staffHeader},
		{name: "status", method: http.MethodPatch, path: "/order/" + uuid.NewString() + "/status", body: `{"status":"done"}`, headers: staffHeader},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := doRequest(router, testCase.method, testCase.path, testCase.body, testCase.headers)

			assert.Equal(t, http.StatusInternalServerError, recorder.Code)
			assert.Equal(t, "data store not configured: missing STORE_URL, STORE_KEY", errorMessage(t, recorder))
		})
	}
}

func TestHandler_staffTokenNotConfigured(t *testing.T) {
	svc := service.NewOrderService(storage.NewMemoryStore(nil, nil), nil, nil)
	handler := httpapi.NewHandler(svc, nil, httpapi.NewStaffAuth(""))
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{})

	recorder := doRequest(router, http.MethodGet, "/orders", "", map[string]string{"Authorization": "Bearer "})

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, errorMessage(t, recorder), "STAFF_TOKEN")
}

func TestHandler_upstreamErrorDetails(t *testing.T) {
	tests := []struct {
		name        string
		debugErrors bool
		wantMessage string
	}{
		{name: "hidden by default", debugErrors: false, wantMessage: "internal error"},
		{name: "exposed in debug", debugErrors: true, wantMessage: "failed to load menu items: connection refused"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockSvc := mocks.NewOrderServiceInterface(t)
			handler, router := setupMockRouter(mockSvc, nil)
			handler.DebugErrors = testCase.debugErrors

			mockSvc.On("Menu", mock.Anything).
				Return(nil, fmt.Errorf("failed to load menu items: %w", errors.New("connection refused"))).Once()

			recorder := doRequest(router, http.MethodGet, "/menu", "", nil)

			assert.Equal(t, http.StatusInternalServerError, recorder.Code)
			assert.Equal(t, testCase.wantMessage, errorMessage(t, recorder))
		})
	}
}

func TestHandler_panicIsRecovered(t *testing.T) {
	mockSvc := mocks.NewOrderServiceInterface(t)
	_, router := setupMockRouter(mockSvc, nil)

	mockSvc.On("ListOrders", mock.Anything).
		Run(func(mock.Arguments) { panic("boom") }).
		Return(nil, nil).Once()

	recorder := doRequest(router, http.MethodGet, "/orders", "", staffHeader)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "internal error", errorMessage(t, recorder))
}

func TestHandler_getPopularToday(t *testing.T) {
	mockSvc := mocks.NewOrderServiceInterface(t)
	_, router := setupMockRouter(mockSvc, nil)

	mockSvc.On("PopularToday", mock.Anything).
		Return([]domain.ItemCount{{MenuItemID: 1, Name: "Tea", Qty: 12}, {MenuItemID: 3, Name: "Cake", Qty: 4}}, nil).Once()

	recorder := doRequest(router, http.MethodGet, "/stats/today", "", staffHeader)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[{"menu_item_id":1,"name":"Tea","qty":12},{"menu_item_id":3,"name":"Cake","qty":4}]`, recorder.Body.String())
}

func TestHandler_getPopularTodayWithoutTally(t *testing.T) {
	router := setupRouter(storage.NewMemoryStore(nil, nil))

	recorder := doRequest(router, http.MethodGet, "/stats/today", "", staffHeader)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, errorMessage(t, recorder), "REDIS_ADDR")
}

func TestHandler_getTableQRCode(t *testing.T) {
	mockSvc := mocks.NewOrderServiceInterface(t)
	qr := mocks.NewQRGenerator(t)
	_, router := setupMockRouter(mockSvc, qr)

	qr.On("Generate", "A1").Return([]byte("\x89PNG-data"), nil).Once()

	recorder := doRequest(router, http.MethodGet, "/table/A1/qrcode", "", staffHeader)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))
	assertCORS(t, recorder)
	assert.Equal(t, "\x89PNG-data", recorder.Body.String())
}

func TestHandler_healthCheck(t *testing.T) {
	router := setupRouter(storage.NewMemoryStore(nil, nil))

	recorder := doRequest(router, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "order-svc", body["service"])
}
