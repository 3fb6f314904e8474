package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"chatchat-order/order-svc/internal/domain"
	"chatchat-order/order-svc/internal/service"

	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	Orders      service.OrderServiceInterface
	QR          service.QRGenerator
	Auth        StaffAuth
	DebugErrors bool
}

func NewHandler(orders service.OrderServiceInterface, qr service.QRGenerator, auth StaffAuth) *Handler {
	return &Handler{
		Orders: orders,
		QR:     qr,
		Auth:   auth,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Methods(http.MethodOptions).HandlerFunc(preflight)

	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/order", h.createOrder).Methods("POST")

	r.HandleFunc("/orders", h.staffOnly(h.getOrders)).Methods("GET")
	r.HandleFunc("/order/{id}/status", h.staffOnly(h.updateOrderStatus)).Methods("PATCH")
	r.HandleFunc("/stats/today", h.staffOnly(h.getPopularToday)).Methods("GET")
	r.HandleFunc("/table/{id}/qrcode", h.staffOnly(h.getTableQRCode)).Methods("GET")
}

func preflight(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "order-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.Orders.Menu(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, menu)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.OrderRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.fail(w, r, fmt.Errorf("%w: malformed request body: %v", domain.ErrInvalidOrder, err))
		return
	}

	receipt, err := h.Orders.PlaceOrder(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.ListOrders(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var body domain.StatusUpdate
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		h.fail(w, r, domain.ErrInvalidStatus)
		return
	}

	if err := h.Orders.UpdateStatus(r.Context(), mux.Vars(r)["id"], body.Status); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) getPopularToday(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Orders.PopularToday(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (h *Handler) getTableQRCode(w http.ResponseWriter, r *http.Request) {
	if h.QR == nil {
		h.fail(w, r, &domain.ConfigError{Component: "table QR codes", Missing: []string{"ORDER_PAGE_URL"}})
		return
	}
	png, err := h.QR.Generate(mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	setCORS(w)
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
