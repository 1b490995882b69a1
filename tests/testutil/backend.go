// Package testutil provides a fake order-management backend and order
// fixtures shared by the HTTP and integration tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/order"
)

// Credentials accepted by the fake backend
const (
	Phone        = "9876543210"
	Password     = "secret"
	BackendToken = "backend-token"
	UserID       = "u-1"
	UserName     = "Asha"
)

// OrdersJSON is the default order list of the fake backend: one pending
// order for Sharma Textiles and one completed order for Gupta Traders.
const OrdersJSON = `[
  {"id":"o-1","order_number":"ORD-001","party_name":"Sharma Textiles","date_of_order":"2026-10-01",
   "expected_delivery_date":"2026-10-10","transport":"VRL","remarks":"urgent","status":"pending",
   "order_items":[{"design_number":"D-101","color":"Red","sizes_quantities":[{"size":"M","quantity":5},{"size":"L","quantity":3}]}],
   "order_remarks":[]},
  {"id":"o-2","order_number":"ORD-002","party_name":"Gupta Traders","date_of_order":"2026-10-05",
   "expected_delivery_date":"","transport":"","remarks":"","status":"completed",
   "order_items":[{"design_number":"D-202","color":"Blue","sizes_quantities":[{"size":"XL","quantity":2}]}],
   "order_remarks":[{"id":"r-1","remark":"packed"}]}
]`

// FakeBackend stands in for the order-management REST backend. Only the
// endpoints the tests drive are served.
type FakeBackend struct {
	server *httptest.Server

	mu           sync.Mutex
	orders       []byte
	ordersStatus int
	deleted      []string
}

// NewFakeBackend starts the fake backend; it is closed when t ends
func NewFakeBackend(t testing.TB) *FakeBackend {
	t.Helper()
	f := &FakeBackend{orders: []byte(OrdersJSON), ordersStatus: http.StatusOK}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/verify-user", f.verifyUser)
	mux.HandleFunc("GET /api/orders", f.authorized(f.listOrders))
	mux.HandleFunc("DELETE /api/orders/{id}", f.authorized(f.deleteOrder))
	mux.HandleFunc("GET /api/designs/item-types", f.authorized(static(`[{"id":"it-1","name":"Shirt"}]`)))
	mux.HandleFunc("GET /api/designs/colors", f.authorized(static(`[{"id":"c-1","name":"Red","color_family":"Warm"}]`)))
	mux.HandleFunc("GET /api/designs", f.authorized(static(`[{"id":"d-1","design_number":"D-101","item_type_id":"it-1","colors":[]}]`)))
	mux.HandleFunc("GET /api/parties", f.authorized(static(`[{"id":"p-1","party_id":"P001","name":"Sharma Textiles"}]`)))
	mux.HandleFunc("GET /api/transport", f.authorized(static(`[{"id":"t-1","transport_name":"VRL"}]`)))

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

// URL returns the base URL of the fake backend
func (f *FakeBackend) URL() string {
	return f.server.URL
}

// SetOrders replaces the order list
func (f *FakeBackend) SetOrders(orders []order.Order) {
	data, err := json.Marshal(orders)
	if err != nil {
		panic(err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = data
}

// FailOrders makes the order list answer status; http.StatusOK restores it
func (f *FakeBackend) FailOrders(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ordersStatus = status
}

// Deleted returns the ids of deleted orders in call order
func (f *FakeBackend) Deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func (f *FakeBackend) verifyUser(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&creds)
	if creds.Phone != Phone || creds.Password != Password {
		writeJSON(w, http.StatusUnauthorized, `{"error":"Invalid credentials"}`)
		return
	}
	writeJSON(w, http.StatusOK, `{"token":"`+BackendToken+`","user":{"id":"`+UserID+`","name":"`+UserName+`","phone":"`+Phone+`"}}`)
}

func (f *FakeBackend) listOrders(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	status, body := f.ordersStatus, f.orders
	f.mu.Unlock()
	if status != http.StatusOK {
		writeJSON(w, status, `{"error":"database unavailable"}`)
		return
	}
	writeJSON(w, http.StatusOK, string(body))
}

func (f *FakeBackend) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id != "o-1" {
		writeJSON(w, http.StatusNotFound, `{"error":"Order not found"}`)
		return
	}
	f.mu.Lock()
	f.deleted = append(f.deleted, id)
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, `{"message":"deleted"}`)
}

func (f *FakeBackend) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+BackendToken {
			writeJSON(w, http.StatusUnauthorized, `{"error":"Unauthorized"}`)
			return
		}
		next(w, r)
	}
}

func static(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, body)
	}
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
