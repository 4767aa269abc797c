package orders

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/joao-fontenele/supplychain/internal/domain"
)

func newTestHandler() (*Handler, *fakeRepo) {
	repo := newFakeRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(NewService(repo), logger), repo
}

func newOrderMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/orders", h.HandleList)
	mux.HandleFunc("POST /api/orders", h.HandleCreate)
	mux.HandleFunc("GET /api/orders/count", h.HandleCount)
	mux.HandleFunc("GET /api/orders/{id}", h.HandleGet)
	mux.HandleFunc("PUT /api/orders/{id}", h.HandleUpdate)
	mux.HandleFunc("DELETE /api/orders/{id}", h.HandleDelete)
	mux.HandleFunc("GET /api/dashboard/summary", h.HandleDashboard)
	return mux
}

func TestHandleCreateOrder(t *testing.T) {
	t.Run("creates an order", func(t *testing.T) {
		handler, _ := newTestHandler()
		mux := newOrderMux(handler)

		body := `{"customer_name": "Ada", "total_amount": 300, "status": "pending",
			"items": [{"name": "Bolt", "quantity": 2, "price": 150}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var created domain.Order
		if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if created.ID == "" {
			t.Error("expected order ID to be set")
		}
		if created.OrderDate.IsZero() {
			t.Error("expected order date to be defaulted")
		}
		if len(created.Items) != 1 || created.Items[0].Name != "Bolt" {
			t.Errorf("unexpected line items: %+v", created.Items)
		}
	})

	t.Run("rejects invalid body", func(t *testing.T) {
		handler, _ := newTestHandler()
		mux := newOrderMux(handler)

		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("rejects missing customer name", func(t *testing.T) {
		handler, _ := newTestHandler()
		mux := newOrderMux(handler)

		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"total_amount": 100}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestHandleGetOrder(t *testing.T) {
	handler, repo := newTestHandler()
	mux := newOrderMux(handler)

	order := validOrder()
	if err := repo.Create(context.Background(), &order); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+order.ID, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders/missing", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestHandleDeleteOrder(t *testing.T) {
	handler, repo := newTestHandler()
	mux := newOrderMux(handler)

	order := validOrder()
	if err := repo.Create(context.Background(), &order); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/orders/"+order.ID, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/orders/"+order.ID, nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestHandleCountOrders(t *testing.T) {
	handler, repo := newTestHandler()
	mux := newOrderMux(handler)

	pending := validOrder()
	shipped := validOrder()
	shipped.Status = domain.OrderStatusShipped
	shipped.PaymentStatus = domain.PaymentStatusPaid
	for _, order := range []domain.Order{pending, shipped} {
		if err := repo.Create(context.Background(), &order); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	cases := []struct {
		name  string
		query string
		code  int
		count int64
	}{
		{"by status", "?status=pending", http.StatusOK, 1},
		{"by payment status", "?paymentStatus=paid", http.StatusOK, 1},
		{"unknown status counts zero", "?status=bogus", http.StatusOK, 0},
		{"missing parameter", "", http.StatusBadRequest, 0},
		{"both parameters", "?status=pending&paymentStatus=paid", http.StatusBadRequest, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/orders/count"+tc.query, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tc.code {
				t.Fatalf("expected status %d, got %d: %s", tc.code, rec.Code, rec.Body.String())
			}
			if tc.code != http.StatusOK {
				return
			}

			var resp map[string]int64
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp["count"] != tc.count {
				t.Errorf("expected count %d, got %d", tc.count, resp["count"])
			}
		})
	}
}

func TestHandleDashboardSummary(t *testing.T) {
	handler, repo := newTestHandler()
	mux := newOrderMux(handler)

	first := validOrder()
	first.TotalAmount = 10000
	first.PaymentStatus = domain.PaymentStatusPaid
	second := validOrder()
	second.TotalAmount = 5000
	second.Status = domain.OrderStatusShipped
	for _, order := range []domain.Order{first, second} {
		if err := repo.Create(context.Background(), &order); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp dashboardResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalOrders != 2 || resp.TotalRevenue != 15000 {
		t.Errorf("unexpected totals: %+v", resp)
	}
	if resp.PendingOrders != 1 || resp.ShippedOrders != 1 {
		t.Errorf("unexpected status counts: %+v", resp)
	}
	if resp.PaidOrders != 1 || resp.UnpaidOrders != 1 {
		t.Errorf("unexpected payment counts: %+v", resp)
	}
}
