package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/HARSHPATEL-54/SGP4/internal/auth"
	"github.com/HARSHPATEL-54/SGP4/internal/domain"
	"github.com/HARSHPATEL-54/SGP4/internal/payment"
	"github.com/HARSHPATEL-54/SGP4/internal/service"
)

// OrderService is what the order endpoints need from the service layer.
type OrderService interface {
	CreateCheckoutSession(ctx context.Context, actor auth.Actor, req *service.CheckoutRequest) (*payment.Session, error)
	HandleWebhookEvent(ctx context.Context, payload []byte, signature string) error
	UpdateStatus(ctx context.Context, actor auth.Actor, orderID, status string) (*domain.Order, error)
	GetOrders(ctx context.Context, actor auth.Actor) ([]*domain.Order, error)
	GetOrderByID(ctx context.Context, actor auth.Actor, orderID string) (*domain.Order, error)
	GetAllOrders(ctx context.Context, actor auth.Actor) ([]*domain.Order, error)
}

type OrderHandler struct {
	orders  OrderService
	timeout time.Duration
}

func NewOrderHandler(orders OrderService, timeout time.Duration) *OrderHandler {
	return &OrderHandler{
		orders:  orders,
		timeout: timeout,
	}
}

type checkoutResponse struct {
	Success bool             `json:"success"`
	Session *payment.Session `json:"session"`
}

// POST /api/v1/checkout/create-session
func (h *OrderHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	actor, ok := actorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req service.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	session, err := h.orders.CreateCheckoutSession(ctx, actor, &req)
	if err != nil {
		respondServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, checkoutResponse{Success: true, Session: session})
}

// POST /api/v1/webhook
//
// The payment provider calls this with a raw payload and a signature header.
// A signature failure is a 400 with error text and never touches state.
func (h *OrderHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read webhook payload", http.StatusBadRequest)
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	if err := h.orders.HandleWebhookEvent(ctx, payload, signature); err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			http.Error(w, "Webhook error: "+err.Error(), http.StatusBadRequest)
			return
		}
		respondServiceError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

type orderResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Order   *domain.Order `json:"order"`
}

type ordersResponse struct {
	Success bool            `json:"success"`
	Orders  []*domain.Order `json:"orders"`
}

// GET /api/v1/orders
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	actor, ok := actorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	orders, err := h.orders.GetOrders(ctx, actor)
	if err != nil {
		respondServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, ordersResponse{Success: true, Orders: orders})
}

// GET /api/v1/orders/all
func (h *OrderHandler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	actor, ok := actorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	orders, err := h.orders.GetAllOrders(ctx, actor)
	if err != nil {
		respondServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, ordersResponse{Success: true, Orders: orders})
}

// GET /api/v1/orders/{orderID}
func (h *OrderHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	actor, ok := actorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "orderID is required")
		return
	}

	order, err := h.orders.GetOrderByID(ctx, actor, orderID)
	if err != nil {
		respondServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, orderResponse{Success: true, Order: order})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/v1/orders/{orderID}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	actor, ok := actorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	orderID := chi.URLParam(r, "orderID")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Status == "" {
		respondError(w, http.StatusBadRequest, "Status is required")
		return
	}

	order, err := h.orders.UpdateStatus(ctx, actor, orderID, req.Status)
	if err != nil {
		respondServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, orderResponse{
		Success: true,
		Message: "Order status updated successfully",
		Order:   order,
	})
}
