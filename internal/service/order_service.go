package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HARSHPATEL-54/SGP4/internal/auth"
	"github.com/HARSHPATEL-54/SGP4/internal/domain"
	"github.com/HARSHPATEL-54/SGP4/internal/events"
	"github.com/HARSHPATEL-54/SGP4/internal/payment"
	"github.com/HARSHPATEL-54/SGP4/internal/repository"
)

// RestaurantFinder is how the order flow reads authoritative menu data.
// Satisfied by RestaurantService, which fronts the store with the cache.
type RestaurantFinder interface {
	GetByID(ctx context.Context, id string) (*domain.Restaurant, error)
}

type CheckoutCartItem struct {
	MenuID   string `json:"menuId"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
}

type CheckoutRequest struct {
	RestaurantID    string                 `json:"restaurantId"`
	CartItems       []CheckoutCartItem     `json:"cartItems"`
	DeliveryDetails domain.DeliveryDetails `json:"deliveryDetails"`
}

type OrderService struct {
	orders      repository.OrderRepository
	restaurants RestaurantFinder
	provider    payment.Provider
	publisher   events.Publisher
	frontendURL string
}

func NewOrderService(
	orders repository.OrderRepository,
	restaurants RestaurantFinder,
	provider payment.Provider,
	publisher events.Publisher,
	frontendURL string,
) *OrderService {
	return &OrderService{
		orders:      orders,
		restaurants: restaurants,
		provider:    provider,
		publisher:   publisher,
		frontendURL: frontendURL,
	}
}

// CreateCheckoutSession validates the cart against the restaurant's live
// menu, creates a pending order and requests a hosted checkout session.
// Prices come from the menu only; whatever the client sent is discarded.
//
// The external session is created before the order is persisted, so a
// provider failure leaves no local state behind. If persisting fails after
// the session exists, the session is expired best-effort so the customer
// cannot pay for an order we never recorded.
func (s *OrderService) CreateCheckoutSession(ctx context.Context, actor auth.Actor, req *CheckoutRequest) (*payment.Session, error) {
	if req.RestaurantID == "" {
		return nil, ErrMissingRestaurantID
	}
	if len(req.CartItems) == 0 {
		return nil, ErrEmptyCart
	}

	userID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid actor id: %w", err)
	}

	restaurant, err := s.restaurants.GetByID(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	if len(restaurant.Menus) == 0 {
		return nil, ErrNoMenuItems
	}

	cartItems, lineItems, err := priceCartItems(req.CartItems, restaurant)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		RestaurantID:    restaurant.ID,
		DeliveryDetails: req.DeliveryDetails,
		CartItems:       cartItems,
		TotalAmount:     0, // set by the payment webhook once captured
		Status:          domain.OrderStatusPending,
	}

	session, err := s.provider.CreateSession(ctx, &payment.SessionParams{
		OrderID:       order.ID.Hex(),
		CustomerEmail: req.DeliveryDetails.Email,
		LineItems:     lineItems,
		SuccessURL:    s.frontendURL + "/order/status",
		CancelURL:     s.frontendURL + "/cart",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentSession, err)
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.expireSession(session.ID)
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	s.publish(ctx, events.OrderEvent{
		Type:    events.OrderCreated,
		OrderID: order.ID.Hex(),
		UserID:  actor.ID,
		Status:  string(order.Status),
	})

	return session, nil
}

// priceCartItems re-derives every line from the restaurant's current menu.
func priceCartItems(items []CheckoutCartItem, restaurant *domain.Restaurant) ([]domain.CartItem, []payment.LineItem, error) {
	cartItems := make([]domain.CartItem, 0, len(items))
	lineItems := make([]payment.LineItem, 0, len(items))

	for _, item := range items {
		menuID, err := primitive.ObjectIDFromHex(item.MenuID)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid id %q", repository.ErrMenuItemNotFound, item.MenuID)
		}
		menuItem, ok := restaurant.MenuItemByID(menuID)
		if !ok {
			return nil, nil, fmt.Errorf("%w: menu item id %s", repository.ErrMenuItemNotFound, item.MenuID)
		}
		if item.Quantity <= 0 {
			return nil, nil, fmt.Errorf("%w: quantity for %s", ErrMissingRequiredField, menuItem.Name)
		}

		cartItems = append(cartItems, domain.CartItem{
			MenuID:   menuItem.ID,
			Name:     menuItem.Name,
			Image:    menuItem.Image,
			Price:    menuItem.Price,
			Quantity: item.Quantity,
		})
		lineItems = append(lineItems, payment.LineItem{
			Name:       menuItem.Name,
			Image:      menuItem.Image,
			UnitAmount: menuItem.Price,
			Quantity:   item.Quantity,
		})
	}

	return cartItems, lineItems, nil
}

// HandleWebhookEvent verifies the provider signature and reconciles order
// state with the payment outcome. Safe under at-least-once delivery: a
// completed replay re-sets the same values, an expired replay matches
// nothing once the order left pending.
func (s *OrderService) HandleWebhookEvent(ctx context.Context, payload []byte, signature string) error {
	event, err := s.provider.ParseEvent(payload, signature)
	if err != nil {
		return err
	}

	switch event.Type {
	case payment.EventCheckoutCompleted:
		orderID, err := primitive.ObjectIDFromHex(event.OrderID)
		if err != nil {
			return fmt.Errorf("%w: bad correlation id %q", repository.ErrOrderNotFound, event.OrderID)
		}
		if err := s.orders.ConfirmPayment(ctx, orderID, event.AmountTotal); err != nil {
			return err
		}
		s.publish(ctx, events.OrderEvent{
			Type:        events.OrderConfirmed,
			OrderID:     event.OrderID,
			Status:      string(domain.OrderStatusConfirmed),
			TotalAmount: event.AmountTotal,
		})
		return nil

	case payment.EventCheckoutExpired:
		orderID, err := primitive.ObjectIDFromHex(event.OrderID)
		if err != nil {
			// Expired sessions for unknown orders are dropped silently.
			return nil
		}
		cancelled, err := s.orders.CancelIfPending(ctx, orderID)
		if err != nil {
			return err
		}
		// An expiry that matched nothing (order already confirmed, or a
		// replay) must not announce a cancellation downstream.
		if cancelled {
			s.publish(ctx, events.OrderEvent{
				Type:    events.OrderCancelled,
				OrderID: event.OrderID,
				Status:  string(domain.OrderStatusCancelled),
			})
		}
		return nil

	default:
		return nil
	}
}

// UpdateStatus lets an admin, or the owner of the order's restaurant, set
// any of the six statuses. No forward-only transition check is enforced.
func (s *OrderService) UpdateStatus(ctx context.Context, actor auth.Actor, orderID, status string) (*domain.Order, error) {
	parsed, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, repository.ErrOrderNotFound
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.Admin {
		restaurant, err := s.restaurants.GetByID(ctx, order.RestaurantID.Hex())
		if err != nil {
			return nil, err
		}
		if restaurant.UserID.Hex() != actor.ID {
			return nil, fmt.Errorf("%w to update this order", ErrNotAuthorized)
		}
	}

	updated, err := s.orders.UpdateStatus(ctx, id, parsed)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.OrderEvent{
		Type:        events.OrderStatusChanged,
		OrderID:     orderID,
		UserID:      updated.UserID.Hex(),
		Status:      string(updated.Status),
		TotalAmount: updated.TotalAmount,
	})

	return updated, nil
}

// GetOrders returns the actor's own orders, newest first.
func (s *OrderService) GetOrders(ctx context.Context, actor auth.Actor) ([]*domain.Order, error) {
	userID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid actor id: %w", err)
	}
	return s.orders.ListByUser(ctx, userID)
}

// GetOrderByID is gated to the order's owner or an admin.
func (s *OrderService) GetOrderByID(ctx context.Context, actor auth.Actor, orderID string) (*domain.Order, error) {
	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, repository.ErrOrderNotFound
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.UserID.Hex() != actor.ID && !actor.Admin {
		return nil, fmt.Errorf("%w to view this order", ErrNotAuthorized)
	}

	return order, nil
}

// GetAllOrders is admin-only.
func (s *OrderService) GetAllOrders(ctx context.Context, actor auth.Actor) ([]*domain.Order, error) {
	if !actor.Admin {
		return nil, fmt.Errorf("%w to access all orders", ErrNotAuthorized)
	}
	return s.orders.ListAll(ctx)
}

func (s *OrderService) publish(ctx context.Context, event events.OrderEvent) {
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish order event",
			"event_type", event.Type, "order_id", event.OrderID, "error", err)
	}
}

func (s *OrderService) expireSession(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.provider.ExpireSession(ctx, sessionID); err != nil {
		slog.Warn("failed to expire orphaned checkout session",
			"session_id", sessionID, "error", err)
	}
}
