package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus tracks an order through its payment and fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "outfordelivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

var ErrInvalidOrderStatus = errors.New("invalid order status, must be one of: pending, confirmed, preparing, outfordelivery, delivered, cancelled")

// ParseOrderStatus validates a client-supplied status string.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), nil
	}
	return "", ErrInvalidOrderStatus
}

type DeliveryDetails struct {
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Contact string `bson:"contact,omitempty" json:"contact,omitempty"`
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
}

// CartItem is a priced order line. Price is captured in the smallest currency
// unit at checkout-session creation from the restaurant's menu; the value the
// client submitted is never stored.
type CartItem struct {
	MenuID   primitive.ObjectID `bson:"menu_id" json:"menuId"`
	Name     string             `bson:"name" json:"name"`
	Image    string             `bson:"image" json:"image"`
	Price    int64              `bson:"price" json:"price"`
	Quantity int64              `bson:"quantity" json:"quantity"`
}

// Order is created in pending state by the checkout flow. TotalAmount stays
// zero until the payment provider reports the captured amount.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID          primitive.ObjectID `bson:"user" json:"user"`
	RestaurantID    primitive.ObjectID `bson:"restaurant" json:"restaurant"`
	DeliveryDetails DeliveryDetails    `bson:"delivery_details" json:"deliveryDetails"`
	CartItems       []CartItem         `bson:"cart_items" json:"cartItems"`
	TotalAmount     int64              `bson:"total_amount" json:"totalAmount"`
	Status          OrderStatus        `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}
