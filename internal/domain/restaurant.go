package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MenuItem prices are in the smallest currency unit. They are the only source
// of truth for monetary computation at checkout time.
type MenuItem struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       int64              `bson:"price" json:"price"`
	Image       string             `bson:"image" json:"image"`
}

// Restaurant embeds its menu items. One restaurant per owning user.
type Restaurant struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID         primitive.ObjectID `bson:"user" json:"user"`
	RestaurantName string             `bson:"restaurant_name" json:"restaurantName"`
	City           string             `bson:"city" json:"city"`
	Country        string             `bson:"country" json:"country"`
	DeliveryTime   int                `bson:"delivery_time" json:"deliveryTime"`
	Cuisines       []string           `bson:"cuisines" json:"cuisines"`
	Menus          []MenuItem         `bson:"menus" json:"menus"`
	Image          string             `bson:"image" json:"imageUrl"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

// MenuItemByID looks up an embedded menu item.
func (r *Restaurant) MenuItemByID(id primitive.ObjectID) (*MenuItem, bool) {
	for i := range r.Menus {
		if r.Menus[i].ID == id {
			return &r.Menus[i], true
		}
	}
	return nil, false
}
