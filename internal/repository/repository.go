package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HARSHPATEL-54/SGP4/internal/domain"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrDuplicateEmail     = errors.New("user already exists with this email")
	ErrDuplicateOwner     = errors.New("restaurant already exists for this user")
)

// OrderRepository defines the order store operations the services need.
// Consumers define this interface, not the MongoDB implementation.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.OrderStatus) (*domain.Order, error)
	ConfirmPayment(ctx context.Context, id primitive.ObjectID, totalAmount int64) error
	CancelIfPending(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*domain.User, error)
	GetByResetToken(ctx context.Context, token string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *domain.Restaurant) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error)
	GetByOwner(ctx context.Context, userID primitive.ObjectID) (*domain.Restaurant, error)
	Update(ctx context.Context, restaurant *domain.Restaurant) error
	Search(ctx context.Context, text string) ([]*domain.Restaurant, error)
	AddMenuItem(ctx context.Context, restaurantID primitive.ObjectID, item domain.MenuItem) error
	UpdateMenuItem(ctx context.Context, restaurantID primitive.ObjectID, item domain.MenuItem) error
}
