package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HARSHPATEL-54/SGP4/internal/cache"
	"github.com/HARSHPATEL-54/SGP4/internal/domain"
	"github.com/HARSHPATEL-54/SGP4/internal/events"
	"github.com/HARSHPATEL-54/SGP4/internal/payment"
	"github.com/HARSHPATEL-54/SGP4/internal/repository"
)

// MockOrderRepository implements repository.OrderRepository for testing
type MockOrderRepository struct {
	Orders map[primitive.ObjectID]*domain.Order

	CreateErr    error
	CreatedOrder *domain.Order // Captures the order passed to Create

	ConfirmCalls []primitive.ObjectID
	CancelCalls  []primitive.ObjectID
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{Orders: make(map[primitive.ObjectID]*domain.Order)}
}

func (m *MockOrderRepository) Create(_ context.Context, order *domain.Order) error {
	m.CreatedOrder = order
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.Orders[order.ID] = order
	return nil
}

func (m *MockOrderRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Order, error) {
	order, ok := m.Orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

func (m *MockOrderRepository) ListByUser(_ context.Context, userID primitive.ObjectID) ([]*domain.Order, error) {
	var orders []*domain.Order
	for _, o := range m.Orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (m *MockOrderRepository) ListAll(_ context.Context) ([]*domain.Order, error) {
	var orders []*domain.Order
	for _, o := range m.Orders {
		orders = append(orders, o)
	}
	return orders, nil
}

func (m *MockOrderRepository) UpdateStatus(_ context.Context, id primitive.ObjectID, status domain.OrderStatus) (*domain.Order, error) {
	order, ok := m.Orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	order.Status = status
	return order, nil
}

func (m *MockOrderRepository) ConfirmPayment(_ context.Context, id primitive.ObjectID, totalAmount int64) error {
	m.ConfirmCalls = append(m.ConfirmCalls, id)
	order, ok := m.Orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	order.TotalAmount = totalAmount
	order.Status = domain.OrderStatusConfirmed
	return nil
}

func (m *MockOrderRepository) CancelIfPending(_ context.Context, id primitive.ObjectID) (bool, error) {
	m.CancelCalls = append(m.CancelCalls, id)
	order, ok := m.Orders[id]
	if !ok {
		return false, nil // matches nothing, not an error
	}
	if order.Status != domain.OrderStatusPending {
		return false, nil
	}
	order.Status = domain.OrderStatusCancelled
	return true, nil
}

// MockRestaurantFinder implements RestaurantFinder for testing
type MockRestaurantFinder struct {
	Restaurant *domain.Restaurant
	Err        error
}

func (m *MockRestaurantFinder) GetByID(_ context.Context, _ string) (*domain.Restaurant, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Restaurant, nil
}

// MockPaymentProvider implements payment.Provider for testing
type MockPaymentProvider struct {
	Session       *payment.Session
	CreateErr     error
	CreatedParams *payment.SessionParams // Captures the params passed to CreateSession

	ExpiredSessions []string

	Event    *payment.Event
	ParseErr error
}

func (m *MockPaymentProvider) CreateSession(_ context.Context, params *payment.SessionParams) (*payment.Session, error) {
	m.CreatedParams = params
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	return m.Session, nil
}

func (m *MockPaymentProvider) ExpireSession(_ context.Context, sessionID string) error {
	m.ExpiredSessions = append(m.ExpiredSessions, sessionID)
	return nil
}

func (m *MockPaymentProvider) ParseEvent(_ []byte, _ string) (*payment.Event, error) {
	if m.ParseErr != nil {
		return nil, m.ParseErr
	}
	return m.Event, nil
}

// MockPublisher implements events.Publisher for testing
type MockPublisher struct {
	Published []events.OrderEvent
	Err       error
}

func (m *MockPublisher) PublishOrderEvent(_ context.Context, event events.OrderEvent) error {
	m.Published = append(m.Published, event)
	return m.Err
}

func (m *MockPublisher) Close() error { return nil }

// MockUserRepository implements repository.UserRepository for testing
type MockUserRepository struct {
	Users map[primitive.ObjectID]*domain.User

	CreateErr   error
	CreatedUser *domain.User
	UpdateErr   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[primitive.ObjectID]*domain.User)}
}

func (m *MockUserRepository) Create(_ context.Context, user *domain.User) error {
	m.CreatedUser = user
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, ok := m.Users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *MockUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *MockUserRepository) GetByVerificationToken(_ context.Context, token string) (*domain.User, error) {
	for _, u := range m.Users {
		if u.VerificationToken == token && token != "" {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *MockUserRepository) GetByResetToken(_ context.Context, token string) (*domain.User, error) {
	for _, u := range m.Users {
		if u.ResetPasswordToken == token && token != "" {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *MockUserRepository) Update(_ context.Context, user *domain.User) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.Users[user.ID] = user
	return nil
}

// MockRestaurantRepository implements repository.RestaurantRepository for testing
type MockRestaurantRepository struct {
	Restaurants map[primitive.ObjectID]*domain.Restaurant

	CreateErr error
	AddedItem *domain.MenuItem
}

func NewMockRestaurantRepository() *MockRestaurantRepository {
	return &MockRestaurantRepository{Restaurants: make(map[primitive.ObjectID]*domain.Restaurant)}
}

func (m *MockRestaurantRepository) Create(_ context.Context, restaurant *domain.Restaurant) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	for _, r := range m.Restaurants {
		if r.UserID == restaurant.UserID {
			return repository.ErrDuplicateOwner
		}
	}
	if restaurant.ID.IsZero() {
		restaurant.ID = primitive.NewObjectID()
	}
	m.Restaurants[restaurant.ID] = restaurant
	return nil
}

func (m *MockRestaurantRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	restaurant, ok := m.Restaurants[id]
	if !ok {
		return nil, repository.ErrRestaurantNotFound
	}
	return restaurant, nil
}

func (m *MockRestaurantRepository) GetByOwner(_ context.Context, userID primitive.ObjectID) (*domain.Restaurant, error) {
	for _, r := range m.Restaurants {
		if r.UserID == userID {
			return r, nil
		}
	}
	return nil, repository.ErrRestaurantNotFound
}

func (m *MockRestaurantRepository) Update(_ context.Context, restaurant *domain.Restaurant) error {
	m.Restaurants[restaurant.ID] = restaurant
	return nil
}

func (m *MockRestaurantRepository) Search(_ context.Context, _ string) ([]*domain.Restaurant, error) {
	var out []*domain.Restaurant
	for _, r := range m.Restaurants {
		out = append(out, r)
	}
	return out, nil
}

func (m *MockRestaurantRepository) AddMenuItem(_ context.Context, restaurantID primitive.ObjectID, item domain.MenuItem) error {
	restaurant, ok := m.Restaurants[restaurantID]
	if !ok {
		return repository.ErrRestaurantNotFound
	}
	m.AddedItem = &item
	restaurant.Menus = append(restaurant.Menus, item)
	return nil
}

func (m *MockRestaurantRepository) UpdateMenuItem(_ context.Context, restaurantID primitive.ObjectID, item domain.MenuItem) error {
	restaurant, ok := m.Restaurants[restaurantID]
	if !ok {
		return repository.ErrRestaurantNotFound
	}
	for i := range restaurant.Menus {
		if restaurant.Menus[i].ID == item.ID {
			restaurant.Menus[i] = item
			return nil
		}
	}
	return repository.ErrMenuItemNotFound
}

// MockCache implements cache.RestaurantCache for testing
type MockCache struct {
	Entries map[string]*domain.Restaurant
	Deleted []string
}

func NewMockCache() *MockCache {
	return &MockCache{Entries: make(map[string]*domain.Restaurant)}
}

func (m *MockCache) Get(_ context.Context, restaurantID string) (*domain.Restaurant, error) {
	restaurant, ok := m.Entries[restaurantID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return restaurant, nil
}

func (m *MockCache) Set(_ context.Context, restaurantID string, restaurant *domain.Restaurant) error {
	m.Entries[restaurantID] = restaurant
	return nil
}

func (m *MockCache) Delete(_ context.Context, restaurantID string) error {
	m.Deleted = append(m.Deleted, restaurantID)
	delete(m.Entries, restaurantID)
	return nil
}

// MockUploader implements upload.ImageUploader for testing
type MockUploader struct {
	URL      string
	Err      error
	Uploaded []string
}

func (m *MockUploader) Upload(_ context.Context, image string) (string, error) {
	m.Uploaded = append(m.Uploaded, image)
	if m.Err != nil {
		return "", m.Err
	}
	if m.URL != "" {
		return m.URL, nil
	}
	return image, nil
}

// MockMailer implements mail.Mailer for testing
type MockMailer struct {
	VerificationCodes []string
	WelcomeEmails     []string
	ResetURLs         []string
	ResetSuccess      []string
	Err               error
}

func (m *MockMailer) SendVerificationEmail(_ context.Context, _, code string) error {
	m.VerificationCodes = append(m.VerificationCodes, code)
	return m.Err
}

func (m *MockMailer) SendWelcomeEmail(_ context.Context, to, _ string) error {
	m.WelcomeEmails = append(m.WelcomeEmails, to)
	return m.Err
}

func (m *MockMailer) SendPasswordResetEmail(_ context.Context, _, resetURL string) error {
	m.ResetURLs = append(m.ResetURLs, resetURL)
	return m.Err
}

func (m *MockMailer) SendResetSuccessEmail(_ context.Context, to string) error {
	m.ResetSuccess = append(m.ResetSuccess, to)
	return m.Err
}
