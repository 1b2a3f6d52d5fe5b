package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/HARSHPATEL-54/SGP4/internal/domain"
)

func setupTestDB(t *testing.T) (*mongo.Database, func()) {
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	require.NoError(t, EnsureIndexes(ctx, db))

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return db, cleanup
}

func newPendingOrder(userID primitive.ObjectID) *domain.Order {
	return &domain.Order{
		UserID:       userID,
		RestaurantID: primitive.NewObjectID(),
		DeliveryDetails: domain.DeliveryDetails{
			Name:  "Asha Rao",
			Email: "asha@example.com",
		},
		CartItems: []domain.CartItem{
			{MenuID: primitive.NewObjectID(), Name: "Paneer Tikka", Price: 25000, Quantity: 2},
		},
		Status: domain.OrderStatusPending,
	}
}

func TestOrderCreateAndGet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoOrderRepository(db)
	ctx := context.Background()

	order := newPendingOrder(primitive.NewObjectID())
	require.NoError(t, repo.Create(ctx, order))
	assert.False(t, order.ID.IsZero())
	assert.False(t, order.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.UserID, got.UserID)
	assert.Equal(t, domain.OrderStatusPending, got.Status)
	assert.Equal(t, int64(0), got.TotalAmount)
	require.Len(t, got.CartItems, 1)
	assert.Equal(t, int64(25000), got.CartItems[0].Price)
}

func TestOrderGetByID_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoOrderRepository(db)

	order, err := repo.GetByID(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Nil(t, order)
}

func TestOrderListByUser_NewestFirst(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoOrderRepository(db)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	older := newPendingOrder(userID)
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, older))

	newer := newPendingOrder(userID)
	require.NoError(t, repo.Create(ctx, newer))

	// Another user's order must not leak in
	other := newPendingOrder(primitive.NewObjectID())
	require.NoError(t, repo.Create(ctx, other))

	orders, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID)
	assert.Equal(t, older.ID, orders[1].ID)
}

func TestOrderConfirmPayment_Idempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoOrderRepository(db)
	ctx := context.Background()

	order := newPendingOrder(primitive.NewObjectID())
	require.NoError(t, repo.Create(ctx, order))

	require.NoError(t, repo.ConfirmPayment(ctx, order.ID, 55000))
	// Provider retry delivers the same event again
	require.NoError(t, repo.ConfirmPayment(ctx, order.ID, 55000))

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, got.Status)
	assert.Equal(t, int64(55000), got.TotalAmount)
}

func TestOrderConfirmPayment_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoOrderRepository(db)

	err := repo.ConfirmPayment(context.Background(), primitive.NewObjectID(), 100)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderCancelIfPending(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoOrderRepository(db)
	ctx := context.Background()

	pending := newPendingOrder(primitive.NewObjectID())
	require.NoError(t, repo.Create(ctx, pending))

	cancelled, err := repo.CancelIfPending(ctx, pending.ID)
	require.NoError(t, err)
	assert.True(t, cancelled)

	got, err := repo.GetByID(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, got.Status)

	// Redelivery matches nothing once the order left pending
	cancelled, err = repo.CancelIfPending(ctx, pending.ID)
	require.NoError(t, err)
	assert.False(t, cancelled)
}

func TestOrderCancelIfPending_SkipsConfirmed(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoOrderRepository(db)
	ctx := context.Background()

	order := newPendingOrder(primitive.NewObjectID())
	require.NoError(t, repo.Create(ctx, order))
	require.NoError(t, repo.ConfirmPayment(ctx, order.ID, 55000))

	// Expiry event arrives after the payment completed
	cancelled, err := repo.CancelIfPending(ctx, order.ID)
	require.NoError(t, err)
	assert.False(t, cancelled)

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, got.Status)
	assert.Equal(t, int64(55000), got.TotalAmount)
}

func TestOrderCancelIfPending_MissingOrderIsNoOp(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoOrderRepository(db)

	cancelled, err := repo.CancelIfPending(context.Background(), primitive.NewObjectID())
	assert.NoError(t, err)
	assert.False(t, cancelled)
}

func TestOrderUpdateStatus_ReturnsUpdatedDocument(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoOrderRepository(db)
	ctx := context.Background()

	order := newPendingOrder(primitive.NewObjectID())
	require.NoError(t, repo.Create(ctx, order))

	updated, err := repo.UpdateStatus(ctx, order.ID, domain.OrderStatusOutForDelivery)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusOutForDelivery, updated.Status)

	_, err = repo.UpdateStatus(ctx, primitive.NewObjectID(), domain.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

// Status updates carry no version token: when two writers race, the second
// write silently overwrites the first with no conflict error.
func TestOrderUpdateStatus_LastWriteWins(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoOrderRepository(db)
	ctx := context.Background()

	order := newPendingOrder(primitive.NewObjectID())
	require.NoError(t, repo.Create(ctx, order))

	// Two actors read the same confirmed order, then both write.
	first, err := repo.UpdateStatus(ctx, order.ID, domain.OrderStatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPreparing, first.Status)

	second, err := repo.UpdateStatus(ctx, order.ID, domain.OrderStatusCancelled)
	require.NoError(t, err, "the losing write surfaces no conflict")
	assert.Equal(t, domain.OrderStatusCancelled, second.Status)

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, got.Status, "first write is silently gone")
}
