package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HARSHPATEL-54/SGP4/internal/domain"
)

func newRestaurant(owner primitive.ObjectID) *domain.Restaurant {
	return &domain.Restaurant{
		UserID:         owner,
		RestaurantName: "Spice Garden",
		City:           "Mumbai",
		Country:        "India",
		DeliveryTime:   30,
		Cuisines:       []string{"Indian", "Tandoori"},
		Image:          "https://img/spice.jpg",
	}
}

func TestRestaurantCreate_UniquePerOwner(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoRestaurantRepository(db)
	ctx := context.Background()
	owner := primitive.NewObjectID()

	require.NoError(t, repo.Create(ctx, newRestaurant(owner)))

	err := repo.Create(ctx, newRestaurant(owner))
	assert.ErrorIs(t, err, ErrDuplicateOwner)
}

func TestRestaurantGetByOwner(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoRestaurantRepository(db)
	ctx := context.Background()
	owner := primitive.NewObjectID()

	created := newRestaurant(owner)
	require.NoError(t, repo.Create(ctx, created))

	got, err := repo.GetByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = repo.GetByOwner(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestRestaurantSearch_MatchesNameCityCuisine(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoRestaurantRepository(db)
	ctx := context.Background()

	spice := newRestaurant(primitive.NewObjectID())
	require.NoError(t, repo.Create(ctx, spice))

	sushi := newRestaurant(primitive.NewObjectID())
	sushi.RestaurantName = "Tokyo Bowl"
	sushi.City = "Delhi"
	sushi.Cuisines = []string{"Japanese"}
	require.NoError(t, repo.Create(ctx, sushi))

	// Case-insensitive name match
	results, err := repo.Search(ctx, "spice")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, spice.ID, results[0].ID)

	// City match
	results, err = repo.Search(ctx, "delhi")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, sushi.ID, results[0].ID)

	// Cuisine match
	results, err = repo.Search(ctx, "japanese")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, sushi.ID, results[0].ID)

	// No match
	results, err = repo.Search(ctx, "pizza")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRestaurantMenuLifecycle(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoRestaurantRepository(db)
	ctx := context.Background()

	restaurant := newRestaurant(primitive.NewObjectID())
	require.NoError(t, repo.Create(ctx, restaurant))

	item := domain.MenuItem{
		ID:          primitive.NewObjectID(),
		Name:        "Paneer Tikka",
		Description: "Char-grilled paneer",
		Price:       25000,
		Image:       "https://img/paneer.jpg",
	}
	require.NoError(t, repo.AddMenuItem(ctx, restaurant.ID, item))

	got, err := repo.GetByID(ctx, restaurant.ID)
	require.NoError(t, err)
	require.Len(t, got.Menus, 1)
	assert.Equal(t, int64(25000), got.Menus[0].Price)

	item.Price = 30000
	require.NoError(t, repo.UpdateMenuItem(ctx, restaurant.ID, item))

	got, err = repo.GetByID(ctx, restaurant.ID)
	require.NoError(t, err)
	require.Len(t, got.Menus, 1)
	assert.Equal(t, int64(30000), got.Menus[0].Price)

	// Editing an item that does not exist on this restaurant
	missing := item
	missing.ID = primitive.NewObjectID()
	err = repo.UpdateMenuItem(ctx, restaurant.ID, missing)
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}
