package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/HARSHPATEL-54/SGP4/internal/domain"
)

type mongoRestaurantRepository struct {
	collection *mongo.Collection
}

func NewMongoRestaurantRepository(db *mongo.Database) RestaurantRepository {
	return &mongoRestaurantRepository{
		collection: db.Collection("restaurants"),
	}
}

func (m *mongoRestaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	if restaurant.ID.IsZero() {
		restaurant.ID = primitive.NewObjectID()
	}
	now := time.Now()
	if restaurant.CreatedAt.IsZero() {
		restaurant.CreatedAt = now
	}
	restaurant.UpdatedAt = now
	if restaurant.Menus == nil {
		restaurant.Menus = []domain.MenuItem{}
	}

	_, err := m.collection.InsertOne(ctx, restaurant)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateOwner
		}
		return fmt.Errorf("failed to insert restaurant: %w", err)
	}
	return nil
}

func (m *mongoRestaurantRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	return m.findOne(ctx, bson.M{"_id": id})
}

func (m *mongoRestaurantRepository) GetByOwner(ctx context.Context, userID primitive.ObjectID) (*domain.Restaurant, error) {
	return m.findOne(ctx, bson.M{"user": userID})
}

func (m *mongoRestaurantRepository) findOne(ctx context.Context, filter bson.M) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	err := m.collection.FindOne(ctx, filter).Decode(&restaurant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	return &restaurant, nil
}

func (m *mongoRestaurantRepository) Update(ctx context.Context, restaurant *domain.Restaurant) error {
	restaurant.UpdatedAt = time.Now()

	filter := bson.M{"_id": restaurant.ID}
	update := bson.M{
		"$set": bson.M{
			"restaurant_name": restaurant.RestaurantName,
			"city":            restaurant.City,
			"country":         restaurant.Country,
			"delivery_time":   restaurant.DeliveryTime,
			"cuisines":        restaurant.Cuisines,
			"image":           restaurant.Image,
			"updated_at":      restaurant.UpdatedAt,
		},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update restaurant: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrRestaurantNotFound
	}
	return nil
}

// Search matches name, city or cuisine, case-insensitively.
func (m *mongoRestaurantRepository) Search(ctx context.Context, text string) ([]*domain.Restaurant, error) {
	pattern := primitive.Regex{Pattern: text, Options: "i"}
	filter := bson.M{
		"$or": []bson.M{
			{"restaurant_name": pattern},
			{"city": pattern},
			{"cuisines": pattern},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search restaurants: %w", err)
	}
	defer cursor.Close(ctx)

	restaurants := make([]*domain.Restaurant, 0)
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, fmt.Errorf("failed to decode restaurants: %w", err)
	}

	return restaurants, nil
}

func (m *mongoRestaurantRepository) AddMenuItem(ctx context.Context, restaurantID primitive.ObjectID, item domain.MenuItem) error {
	filter := bson.M{"_id": restaurantID}
	update := bson.M{
		"$push": bson.M{"menus": item},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to add menu item: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrRestaurantNotFound
	}
	return nil
}

func (m *mongoRestaurantRepository) UpdateMenuItem(ctx context.Context, restaurantID primitive.ObjectID, item domain.MenuItem) error {
	filter := bson.M{"_id": restaurantID, "menus._id": item.ID}
	update := bson.M{
		"$set": bson.M{
			"menus.$[elem].name":        item.Name,
			"menus.$[elem].description": item.Description,
			"menus.$[elem].price":       item.Price,
			"menus.$[elem].image":       item.Image,
			"updated_at":                time.Now(),
		},
	}
	arrayFilters := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"elem._id": item.ID},
		},
	})

	result, err := m.collection.UpdateOne(ctx, filter, update, arrayFilters)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

func (m *mongoRestaurantRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "city", Value: 1}},
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}
