package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the indexes for every collection. Called once at
// process startup, before the server starts accepting requests.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	repos := []interface {
		CreateIndexes(ctx context.Context) error
	}{
		&mongoOrderRepository{collection: db.Collection("orders")},
		&mongoUserRepository{collection: db.Collection("users")},
		&mongoRestaurantRepository{collection: db.Collection("restaurants")},
	}

	for _, r := range repos {
		if err := r.CreateIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
