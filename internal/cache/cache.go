package cache

import (
	"context"
	"errors"

	"github.com/HARSHPATEL-54/SGP4/internal/domain"
)

// RestaurantCache fronts the restaurant store for read-heavy paths: public
// restaurant pages and the authoritative menu lookup during checkout.
type RestaurantCache interface {
	Get(ctx context.Context, restaurantID string) (*domain.Restaurant, error)
	Set(ctx context.Context, restaurantID string, restaurant *domain.Restaurant) error
	Delete(ctx context.Context, restaurantID string) error
}

var ErrCacheMiss = errors.New("cache miss")

// NoopCache misses on every read. Used when Redis is not configured.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (*domain.Restaurant, error) {
	return nil, ErrCacheMiss
}

func (NoopCache) Set(context.Context, string, *domain.Restaurant) error { return nil }
func (NoopCache) Delete(context.Context, string) error                  { return nil }
