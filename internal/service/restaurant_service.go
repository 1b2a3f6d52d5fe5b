package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/singleflight"

	"github.com/HARSHPATEL-54/SGP4/internal/auth"
	"github.com/HARSHPATEL-54/SGP4/internal/cache"
	"github.com/HARSHPATEL-54/SGP4/internal/domain"
	"github.com/HARSHPATEL-54/SGP4/internal/repository"
	"github.com/HARSHPATEL-54/SGP4/internal/upload"
)

type RestaurantInput struct {
	RestaurantName string   `json:"restaurantName"`
	City           string   `json:"city"`
	Country        string   `json:"country"`
	DeliveryTime   int      `json:"deliveryTime"`
	Cuisines       []string `json:"cuisines"`
	Image          string   `json:"imageFile"`
}

type MenuItemInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Image       string `json:"imageFile"`
}

type RestaurantService struct {
	repo     repository.RestaurantRepository
	cache    cache.RestaurantCache
	uploader upload.ImageUploader
	sfg      singleflight.Group // Prevents cache stampede
}

func NewRestaurantService(repo repository.RestaurantRepository, c cache.RestaurantCache, uploader upload.ImageUploader) *RestaurantService {
	return &RestaurantService{
		repo:     repo,
		cache:    c,
		uploader: uploader,
	}
}

// GetByID serves reads through the cache. Checkout pricing goes through
// here, so menu writes must invalidate (see invalidateCache callers).
func (s *RestaurantService) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	restaurantID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrRestaurantNotFound
	}

	v, err, _ := s.sfg.Do(id, func() (interface{}, error) {
		restaurant, err := s.cache.Get(ctx, id)
		if err == nil {
			return restaurant, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			slog.WarnContext(ctx, "restaurant cache get error", "error", err)
		}

		restaurant, errGet := s.repo.GetByID(ctx, restaurantID)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if errSet := s.cache.Set(ctx, id, restaurant); errSet != nil {
				slog.Warn("restaurant cache set error", "error", errSet)
			}
		}()

		return restaurant, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*domain.Restaurant), nil
}

func (s *RestaurantService) Create(ctx context.Context, actor auth.Actor, input *RestaurantInput) (*domain.Restaurant, error) {
	userID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid actor id: %w", err)
	}
	if input.RestaurantName == "" {
		return nil, fmt.Errorf("%w: restaurantName", ErrMissingRequiredField)
	}
	if input.Image == "" {
		return nil, ErrImageRequired
	}

	imageURL, err := s.uploader.Upload(ctx, input.Image)
	if err != nil {
		return nil, err
	}

	restaurant := &domain.Restaurant{
		UserID:         userID,
		RestaurantName: input.RestaurantName,
		City:           input.City,
		Country:        input.Country,
		DeliveryTime:   input.DeliveryTime,
		Cuisines:       input.Cuisines,
		Image:          imageURL,
	}

	if err := s.repo.Create(ctx, restaurant); err != nil {
		if errors.Is(err, repository.ErrDuplicateOwner) {
			return nil, ErrRestaurantExists
		}
		return nil, err
	}

	return restaurant, nil
}

func (s *RestaurantService) GetOwn(ctx context.Context, actor auth.Actor) (*domain.Restaurant, error) {
	userID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid actor id: %w", err)
	}
	return s.repo.GetByOwner(ctx, userID)
}

func (s *RestaurantService) Update(ctx context.Context, actor auth.Actor, input *RestaurantInput) (*domain.Restaurant, error) {
	restaurant, err := s.GetOwn(ctx, actor)
	if err != nil {
		return nil, err
	}

	restaurant.RestaurantName = input.RestaurantName
	restaurant.City = input.City
	restaurant.Country = input.Country
	restaurant.DeliveryTime = input.DeliveryTime
	restaurant.Cuisines = input.Cuisines
	if input.Image != "" {
		imageURL, err := s.uploader.Upload(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		restaurant.Image = imageURL
	}

	if err := s.repo.Update(ctx, restaurant); err != nil {
		return nil, err
	}

	s.invalidateCache(restaurant.ID.Hex())
	return restaurant, nil
}

func (s *RestaurantService) Search(ctx context.Context, text string) ([]*domain.Restaurant, error) {
	return s.repo.Search(ctx, text)
}

// AddMenuItem appends a menu item to the actor's own restaurant.
func (s *RestaurantService) AddMenuItem(ctx context.Context, actor auth.Actor, input *MenuItemInput) (*domain.MenuItem, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name", ErrMissingRequiredField)
	}
	if input.Price <= 0 {
		return nil, fmt.Errorf("%w: price", ErrMissingRequiredField)
	}

	restaurant, err := s.GetOwn(ctx, actor)
	if err != nil {
		return nil, err
	}

	image := input.Image
	if image != "" {
		if image, err = s.uploader.Upload(ctx, image); err != nil {
			return nil, err
		}
	}

	item := domain.MenuItem{
		ID:          primitive.NewObjectID(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Image:       image,
	}

	if err := s.repo.AddMenuItem(ctx, restaurant.ID, item); err != nil {
		return nil, err
	}

	s.invalidateCache(restaurant.ID.Hex())
	return &item, nil
}

// UpdateMenuItem edits an existing item on the actor's own restaurant.
// Price changes take effect for new checkouts once the cache entry is gone.
func (s *RestaurantService) UpdateMenuItem(ctx context.Context, actor auth.Actor, menuID string, input *MenuItemInput) (*domain.MenuItem, error) {
	id, err := primitive.ObjectIDFromHex(menuID)
	if err != nil {
		return nil, repository.ErrMenuItemNotFound
	}

	restaurant, err := s.GetOwn(ctx, actor)
	if err != nil {
		return nil, err
	}

	image := input.Image
	if image != "" {
		if image, err = s.uploader.Upload(ctx, image); err != nil {
			return nil, err
		}
	} else if existing, ok := restaurant.MenuItemByID(id); ok {
		image = existing.Image
	}

	item := domain.MenuItem{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Image:       image,
	}

	if err := s.repo.UpdateMenuItem(ctx, restaurant.ID, item); err != nil {
		return nil, err
	}

	s.invalidateCache(restaurant.ID.Hex())
	return &item, nil
}

func (s *RestaurantService) invalidateCache(restaurantID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, restaurantID); err != nil {
		slog.Warn("restaurant cache invalidate error", "restaurant_id", restaurantID, "error", err)
	}
}
