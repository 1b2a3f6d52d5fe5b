package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/HARSHPATEL-54/SGP4/internal/auth"
	"github.com/HARSHPATEL-54/SGP4/internal/domain"
	"github.com/HARSHPATEL-54/SGP4/internal/service"
)

type RestaurantService interface {
	Create(ctx context.Context, actor auth.Actor, input *service.RestaurantInput) (*domain.Restaurant, error)
	GetOwn(ctx context.Context, actor auth.Actor) (*domain.Restaurant, error)
	Update(ctx context.Context, actor auth.Actor, input *service.RestaurantInput) (*domain.Restaurant, error)
	GetByID(ctx context.Context, id string) (*domain.Restaurant, error)
	Search(ctx context.Context, text string) ([]*domain.Restaurant, error)
	AddMenuItem(ctx context.Context, actor auth.Actor, input *service.MenuItemInput) (*domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, actor auth.Actor, menuID string, input *service.MenuItemInput) (*domain.MenuItem, error)
}

type RestaurantHandler struct {
	restaurants RestaurantService
	timeout     time.Duration
}

func NewRestaurantHandler(restaurants RestaurantService, timeout time.Duration) *RestaurantHandler {
	return &RestaurantHandler{
		restaurants: restaurants,
		timeout:     timeout,
	}
}

type restaurantResponse struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message,omitempty"`
	Restaurant *domain.Restaurant `json:"restaurant"`
}

type restaurantsResponse struct {
	Success     bool                 `json:"success"`
	Restaurants []*domain.Restaurant `json:"restaurants"`
}

type menuResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Menu    *domain.MenuItem `json:"menu"`
}

// POST /api/v1/restaurant
func (h *RestaurantHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	actor, ok := actorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var input service.RestaurantInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	restaurant, err := h.restaurants.Create(ctx, actor, &input)
	if err != nil {
		respondServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusCreated, restaurantResponse{
		Success:    true,
		Message:    "Restaurant added successfully",
		Restaurant: restaurant,
	})
}

// GET /api/v1/restaurant
func (h *RestaurantHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	actor, ok := actorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	restaurant, err := h.restaurants.GetOwn(ctx, actor)
	if err != nil {
		respondServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, restaurantResponse{Success: true, Restaurant: restaurant})
}

// PUT /api/v1/restaurant
func (h *RestaurantHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	actor, ok := actorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var input service.RestaurantInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	restaurant, err := h.restaurants.Update(ctx, actor, &input)
	if err != nil {
		respondServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, restaurantResponse{
		Success:    true,
		Message:    "Restaurant updated successfully",
		Restaurant: restaurant,
	})
}

// GET /api/v1/restaurant/{restaurantID}
func (h *RestaurantHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	restaurantID := chi.URLParam(r, "restaurantID")
	if restaurantID == "" {
		respondError(w, http.StatusBadRequest, "restaurantID is required")
		return
	}

	restaurant, err := h.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		respondServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, restaurantResponse{Success: true, Restaurant: restaurant})
}

// GET /api/v1/restaurant/search/{searchText}
func (h *RestaurantHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	restaurants, err := h.restaurants.Search(ctx, chi.URLParam(r, "searchText"))
	if err != nil {
		respondServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, restaurantsResponse{Success: true, Restaurants: restaurants})
}

// POST /api/v1/menu
func (h *RestaurantHandler) AddMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	actor, ok := actorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var input service.MenuItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	menu, err := h.restaurants.AddMenuItem(ctx, actor, &input)
	if err != nil {
		respondServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusCreated, menuResponse{
		Success: true,
		Message: "Menu added successfully",
		Menu:    menu,
	})
}

// PUT /api/v1/menu/{menuID}
func (h *RestaurantHandler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	actor, ok := actorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	menuID := chi.URLParam(r, "menuID")

	var input service.MenuItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	menu, err := h.restaurants.UpdateMenuItem(ctx, actor, menuID, &input)
	if err != nil {
		respondServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, menuResponse{
		Success: true,
		Message: "Menu updated successfully",
		Menu:    menu,
	})
}
