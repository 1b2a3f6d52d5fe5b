package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/HARSHPATEL-54/SGP4/internal/domain"
	"github.com/HARSHPATEL-54/SGP4/internal/payment"
	"github.com/HARSHPATEL-54/SGP4/internal/repository"
	"github.com/HARSHPATEL-54/SGP4/internal/service"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Success: false, Message: message})
}

// respondServiceError translates domain errors into the wire taxonomy:
// validation 400, authorization 403, not-found 404, payment provider 502,
// everything else a logged 500 with a generic message.
func respondServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidOrderStatus),
		errors.Is(err, service.ErrMissingRestaurantID),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrNoMenuItems),
		errors.Is(err, service.ErrMissingRequiredField),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrGoogleAccount),
		errors.Is(err, service.ErrInvalidAuthCode),
		errors.Is(err, service.ErrRestaurantExists),
		errors.Is(err, service.ErrImageRequired),
		errors.Is(err, payment.ErrInvalidSignature):
		respondError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrNotAuthorized):
		respondError(w, http.StatusForbidden, err.Error())

	case errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrRestaurantNotFound),
		errors.Is(err, repository.ErrMenuItemNotFound):
		respondError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrPaymentSession):
		respondError(w, http.StatusBadGateway, err.Error())

	default:
		slog.ErrorContext(ctx, "internal error", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
