package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/HARSHPATEL-54/SGP4/internal/auth"
)

type RouterConfig struct {
	Tokens             *auth.TokenManager
	AuthHandler        *AuthHandler
	RestaurantHandler  *RestaurantHandler
	OrderHandler       *OrderHandler
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
}

// NewRouter wires the HTTP surface. The webhook route sits outside the
// authenticated group because the payment provider authenticates with a
// signature header, not a session cookie.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.RequestSize(cfg.MaxRequestBodySize))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	authenticated := Authenticator(cfg.Tokens)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", cfg.AuthHandler.Signup)
			r.Post("/login", cfg.AuthHandler.Login)
			r.Post("/logout", cfg.AuthHandler.Logout)
			r.Post("/verify-email", cfg.AuthHandler.VerifyEmail)
			r.Post("/forgot-password", cfg.AuthHandler.ForgotPassword)
			r.Post("/reset-password/{token}", cfg.AuthHandler.ResetPassword)
			r.Get("/google", cfg.AuthHandler.GoogleLogin)
			r.Get("/google/callback", cfg.AuthHandler.GoogleCallback)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Get("/check-auth", cfg.AuthHandler.CheckAuth)
				r.Put("/profile", cfg.AuthHandler.UpdateProfile)
			})
		})

		r.Route("/restaurant", func(r chi.Router) {
			r.Get("/search/{searchText}", cfg.RestaurantHandler.Search)
			r.Get("/{restaurantID}", cfg.RestaurantHandler.GetByID)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Post("/", cfg.RestaurantHandler.Create)
				r.Get("/", cfg.RestaurantHandler.GetOwn)
				r.Put("/", cfg.RestaurantHandler.Update)
			})
		})

		r.Route("/menu", func(r chi.Router) {
			r.Use(authenticated)
			r.Post("/", cfg.RestaurantHandler.AddMenuItem)
			r.Put("/{menuID}", cfg.RestaurantHandler.UpdateMenuItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(authenticated)
			r.Get("/", cfg.OrderHandler.GetOrders)
			r.Get("/all", cfg.OrderHandler.GetAllOrders)
			r.Get("/{orderID}", cfg.OrderHandler.GetOrderByID)
			r.Put("/{orderID}/status", cfg.OrderHandler.UpdateStatus)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Post("/checkout/create-session", cfg.OrderHandler.CreateCheckoutSession)
		})

		r.Post("/webhook", cfg.OrderHandler.Webhook)
	})

	return otelhttp.NewHandler(r, "http.server")
}
