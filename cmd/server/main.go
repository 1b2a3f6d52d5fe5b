package main

import (
	"context"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/HARSHPATEL-54/SGP4/internal/auth"
	"github.com/HARSHPATEL-54/SGP4/internal/cache"
	"github.com/HARSHPATEL-54/SGP4/internal/config"
	"github.com/HARSHPATEL-54/SGP4/internal/events"
	httpapi "github.com/HARSHPATEL-54/SGP4/internal/http"
	"github.com/HARSHPATEL-54/SGP4/internal/mail"
	"github.com/HARSHPATEL-54/SGP4/internal/payment"
	"github.com/HARSHPATEL-54/SGP4/internal/repository"
	"github.com/HARSHPATEL-54/SGP4/internal/service"
	"github.com/HARSHPATEL-54/SGP4/internal/telemetry"
	"github.com/HARSHPATEL-54/SGP4/internal/upload"
)

const serviceName = "foodista-api"

func main() {
	telemetry.InitLogger()

	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.SetupTracer(ctx, serviceName)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			slog.Error("tracer shutdown failed", "error", err)
		}
	}()

	db, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Client().Disconnect(disconnectCtx); err != nil {
			slog.Error("mongodb disconnect failed", "error", err)
		}
	}()

	if err := repository.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	userRepo := repository.NewMongoUserRepository(db)
	restaurantRepo := repository.NewMongoRestaurantRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)

	var restaurantCache cache.RestaurantCache = cache.NoopCache{}
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.Warn("redis unreachable, continuing without cache", "error", err)
		} else {
			restaurantCache = cache.NewRedisCache(redisClient)
			defer redisClient.Close()
		}
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers...)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	var mailer mail.Mailer = mail.NoopMailer{}
	if cfg.MailtrapAPIToken != "" {
		mailer = mail.NewMailtrapClient(cfg.MailtrapAPIToken)
	}

	var uploader upload.ImageUploader = upload.PassthroughUploader{}
	if cfg.CloudinaryURL != "" {
		cloudinaryUploader, err := upload.NewCloudinaryUploader(cfg.CloudinaryURL)
		if err != nil {
			return err
		}
		uploader = cloudinaryUploader
	}

	tokens := auth.NewTokenManager(cfg.SecretKey, cfg.TokenTTL)
	google := auth.NewGoogleAuthenticator(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleCallbackURL)
	provider := payment.NewStripeProvider(cfg.StripeSecretKey, cfg.WebhookEndpointSecret)

	authService := service.NewAuthService(userRepo, mailer, uploader, cfg.FrontendURL)
	restaurantService := service.NewRestaurantService(restaurantRepo, restaurantCache, uploader)
	orderService := service.NewOrderService(orderRepo, restaurantService, provider, publisher, cfg.FrontendURL)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Tokens:             tokens,
		AuthHandler:        httpapi.NewAuthHandler(authService, tokens, google, cfg.FrontendURL, cfg.RequestTimeout),
		RestaurantHandler:  httpapi.NewRestaurantHandler(restaurantService, cfg.RequestTimeout),
		OrderHandler:       httpapi.NewOrderHandler(orderService, cfg.RequestTimeout),
		RequestTimeout:     cfg.RequestTimeout,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
	})

	server := &stdhttp.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
