package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/HARSHPATEL-54/SGP4/internal/auth"
	"github.com/HARSHPATEL-54/SGP4/internal/domain"
	"github.com/HARSHPATEL-54/SGP4/internal/mail"
	"github.com/HARSHPATEL-54/SGP4/internal/repository"
	"github.com/HARSHPATEL-54/SGP4/internal/upload"
)

const (
	verificationCodeTTL = 24 * time.Hour
	resetTokenTTL       = time.Hour
)

type SignupInput struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Contact  string `json:"contact"`
}

type UpdateProfileInput struct {
	Fullname       string `json:"fullname"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	City           string `json:"city"`
	Country        string `json:"country"`
	ProfilePicture string `json:"profilePicture"`
}

type AuthService struct {
	users       repository.UserRepository
	mailer      mail.Mailer
	uploader    upload.ImageUploader
	frontendURL string
}

func NewAuthService(users repository.UserRepository, mailer mail.Mailer, uploader upload.ImageUploader, frontendURL string) *AuthService {
	return &AuthService{
		users:       users,
		mailer:      mailer,
		uploader:    uploader,
		frontendURL: frontendURL,
	}
}

func (s *AuthService) Signup(ctx context.Context, input *SignupInput) (*domain.User, error) {
	if input.Fullname == "" || input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: fullname, email and password are required", ErrMissingRequiredField)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), 10)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := generateVerificationCode()
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Fullname:                   input.Fullname,
		Email:                      input.Email,
		Password:                   string(hashed),
		Contact:                    input.Contact,
		Address:                    "Update your address",
		City:                       "Update your city",
		Country:                    "Update your country",
		AuthProvider:               domain.AuthProviderLocal,
		LastLogin:                  time.Now(),
		VerificationToken:          code,
		VerificationTokenExpiresAt: time.Now().Add(verificationCodeTTL),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.sendMail(ctx, func(ctx context.Context) error {
		return s.mailer.SendVerificationEmail(ctx, user.Email, code)
	})

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.AuthProvider == domain.AuthProviderGoogle {
		return nil, ErrGoogleAccount
	}

	if user.Password == "" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	user.LastLogin = time.Now()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, code string) (*domain.User, error) {
	user, err := s.users.GetByVerificationToken(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidAuthCode
		}
		return nil, err
	}

	user.IsVerified = true
	user.VerificationToken = ""
	user.VerificationTokenExpiresAt = time.Time{}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.sendMail(ctx, func(ctx context.Context) error {
		return s.mailer.SendWelcomeEmail(ctx, user.Email, user.Fullname)
	})

	return user, nil
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	raw := make([]byte, 40)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(raw)

	user.ResetPasswordToken = token
	user.ResetPasswordTokenExpiresAt = time.Now().Add(resetTokenTTL)
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.sendMail(ctx, func(ctx context.Context) error {
		return s.mailer.SendPasswordResetEmail(ctx, user.Email, s.frontendURL+"/resetpassword/"+token)
	})

	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: newPassword", ErrMissingRequiredField)
	}

	user, err := s.users.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidAuthCode
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), 10)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = string(hashed)
	user.ResetPasswordToken = ""
	user.ResetPasswordTokenExpiresAt = time.Time{}
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.sendMail(ctx, func(ctx context.Context) error {
		return s.mailer.SendResetSuccessEmail(ctx, user.Email)
	})

	return nil
}

func (s *AuthService) GetUser(ctx context.Context, actor auth.Actor) (*domain.User, error) {
	id, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, repository.ErrUserNotFound
	}
	return s.users.GetByID(ctx, id)
}

func (s *AuthService) UpdateProfile(ctx context.Context, actor auth.Actor, input *UpdateProfileInput) (*domain.User, error) {
	user, err := s.GetUser(ctx, actor)
	if err != nil {
		return nil, err
	}

	if input.ProfilePicture != "" {
		pictureURL, err := s.uploader.Upload(ctx, input.ProfilePicture)
		if err != nil {
			return nil, err
		}
		user.ProfilePicture = pictureURL
	}

	user.Fullname = input.Fullname
	user.Email = input.Email
	user.Address = input.Address
	user.City = input.City
	user.Country = input.Country

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpsertGoogleUser links or creates an account from a Google profile.
func (s *AuthService) UpsertGoogleUser(ctx context.Context, profile *auth.GoogleProfile) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, profile.Email)
	if err == nil {
		user.GoogleID = profile.ID
		user.AuthProvider = domain.AuthProviderGoogle
		user.IsVerified = true
		user.LastLogin = time.Now()
		if user.ProfilePicture == "" {
			user.ProfilePicture = profile.Picture
		}
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	user = &domain.User{
		Fullname:       profile.Name,
		Email:          profile.Email,
		ProfilePicture: profile.Picture,
		Address:        "Update your address",
		City:           "Update your city",
		Country:        "Update your country",
		GoogleID:       profile.ID,
		AuthProvider:   domain.AuthProviderGoogle,
		IsVerified:     true,
		LastLogin:      time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// sendMail runs a mail send and only logs failures; mail trouble must not
// fail the originating request.
func (s *AuthService) sendMail(ctx context.Context, fn func(ctx context.Context) error) {
	if err := fn(ctx); err != nil {
		slog.WarnContext(ctx, "failed to send email", "error", err)
	}
}

// generateVerificationCode returns a 6-digit numeric code.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
