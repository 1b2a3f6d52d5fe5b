package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/HARSHPATEL-54/SGP4/internal/auth"
	"github.com/HARSHPATEL-54/SGP4/internal/domain"
	"github.com/HARSHPATEL-54/SGP4/internal/service"
)

type AuthService interface {
	Signup(ctx context.Context, input *service.SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	VerifyEmail(ctx context.Context, code string) (*domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	GetUser(ctx context.Context, actor auth.Actor) (*domain.User, error)
	UpdateProfile(ctx context.Context, actor auth.Actor, input *service.UpdateProfileInput) (*domain.User, error)
	UpsertGoogleUser(ctx context.Context, profile *auth.GoogleProfile) (*domain.User, error)
}

type AuthHandler struct {
	auth        AuthService
	tokens      *auth.TokenManager
	google      *auth.GoogleAuthenticator
	frontendURL string
	timeout     time.Duration
}

func NewAuthHandler(authService AuthService, tokens *auth.TokenManager, google *auth.GoogleAuthenticator, frontendURL string, timeout time.Duration) *AuthHandler {
	return &AuthHandler{
		auth:        authService,
		tokens:      tokens,
		google:      google,
		frontendURL: frontendURL,
		timeout:     timeout,
	}
}

type userResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var input service.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := h.auth.Signup(ctx, &input)
	if err != nil {
		respondServiceError(ctx, w, err)
		return
	}

	if err := h.issueToken(w, user); err != nil {
		respondServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusCreated, userResponse{
		Success: true,
		Message: "Account created successfully",
		User:    user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		respondServiceError(ctx, w, err)
		return
	}

	if err := h.issueToken(w, user); err != nil {
		respondServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, userResponse{
		Success: true,
		Message: "Welcome back " + user.Fullname,
		User:    user,
	})
}

// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	clearAuthCookie(w)
	respondJSON(w, http.StatusOK, userResponse{Success: true, Message: "Logged out successfully."})
}

type verifyEmailRequest struct {
	VerificationCode string `json:"verificationCode"`
}

// POST /api/v1/auth/verify-email
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req verifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := h.auth.VerifyEmail(ctx, req.VerificationCode)
	if err != nil {
		respondServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, userResponse{
		Success: true,
		Message: "Email verified successfully",
		User:    user,
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.auth.ForgotPassword(ctx, req.Email); err != nil {
		respondServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, userResponse{
		Success: true,
		Message: "Password reset link sent to your email",
	})
}

type resetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// POST /api/v1/auth/reset-password/{token}
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := chi.URLParam(r, "token")

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.auth.ResetPassword(ctx, token, req.NewPassword); err != nil {
		respondServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, userResponse{
		Success: true,
		Message: "Password reset successfully.",
	})
}

// GET /api/v1/auth/check-auth
func (h *AuthHandler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	actor, ok := actorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	user, err := h.auth.GetUser(ctx, actor)
	if err != nil {
		respondServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, userResponse{Success: true, User: user})
}

// PUT /api/v1/auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	actor, ok := actorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var input service.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := h.auth.UpdateProfile(ctx, actor, &input)
	if err != nil {
		respondServiceError(ctx, w, err)
		return
	}

	respondJSON(w, http.StatusOK, userResponse{
		Success: true,
		Message: "Profile updated successfully",
		User:    user,
	})
}

// GET /api/v1/auth/google
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int((5 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.google.AuthURL(state), http.StatusTemporaryRedirect)
}

// GET /api/v1/auth/google/callback
//
// Errors redirect back to the frontend login page rather than rendering
// JSON, because the browser is driving this flow.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		h.redirectLoginError(w, r, "Google authentication failed")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.redirectLoginError(w, r, "Google authentication failed")
		return
	}

	profile, err := h.google.Exchange(ctx, code)
	if err != nil {
		h.redirectLoginError(w, r, "Google authentication failed")
		return
	}

	user, err := h.auth.UpsertGoogleUser(ctx, profile)
	if err != nil {
		h.redirectLoginError(w, r, "Authentication error")
		return
	}

	if err := h.issueToken(w, user); err != nil {
		h.redirectLoginError(w, r, "Authentication error")
		return
	}

	http.Redirect(w, r, h.frontendURL+"?googleLoginSuccess=true", http.StatusTemporaryRedirect)
}

func (h *AuthHandler) redirectLoginError(w http.ResponseWriter, r *http.Request, message string) {
	http.Redirect(w, r, h.frontendURL+"/login?error="+url.QueryEscape(message), http.StatusTemporaryRedirect)
}

func (h *AuthHandler) issueToken(w http.ResponseWriter, user *domain.User) error {
	token, err := h.tokens.Issue(user)
	if err != nil {
		return err
	}
	setAuthCookie(w, token, h.tokens.TTL())
	return nil
}
