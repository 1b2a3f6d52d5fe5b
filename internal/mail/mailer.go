package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Mailer sends the transactional emails of the auth flows. Delivery problems
// are logged by callers and never fail the originating request.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, code string) error
	SendWelcomeEmail(ctx context.Context, to, name string) error
	SendPasswordResetEmail(ctx context.Context, to, resetURL string) error
	SendResetSuccessEmail(ctx context.Context, to string) error
}

const defaultEndpoint = "https://send.api.mailtrap.io"

type sender struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// MailtrapClient talks to the Mailtrap send API.
type MailtrapClient struct {
	endpoint   string
	token      string
	from       sender
	httpClient *http.Client
}

func NewMailtrapClient(token string) *MailtrapClient {
	return &MailtrapClient{
		endpoint: defaultEndpoint,
		token:    token,
		from: sender{
			Email: "hello@demomailtrap.co",
			Name:  "Foodista",
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type sendRequest struct {
	From     sender   `json:"from"`
	To       []sender `json:"to"`
	Subject  string   `json:"subject"`
	HTML     string   `json:"html"`
	Category string   `json:"category"`
}

func (c *MailtrapClient) SendVerificationEmail(ctx context.Context, to, code string) error {
	html := fmt.Sprintf("<p>Welcome to Foodista!</p><p>Your verification code is <b>%s</b>. It expires in 24 hours.</p>", code)
	return c.send(ctx, to, "Verify your email", html, "email_verification")
}

func (c *MailtrapClient) SendWelcomeEmail(ctx context.Context, to, name string) error {
	html := fmt.Sprintf("<p>Hi %s, your email has been verified. Happy ordering!</p>", name)
	return c.send(ctx, to, "Welcome to Foodista", html, "welcome")
}

func (c *MailtrapClient) SendPasswordResetEmail(ctx context.Context, to, resetURL string) error {
	html := fmt.Sprintf(`<p>Click <a href="%s">here</a> to reset your password. The link expires in 1 hour.</p>`, resetURL)
	return c.send(ctx, to, "Reset your password", html, "password_reset")
}

func (c *MailtrapClient) SendResetSuccessEmail(ctx context.Context, to string) error {
	return c.send(ctx, to, "Password reset successful", "<p>Your password has been reset successfully.</p>", "password_reset")
}

func (c *MailtrapClient) send(ctx context.Context, to, subject, html, category string) error {
	body, err := json.Marshal(sendRequest{
		From:     c.from,
		To:       []sender{{Email: to}},
		Subject:  subject,
		HTML:     html,
		Category: category,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail send failed with status %d: %s", resp.StatusCode, msg)
	}
	return nil
}

// NoopMailer logs instead of sending. Used when no API token is configured.
type NoopMailer struct{}

func (NoopMailer) SendVerificationEmail(ctx context.Context, to, code string) error {
	slog.InfoContext(ctx, "mail disabled, skipping verification email", "to", to)
	return nil
}

func (NoopMailer) SendWelcomeEmail(ctx context.Context, to, name string) error {
	slog.InfoContext(ctx, "mail disabled, skipping welcome email", "to", to)
	return nil
}

func (NoopMailer) SendPasswordResetEmail(ctx context.Context, to, resetURL string) error {
	slog.InfoContext(ctx, "mail disabled, skipping password reset email", "to", to)
	return nil
}

func (NoopMailer) SendResetSuccessEmail(ctx context.Context, to string) error {
	slog.InfoContext(ctx, "mail disabled, skipping reset success email", "to", to)
	return nil
}
