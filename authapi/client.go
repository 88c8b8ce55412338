// Package authapi is the portal's client for the remote credential service.
// Each auth operation maps to exactly one HTTP call; failures are normalized
// into *Error with the service's raw error body when it sent one.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/jrsteele09/go-auth-portal/internal/errors"
)

const (
	routeSignup         = "/users/auth/signup"
	routeVerifyOTP      = "/users/auth/verifyotp"
	routeLogin          = "/users/auth/login"
	routeMe             = "/users/auth/me"
	routeChangePassword = "/users/auth/changepassword"
	routeForgotPassword = "/users/auth/forgotpassword"
	routeResetPassword  = "/users/auth/resetpassword"
	routeLogout         = "/users/auth/logout"
)

// Credential attaches proof of an authenticated session to an outgoing
// request. Satisfied by session.Transport.
type Credential interface {
	Attach(r *http.Request) error
}

// Identity is the credential service's answer to "who am I"
type Identity struct {
	Email string `json:"email"`
}

// Client calls the remote credential service
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New creates a Client for the credential service at baseURL
func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger.With().Str("component", "authapi").Logger(),
	}
}

// Signup registers a new account. The service responds with a confirmation
// text and sends a verification OTP to the email.
func (c *Client) Signup(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	return c.postJSON(ctx, routeSignup, body, nil, "signup failed")
}

// VerifyOTP confirms ownership of the email used at signup
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	body := map[string]string{"email": email, "otp": otp}
	return c.postJSON(ctx, routeVerifyOTP, body, nil, "otp verification failed")
}

// loginResponse is the fixed login payload contract: a JSON object with a
// single "token" field holding the bearer token.
type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}

	text, err := c.postJSON(ctx, routeLogin, body, nil, "login failed")
	if err != nil {
		return "", err
	}

	var res loginResponse
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		return "", fmt.Errorf("login: decoding token payload: %w", err)
	}
	if res.Token == "" {
		return "", fmt.Errorf("login: %w", apperrors.ErrInvalidCredentials)
	}

	return res.Token, nil
}

// Me asks the service who the attached credential belongs to. Any failure
// means "not authenticated" to callers.
func (c *Client) Me(ctx context.Context, cred Credential) (Identity, error) {
	if cred == nil {
		return Identity{}, apperrors.ErrNoTransport
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+routeMe, nil)
	if err != nil {
		return Identity{}, fmt.Errorf("me: building request: %w", err)
	}
	if err := cred.Attach(req); err != nil {
		return Identity{}, fmt.Errorf("me: attaching credential: %w", err)
	}

	text, err := c.do(req, "unauthorized")
	if err != nil {
		return Identity{}, err
	}

	var id Identity
	if err := json.Unmarshal([]byte(text), &id); err != nil {
		return Identity{}, fmt.Errorf("me: decoding identity: %w", err)
	}

	return id, nil
}

// ChangePassword changes the signed-in user's password
func (c *Client) ChangePassword(ctx context.Context, cred Credential, oldPassword, newPassword string) (string, error) {
	if cred == nil {
		return "", apperrors.ErrNoTransport
	}
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	return c.postJSON(ctx, routeChangePassword, body, cred, "change password failed")
}

// SendForgotOTP asks the service to mail a password-reset OTP
func (c *Client) SendForgotOTP(ctx context.Context, email string) (string, error) {
	body := map[string]string{"email": email}
	return c.postJSON(ctx, routeForgotPassword, body, nil, "failed to send otp")
}

// ResetPassword completes a password reset with the mailed OTP
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error) {
	body := map[string]string{"email": email, "otp": otp, "newPassword": newPassword}
	return c.postJSON(ctx, routeResetPassword, body, nil, "reset password failed")
}

// Logout invalidates the credential upstream. Callers clear their local
// session regardless of the outcome.
func (c *Client) Logout(ctx context.Context, cred Credential) (string, error) {
	if cred == nil {
		return "", apperrors.ErrNoTransport
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+routeLogout, nil)
	if err != nil {
		return "", fmt.Errorf("logout: building request: %w", err)
	}
	if err := cred.Attach(req); err != nil {
		return "", fmt.Errorf("logout: attaching credential: %w", err)
	}

	return c.do(req, "logout failed")
}

func (c *Client) postJSON(ctx context.Context, path string, body any, cred Credential, fallback string) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("%s: encoding body: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%s: building request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	if cred != nil {
		if err := cred.Attach(req); err != nil {
			return "", fmt.Errorf("%s: attaching credential: %w", path, err)
		}
	}

	return c.do(req, fallback)
}

func (c *Client) do(req *http.Request, fallback string) (string, error) {
	res, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("path", req.URL.Path).Msg("credential service unreachable")
		return "", fmt.Errorf("%s: %w", req.URL.Path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("%s: reading response: %w", req.URL.Path, err)
	}
	text := strings.TrimSpace(string(raw))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		message := text
		if message == "" {
			message = fallback
		}
		c.log.Debug().
			Int("status", res.StatusCode).
			Str("path", req.URL.Path).
			Msg("credential service rejected request")
		return "", &Error{StatusCode: res.StatusCode, Message: message}
	}

	return text, nil
}
