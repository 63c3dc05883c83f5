// ABOUTME: Auth facade: login, registration, verification, password reset
// ABOUTME: Maps gateway auth endpoints and the anti-enumeration reset message

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sagmcom/eamctl/internal/session"
)

// GenericResetMessage is shown for every password-reset request, including
// unknown addresses, so responses do not reveal which accounts exist.
const GenericResetMessage = "If this email exists in our system, you will receive a password reset link."

// AuthService groups the authentication endpoints.
type AuthService struct {
	c *Client
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// RegisterInput is the new-account payload.
type RegisterInput struct {
	Name       string `json:"name,omitempty"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Phone      string `json:"phone,omitempty"`
	CIN        string `json:"cin,omitempty"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
}

// RegisterResponse is the created account plus the gateway's message.
type RegisterResponse struct {
	User    User   `json:"user"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login posts credentials and returns the bearer token. The token is not
// persisted here; the caller decides which store it goes to.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	if err := s.c.call(ctx, http.MethodPost, "/api/auth/login", credentials{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login response missing token")
	}
	return resp.Token, nil
}

// Register posts a new-account payload. The account starts in pending state
// until the verification email is confirmed.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := s.c.call(ctx, http.MethodPost, "/api/auth/register", input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile fetches the user record for the current session token.
func (s *AuthService) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := s.c.call(ctx, http.MethodGet, "/api/user/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyEmail confirms an email verification token.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (string, error) {
	var resp messageResponse
	path := "/api/auth/verify?" + url.Values{"token": {token}}.Encode()
	if err := s.c.call(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ResendVerification asks the gateway to send a fresh verification email.
func (s *AuthService) ResendVerification(ctx context.Context, email string) (string, error) {
	var resp messageResponse
	path := "/api/auth/resend-verification?" + url.Values{"email": {email}}.Encode()
	if err := s.c.call(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ForgotPassword triggers a password-reset email. A 404 (unknown address)
// reports the same generic message as success; the caller cannot tell the
// difference, by the same policy the gateway applies.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	var resp messageResponse
	path := "/api/auth/forgot-password?" + url.Values{"email": {email}}.Encode()
	if err := s.c.call(ctx, http.MethodPost, path, nil, &resp); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return GenericResetMessage, nil
		}
		return "", err
	}
	if resp.Message == "" {
		return GenericResetMessage, nil
	}
	return resp.Message, nil
}

// ResetPasswordConfirm completes a reset with the emailed token.
func (s *AuthService) ResetPasswordConfirm(ctx context.Context, token, newPassword string) (string, error) {
	var resp messageResponse
	path := "/api/auth/reset-password-confirm?" + url.Values{"token": {token}, "newPassword": {newPassword}}.Encode()
	if err := s.c.call(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Logout invalidates the token server-side, best effort, and always clears
// the persisted credential. A gateway that is down cannot keep us signed in.
func (s *AuthService) Logout(ctx context.Context) error {
	err := s.c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
	if clearErr := s.c.session.Clear(); clearErr != nil {
		return clearErr
	}
	if err != nil {
		// Token already cleared locally; server-side blacklisting failed.
		if apiErr, ok := AsAPIError(err); ok && apiErr.Kind == KindHTTP && apiErr.Status == http.StatusUnauthorized {
			return nil
		}
		return err
	}
	return nil
}

// SaveSession persists a credential via the client's session provider.
func (s *AuthService) SaveSession(cred session.Credential) error {
	return s.c.session.Save(cred)
}
