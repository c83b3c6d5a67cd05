package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/benlang/jobdetector/internal/models"
)

// LoginResult is the successful login response: the bearer token to persist
// plus the user's profile.
type LoginResult struct {
	AccessToken string      `json:"access_token"`
	User        models.User `json:"user"`
}

// Me fetches the authenticated user's profile. A 401 surfaces as *Error so
// the caller can evict the stale token.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	data, err := c.get(ctx, "/api/auth/me", nil, true)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return models.User{}, fmt.Errorf("decode profile: %w", err)
	}
	return user, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	payload := map[string]string{"email": email, "password": password}
	data, err := c.send(ctx, http.MethodPost, "/api/auth/login", payload, false)
	if err != nil {
		return LoginResult{}, err
	}

	var result LoginResult
	if err := json.Unmarshal(data, &result); err != nil {
		return LoginResult{}, fmt.Errorf("decode login response: %w", err)
	}
	return result, nil
}

// Register creates a new account. The caller still has to log in afterwards.
func (c *Client) Register(ctx context.Context, email, password, fullName string) error {
	payload := map[string]string{"email": email, "password": password, "full_name": fullName}
	_, err := c.send(ctx, http.MethodPost, "/api/auth/register", payload, false)
	return err
}

// ForgotPassword asks the backend to email a password reset link.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	_, err := c.send(ctx, http.MethodPost, "/api/auth/forgot-password", payload, false)
	return err
}
