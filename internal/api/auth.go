package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nomad-tales/nomadtales/internal/models"
)

type authResponse struct {
	JWT  string      `json:"jwt"`
	User models.User `json:"user"`
}

// Register creates a new account. On success the issued credential is
// persisted and the new identity is returned. Duplicate e-mail or username
// surfaces as ErrValidation.
func (c *Client) Register(ctx context.Context, email, username, password string) (models.User, error) {
	body := map[string]string{"email": email, "username": username, "password": password}
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/local/register", nil, body, &out); err != nil {
		return models.User{}, err
	}
	if err := c.creds.Save(out.JWT); err != nil {
		return models.User{}, fmt.Errorf("save credential: %w", err)
	}
	return out.User, nil
}

// Login authenticates with an e-mail or username plus password. On success
// the issued credential is persisted and the identity is returned. Bad
// credentials surface as ErrUnauthorized.
func (c *Client) Login(ctx context.Context, identifier, password string) (models.User, error) {
	body := map[string]string{"identifier": identifier, "password": password}
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/local", nil, body, &out); err != nil {
		return models.User{}, err
	}
	if err := c.creds.Save(out.JWT); err != nil {
		return models.User{}, fmt.Errorf("save credential: %w", err)
	}
	return out.User, nil
}

// CurrentUser returns the identity bound to the stored credential.
// A missing, expired or rejected credential surfaces as ErrUnauthorized.
func (c *Client) CurrentUser(ctx context.Context) (models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, nil, &out); err != nil {
		return models.User{}, err
	}
	return out, nil
}
