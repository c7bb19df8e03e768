package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ricardo-aragon/ticashop-desk/internal/adapter"
	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
)

// LoginResult carries the upstream session grant.
type LoginResult struct {
	Token string
	User  domain.User
}

// Login exchanges credentials for a bearer token and the operator identity.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	body := map[string]any{"username": username, "password": password}
	raw, err := c.do(ctx, http.MethodPost, "/auth/login/", nil, body)
	if err != nil {
		return LoginResult{}, err
	}

	var resp struct {
		Token string          `json:"token"`
		User  json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return LoginResult{}, fmt.Errorf("decode login response: %w", err)
	}
	if resp.Token == "" {
		return LoginResult{}, fmt.Errorf("login response missing token: %w", ErrUnauthorized)
	}

	user, fb := adapter.DecodeUser(resp.User)
	c.logFallbacks(fb)
	return LoginResult{Token: resp.Token, User: user}, nil
}

// ListUsuarios returns every operator account, normalized.
func (c *Client) ListUsuarios(ctx context.Context) ([]domain.User, error) {
	raw, err := c.do(ctx, http.MethodGet, "/Usuario/", nil, nil)
	if err != nil {
		return nil, err
	}
	users, fb := adapter.DecodeUserList(raw)
	c.logFallbacks(fb)
	return users, nil
}

// ListUsuariosByRol filters accounts server-side on the raw rol token.
func (c *Client) ListUsuariosByRol(ctx context.Context, rol domain.Role) ([]domain.User, error) {
	query := url.Values{"rol": {string(rol)}}
	raw, err := c.do(ctx, http.MethodGet, "/Usuario/", query, nil)
	if err != nil {
		return nil, err
	}
	users, fb := adapter.DecodeUserList(raw)
	c.logFallbacks(fb)
	return users, nil
}

// GetUsuario fetches one account by ID.
func (c *Client) GetUsuario(ctx context.Context, id int64) (domain.User, error) {
	raw, err := c.do(ctx, http.MethodGet, usuarioPath(id), nil, nil)
	if err != nil {
		return domain.User{}, err
	}
	user, fb := adapter.DecodeUser(raw)
	c.logFallbacks(fb)
	return user, nil
}

// CreateUsuario posts a new account.
func (c *Client) CreateUsuario(ctx context.Context, draft adapter.UserDraft) (domain.User, error) {
	raw, err := c.do(ctx, http.MethodPost, "/Usuario/", nil, adapter.UserToBackend(draft))
	if err != nil {
		return domain.User{}, err
	}
	user, fb := adapter.DecodeUser(raw)
	c.logFallbacks(fb)
	return user, nil
}

// UpdateUsuario patches only the fields present in the partial update.
func (c *Client) UpdateUsuario(ctx context.Context, id int64, update adapter.UserUpdate) (domain.User, error) {
	raw, err := c.do(ctx, http.MethodPut, usuarioPath(id), nil, adapter.UserUpdateToBackend(update))
	if err != nil {
		return domain.User{}, err
	}
	user, fb := adapter.DecodeUser(raw)
	c.logFallbacks(fb)
	return user, nil
}

// DeleteUsuario removes an account.
func (c *Client) DeleteUsuario(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, usuarioPath(id), nil, nil)
	return err
}

func usuarioPath(id int64) string {
	return fmt.Sprintf("/Usuario/%d/", id)
}
