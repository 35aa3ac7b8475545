package clinicsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Register creates an account. Invalid or duplicate input is an *APIError
// with StatusCode 400.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/usuarios/registro", req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login returns ErrUnauthenticated for a wrong email or password.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("contrasena", password)

	resp, err := c.doRequest(ctx, http.MethodPost, "/usuarios/login?"+form.Encode(), nil, nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		_ = resp.Body.Close()
		return nil, ErrUnauthenticated
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser returns an *APIError with StatusCode 404 for an unknown id.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/usuarios/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	return getList[User](ctx, c, "/usuarios")
}

func (c *Client) ListSpecialists(ctx context.Context) ([]User, error) {
	return getList[User](ctx, c, "/usuarios/especialistas")
}

func getList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var out []T
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}
