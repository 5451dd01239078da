package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Enabled   bool   `json:"enabled"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

type SignupResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
	UserID  int64  `json:"userId"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	b, err := c.do(ctx, http.MethodPost, c.baseURL+"/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	if err != nil {
		return nil, err
	}
	var out LoginResponse
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if out.Token == "" {
		return nil, ErrEmptyResponse
	}
	return &out, nil
}

func (c *Client) Signup(ctx context.Context, username, email, password string) (*SignupResponse, error) {
	b, err := c.do(ctx, http.MethodPost, c.baseURL+"/auth/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, "")
	if err != nil {
		return nil, err
	}
	var out SignupResponse
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode signup response: %w", err)
	}
	return &out, nil
}

// Verify confirms an account with the emailed code and returns the
// backend's message.
func (c *Client) Verify(ctx context.Context, email, code string) (string, error) {
	b, err := c.do(ctx, http.MethodPost, c.baseURL+"/auth/verify", map[string]string{
		"email":            email,
		"verificationCode": code,
	}, "")
	if err != nil {
		return "", err
	}
	return decodeMessage(b), nil
}

func (c *Client) ResendVerification(ctx context.Context, email string) (string, error) {
	target := c.baseURL + "/auth/resend?" + url.Values{"email": {email}}.Encode()
	b, err := c.do(ctx, http.MethodPost, target, nil, "")
	if err != nil {
		return "", err
	}
	return decodeMessage(b), nil
}

// CurrentUser resolves a bearer token through GET /users/me.
func (c *Client) CurrentUser(ctx context.Context, token string) (*User, error) {
	b, err := c.do(ctx, http.MethodGet, c.baseURL+"/users/me", nil, token)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, ErrEmptyResponse
	}
	var u User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}

func decodeMessage(b []byte) string {
	var m messageResponse
	_ = json.Unmarshal(b, &m)
	return m.Message
}
