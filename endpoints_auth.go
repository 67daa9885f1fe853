package hatchclient

import (
	"context"
	"encoding/json"
	"net/http"
)

// Login signs in with email and password. When the response carries a
// token the session is stored and the full response is returned. Login is
// never queued while offline.
func (c *Client) Login(ctx context.Context, email, password string) (json.RawMessage, error) {
	body, err := c.requestDirect(ctx, http.MethodPost, "/login", &RequestOptions{
		Body: map[string]string{"email": email, "password": password},
	})
	if err != nil {
		c.logger.Error("Login failed", "email", email, "error", err)
		c.notifier.Notify(NotifyError, Message(err, MsgLoginFailed))
		return nil, err
	}

	token, user := extractAuth(body)
	if token == "" {
		c.logger.Warn("Login response carried no token", "email", email)
		return body, nil
	}
	if err := c.session.Set(ctx, token, user); err != nil {
		c.logger.Error("Failed to persist session", "error", err)
	}
	c.logger.Info("Logged in", "email", email)
	c.notifier.Notify(NotifySuccess, "Login successful!")
	return body, nil
}

// Logout ends the session on the backend. The local session and response
// cache are cleared even when the backend call fails.
func (c *Client) Logout(ctx context.Context) (json.RawMessage, error) {
	body, err := c.Request(ctx, http.MethodPost, "/auth/logout", nil)

	if clearErr := c.session.Clear(ctx); clearErr != nil {
		c.logger.Error("Failed to clear session", "error", clearErr)
	}
	if c.cache != nil {
		c.cache.Clear()
		c.metrics.RecordCacheSize(0)
	}

	if err != nil {
		c.logger.Error("Logout request failed", "error", err)
		return nil, err
	}
	c.notifier.Notify(NotifySuccess, "Logged out successfully!")
	return body, nil
}

func (c *Client) Register(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/register", payload, "", "Registration failed.")
}

// CurrentUser returns the signed-in administrator as seen by the backend.
func (c *Client) CurrentUser(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "get current user", "/auth/me", nil)
}

func (c *Client) ChangePassword(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/change_password", payload, "Password changed successfully!", "Failed to change password.")
}

func (c *Client) VerifyEmail(ctx context.Context, code string) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/verify", map[string]string{"code": code}, "", "")
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/password/email", map[string]string{"email": email}, "", "")
}

// requestDirect is Request without the offline queue: an offline client
// fails with a network error, which hybrid mode may still serve from the
// mock backend.
func (c *Client) requestDirect(ctx context.Context, method, path string, opts *RequestOptions) (json.RawMessage, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	p, err := c.newPendingRequest(method, path, opts)
	if err != nil {
		return nil, err
	}
	data, err := c.execute(ctx, p, false)
	if err != nil {
		return c.fallback(ctx, p, "", err)
	}
	return data, nil
}

type authPayload struct {
	Token       string          `json:"token"`
	AccessToken string          `json:"access_token"`
	User        json.RawMessage `json:"user"`
	Data        json.RawMessage `json:"data"`
}

// extractAuth finds the token and user in a login response, either at the
// top level or inside data.
func extractAuth(body json.RawMessage) (string, json.RawMessage) {
	for depth := 0; depth < 2; depth++ {
		var p authPayload
		if err := json.Unmarshal(body, &p); err != nil {
			return "", nil
		}
		token := p.Token
		if token == "" {
			token = p.AccessToken
		}
		if token != "" {
			user := p.User
			if isNull(user) {
				user = p.Data
			}
			if isNull(user) {
				user = nil
			}
			return token, user
		}
		if isNull(p.Data) {
			return "", nil
		}
		body = p.Data
	}
	return "", nil
}
