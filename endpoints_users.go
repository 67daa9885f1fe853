package hatchclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Users lists user profiles. params may filter (status, type), search and
// paginate (page, limit).
func (c *Client) Users(ctx context.Context, params Params) (json.RawMessage, error) {
	return c.getList(ctx, "get users", "/auth/profile", params, "users")
}

// UsersPage is Users with the pagination envelope kept: data, total,
// page, limit and total_pages.
func (c *Client) UsersPage(ctx context.Context, params Params) (json.RawMessage, error) {
	return c.get(ctx, "get users", "/auth/profile", params)
}

func (c *Client) User(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "get user", fmt.Sprintf("/auth/profile/%d", id), nil)
}

func (c *Client) CreateUser(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/profile", payload, "User created successfully!", "Failed to create user.")
}

func (c *Client) UpdateUser(ctx context.Context, id int, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPut, fmt.Sprintf("/auth/profile/%d", id), payload, "User updated successfully!", "Failed to update user.")
}

func (c *Client) DeleteUser(ctx context.Context, id int) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/auth/profile/%d", id), nil, "User deleted successfully!", "Failed to delete user.")
}

func (c *Client) SearchUsers(ctx context.Context, term string) (json.RawMessage, error) {
	return c.query(ctx, "search users", "/auth/member_search", map[string]string{"search": term})
}

func (c *Client) MemberList(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "get member list", "/auth/member", nil)
}

func (c *Client) ProfileMe(ctx context.Context, profileID int) (json.RawMessage, error) {
	return c.get(ctx, "get profile", fmt.Sprintf("/auth/profile_me/%d", profileID), nil)
}

func (c *Client) ProfileLogin(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/profile_login", payload, "", "")
}

func (c *Client) UpdateAccount(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/update_account", payload, "Account updated successfully!", "Failed to update account.")
}
