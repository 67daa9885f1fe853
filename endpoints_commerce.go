package hatchclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

func (c *Client) Notifications(ctx context.Context, profileID int) (json.RawMessage, error) {
	return c.getList(ctx, "get notifications", fmt.Sprintf("/auth/notification-list/%d", profileID), nil, "notifications")
}

func (c *Client) MarkNotificationsRead(ctx context.Context) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/notifications/read", nil, "Notifications marked as read!", "Failed to mark notifications as read.")
}

func (c *Client) Transactions(ctx context.Context, params Params) (json.RawMessage, error) {
	return c.getList(ctx, "get transactions", "/auth/transaction", params, "transactions")
}

// TransactionSummary returns the transaction page with its revenue totals
// (total_revenue, monthly_revenue, active_subscriptions, avg_transaction).
func (c *Client) TransactionSummary(ctx context.Context, params Params) (json.RawMessage, error) {
	return c.get(ctx, "get transaction summary", "/auth/transaction", params)
}

func (c *Client) SubscriptionPlans(ctx context.Context) (json.RawMessage, error) {
	return c.getList(ctx, "get subscription plans", "/auth/package_list", nil, "packages")
}

func (c *Client) UpdateSubscription(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/subscription", payload, "Subscription updated successfully!", "Failed to update subscription.")
}

func (c *Client) CurrentPlan(ctx context.Context) (json.RawMessage, error) {
	return c.query(ctx, "get current plan", "/auth/current/plan", nil)
}

func (c *Client) UpdatePlan(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/update/plan", payload, "Plan updated successfully!", "Failed to update plan.")
}

func (c *Client) Products(ctx context.Context, communityID int) (json.RawMessage, error) {
	return c.getList(ctx, "get products", fmt.Sprintf("/auth/products/%d", communityID), nil, "products")
}

func (c *Client) CreateProduct(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/products", payload, "Product created successfully!", "Failed to create product.")
}

func (c *Client) UpdateProduct(ctx context.Context, id int, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, fmt.Sprintf("/auth/products/%d", id), payload, "Product updated successfully!", "Failed to update product.")
}

func (c *Client) DeleteProduct(ctx context.Context, id int) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/auth/products/%d", id), nil, "Product deleted successfully!", "Failed to delete product.")
}

func (c *Client) AddCard(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/addcard", payload, "Card added successfully!", "Failed to add card.")
}

func (c *Client) UpdateCard(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/updatecard", payload, "Card updated successfully!", "Failed to update card.")
}

func (c *Client) Subscribe(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/subscribe", payload, "Subscribed successfully!", "Failed to subscribe.")
}

func (c *Client) Unsubscribe(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/unsubscribe", payload, "Unsubscribed successfully!", "Failed to unsubscribe.")
}
