package hatchclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ClearCache asks the backend to drop its caches and clears the local
// response cache as well.
func (c *Client) ClearCache(ctx context.Context) (json.RawMessage, error) {
	body, err := c.call(ctx, "clear cache", http.MethodGet, "/clear-cache", &RequestOptions{NoCache: true})
	if err != nil {
		c.notifier.Notify(NotifyError, Message(err, "Failed to clear cache."))
		return nil, err
	}
	if c.cache != nil {
		c.cache.Clear()
		c.metrics.RecordCacheSize(0)
	}
	c.notifier.Notify(NotifySuccess, "Cache cleared successfully!")
	return unwrapData(body), nil
}

func (c *Client) Hashtags(ctx context.Context) (json.RawMessage, error) {
	return c.query(ctx, "get hashtags", "/auth/hashtags_list", nil)
}

// DashboardStats returns the headline counters shown on the dashboard.
func (c *Client) DashboardStats(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "get dashboard stats", "/auth/dashboard-stats", nil)
}

func (c *Client) Activities(ctx context.Context) (json.RawMessage, error) {
	return c.getList(ctx, "get activities", "/auth/activities", nil, "activities")
}

func (c *Client) ModerationLogs(ctx context.Context) (json.RawMessage, error) {
	return c.getList(ctx, "get moderation logs", "/auth/moderation-logs", nil, "logs")
}

// Maintenance jobs. These bypass the cache so every call reaches the
// backend.

func (c *Client) RunCron(ctx context.Context) (json.RawMessage, error) {
	body, err := c.call(ctx, "run cron", http.MethodGet, "/cron", &RequestOptions{NoCache: true})
	if err != nil {
		c.notifier.Notify(NotifyError, Message(err, "Failed to run cron job."))
		return nil, err
	}
	c.notifier.Notify(NotifySuccess, "Cron job executed successfully!")
	return unwrapData(body), nil
}

func (c *Client) RunCronPlan(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, "run cron plan", http.MethodGet, "/cron/plane", &RequestOptions{NoCache: true})
}

func (c *Client) RunRecurringPlan(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, "run recurring plan", http.MethodGet, "/recurring/plane", &RequestOptions{NoCache: true})
}

func (c *Client) NoAuth(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, "no auth", http.MethodGet, "/noauth", &RequestOptions{NoCache: true})
}

func (c *Client) Saad(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/saad", payload, "", "")
}

func (c *Client) RegisterWithChatAppToken(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/registeruserwithchatapptoken", payload, "", "")
}

func (c *Client) ChangePasscode(ctx context.Context, id int, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, fmt.Sprintf("/auth/change_passcode/%d", id), payload, "Passcode changed successfully!", "Failed to change passcode.")
}
