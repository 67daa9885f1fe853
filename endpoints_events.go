package hatchclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

func (c *Client) Events(ctx context.Context, params Params) (json.RawMessage, error) {
	return c.getList(ctx, "get events", "/auth/event", params, "events")
}

func (c *Client) EventsPage(ctx context.Context, params Params) (json.RawMessage, error) {
	return c.get(ctx, "get events", "/auth/event", params)
}

func (c *Client) Event(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "get event", fmt.Sprintf("/auth/event/%d", id), nil)
}

func (c *Client) CreateEvent(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/event", payload, "Event created successfully!", "Failed to create event.")
}

func (c *Client) UpdateEvent(ctx context.Context, id int, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPut, fmt.Sprintf("/auth/event/%d", id), payload, "Event updated successfully!", "Failed to update event.")
}

func (c *Client) DeleteEvent(ctx context.Context, id int) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/auth/event/%d", id), nil, "Event deleted successfully!", "Failed to delete event.")
}

func (c *Client) JoinEvent(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/event_join", payload, "Joined event successfully!", "Failed to join event.")
}
