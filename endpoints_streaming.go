package hatchclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

func (c *Client) Streams(ctx context.Context, params Params) (json.RawMessage, error) {
	return c.getList(ctx, "get streams", "/auth/streaming", params, "streams")
}

func (c *Client) CreateStream(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/streaming", payload, "Stream created successfully!", "Failed to create stream.")
}

func (c *Client) UpdateStream(ctx context.Context, id int, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPut, fmt.Sprintf("/auth/streaming/%d", id), payload, "Stream updated successfully!", "Failed to update stream.")
}

func (c *Client) DeleteStream(ctx context.Context, id int) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/auth/streaming/%d", id), nil, "Stream deleted successfully!", "Failed to delete stream.")
}

func (c *Client) StreamUsers(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "get stream users", "/auth/stream_users", nil)
}

// RTCToken requests a real-time channel token for profileID.
func (c *Client) RTCToken(ctx context.Context, profileID int, payload any) (json.RawMessage, error) {
	if payload == nil {
		payload = map[string]any{}
	}
	return c.mutate(ctx, http.MethodPost, fmt.Sprintf("/auth/generate-rtc-token/%d", profileID), payload, "", "")
}

// Cloud recording control for live streams.

func (c *Client) AcquireRecording(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/agora/acquire", payload, "", "")
}

func (c *Client) StartRecording(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/agora/start", payload, "", "")
}

func (c *Client) StopRecording(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/agora/stop", payload, "", "")
}
