package hatchclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Feeds lists feeds. The backend takes the query as a JSON body.
func (c *Client) Feeds(ctx context.Context, params Params) (json.RawMessage, error) {
	if params == nil {
		params = Params{}
	}
	return c.queryList(ctx, "get feeds", "/auth/show-feed", params, "feeds")
}

func (c *Client) Feed(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "get feed", fmt.Sprintf("/auth/feed-detail/%d", id), nil)
}

func (c *Client) CreateFeed(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/feed", payload, "Feed created successfully!", "Failed to create feed.")
}

func (c *Client) UpdateFeed(ctx context.Context, id int, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, fmt.Sprintf("/auth/feed/%d", id), payload, "Feed updated successfully!", "Failed to update feed.")
}

func (c *Client) DeleteFeed(ctx context.Context, id int) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/auth/feed/%d", id), nil, "Feed deleted successfully!", "Failed to delete feed.")
}

func (c *Client) MyFeedList(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "get my feed list", fmt.Sprintf("/auth/my-feed-list/%d", id), nil)
}

func (c *Client) AllFeedList(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "get all feed list", "/auth/all-feed-list", nil)
}

func (c *Client) FeedPostList(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "get feed post list", fmt.Sprintf("/auth/feed-post-list/%d", id), nil)
}

func (c *Client) PostsByFeed(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "get posts by feed", fmt.Sprintf("/auth/post-by-feed/%d", id), nil)
}

func (c *Client) PostsByProfile(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "get posts by profile", fmt.Sprintf("/auth/post-by-profile/%d", id), nil)
}

func (c *Client) FollowFeed(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/feed-follow", payload, "", "")
}

func (c *Client) UpdatePostByFeed(ctx context.Context, id int, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, fmt.Sprintf("/auth/update-post-by-feed/%d", id), payload, "Feed post updated!", "Failed to update feed post.")
}
