package hatchclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

func (c *Client) Posts(ctx context.Context, params Params) (json.RawMessage, error) {
	return c.getList(ctx, "get posts", "/auth/post", params, "posts")
}

func (c *Client) PostsPage(ctx context.Context, params Params) (json.RawMessage, error) {
	return c.get(ctx, "get posts", "/auth/post", params)
}

func (c *Client) Post(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "get post", fmt.Sprintf("/auth/post/%d", id), nil)
}

func (c *Client) CreatePost(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/post", payload, "Post created successfully!", "Failed to create post.")
}

func (c *Client) UpdatePost(ctx context.Context, id int, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPut, fmt.Sprintf("/auth/post/%d", id), payload, "Post updated successfully!", "Failed to update post.")
}

func (c *Client) DeletePost(ctx context.Context, id int) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/auth/post/%d", id), nil, "Post deleted successfully!", "Failed to delete post.")
}

func (c *Client) ReportPost(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/report", payload, "Report submitted successfully!", "Failed to submit report.")
}

func (c *Client) LikePost(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/post_like", payload, "", "")
}

func (c *Client) PostVideoDetail(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "get post video detail", fmt.Sprintf("/auth/post_video_detail/%d", id), nil)
}

func (c *Client) PostVideoList(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "get post video list", fmt.Sprintf("/auth/post_video_list/%d", id), nil)
}

func (c *Client) PendingPost(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "get pending post", fmt.Sprintf("/auth/pending_post/%d", id), nil)
}

func (c *Client) UpdatePendingPost(ctx context.Context, id int, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, fmt.Sprintf("/auth/pending_post_update/%d", id), payload, "Pending post updated!", "Failed to update pending post.")
}

// CreateFeedPost publishes a post into a feed.
func (c *Client) CreateFeedPost(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/post-feed", payload, "Feed post created!", "Failed to create feed post.")
}

func (c *Client) DeleteFeedPost(ctx context.Context, id int) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/auth/post-feed/%d", id), nil, "Feed post deleted!", "Failed to delete feed post.")
}

// BunnyPost registers an uploaded video with the media CDN.
func (c *Client) BunnyPost(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/bunny_post", payload, "", "")
}
