package hatchclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

func (c *Client) Comments(ctx context.Context, params Params) (json.RawMessage, error) {
	return c.getList(ctx, "get comments", "/auth/comment", params, "comments")
}

func (c *Client) CreateComment(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/comment", payload, "Comment added successfully!", "Failed to add comment.")
}

func (c *Client) UpdateComment(ctx context.Context, id int, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPut, fmt.Sprintf("/auth/comment/%d", id), payload, "Comment updated successfully!", "Failed to update comment.")
}

func (c *Client) DeleteComment(ctx context.Context, id int) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/auth/comment/%d", id), nil, "Comment deleted successfully!", "Failed to delete comment.")
}

func (c *Client) FeedPostComment(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/feed_post_comment", payload, "", "")
}

func (c *Client) DeleteFeedPostComment(ctx context.Context, id int) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/auth/feed_post_comment/%d", id), nil, "Feed comment deleted!", "Failed to delete feed comment.")
}

func (c *Client) FeedPostLike(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/feed_post_like", payload, "", "")
}

func (c *Client) StreamComments(ctx context.Context, roomID int) (json.RawMessage, error) {
	return c.get(ctx, "get stream comments", fmt.Sprintf("/auth/stream_comment_list/%d", roomID), nil)
}

func (c *Client) StreamingComment(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/streaming_comment", payload, "", "")
}
