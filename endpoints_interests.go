package hatchclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

func (c *Client) Interests(ctx context.Context, params Params) (json.RawMessage, error) {
	return c.getList(ctx, "get interests", "/auth/interest_list", params, "interests")
}

func (c *Client) Interest(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "get interest", fmt.Sprintf("/auth/interest_detail/%d", id), nil)
}

func (c *Client) CreateInterest(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/interest", payload, "Interest created successfully!", "Failed to create interest.")
}

func (c *Client) PurchaseInterest(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/interest_buy", payload, "Interest purchased successfully!", "Failed to purchase interest.")
}

// ProfileInterest returns a profile's interests, or one of them when
// interestID is positive.
func (c *Client) ProfileInterest(ctx context.Context, profileID, interestID int) (json.RawMessage, error) {
	path := fmt.Sprintf("/auth/interest/%d", profileID)
	if interestID > 0 {
		path = fmt.Sprintf("%s/%d", path, interestID)
	}
	return c.get(ctx, "get profile interest", path, nil)
}

func (c *Client) PurchaseProfileInterest(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/purchase_interest", payload, "Interest purchased!", "Failed to purchase interest.")
}
