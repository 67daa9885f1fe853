package hatchclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

func (c *Client) Communities(ctx context.Context, params Params) (json.RawMessage, error) {
	return c.getList(ctx, "get communities", "/auth/community", params, "communities")
}

func (c *Client) CommunitiesPage(ctx context.Context, params Params) (json.RawMessage, error) {
	return c.get(ctx, "get communities", "/auth/community", params)
}

func (c *Client) Community(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "get community", fmt.Sprintf("/auth/community/%d", id), nil)
}

func (c *Client) CreateCommunity(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/community", payload, "Community created successfully!", "Failed to create community.")
}

func (c *Client) UpdateCommunity(ctx context.Context, id int, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPut, fmt.Sprintf("/auth/community/%d", id), payload, "Community updated successfully!", "Failed to update community.")
}

func (c *Client) DeleteCommunity(ctx context.Context, id int) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/auth/community/%d", id), nil, "Community deleted successfully!", "Failed to delete community.")
}

func (c *Client) CommunityMembers(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "get community members", fmt.Sprintf("/auth/community_member/list/%d", id), nil)
}

func (c *Client) AddCommunityMember(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/community_member/add", payload, "Member added to community!", "Failed to add member.")
}

func (c *Client) RemoveCommunityMember(ctx context.Context, id int) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/auth/community_member/remove/%d", id), nil, "Member removed from community!", "Failed to remove member.")
}

func (c *Client) SearchCommunities(ctx context.Context, term string) (json.RawMessage, error) {
	return c.query(ctx, "search communities", "/auth/search", map[string]string{"search": term})
}

func (c *Client) CommunityByRoles(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "get community by roles", fmt.Sprintf("/auth/community_by_roles/%d", id), nil)
}

func (c *Client) CommunityDetail(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "get community detail", fmt.Sprintf("/auth/community_detail/%d", id), nil)
}

func (c *Client) CommunityInterest(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "get community interest", fmt.Sprintf("/auth/community_interest/%d", id), nil)
}

func (c *Client) CommunityList(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "get community list", fmt.Sprintf("/auth/community_list/%d", id), nil)
}

func (c *Client) MyCommunities(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "get my communities", fmt.Sprintf("/auth/my_community/%d", id), nil)
}

func (c *Client) AllMyCommunities(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "get all my communities", fmt.Sprintf("/auth/my_all_communities/%d", id), nil)
}

func (c *Client) HomeMultipleCommunity(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "get home communities", fmt.Sprintf("/auth/home_multiple_community/%d", id), nil)
}
