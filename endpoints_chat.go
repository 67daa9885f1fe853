package hatchclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

func (c *Client) Conversations(ctx context.Context, profileID int) (json.RawMessage, error) {
	return c.get(ctx, "get conversations", fmt.Sprintf("/auth/conversations-list/%d", profileID), nil)
}

func (c *Client) ChatroomMessages(ctx context.Context, chatroomID int) (json.RawMessage, error) {
	return c.get(ctx, "get chatroom messages", fmt.Sprintf("/auth/chatroom-message-list/%d", chatroomID), nil)
}

func (c *Client) SendChatMessage(ctx context.Context, chatroomID int, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, fmt.Sprintf("/auth/chatroom-send-message/%d", chatroomID), payload, "", "")
}

func (c *Client) CreateChatroom(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/chatroom/create", payload, "Chatroom created successfully!", "Failed to create chatroom.")
}

func (c *Client) DeleteChatroom(ctx context.Context, chatroomID int) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, fmt.Sprintf("/auth/chatroom/delete/%d", chatroomID), nil, "Chatroom deleted successfully!", "Failed to delete chatroom.")
}

func (c *Client) AddUserToChatroom(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/chatroom/user/add", payload, "User added to chatroom!", "Failed to add user to chatroom.")
}

func (c *Client) SendDirectMessage(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/send-message", payload, "", "")
}

func (c *Client) Messages(ctx context.Context, chatID int) (json.RawMessage, error) {
	return c.get(ctx, "get messages", fmt.Sprintf("/auth/message-list/%d", chatID), nil)
}

func (c *Client) DeleteMessage(ctx context.Context, messageID int) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, fmt.Sprintf("/auth/message-delete/%d", messageID), nil, "Message deleted!", "Failed to delete message.")
}

func (c *Client) DeleteChat(ctx context.Context, chatID int) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, fmt.Sprintf("/auth/chat-delete/%d", chatID), nil, "Chat deleted!", "Failed to delete chat.")
}

func (c *Client) UpdateChatStatus(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.mutate(ctx, http.MethodPost, "/auth/chat-status", payload, "", "")
}
