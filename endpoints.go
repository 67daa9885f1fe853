package hatchclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

var emptyList = json.RawMessage("[]")

// Decode unmarshals the result of an endpoint method into T:
//
//	users, err := hatchclient.Decode[[]mock.User](client.Users(ctx, nil))
func Decode[T any](data json.RawMessage, err error) (T, error) {
	var v T
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode response: %w", err)
	}
	return v, nil
}

// call runs a request and logs failures. Reads report nothing else.
func (c *Client) call(ctx context.Context, what, method, path string, opts *RequestOptions) (json.RawMessage, error) {
	body, err := c.Request(ctx, method, path, opts)
	if err != nil {
		c.logger.Error("Request failed", "operation", what, "method", method, "path", path, "error", err)
		return nil, err
	}
	return body, nil
}

// get reads path and unwraps the data field.
func (c *Client) get(ctx context.Context, what, path string, params Params) (json.RawMessage, error) {
	body, err := c.call(ctx, what, http.MethodGet, path, &RequestOptions{Params: params})
	if err != nil {
		return nil, err
	}
	return unwrapData(body), nil
}

// getList reads path and unwraps a list stored under data or key.
func (c *Client) getList(ctx context.Context, what, path string, params Params, key string) (json.RawMessage, error) {
	body, err := c.call(ctx, what, http.MethodGet, path, &RequestOptions{Params: params})
	if err != nil {
		return nil, err
	}
	return unwrapList(body, key), nil
}

// query is a read sent as POST with a JSON body.
func (c *Client) query(ctx context.Context, what, path string, body any) (json.RawMessage, error) {
	resp, err := c.call(ctx, what, http.MethodPost, path, &RequestOptions{Body: body})
	if err != nil {
		return nil, err
	}
	return unwrapData(resp), nil
}

// queryList is a list read sent as POST with a JSON body.
func (c *Client) queryList(ctx context.Context, what, path string, body any, key string) (json.RawMessage, error) {
	resp, err := c.call(ctx, what, http.MethodPost, path, &RequestOptions{Body: body})
	if err != nil {
		return nil, err
	}
	return unwrapList(resp, key), nil
}

// mutate sends a write and reports the outcome to the notifier. An empty
// success message skips the success notification and an empty failure
// message skips the error notification.
func (c *Client) mutate(ctx context.Context, method, path string, body any, success, failure string) (json.RawMessage, error) {
	resp, err := c.call(ctx, "mutate", method, path, &RequestOptions{Body: body})
	if err != nil {
		switch {
		case failure == "":
		case IsQueued(err):
			c.notifier.Notify(NotifyInfo, MsgOfflineQueued)
		default:
			c.notifier.Notify(NotifyError, Message(err, failure))
		}
		return nil, err
	}
	if success != "" {
		c.notifier.Notify(NotifySuccess, success)
	}
	return unwrapData(resp), nil
}

// unwrapData returns body.data when body is an object with a non-null data
// field, and body otherwise.
func unwrapData(body json.RawMessage) json.RawMessage {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return body
	}
	if data, ok := obj["data"]; ok && !isNull(data) {
		return data
	}
	return body
}

// unwrapList digs through data and key fields until it finds an array.
// Paginated envelopes nest the array one level deeper under data.
func unwrapList(body json.RawMessage, key string) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.RawMessage(trimmed)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return emptyList
	}
	for _, field := range []string{"data", key} {
		if field == "" {
			continue
		}
		if v, ok := obj[field]; ok && !isNull(v) {
			return unwrapList(v, key)
		}
	}
	return emptyList
}

func isNull(v json.RawMessage) bool {
	trimmed := bytes.TrimSpace(v)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
