package hatchclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/hatchsocial/hatchclient/storage"
)

// StoreOffline saves payload for endpoint under KeyOfflineData, replacing
// any payload already saved for the same endpoint. SyncOfflineData posts it
// later.
func (c *Client) StoreOffline(ctx context.Context, endpoint string, payload any) error {
	data, err := c.loadOfflineData(ctx)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode offline payload for %s: %w", endpoint, err)
	}
	data[endpoint] = json.RawMessage(raw)

	if err := storage.SetJSON(ctx, c.store, KeyOfflineData, data); err != nil {
		return fmt.Errorf("save offline data: %w", err)
	}
	c.logger.Info("Stored offline payload", "endpoint", endpoint, "pending", len(data))
	c.notifier.Notify(NotifyInfo, MsgStoredOffline)
	return nil
}

// OfflineData returns the payloads saved by StoreOffline, keyed by
// endpoint.
func (c *Client) OfflineData(ctx context.Context) (map[string]json.RawMessage, error) {
	return c.loadOfflineData(ctx)
}

// SyncOfflineData posts every stored payload to its endpoint and removes
// the ones that succeed. Failures stay stored for the next sync and are
// returned together.
func (c *Client) SyncOfflineData(ctx context.Context) error {
	if !c.IsOnline() {
		c.notifier.Notify(NotifyWarning, MsgCannotSync)
		return nil
	}

	data, err := c.loadOfflineData(ctx)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		c.notifier.Notify(NotifyInfo, MsgNoOfflineData)
		return nil
	}

	c.notifier.Notify(NotifyInfo, MsgSyncingOffline)

	endpoints := make([]string, 0, len(data))
	for endpoint := range data {
		endpoints = append(endpoints, endpoint)
	}
	sort.Strings(endpoints)

	var result *multierror.Error
	for _, endpoint := range endpoints {
		err := c.syncPayload(ctx, endpoint, data[endpoint])
		if err != nil {
			c.logger.Error("Failed to sync offline payload", "endpoint", endpoint, "error", err)
			result = multierror.Append(result, fmt.Errorf("sync %s: %w", endpoint, err))
			continue
		}
		delete(data, endpoint)
	}

	if err := storage.SetJSON(ctx, c.store, KeyOfflineData, data); err != nil {
		result = multierror.Append(result, fmt.Errorf("save offline data: %w", err))
	}

	if err := result.ErrorOrNil(); err != nil {
		c.notifier.Notify(NotifyWarning, fmt.Sprintf(msgSyncWithFailures, len(result.Errors)))
		return err
	}
	c.notifier.Notify(NotifySuccess, MsgOfflineSynced)
	return nil
}

// syncPayload posts one stored payload. It never queues: the payload is
// still stored, so a failure here leaves it for the next sync.
func (c *Client) syncPayload(ctx context.Context, endpoint string, body json.RawMessage) error {
	opts := &RequestOptions{Body: body}
	p, err := c.newPendingRequest(http.MethodPost, endpoint, opts)
	if err != nil {
		return err
	}
	if _, err := c.execute(ctx, p, false); err != nil {
		return err
	}
	c.invalidate(http.MethodPost, endpoint, nil)
	return nil
}

func (c *Client) loadOfflineData(ctx context.Context) (map[string]json.RawMessage, error) {
	data := map[string]json.RawMessage{}
	err := storage.GetJSON(ctx, c.store, KeyOfflineData, &data)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("load offline data: %w", err)
	}
	return data, nil
}
