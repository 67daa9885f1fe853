package hatchclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hatchsocial/hatchclient/storage"
)

// Settings are the dashboard preferences stored under KeySettings.
type Settings struct {
	Theme           string `json:"theme"`
	Notifications   bool   `json:"notifications"`
	AutoRefresh     bool   `json:"auto_refresh"`
	RefreshInterval int    `json:"refresh_interval"`
	Language        string `json:"language"`
	Timezone        string `json:"timezone"`
}

// DefaultSettings returns the settings used before any are saved.
func DefaultSettings() Settings {
	return Settings{
		Theme:           "dark",
		Notifications:   true,
		AutoRefresh:     true,
		RefreshInterval: 30000,
		Language:        "en",
		Timezone:        localTimezone(),
	}
}

// RefreshEvery returns the auto-refresh period.
func (s Settings) RefreshEvery() time.Duration {
	return time.Duration(s.RefreshInterval) * time.Millisecond
}

// Settings loads the saved settings. Fields missing from the stored
// document keep their defaults.
func (c *Client) Settings(ctx context.Context) (Settings, error) {
	settings := DefaultSettings()
	err := storage.GetJSON(ctx, c.store, KeySettings, &settings)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return DefaultSettings(), fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// SaveSettings persists s.
func (c *Client) SaveSettings(ctx context.Context, s Settings) error {
	if err := storage.SetJSON(ctx, c.store, KeySettings, s); err != nil {
		c.notifier.Notify(NotifyError, "Failed to save settings.")
		return fmt.Errorf("save settings: %w", err)
	}
	c.notifier.Notify(NotifySuccess, MsgSettingsSaved)
	return nil
}

func localTimezone() string {
	name := time.Now().Location().String()
	if name == "" || name == "Local" {
		return "UTC"
	}
	return name
}
