package hatchclient

import "time"

// Defaults used by New.
const (
	DefaultBaseURL           = "http://localhost:8000/api"
	DefaultTimeout           = 30 * time.Second
	DefaultRetryDelay        = time.Second
	DefaultRateLimitRetries  = 3
	DefaultNetworkRetries    = 2
	DefaultCacheTTL          = 60 * time.Second
	DefaultDrainInterval     = 30 * time.Second
	DefaultMaxReplayAttempts = 3
	DefaultPageSize          = 20
)

// PageSizeOptions are the page sizes offered by the dashboard.
var PageSizeOptions = []int{10, 20, 50, 100}

// Durable storage keys.
const (
	KeyToken       = "hatch_admin_token"
	KeyUser        = "hatch_admin_user"
	KeySettings    = "hatch_settings"
	KeyOfflineData = "hatch_offline_data"
	KeyCache       = "hatch_cache"
)

// User-facing messages shared by the orchestrator and endpoint methods.
const (
	MsgTimeout          = "Request timeout. Please try again."
	MsgSessionExpired   = "Session expired. Please login again."
	MsgOfflineQueued    = "You are offline. Request queued for later."
	MsgNetworkError     = "Network error. Please check your internet connection."
	MsgBackOnline       = "Back online! Syncing data..."
	MsgWentOffline      = "You are offline. Changes will be saved locally."
	MsgSyncCompleted    = "Sync completed!"
	MsgCannotSync       = "Cannot sync while offline"
	MsgNoOfflineData    = "No offline data to sync"
	MsgSyncingOffline   = "Syncing offline data..."
	MsgOfflineSynced    = "Offline data synced successfully!"
	MsgStoredOffline    = "Data saved offline. Will sync when online."
	MsgLoginFailed      = "Login failed. Please check your credentials."
	MsgServiceDegraded  = "Backend unreachable. Showing cached or demo data."
	MsgSettingsSaved    = "Settings saved successfully!"
	msgSyncingRequests  = "Syncing %d pending requests..."
	msgSyncWithFailures = "Sync completed with %d failed requests."
)
