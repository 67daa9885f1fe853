package cmd

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/hatchsocial/hatchclient"
	"github.com/hatchsocial/hatchclient/mock"
	"github.com/hatchsocial/hatchclient/storage"
)

func (a *app) logger(cmd *cobra.Command) hclog.Logger {
	return hatchclient.NewLogger("hatchctl", a.cfg.Log.Level, a.cfg.Log.JSON, cmd.ErrOrStderr())
}

// openStore returns the configured store and a function releasing it.
func (a *app) openStore(ctx context.Context, logger hclog.Logger) (storage.Store, func() error, error) {
	nop := func() error { return nil }

	switch a.cfg.Store.Kind {
	case "memory":
		return storage.NewMemoryStore(), nop, nil
	case "redis":
		r := a.cfg.Store.Redis
		store, err := storage.NewRedisStore(ctx, storage.RedisOptions{
			Addr:     r.Addr,
			Username: r.Username,
			Password: r.Password,
			DB:       r.DB,
			Prefix:   r.Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return storage.NewFileStore(afero.NewOsFs(), a.cfg.Store.Path, logger.Named("store")), nop, nil
	}
}

func (a *app) mockDataset() *mock.Dataset {
	return mock.New(mock.WithSeed(a.cfg.Mock.Seed)).Generate()
}

// newClient builds a client from the loaded configuration. The returned
// function closes the client and its store.
func (a *app) newClient(cmd *cobra.Command) (*hatchclient.Client, func(), error) {
	logger := a.logger(cmd)

	store, closeStore, err := a.openStore(cmd.Context(), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", a.cfg.Store.Kind, err)
	}

	api := a.cfg.API
	opts := []hatchclient.Option{
		hatchclient.WithBaseURL(api.BaseURL),
		hatchclient.WithTimeout(api.Timeout),
		hatchclient.WithRetryDelay(api.RetryDelay),
		hatchclient.WithRateLimitRetries(api.RateLimitRetries),
		hatchclient.WithNetworkRetries(api.NetworkRetries),
		hatchclient.WithMaxReplayAttempts(api.MaxReplayAttempts),
		hatchclient.WithStore(store),
		hatchclient.WithLogger(logger),
		hatchclient.WithNotifier(hatchclient.LogNotifier{Logger: logger}),
	}
	if api.CacheTTL > 0 {
		opts = append(opts, hatchclient.WithCacheTTL(api.CacheTTL))
	} else {
		opts = append(opts, hatchclient.WithoutCache())
	}
	if api.DrainInterval > 0 {
		opts = append(opts, hatchclient.WithDrainInterval(api.DrainInterval))
	}
	if api.Debug {
		opts = append(opts, hatchclient.WithDebug())
	}
	if api.Hybrid {
		opts = append(opts, hatchclient.WithHybridMode(mock.NewServer(a.mockDataset(), mock.WithLogger(logger))))
	}

	c := hatchclient.New(opts...)
	if err := c.ValidateConfiguration(); err != nil {
		_ = c.Close()
		_ = closeStore()
		return nil, nil, err
	}

	cleanup := func() {
		_ = c.Close()
		if err := closeStore(); err != nil {
			logger.Warn("failed to close store", "error", err)
		}
	}
	return c, cleanup, nil
}
