// Package hatchclient is the API access layer of the Hatch Social admin
// dashboard. A Client wraps the backend REST service with:
//
//   - Session handling: bearer token headers, persisted login, 401 sign-out
//   - Retries with linear backoff on 429 and on network failures
//   - An offline queue that holds requests until connectivity returns
//   - A short-lived response cache with substring invalidation
//   - Hybrid mode: stale cache or an in-process mock backend when the real
//     one is unreachable (see the mock package)
//   - Prometheus metrics and hclog structured logging
//
// Typical usage:
//
//	client := hatchclient.New(
//	    hatchclient.WithBaseURL("https://admin.example.com/api"),
//	    hatchclient.WithStore(storage.NewFileStore(afero.NewOsFs(), path, logger)),
//	    hatchclient.WithHybridMode(mock.NewServer(mock.New().Generate())),
//	)
//	defer client.Close()
//	client.StartAutoDrain(ctx)
//
//	users, err := client.Users(ctx, hatchclient.Params{"status": "active"})
//
// Endpoint methods return the unwrapped JSON payload; use Decode to turn it
// into a typed value. A request issued while offline returns an error for
// which IsQueued reports true: it was accepted and will be sent by Drain.
package hatchclient
