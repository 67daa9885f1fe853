package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/hatchsocial/hatchclient/internal/config"
	"github.com/hatchsocial/hatchclient/mock"
)

const shutdownTimeout = 5 * time.Second

func newMockCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Serve or dump the seeded mock backend",
	}
	cmd.PersistentFlags().Int64("seed", 0, "dataset seed (default from config)")
	_ = a.v.BindPFlag("mock.seed", cmd.PersistentFlags().Lookup("seed"))

	cmd.AddCommand(newMockServeCmd(a), newMockDumpCmd(a))
	return cmd
}

func newMockServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the mock backend over HTTP",
		Long: `Serve the seeded mock backend over HTTP until interrupted.

The routes mirror the admin API under the configured base path. Log in with
` + mock.DemoEmail + ` / ` + mock.DemoPassword + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", a.cfg.Mock.Addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", a.cfg.Mock.Addr, err)
			}
			return serveMock(ctx, a.cfg, a.mockDataset(), a.logger(cmd), ln)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", "", "listen address (default 127.0.0.1:8000)")
	flags.Duration("latency", 0, "delay added to every response")
	flags.Bool("metrics", false, "expose Prometheus metrics")
	_ = a.v.BindPFlag("mock.addr", flags.Lookup("addr"))
	_ = a.v.BindPFlag("mock.latency", flags.Lookup("latency"))
	_ = a.v.BindPFlag("metrics.enabled", flags.Lookup("metrics"))
	return cmd
}

// serveMock serves ds on ln until ctx is done, then shuts down gracefully.
func serveMock(ctx context.Context, cfg *config.Config, ds *mock.Dataset, logger hclog.Logger, ln net.Listener) error {
	handler := http.Handler(mock.NewServer(ds,
		mock.WithBasePath(cfg.Mock.BasePath),
		mock.WithLatency(cfg.Mock.Latency),
		mock.WithLogger(logger),
	))

	mux := http.NewServeMux()
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		requests := prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hatch_mock_requests_total",
			Help: "Requests served by the mock backend",
		}, []string{"code", "method"})
		inFlight := prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hatch_mock_requests_in_flight",
			Help: "Requests currently being served by the mock backend",
		})
		registry.MustRegister(requests, inFlight)

		handler = promhttp.InstrumentHandlerInFlight(inFlight, promhttp.InstrumentHandlerCounter(requests, handler))
		mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}
	mux.Handle("/", handler)

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Info("mock backend listening",
		"addr", ln.Addr().String(),
		"base_path", cfg.Mock.BasePath,
		"users", ds.Users.Len(),
		"metrics", cfg.Metrics.Enabled,
	)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("mock backend: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down mock backend")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown mock backend: %w", err)
	}
	return nil
}

func newMockDumpCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write the seeded dataset as YAML or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := a.mockDataset().Snapshot()
			out := cmd.OutOrStdout()

			switch format {
			case formatYAML:
				return encodeYAML(out, snap)
			case formatJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			default:
				return fmt.Errorf("unknown output format %q: want json or yaml", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", formatYAML, "output format: yaml or json")
	return cmd
}
