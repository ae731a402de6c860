package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/propcell-dev/propcell/internal/config"
	"github.com/propcell-dev/propcell/pkg/inspect"
	"github.com/propcell-dev/propcell/pkg/metrics"
	"github.com/propcell-dev/propcell/pkg/propcell"
	"github.com/propcell-dev/propcell/pkg/wsource"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP inspect/metrics server",
		Long: `Serve registered properties over HTTP: runtime stats as live
properties, the last value of the configured feed if one is set,
and Prometheus metrics for all of them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Serve.Addr = addr
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from propcell.json)")

	return cmd
}

func runServe(cfg *config.Config) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	promReg := prometheus.NewRegistry()
	col := metrics.NewCollector(
		metrics.WithRegistry(promReg),
		metrics.WithNamespace(cfg.Serve.Namespace),
	)
	reg := inspect.NewRegistry(inspect.WithGatherer(promReg))

	goroutines := propcell.New(runtime.NumGoroutine())
	heap := propcell.New(heapBytes())
	uptime := propcell.New(0)

	inspect.Register[int](reg, "runtime.goroutines", goroutines)
	inspect.Register[uint64](reg, "runtime.heap_bytes", heap)
	inspect.Register[int](reg, "uptime_seconds", uptime)
	metrics.Observe[int](col, "runtime.goroutines", goroutines)
	metrics.Observe[uint64](col, "runtime.heap_bytes", heap)
	metrics.Observe[int](col, "uptime_seconds", uptime)

	if cfg.Feed.URL != "" {
		opts := []wsource.Option{wsource.WithLogger(logger)}
		if cfg.Feed.ReadTimeoutSeconds > 0 {
			opts = append(opts, wsource.WithReadTimeout(time.Duration(cfg.Feed.ReadTimeoutSeconds)*time.Second))
		}
		feed, err := wsource.Dial[any](context.Background(), cfg.Feed.URL, opts...)
		if err != nil {
			return err
		}
		defer feed.Close()

		last := propcell.FromSource[any](feed, nil)
		inspect.Register[any](reg, "feed.last", last)
		metrics.Observe[any](col, "feed.last", last)
		logger.Info("feed connected", "url", cfg.Feed.URL)
	}

	go func() {
		start := time.Now()
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for range ticker.C {
			goroutines.Write(runtime.NumGoroutine())
			heap.Write(heapBytes())
			uptime.Write(int(time.Since(start).Seconds()))
		}
	}()

	logger.Info("inspect server listening", "addr", cfg.Serve.Addr)
	return http.ListenAndServe(cfg.Serve.Addr, reg.Handler())
}

func heapBytes() uint64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.HeapAlloc
}
