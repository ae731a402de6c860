package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/propcell-dev/propcell/internal/config"
	"github.com/propcell-dev/propcell/pkg/propcell"
	"github.com/propcell-dev/propcell/pkg/wsource"
)

func watchCmd() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream values from a WebSocket feed",
		Long: `Dial a WebSocket feed, decode each message as JSON, and print every
value as a line of JSON on stdout until the feed ends or the process
is interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			if url == "" {
				url = cfg.Feed.URL
			}
			if url == "" {
				return fmt.Errorf("watch: no feed URL; pass --url or set feed.url in %s", config.ConfigFileName)
			}
			timeout := time.Duration(cfg.Feed.ReadTimeoutSeconds) * time.Second
			return runWatch(url, timeout)
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "WebSocket feed URL (default from propcell.json)")

	return cmd
}

func runWatch(url string, readTimeout time.Duration) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	opts := []wsource.Option{wsource.WithLogger(logger)}
	if readTimeout > 0 {
		opts = append(opts, wsource.WithReadTimeout(readTimeout))
	}

	feed, err := wsource.Dial[any](context.Background(), url, opts...)
	if err != nil {
		return err
	}
	defer feed.Close()

	done := make(chan error, 1)
	feed.Subscribe(propcell.Observer[any]{
		Value: func(v any) error {
			line, err := json.Marshal(v)
			if err != nil {
				return err
			}
			fmt.Println(string(line))
			return nil
		},
		Complete: func() {
			done <- nil
		},
		Error: func(err error) {
			done <- err
		},
	})
	logger.Info("watching feed", "url", url)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	select {
	case err := <-done:
		return err
	case <-interrupt:
		return feed.Close()
	}
}
