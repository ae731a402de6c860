package main

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/propcell-dev/propcell/internal/config"
	"github.com/propcell-dev/propcell/pkg/propcell"
)

func benchCmd() *cobra.Command {
	var writes int
	var chain int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure write and propagation throughput",
		Long: `Build a chain of identity-bound properties, drive the head with
sequential writes, and report how fast values reach the tail.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			if writes > 0 {
				cfg.Bench.Writes = writes
			}
			if chain > 0 {
				cfg.Bench.Chain = chain
			}
			return runBench(cfg.Bench)
		},
	}

	cmd.Flags().IntVar(&writes, "writes", 0, "Writes per run (default from propcell.json)")
	cmd.Flags().IntVar(&chain, "chain", 0, "Bound chain length (default from propcell.json)")

	return cmd
}

func runBench(cfg config.BenchConfig) error {
	if cfg.Writes <= 0 || cfg.Chain <= 0 {
		return fmt.Errorf("bench: writes and chain must be positive, got %d and %d", cfg.Writes, cfg.Chain)
	}

	head := propcell.New(0)
	tail := head
	for i := 1; i < cfg.Chain; i++ {
		next := propcell.New(0)
		if _, err := propcell.Bind(tail, propcell.Identity[int](), next); err != nil {
			return fmt.Errorf("bench: build chain: %w", err)
		}
		tail = next
	}

	var delivered atomic.Int64
	tail.Raw().Subscribe(propcell.Observer[int]{
		Value: func(int) error {
			delivered.Add(1)
			return nil
		},
	})

	start := time.Now()
	for i := 1; i <= cfg.Writes; i++ {
		if err := head.Write(i); err != nil {
			return fmt.Errorf("bench: write %d: %w", i, err)
		}
	}
	elapsed := time.Since(start)

	perSec := float64(cfg.Writes) / elapsed.Seconds()
	fmt.Printf("chain length: %d\n", cfg.Chain)
	fmt.Printf("writes:       %d in %s (%.0f writes/sec)\n", cfg.Writes, elapsed.Round(time.Millisecond), perSec)
	fmt.Printf("tail saw:     %d values\n", delivered.Load())
	if tail.Read() != cfg.Writes {
		return fmt.Errorf("bench: tail ended at %d, expected %d", tail.Read(), cfg.Writes)
	}
	return nil
}
