// Chain pipeline daemon: chain-sync → block-fetch → reducers → storage.
//
// Usage:
//
//	chainpipelined run              Run the pipeline
//	chainpipelined cursor show      Print the persisted resume cursor
//	chainpipelined cursor reset     Rewind the persisted resume cursor to origin
//	chainpipelined --help           Show help
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Klingon-tech/chain-pipeline/config"
	"github.com/Klingon-tech/chain-pipeline/internal/bootstrap"
	klog "github.com/Klingon-tech/chain-pipeline/internal/log"
	"github.com/Klingon-tech/chain-pipeline/internal/storepipe"
)

func main() {
	root := &cobra.Command{
		Use:   "chainpipelined",
		Short: "Ingest chain-sync events into a CRDT-backed projection store",
	}
	root.AddCommand(runCmd(), cursorCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline until it finalizes or is signaled",
		RunE: func(*cobra.Command, []string) error {
			return runPipeline()
		},
	}
}

func cursorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cursor",
		Short: "Inspect or clear the persisted resume cursor",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the persisted resume cursor",
			RunE: func(*cobra.Command, []string) error {
				return cursorShow()
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Rewind the persisted resume cursor to origin",
			RunE: func(*cobra.Command, []string) error {
				return cursorReset()
			},
		},
	)
	return cmd
}

// ── 1. Load config, init logging, dial storage+peer, run until signaled ──
func runPipeline() error {
	cfg, _, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := initLogging(cfg); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	logger := klog.WithComponent("bootstrap")

	logger.Info().
		Str("network", string(cfg.Network)).
		Str("peer", cfg.Peer.Addr).
		Str("storage", cfg.Storage.ConnectionParams).
		Strs("reducers", cfg.Reducers.Kinds).
		Msg("starting chain pipeline")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pipeline, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		return fmt.Errorf("building pipeline: %w", err)
	}
	defer pipeline.Close()

	// ── 2. Metrics endpoint ───────────────────────────────────────────
	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", pipeline.Metrics.Handler())
		metricsSrv = &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Metrics.Addr, cfg.Metrics.Port), Handler: mux}
		go func() {
			logger.Info().Str("addr", metricsSrv.Addr).Msg("metrics endpoint listening")
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error().Err(err).Msg("metrics server stopped unexpectedly")
			}
		}()
	}

	// ── 3. Run the pipeline in the background, wait for signal or exit ──
	runErr := make(chan error, 1)
	go func() { runErr <- pipeline.Run(ctx) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var finalErr error
	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
		cancel()
		finalErr = <-runErr
	case finalErr = <-runErr:
		logger.Info().Msg("pipeline stopped on its own")
	}

	if metricsSrv != nil {
		_ = metricsSrv.Close()
	}

	if finalErr != nil && ctx.Err() == nil {
		logger.Error().Err(finalErr).Msg("pipeline exited with an error")
		return finalErr
	}
	logger.Info().Msg("goodbye")
	return nil
}

func cursorShow() error {
	cfg, _, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	store, err := storepipe.DialRedisStore(cfg.Storage.ConnectionParams)
	if err != nil {
		return fmt.Errorf("dialing storage: %w", err)
	}
	defer store.Close()

	cursor, err := storepipe.ReadCursor(context.Background(), store)
	if err != nil {
		return fmt.Errorf("reading cursor: %w", err)
	}
	if cursor == nil {
		fmt.Println("no cursor persisted yet")
		return nil
	}
	fmt.Println(cursor.String())
	return nil
}

func cursorReset() error {
	cfg, _, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	store, err := storepipe.DialRedisStore(cfg.Storage.ConnectionParams)
	if err != nil {
		return fmt.Errorf("dialing storage: %w", err)
	}
	defer store.Close()

	if err := storepipe.ResetCursor(context.Background(), store); err != nil {
		return fmt.Errorf("clearing cursor: %w", err)
	}
	fmt.Println("cursor reset to origin")
	return nil
}

func initLogging(cfg *config.Config) error {
	logFile := cfg.Log.File
	if logFile == "" {
		logFile = cfg.LogsDir() + "/chainpipeline.log"
	}
	if err := os.MkdirAll(cfg.LogsDir(), 0755); err != nil {
		return err
	}
	return klog.Init(cfg.Log.Level, cfg.Log.JSON, logFile)
}
