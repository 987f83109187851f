package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/prequal/internal/server"
	"github.com/iwvelando/prequal/pkg/constants"
	"github.com/iwvelando/prequal/pkg/prequal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serverConfigLocation string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pre-qualification HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serverConfigLocation, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := server.LoadConfig(serverConfigLocation)
	if err != nil {
		return err
	}

	logger, err := initializeLogger(cfg.Logging, logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	policy, err := cfg.Policy()
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting server",
		zap.String("op", "main.serve"),
		zap.String("version", version),
		zap.Int("batchWorkers", cfg.BatchWorkers),
		zap.Int64("maxUploadSize", cfg.UploadSizeBytes()),
	)

	return server.Run(ctx, logger, cfg, prequal.New(prequal.WithPolicy(policy)), version)
}
