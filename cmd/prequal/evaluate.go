package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/prequal/internal/config"
	"github.com/iwvelando/prequal/internal/optimizer"
	"github.com/iwvelando/prequal/pkg/constants"
	"github.com/iwvelando/prequal/pkg/output"
	"github.com/iwvelando/prequal/pkg/prequal"
	"github.com/iwvelando/prequal/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var outputFormatFlag string

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate every active application in a config file",
	Long:  "Loads the applications file, applies its policy overrides and prints a pre-qualification report for each active application.",
	Args:  cobra.NoArgs,
	RunE:  runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVar(&configLocation, "config", constants.DefaultConfigFile, "path to applications file")
	evaluateCmd.Flags().StringVar(&outputFormatFlag, "output-format", "", "type of output override: pretty, csv, json")
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	conf, err := loadApplications(configLocation)
	if err != nil {
		return err
	}

	logger, err := initializeLogger(conf.Logging, logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if outputFormatFlag != "" {
		outputFormat = outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	return evaluate(cmd.Context(), logger, conf, outputFormat, os.Stdout)
}

// loadApplications reads the applications file at path, pointing at the
// shipped example when the file does not exist.
func loadApplications(path string) (*config.Configuration, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("no applications file at %s; copy %s to get started", path, constants.ExampleConfigFile)
	}
	conf, err := config.LoadConfiguration(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", path, err)
	}
	return conf, nil
}

// evaluate runs every active application in conf and writes the report to w.
func evaluate(ctx context.Context, logger *zap.Logger, conf *config.Configuration, outputFormat string, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.evaluate"),
		)
	}

	active := conf.ActiveApplications()
	reqs := make([]prequal.Request, len(active))
	for i, app := range active {
		reqs[i] = app.Request
	}

	engine := prequal.New(prequal.WithPolicy(conf.Policy))
	results, err := engine.ComputeBatch(ctx, reqs, constants.DefaultBatchWorkers)
	if err != nil {
		return err
	}

	evaluations := make([]output.Evaluation, len(results))
	for i, result := range results {
		evaluations[i] = output.Evaluation{Name: active[i].Name, Result: result}
		logger.Debug("application evaluated",
			zap.String("op", "main.evaluate"),
			zap.String("application", active[i].Name),
			zap.String("category", string(result.Category)),
			zap.String("status", string(result.Status)),
		)
	}

	searches, err := optimizer.NewRunner(logger, engine).Run(active)
	if err != nil {
		return err
	}
	searches.Apply(evaluations)

	logger.Info("evaluation complete",
		zap.String("op", "main.evaluate"),
		zap.Int("applications", len(evaluations)),
		zap.Int("searches", len(searches.Summaries)),
	)

	return output.Write(w, outputFormat, evaluations)
}
