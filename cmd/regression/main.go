package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/rxtech-lab/option-regression/internal/config"
	"github.com/rxtech-lab/option-regression/internal/datasource"
	"github.com/rxtech-lab/option-regression/internal/logger"
	"github.com/rxtech-lab/option-regression/internal/report"
	"github.com/rxtech-lab/option-regression/internal/runner"
	"github.com/rxtech-lab/option-regression/internal/types"
	"github.com/rxtech-lab/option-regression/internal/version"
	"github.com/rxtech-lab/option-regression/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const usageLine = "Usage: <csv file>"

const invalidInputLine = "Invalid Input File"

// regressionAction validates the input file, runs every configured variant over it
// and prints the report. A missing or invalid input file is reported on stdout and
// is not an error.
func regressionAction(stdout, stderr io.Writer) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		writer := report.NewWriter(stdout, report.DefaultPrecision)
		if err := writer.WriteBanner(); err != nil {
			return err
		}

		if cmd.Args().Len() < 1 {
			_, err := fmt.Fprintln(stdout, usageLine)

			return err
		}

		appLogger, err := logger.NewLoggerWithWriter(cmd.String("log-level"), stderr)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		defer func() {
			_ = appLogger.Sync()
		}()

		path := cmd.Args().First()
		if err := datasource.ValidateInputPath(path); err != nil {
			if !errors.IsInputValidationError(err) {
				return err
			}

			appLogger.Debug("Rejected input file", zap.String("path", path), zap.Error(err))
			_, writeErr := fmt.Fprintln(stdout, invalidInputLine)

			return writeErr
		}

		cfg, err := loadConfig(cmd.String("config"))
		if err != nil {
			return err
		}

		source, err := datasource.NewDataSource(cfg.Columns, cfg.Layouts(), appLogger)
		if err != nil {
			return fmt.Errorf("failed to create data source: %w", err)
		}

		defer func() {
			if closeErr := source.Close(); closeErr != nil {
				appLogger.Warn("Failed to close data source", zap.Error(closeErr))
			}
		}()

		if err := source.Initialize(path); err != nil {
			return fmt.Errorf("failed to initialize data source: %w", err)
		}

		start, end, err := cfg.DateRange()
		if err != nil {
			return err
		}

		strategyRunner := runner.NewRunner(
			cfg.StrategyConfigs(),
			runner.WithLogger(appLogger),
			runner.WithParallel(cfg.Parallel || cmd.Bool("parallel")),
		)

		callbacks := runner.LifecycleCallbacks{}
		if cmd.Bool("progress") {
			callbacks = progressCallbacks(stderr)
		}

		results, err := strategyRunner.Run(ctx, source, start, end, callbacks)
		if err != nil {
			return fmt.Errorf("strategy run failed: %w", err)
		}

		return report.NewWriter(stdout, cfg.DecimalPrecision).WriteAll(results)
	}
}

func schemaAction(stdout io.Writer) cli.ActionFunc {
	return func(_ context.Context, _ *cli.Command) error {
		schema, err := config.GenerateSchemaJSON()
		if err != nil {
			return fmt.Errorf("failed to generate schema: %w", err)
		}

		_, err = fmt.Fprintln(stdout, schema)

		return err
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}

	return config.Load(path)
}

// progressCallbacks draws one progress step per finished variant on w.
func progressCallbacks(w io.Writer) runner.LifecycleCallbacks {
	var bar *progressbar.ProgressBar

	onStart := runner.OnStartCallback(func(totalRuns int, totalBars int) error {
		bar = progressbar.NewOptions(totalRuns,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(fmt.Sprintf("Running strategies over %d bars", totalBars)),
			progressbar.OptionShowCount(),
		)

		return nil
	})

	onRunEnd := runner.OnRunEndCallback(func(_ int, _ types.RunResult) {
		if bar != nil {
			_ = bar.Add(1)
		}
	})

	onEnd := runner.OnEndCallback(func(_ error) {
		if bar != nil {
			_ = bar.Finish()
			_, _ = fmt.Fprintln(w)
		}
	})

	return runner.LifecycleCallbacks{
		OnStart:  &onStart,
		OnEnd:    &onEnd,
		OnRunEnd: &onRunEnd,
	}
}

func newCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "regression",
		Usage:     "Replay option premium strategies over a daily price history",
		ArgsUsage: "<csv file>",
		Version:   version.GetVersion(),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Path to a YAML configuration file",
				Required: false,
			},
			&cli.StringFlag{
				Name:     "log-level",
				Aliases:  []string{"l"},
				Usage:    "Log level written to stderr (debug, info, warn, error)",
				Value:    "warn",
				Required: false,
			},
			&cli.BoolFlag{
				Name:     "parallel",
				Aliases:  []string{"p"},
				Usage:    "Run the strategy variants concurrently",
				Required: false,
			},
			&cli.BoolFlag{
				Name:     "progress",
				Usage:    "Show a progress bar on stderr",
				Required: false,
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the configuration file",
				Action: schemaAction(stdout),
			},
		},
		Action: regressionAction(stdout, stderr),
	}
}

func main() {
	if err := newCommand(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
