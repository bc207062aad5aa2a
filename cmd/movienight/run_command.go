package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"movienight/internal/catalog"
	"movienight/internal/config"
	"movienight/internal/logging"
	"movienight/internal/output"
	"movienight/internal/services"
	"movienight/internal/workflow"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fill every row and write the daily artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			path := cfg.Output.Path
			if trimmed := strings.TrimSpace(outputPath); trimmed != "" {
				if path, err = config.ExpandPath(trimmed); err != nil {
					return services.Wrap(services.ErrConfiguration, "run", "output path", trimmed, err)
				}
			}

			runID := uuid.NewString()
			runCtx := services.WithRunID(cmd.Context(), runID)
			logger.Info("movienight run",
				logging.String(logging.FieldRunID, runID),
				logging.String("output", path),
				logging.Bool("dry_run", dryRun),
				logging.String("config", ctx.configPath),
				logging.Bool("config_file", ctx.configSeen),
			)

			if cfg.Output.Lock && !dryRun {
				lock, err := output.AcquireLock(path)
				if err != nil {
					return err
				}
				defer lock.Release()
			}

			filler, cleanup, err := buildFiller(runCtx, cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			var writer workflow.Writer
			if dryRun {
				writer = &streamWriter{out: cmd.OutOrStdout()}
			} else {
				writer = output.NewWriter(afero.NewOsFs(), path, logger)
			}

			runner := workflow.NewRunner(filler, writer, workflow.PlanFromConfig(cfg), workflow.WithLogger(logger))
			payload, err := runner.Run(runCtx)
			if err != nil {
				return err
			}
			if !dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s with %d items.\n", path, len(payload.Items))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Override the artifact path")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the payload to stdout instead of writing the artifact")
	return cmd
}

// streamWriter prints the encoded payload instead of persisting it.
type streamWriter struct {
	out io.Writer
}

func (w *streamWriter) Write(payload catalog.Payload) error {
	data, err := output.Encode(payload)
	if err != nil {
		return services.Wrap(services.ErrOutput, "output", "encode", "", err)
	}
	if err := output.ValidateDocument(data); err != nil {
		return services.Wrap(services.ErrOutput, "output", "validate", "stdout", err)
	}
	if _, err := w.out.Write(data); err != nil {
		return services.Wrap(services.ErrOutput, "output", "write", "stdout", err)
	}
	return nil
}
