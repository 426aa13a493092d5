package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/MyCarrier-DevOps/go-envdeps/internal/logging"
	"github.com/MyCarrier-DevOps/go-envdeps/internal/output"
	"github.com/MyCarrier-DevOps/go-envdeps/internal/prompt"
	"github.com/MyCarrier-DevOps/go-envdeps/pkg/envdeps"

	"github.com/spf13/cobra"
)

// stdin is the prompt input. Tests replace it.
var stdin = os.Stdin

func applyRunE(cmd *cobra.Command, _ []string) error {
	// 1. Build options from flags.
	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}

	// 2. Show config mode: print and exit.
	if flagShowConfig {
		return showConfig(cmd, opts)
	}

	// 3. Resolve and merge.
	result, err := envdeps.Apply(cmd.Context(), opts)
	if err != nil {
		return err
	}
	if result.Skipped != nil {
		opts.Logger.Info("no dependencies merged", slog.String("reason", result.Skipped.Error()))
	}

	// 4. Write explain output to stderr if requested.
	if err := writeExplanation(cmd, result); err != nil {
		return err
	}

	// 5. Write output.
	switch flagOutput {
	case "json":
		return output.WriteReport(cmd.OutOrStdout(), result)
	case "":
		return output.WriteManifest(cmd.OutOrStdout(), result)
	default:
		return fmt.Errorf("unknown output format %q", flagOutput)
	}
}

// buildOptions translates the global flags into SDK options.
func buildOptions(cmd *cobra.Command) (envdeps.Options, error) {
	if flagOutput != "" && flagOutput != "json" {
		return envdeps.Options{}, fmt.Errorf("unknown output format %q", flagOutput)
	}

	logger, err := logging.New(cmd.ErrOrStderr(), flagVerbosity)
	if err != nil {
		return envdeps.Options{}, err
	}

	opts := envdeps.Options{
		Path:         flagPath,
		ManifestPath: flagManifest,
		ConfigPath:   flagConfig,
		Logger:       logger,
	}

	if !flagNoInteraction && prompt.IsInteractive(stdin) {
		opts.Prompter = prompt.New(stdin, cmd.ErrOrStderr())
	} else {
		logger.Debug("interactive prompt disabled", slog.Bool("no-interaction", flagNoInteraction))
	}

	return opts, nil
}

// showConfig prints the effective settings as JSON.
func showConfig(cmd *cobra.Command, opts envdeps.Options) error {
	settings, err := envdeps.LoadSettings(opts)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	return output.WriteSettings(cmd.OutOrStdout(), settings)
}

func writeExplanation(cmd *cobra.Command, result *envdeps.Result) error {
	if !flagExplain {
		return nil
	}
	if err := output.WriteExplanation(cmd.ErrOrStderr(), result); err != nil {
		return fmt.Errorf("writing explanation: %w", err)
	}
	return nil
}
