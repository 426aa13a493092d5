package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// Global flags shared across commands.
var (
	flagPath          string
	flagManifest      string
	flagConfig        string
	flagOutput        string
	flagShowConfig    bool
	flagExplain       bool
	flagVerbosity     string
	flagNoInteraction bool
)

// rootCmd is the top-level command for envdeps.
var rootCmd = &cobra.Command{
	Use:   "envdeps",
	Short: "Environment specific dependency manifests",
	Long: "envdeps detects the deployment environment from the git branch, a host variable, or a prompt,\n" +
		"and merges that environment's composer fragment into the project manifest.\n\n" +
		"The manifest is printed to stdout with every top-level key kept. When nothing is merged\n" +
		"the base manifest is printed; repositories are always in list form and a missing\n" +
		"repositories, require or require-dev key is added empty.",
	// Default action is apply.
	RunE:          applyRunE,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPath, "path", "p", ".", "path to the project directory")
	rootCmd.PersistentFlags().StringVarP(&flagManifest, "manifest", "m", "composer.json", "base manifest, relative to --path")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to settings file (default: auto-detect envdeps.yml)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output format: json, or empty for default")
	rootCmd.PersistentFlags().BoolVar(&flagShowConfig, "show-config", false, "display the effective settings and exit")
	rootCmd.PersistentFlags().BoolVar(&flagExplain, "explain", false, "show how the environment was resolved")
	rootCmd.PersistentFlags().StringVarP(&flagVerbosity, "verbosity", "v", "info", "log verbosity: quiet, info, debug")
	rootCmd.PersistentFlags().BoolVarP(&flagNoInteraction, "no-interaction", "n", false, "never prompt for the environment")
}

// Execute runs the root command. An interrupt cancels a pending prompt.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
