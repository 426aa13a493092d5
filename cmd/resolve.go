package cmd

import (
	"fmt"

	"github.com/MyCarrier-DevOps/go-envdeps/internal/output"
	"github.com/MyCarrier-DevOps/go-envdeps/pkg/envdeps"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print the detected environment without merging",
	Long: "resolve runs environment detection only. It prints the environment name,\n" +
		"or nothing when no environment could be determined.",
	Args: cobra.NoArgs,
	RunE: resolveRunE,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func resolveRunE(cmd *cobra.Command, _ []string) error {
	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}

	result, err := envdeps.Resolve(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if err := writeExplanation(cmd, result); err != nil {
		return err
	}

	switch flagOutput {
	case "json":
		return output.WriteResolution(cmd.OutOrStdout(), result)
	case "":
		return output.WriteEnvironment(cmd.OutOrStdout(), result)
	default:
		return fmt.Errorf("unknown output format %q", flagOutput)
	}
}
