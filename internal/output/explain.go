// Package output renders resolution reports and manifests for the CLI.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/MyCarrier-DevOps/go-envdeps/internal/strategy"
	"github.com/MyCarrier-DevOps/go-envdeps/pkg/envdeps"
)

// strategyOrder defines the display order for strategies.
var strategyOrder = []string{
	"GitBranch",
	"HostEnv",
	"Prompt",
}

// WriteExplanation writes a structured report of how the environment was
// resolved: every strategy's reasoning, the selected environment, and what
// happened to the fragment.
func WriteExplanation(w io.Writer, result *envdeps.Result) error {
	res := result.Resolution

	byStrategy := make(map[string]*strategy.Explanation, len(res.Explanations))
	for _, e := range res.Explanations {
		byStrategy[e.Strategy] = e
	}

	fmt.Fprintln(w, "Strategies evaluated:")
	for _, name := range strategyOrder {
		e, ok := byStrategy[name]
		switch {
		case !ok:
			fmt.Fprintf(w, "  %-12s (not reached)\n", name+":")
		case len(e.Steps) == 0:
			fmt.Fprintf(w, "  %-12s (skipped)\n", name+":")
		default:
			fmt.Fprintf(w, "  %s\n", name+":")
			for _, step := range e.Steps {
				fmt.Fprintf(w, "    %s %s\n", arrowPrefix, step)
			}
		}
	}

	fmt.Fprintln(w)
	if res.Determined {
		fmt.Fprintf(w, "Selected: %s (%s, %s)\n", res.Environment, res.Strategy, res.Source)
	} else {
		fmt.Fprintln(w, "Selected: (undetermined)")
	}

	fmt.Fprintln(w)
	switch {
	case result.Skipped != nil:
		fmt.Fprintf(w, "Result: skipped (%s)\n", result.Skipped)
	case result.FragmentPath != "":
		fmt.Fprintf(w, "Result: merged %s\n", result.FragmentPath)
	default:
		fmt.Fprintf(w, "Result: %s\n", res.Environment)
	}

	return nil
}

const arrowPrefix = "\u2192"

// FormatExplanation returns the explain output as a string.
func FormatExplanation(result *envdeps.Result) string {
	var sb strings.Builder
	_ = WriteExplanation(&sb, result)
	return sb.String()
}
