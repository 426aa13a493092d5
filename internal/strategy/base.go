// Package strategy implements the environment detection strategies: git
// branch, host environment variable, and interactive prompt.
package strategy

import (
	"context"
	"errors"
	"fmt"

	"github.com/MyCarrier-DevOps/go-envdeps/internal/config"
)

// ErrPromptCancelled is returned by the prompt strategy when input ends or
// the context is done before a valid answer arrives.
var ErrPromptCancelled = errors.New("environment prompt cancelled")

// Detection is the outcome of one strategy.
type Detection struct {
	// Environment is the detected environment name. Empty unless Found.
	Environment string

	// Found reports whether the strategy produced a result.
	Found bool

	// Source is a human-readable description of where the environment
	// came from, e.g. "current branch dev".
	Source string

	// Explanation records the reasoning chain of the strategy.
	Explanation *Explanation
}

// Explanation records how a strategy reached its outcome.
type Explanation struct {
	// Strategy is the name of the strategy that produced this explanation.
	Strategy string

	// Steps records the reasoning chain in order.
	Steps []string
}

// NewExplanation creates a new Explanation for the given strategy name.
func NewExplanation(strategy string) *Explanation {
	return &Explanation{Strategy: strategy}
}

// Add appends a reasoning step. Nil-safe.
func (e *Explanation) Add(step string) {
	if e != nil {
		e.Steps = append(e.Steps, step)
	}
}

// Addf appends a formatted reasoning step. Nil-safe.
func (e *Explanation) Addf(format string, args ...any) {
	if e != nil {
		e.Steps = append(e.Steps, fmt.Sprintf(format, args...))
	}
}

// BranchProvider reports the checked-out branch and its nearest ancestor
// branch. Empty names mean "no result".
type BranchProvider interface {
	CurrentBranch(ctx context.Context) (string, error)
	ParentBranch(ctx context.Context) (string, error)
}

// LookupEnvFunc looks up a process environment variable.
type LookupEnvFunc func(name string) (string, bool)

// Prompter asks the user a question and reports rejected answers.
type Prompter interface {
	// Ask shows question and returns the raw answer. It returns an error
	// when input ends or ctx is done.
	Ask(ctx context.Context, question string) (string, error)

	// Reject tells the user the previous answer was not accepted.
	Reject(message string)
}

// EnvironmentStrategy is the interface implemented by all detection strategies.
type EnvironmentStrategy interface {
	// Name returns the human-readable name of this strategy.
	Name() string

	// Enabled reports whether settings switch this strategy on.
	Enabled(settings *config.Settings) bool

	// Detect tries to determine the environment. A strategy that cannot
	// produce a result returns a Detection with Found unset and a nil error.
	Detect(ctx context.Context, settings *config.Settings) (Detection, error)
}
