package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/MyCarrier-DevOps/go-envdeps/internal/config"
)

// WrongInputMessage is shown after an answer that is not a configured
// environment.
const WrongInputMessage = "Wrong input."

// PromptStrategy asks the user to pick one of the git-env environments and
// keeps asking until the answer is valid or the prompt is cancelled.
type PromptStrategy struct {
	prompter Prompter
}

// NewPromptStrategy creates a new PromptStrategy. prompter may be nil in
// non-interactive runs; the strategy then finds nothing.
func NewPromptStrategy(prompter Prompter) *PromptStrategy {
	return &PromptStrategy{prompter: prompter}
}

func (s *PromptStrategy) Name() string { return "Prompt" }

func (s *PromptStrategy) Enabled(settings *config.Settings) bool {
	return settings.AskQuestion
}

// Question returns the prompt text listing the valid choices in order.
func Question(choices []string) string {
	return fmt.Sprintf("Please select which composer dependencies should be used: [%s]?", strings.Join(choices, ","))
}

// Detect prompts until a valid answer. The valid answers are always the
// git-env names, whether or not git detection is enabled.
func (s *PromptStrategy) Detect(ctx context.Context, settings *config.Settings) (Detection, error) {
	exp := NewExplanation(s.Name())

	choices := settings.GitEnv.Names()
	if len(choices) == 0 {
		exp.Add("git-env defines no environments to choose from")
		return Detection{Explanation: exp}, nil
	}
	if s.prompter == nil {
		exp.Add("no interactive input available")
		return Detection{Explanation: exp}, nil
	}

	if settings.AskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.AskTimeout)
		defer cancel()
	}

	question := Question(choices)
	for {
		answer, err := s.prompter.Ask(ctx, question)
		if err != nil {
			exp.Addf("prompt ended: %v", err)
			return Detection{Explanation: exp}, fmt.Errorf("%w: %w", ErrPromptCancelled, err)
		}

		answer = strings.TrimSpace(answer)
		if settings.GitEnv.Has(answer) {
			exp.Addf("user selected %s", answer)
			return Detection{
				Environment: answer,
				Found:       true,
				Source:      "interactive answer",
				Explanation: exp,
			}, nil
		}

		exp.Addf("rejected answer %q", answer)
		s.prompter.Reject(WrongInputMessage)
	}
}
