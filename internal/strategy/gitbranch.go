package strategy

import (
	"context"

	"github.com/MyCarrier-DevOps/go-envdeps/internal/config"
)

// GitBranchStrategy picks the environment named after the current branch,
// or failing that after the branch the current one was forked from.
type GitBranchStrategy struct {
	branches BranchProvider
}

// NewGitBranchStrategy creates a new GitBranchStrategy. branches may be nil
// when the project is not a git checkout; the strategy then finds nothing.
func NewGitBranchStrategy(branches BranchProvider) *GitBranchStrategy {
	return &GitBranchStrategy{branches: branches}
}

func (s *GitBranchStrategy) Name() string { return "GitBranch" }

func (s *GitBranchStrategy) Enabled(settings *config.Settings) bool {
	return settings.CheckGitEnv
}

func (s *GitBranchStrategy) Detect(ctx context.Context, settings *config.Settings) (Detection, error) {
	exp := NewExplanation(s.Name())

	if s.branches == nil {
		exp.Add("no git repository available")
		return Detection{Explanation: exp}, nil
	}

	if settings.GitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.GitTimeout)
		defer cancel()
	}

	branch, err := s.branches.CurrentBranch(ctx)
	if err != nil {
		exp.Addf("current branch unavailable: %v", err)
		return Detection{Explanation: exp}, nil
	}
	if branch == "" {
		exp.Add("current branch unavailable: no output")
		return Detection{Explanation: exp}, nil
	}

	if settings.GitEnv.Has(branch) {
		exp.Addf("current branch %s is a configured environment", branch)
		return Detection{
			Environment: branch,
			Found:       true,
			Source:      "current branch " + branch,
			Explanation: exp,
		}, nil
	}
	exp.Addf("current branch %s is not a configured environment", branch)

	parent, err := s.branches.ParentBranch(ctx)
	if err != nil {
		exp.Addf("parent branch unavailable: %v", err)
		return Detection{Explanation: exp}, nil
	}
	if parent == "" {
		exp.Add("no parent branch found")
		return Detection{Explanation: exp}, nil
	}

	if settings.GitEnv.Has(parent) {
		exp.Addf("parent branch %s is a configured environment", parent)
		return Detection{
			Environment: parent,
			Found:       true,
			Source:      "parent branch " + parent,
			Explanation: exp,
		}, nil
	}

	exp.Addf("parent branch %s is not a configured environment", parent)
	return Detection{Explanation: exp}, nil
}
