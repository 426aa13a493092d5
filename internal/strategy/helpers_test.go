package strategy

import (
	"context"
	"errors"

	"github.com/MyCarrier-DevOps/go-envdeps/internal/config"
)

// fakeBranches is a BranchProvider with canned answers.
type fakeBranches struct {
	current    string
	currentErr error
	parent     string
	parentErr  error

	parentCalls int
}

func (f *fakeBranches) CurrentBranch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return f.current, f.currentErr
}

func (f *fakeBranches) ParentBranch(ctx context.Context) (string, error) {
	f.parentCalls++
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return f.parent, f.parentErr
}

// scriptedPrompter answers from a fixed list, then reports end of input.
type scriptedPrompter struct {
	answers   []string
	questions []string
	rejects   []string
}

var errNoMoreInput = errors.New("no more input")

func (p *scriptedPrompter) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.questions = append(p.questions, question)
	if len(p.answers) == 0 {
		return "", errNoMoreInput
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (p *scriptedPrompter) Reject(message string) {
	p.rejects = append(p.rejects, message)
}

func lookupFrom(vars map[string]string) LookupEnvFunc {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func devProdSettings() *config.Settings {
	return &config.Settings{
		GitEnv: config.NewEnvMap(
			config.EnvEntry{Name: "dev", Path: "composer.dev.json"},
			config.EnvEntry{Name: "prod", Path: "composer.prod.json"},
		),
		CheckGitEnv: true,
		HostEnvMap:  map[string]string{},
	}
}
