package strategy

// Providers bundles the collaborators the strategies consult. Any field may
// be nil: a nil Branches or Prompter disables that source, a nil LookupEnv
// reads the process environment.
type Providers struct {
	Branches  BranchProvider
	LookupEnv LookupEnvFunc
	Prompter  Prompter
}

// AllStrategies returns the detection strategies in evaluation order.
func AllStrategies(p Providers) []EnvironmentStrategy {
	return []EnvironmentStrategy{
		NewGitBranchStrategy(p.Branches),
		NewHostEnvStrategy(p.LookupEnv),
		NewPromptStrategy(p.Prompter),
	}
}
