package strategy

import (
	"context"
	"os"

	"github.com/MyCarrier-DevOps/go-envdeps/internal/config"
)

// HostEnvStrategy maps the value of a host environment variable to an
// environment through host-env-map, with a "default" fallback entry.
type HostEnvStrategy struct {
	lookup LookupEnvFunc
}

// NewHostEnvStrategy creates a new HostEnvStrategy. A nil lookup reads the
// process environment.
func NewHostEnvStrategy(lookup LookupEnvFunc) *HostEnvStrategy {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &HostEnvStrategy{lookup: lookup}
}

func (s *HostEnvStrategy) Name() string { return "HostEnv" }

func (s *HostEnvStrategy) Enabled(settings *config.Settings) bool {
	return settings.CheckHostEnv && settings.HostEnvVariable != ""
}

func (s *HostEnvStrategy) Detect(_ context.Context, settings *config.Settings) (Detection, error) {
	exp := NewExplanation(s.Name())
	name := settings.HostEnvVariable

	value, ok := s.lookup(name)
	if !ok {
		exp.Addf("variable %s is not set", name)
		return Detection{Explanation: exp}, nil
	}

	if env := settings.HostEnvMap[value]; env != "" {
		exp.Addf("%s=%s maps to %s", name, value, env)
		return Detection{
			Environment: env,
			Found:       true,
			Source:      "host variable " + name,
			Explanation: exp,
		}, nil
	}

	if env := settings.HostEnvMap[config.DefaultHostEnvKey]; env != "" {
		exp.Addf("%s=%s has no mapping, using default %s", name, value, env)
		return Detection{
			Environment: env,
			Found:       true,
			Source:      "host variable " + name + " (default)",
			Explanation: exp,
		}, nil
	}

	exp.Addf("%s=%s has no mapping and no default", name, value)
	return Detection{Explanation: exp}, nil
}
