// Package config provides loading, layering and validation of the
// environment-dependencies settings. Settings come from the base manifest's
// extra.environment-dependencies block (JSON) and an optional YAML file.
package config

import "time"

// DefaultHostEnvKey is the host-env-map key used when the host variable's
// value has no mapping of its own.
const DefaultHostEnvKey = "default"

// Config is the raw settings layer as written by the user. All optional
// fields are pointers to support merge semantics during building.
type Config struct {
	GitEnv          EnvMap            `yaml:"git-env" json:"git-env"`
	CheckGitEnv     *bool             `yaml:"check-git-env" json:"check-git-env"`
	CheckHostEnv    *bool             `yaml:"check-host-env" json:"check-host-env"`
	HostEnvVariable *string           `yaml:"host-env-variable" json:"host-env-variable"`
	HostEnvMap      map[string]string `yaml:"host-env-map" json:"host-env-map"`
	AskQuestion     *bool             `yaml:"ask-question" json:"ask-question"`
	GitTimeout      *string           `yaml:"git-timeout" json:"git-timeout"`
	AskTimeout      *string           `yaml:"ask-timeout" json:"ask-timeout"`
}

// IsEmpty reports whether no setting is present at all.
func (c *Config) IsEmpty() bool {
	return c == nil ||
		(c.GitEnv.Len() == 0 &&
			c.CheckGitEnv == nil &&
			c.CheckHostEnv == nil &&
			c.HostEnvVariable == nil &&
			len(c.HostEnvMap) == 0 &&
			c.AskQuestion == nil &&
			c.GitTimeout == nil &&
			c.AskTimeout == nil)
}

// Settings is the validated, fully defaulted configuration consumed by the
// environment resolver.
type Settings struct {
	// GitEnv maps environment names to fragment paths. Its keys are the
	// universe of valid environment names.
	GitEnv EnvMap

	// CheckGitEnv enables git branch based detection.
	CheckGitEnv bool

	// CheckHostEnv enables host environment variable based detection.
	CheckHostEnv bool

	// HostEnvVariable is the name of the variable read when CheckHostEnv is set.
	HostEnvVariable string

	// HostEnvMap maps host variable values to environment names. May hold
	// a DefaultHostEnvKey entry.
	HostEnvMap map[string]string

	// AskQuestion enables the interactive fallback.
	AskQuestion bool

	// GitTimeout bounds branch detection.
	GitTimeout time.Duration

	// AskTimeout bounds the interactive prompt. Zero means no limit.
	AskTimeout time.Duration
}
