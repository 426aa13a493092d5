package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSettings is wrapped by every validation failure.
var ErrInvalidSettings = errors.New("invalid environment-dependencies settings")

// Builder constructs Settings by layering overrides on top of defaults.
type Builder struct {
	overrides []*Config
}

// NewBuilder creates a new configuration builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add adds a configuration override. Overrides are applied in order:
// later overrides take precedence over earlier ones. Nil and empty configs
// are ignored.
func (b *Builder) Add(override *Config) *Builder {
	if !override.IsEmpty() {
		b.overrides = append(b.overrides, override)
	}
	return b
}

// HasSources reports whether any non-empty override was added. Without one
// the feature is not enabled for the project.
func (b *Builder) HasSources() bool {
	return len(b.overrides) > 0
}

// Config returns the merged raw configuration without validating it.
func (b *Builder) Config() *Config {
	cfg := CreateDefaultConfiguration()
	for _, override := range b.overrides {
		mergeConfig(cfg, override)
	}
	return cfg
}

// Build merges defaults and overrides, validates the result and converts it
// into Settings.
func (b *Builder) Build() (*Settings, error) {
	cfg := b.Config()

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return newSettings(cfg), nil
}

// mergeConfig applies non-nil fields from src to dst. Maps merge per key.
func mergeConfig(dst, src *Config) {
	for _, e := range src.GitEnv.Entries() {
		dst.GitEnv.Set(e.Name, e.Path)
	}
	if src.CheckGitEnv != nil {
		dst.CheckGitEnv = src.CheckGitEnv
	}
	if src.CheckHostEnv != nil {
		dst.CheckHostEnv = src.CheckHostEnv
	}
	if src.HostEnvVariable != nil {
		dst.HostEnvVariable = src.HostEnvVariable
	}
	if src.HostEnvMap != nil {
		if dst.HostEnvMap == nil {
			dst.HostEnvMap = make(map[string]string)
		}
		for k, v := range src.HostEnvMap {
			dst.HostEnvMap[k] = v
		}
	}
	if src.AskQuestion != nil {
		dst.AskQuestion = src.AskQuestion
	}
	if src.GitTimeout != nil {
		dst.GitTimeout = src.GitTimeout
	}
	if src.AskTimeout != nil {
		dst.AskTimeout = src.AskTimeout
	}
}

// validate rejects only settings that cannot be interpreted. Settings that
// merely leave a strategy without input, such as check-host-env without a
// variable name or every strategy switched off, are valid and resolve to no
// environment.
func validate(cfg *Config) error {
	for _, e := range cfg.GitEnv.Entries() {
		if e.Name == "" {
			return fmt.Errorf("%w: git-env has an empty environment name", ErrInvalidSettings)
		}
	}

	if _, err := parseTimeout("git-timeout", *cfg.GitTimeout); err != nil {
		return err
	}
	if _, err := parseTimeout("ask-timeout", *cfg.AskTimeout); err != nil {
		return err
	}

	return nil
}

func parseTimeout(key, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %v", ErrInvalidSettings, key, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", ErrInvalidSettings, key)
	}
	return d, nil
}

// newSettings converts a validated Config into Settings.
func newSettings(cfg *Config) *Settings {
	gitTimeout, _ := parseTimeout("git-timeout", *cfg.GitTimeout)
	askTimeout, _ := parseTimeout("ask-timeout", *cfg.AskTimeout)

	hostEnvMap := make(map[string]string, len(cfg.HostEnvMap))
	for k, v := range cfg.HostEnvMap {
		hostEnvMap[k] = v
	}

	return &Settings{
		GitEnv:          NewEnvMap(cfg.GitEnv.Entries()...),
		CheckGitEnv:     *cfg.CheckGitEnv,
		CheckHostEnv:    *cfg.CheckHostEnv,
		HostEnvVariable: *cfg.HostEnvVariable,
		HostEnvMap:      hostEnvMap,
		AskQuestion:     *cfg.AskQuestion,
		GitTimeout:      gitTimeout,
		AskTimeout:      askTimeout,
	}
}
