package config

// DefaultGitTimeout bounds branch detection when git-timeout is not set.
const DefaultGitTimeout = "5s"

// CreateDefaultConfiguration returns a Config with all default values
// populated. Every detection strategy is disabled until the user enables it.
func CreateDefaultConfiguration() *Config {
	return &Config{
		CheckGitEnv:     boolPtr(false),
		CheckHostEnv:    boolPtr(false),
		HostEnvVariable: stringPtr(""),
		HostEnvMap:      map[string]string{},
		AskQuestion:     boolPtr(false),
		GitTimeout:      stringPtr(DefaultGitTimeout),
		AskTimeout:      stringPtr("0s"),
	}
}
