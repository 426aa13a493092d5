package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFromBytes_Full(t *testing.T) {
	data := []byte(`
git-env:
  prod: composer.prod.json
  dev: composer.dev.json
  staging: ~
check-git-env: true
check-host-env: true
host-env-variable: APP_ENV
host-env-map:
  production: prod
  default: dev
ask-question: true
git-timeout: 2s
ask-timeout: 1m
`)

	cfg, err := LoadFromBytes(data)
	require.NoError(t, err)

	require.Equal(t, []string{"prod", "dev", "staging"}, cfg.GitEnv.Names())
	path, ok := cfg.GitEnv.Lookup("staging")
	require.True(t, ok)
	require.Empty(t, path)
	require.True(t, *cfg.CheckGitEnv)
	require.True(t, *cfg.CheckHostEnv)
	require.Equal(t, "APP_ENV", *cfg.HostEnvVariable)
	require.Equal(t, map[string]string{"production": "prod", "default": "dev"}, cfg.HostEnvMap)
	require.True(t, *cfg.AskQuestion)
	require.Equal(t, "2s", *cfg.GitTimeout)
	require.Equal(t, "1m", *cfg.AskTimeout)
}

func TestLoadFromBytes_Empty(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(""))
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.True(t, cfg.IsEmpty())
}

func TestLoadFromBytes_UnknownKey(t *testing.T) {
	_, err := LoadFromBytes([]byte("check-git-envv: true\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing config")
}

func TestLoadFromBytes_WrongTypes(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bool as word", "check-git-env: sometimes"},
		{"git-env as list", "git-env: [dev, prod]"},
		{"invalid yaml", "::bad yaml{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}

func TestLoadFromFile_Success(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "envdeps.yml")
	require.NoError(t, os.WriteFile(path, []byte("ask-question: true\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.True(t, *cfg.AskQuestion)
}

func TestLoadFromFile_NotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/envdeps.yml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading config file")
}

func TestLoadFromManifest(t *testing.T) {
	data := []byte(`{
  // project manifest
  "name": "acme/site",
  "require": {"php": ">=8.1"},
  "extra": {
    "environment-dependencies": {
      "git-env": {"dev": "composer.dev.json", "prod": "composer.prod.json",},
      "check-git-env": true,
      "ask-question": false
    }
  }
}`)

	cfg, err := LoadFromManifest(data)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, []string{"dev", "prod"}, cfg.GitEnv.Names())
	require.True(t, *cfg.CheckGitEnv)
	require.False(t, *cfg.AskQuestion)
	require.Nil(t, cfg.CheckHostEnv)
}

func TestLoadFromManifest_Absent(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"no extra", `{"name": "acme/site"}`},
		{"no block", `{"extra": {"branch-alias": {}}}`},
		{"null block", `{"extra": {"environment-dependencies": null}}`},
		{"empty object", `{"extra": {"environment-dependencies": {}}}`},
		{"empty array", `{"extra": {"environment-dependencies": []}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFromManifest([]byte(tt.json))
			require.NoError(t, err)
			require.Nil(t, cfg)
		})
	}
}

func TestLoadFromManifest_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		contains string
	}{
		{"broken manifest", `{"extra": `, "parsing manifest"},
		{"unknown key", `{"extra": {"environment-dependencies": {"ask": true}}}`, "parsing extra.environment-dependencies"},
		{"wrong type", `{"extra": {"environment-dependencies": {"check-git-env": "yes"}}}`, "parsing extra.environment-dependencies"},
		{"git-env path not string", `{"extra": {"environment-dependencies": {"git-env": {"dev": 1}}}}`, "parsing extra.environment-dependencies"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromManifest([]byte(tt.json))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.contains)
		})
	}
}
