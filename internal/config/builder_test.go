package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBuilder_NoOverrides(t *testing.T) {
	b := NewBuilder()
	require.False(t, b.HasSources())

	settings, err := b.Build()
	require.NoError(t, err)
	require.False(t, settings.CheckGitEnv)
	require.False(t, settings.CheckHostEnv)
	require.False(t, settings.AskQuestion)
}

func TestBuilder_IgnoresEmptyOverrides(t *testing.T) {
	b := NewBuilder().Add(nil).Add(&Config{})
	require.False(t, b.HasSources())
}

func TestBuilder_Defaults(t *testing.T) {
	settings, err := NewBuilder().Add(&Config{CheckGitEnv: boolPtr(true)}).Build()
	require.NoError(t, err)

	require.True(t, settings.CheckGitEnv)
	require.False(t, settings.CheckHostEnv)
	require.False(t, settings.AskQuestion)
	require.Empty(t, settings.HostEnvVariable)
	require.NotNil(t, settings.HostEnvMap)
	require.Equal(t, 5*time.Second, settings.GitTimeout)
	require.Zero(t, settings.AskTimeout)
	require.Zero(t, settings.GitEnv.Len())
}

func TestBuilder_LaterOverridesWin(t *testing.T) {
	manifest := &Config{
		GitEnv:          NewEnvMap(EnvEntry{"dev", "composer.dev.json"}, EnvEntry{"prod", "composer.prod.json"}),
		CheckGitEnv:     boolPtr(true),
		HostEnvVariable: stringPtr("APP_ENV"),
		HostEnvMap:      map[string]string{"production": "prod"},
	}
	file := &Config{
		GitEnv:       NewEnvMap(EnvEntry{"prod", "deploy/prod.json"}, EnvEntry{"qa", "composer.qa.json"}),
		CheckHostEnv: boolPtr(true),
		HostEnvMap:   map[string]string{"default": "dev"},
		GitTimeout:   stringPtr("250ms"),
	}

	settings, err := NewBuilder().Add(manifest).Add(file).Build()
	require.NoError(t, err)

	require.Equal(t, []string{"dev", "prod", "qa"}, settings.GitEnv.Names())
	prod, _ := settings.GitEnv.Lookup("prod")
	require.Equal(t, "deploy/prod.json", prod)
	require.True(t, settings.CheckGitEnv)
	require.True(t, settings.CheckHostEnv)
	require.Equal(t, "APP_ENV", settings.HostEnvVariable)
	require.Equal(t, map[string]string{"production": "prod", "default": "dev"}, settings.HostEnvMap)
	require.Equal(t, 250*time.Millisecond, settings.GitTimeout)
}

func TestBuilder_SettingsDoNotAliasConfig(t *testing.T) {
	cfg := &Config{
		GitEnv:      NewEnvMap(EnvEntry{"dev", "a.json"}),
		AskQuestion: boolPtr(true),
		HostEnvMap:  map[string]string{"x": "dev"},
	}
	b := NewBuilder().Add(cfg)
	settings, err := b.Build()
	require.NoError(t, err)

	settings.GitEnv.Set("dev", "changed.json")
	settings.HostEnvMap["x"] = "prod"

	again, err := b.Build()
	require.NoError(t, err)
	path, _ := again.GitEnv.Lookup("dev")
	require.Equal(t, "a.json", path)
	require.Equal(t, "dev", again.HostEnvMap["x"])
}

func TestBuilder_Validation(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *Config
		contains string
	}{
		{
			"empty environment name",
			&Config{AskQuestion: boolPtr(true), GitEnv: NewEnvMap(EnvEntry{"", "x.json"})},
			"empty environment name",
		},
		{
			"bad git timeout",
			&Config{CheckGitEnv: boolPtr(true), GitTimeout: stringPtr("soon")},
			"git-timeout",
		},
		{
			"negative ask timeout",
			&Config{AskQuestion: boolPtr(true), AskTimeout: stringPtr("-1s")},
			"ask-timeout must not be negative",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder().Add(tt.cfg).Build()
			require.ErrorIs(t, err, ErrInvalidSettings)
			require.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestBuilder_IncompleteStrategiesAreValid(t *testing.T) {
	tests := []struct {
		name  string
		cfg   *Config
		check func(t *testing.T, s *Settings)
	}{
		{
			"host env without variable",
			&Config{CheckHostEnv: boolPtr(true)},
			func(t *testing.T, s *Settings) {
				require.True(t, s.CheckHostEnv)
				require.Empty(t, s.HostEnvVariable)
			},
		},
		{
			"empty host env mapping",
			&Config{CheckHostEnv: boolPtr(true), HostEnvVariable: stringPtr("APP_ENV"), HostEnvMap: map[string]string{"production": ""}},
			func(t *testing.T, s *Settings) {
				require.Equal(t, "", s.HostEnvMap["production"])
			},
		},
		{
			"everything disabled",
			&Config{CheckGitEnv: boolPtr(false), GitEnv: NewEnvMap(EnvEntry{"dev", "x.json"})},
			func(t *testing.T, s *Settings) {
				require.False(t, s.CheckGitEnv)
				require.False(t, s.CheckHostEnv)
				require.False(t, s.AskQuestion)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings, err := NewBuilder().Add(tt.cfg).Build()
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}
}

func TestBuilder_ConfigSkipsValidation(t *testing.T) {
	cfg := NewBuilder().Add(&Config{CheckHostEnv: boolPtr(true)}).Config()
	require.True(t, *cfg.CheckHostEnv)
	require.Equal(t, "", *cfg.HostEnvVariable)
}
