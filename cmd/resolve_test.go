package cmd

import (
	"testing"

	"github.com/MyCarrier-DevOps/go-envdeps/internal/testutil"

	"github.com/stretchr/testify/require"
)

func TestResolve_PrintsEnvironment(t *testing.T) {
	repo := devRepo(t)

	stdout, _, err := run(t, "resolve", "--path", repo.Path(), "-n")
	require.NoError(t, err)
	require.Equal(t, "dev\n", stdout)
}

func TestResolve_JSON(t *testing.T) {
	repo := devRepo(t)

	stdout, _, err := run(t, "resolve", "--path", repo.Path(), "-n", "-o", "json")
	require.NoError(t, err)
	require.JSONEq(t, `{
		"environment": "dev",
		"determined": true,
		"strategy": "GitBranch",
		"source": "parent branch dev"
	}`, stdout)
}

func TestResolve_Undetermined(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "composer.json", testManifest)

	stdout, _, err := run(t, "resolve", "--path", dir, "-n")
	require.NoError(t, err)
	require.Empty(t, stdout)
}

func TestResolve_RejectsArgs(t *testing.T) {
	_, _, err := run(t, "resolve", "extra")
	require.Error(t, err)
}
