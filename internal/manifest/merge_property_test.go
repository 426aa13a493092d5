package manifest

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func drawRequirements(t *rapid.T, label string) Requirements {
	pkgs := rapid.SliceOfDistinct(
		rapid.SampledFrom([]string{"lib/a", "lib/b", "lib/c", "lib/d", "lib/e", "lib/f"}),
		rapid.ID[string],
	).Draw(t, label+"-packages")

	var r Requirements
	for _, p := range pkgs {
		r.Set(p, rapid.SampledFrom([]string{"^1.0", "^2.0", "~3.1", "*", "dev-main"}).Draw(t, label+"-"+p))
	}
	return r
}

func drawRepositories(t *rapid.T, label string) []Repository {
	n := rapid.IntRange(0, 5).Draw(t, label+"-count")
	repos := make([]Repository, 0, n)
	for i := 0; i < n; i++ {
		url := rapid.StringMatching(`[a-z]{1,8}`).Draw(t, label+"-url")
		repos = append(repos, Repository{Raw: json.RawMessage(fmt.Sprintf(`{"type":"path","url":"../%s"}`, url))})
	}
	return repos
}

func TestMergeProperty_RepositoriesConcatenate(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := Manifest{Repositories: drawRepositories(t, "base")}
		overlay := Manifest{Repositories: drawRepositories(t, "overlay")}

		got := Merge(base, overlay)

		want := append(rawRepos(base.Repositories), rawRepos(overlay.Repositories)...)
		require.Equal(t, want, rawRepos(got.Repositories))
	})
}

func TestMergeProperty_OverlayRequirementsWin(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := Manifest{Require: drawRequirements(t, "base"), RequireDev: drawRequirements(t, "base-dev")}
		overlay := Manifest{Require: drawRequirements(t, "overlay"), RequireDev: drawRequirements(t, "overlay-dev")}

		got := Merge(base, overlay)

		for _, pair := range []struct{ base, overlay, got Requirements }{
			{base.Require, overlay.Require, got.Require},
			{base.RequireDev, overlay.RequireDev, got.RequireDev},
		} {
			for _, l := range pair.overlay.Links() {
				c, ok := pair.got.Get(l.Package)
				require.True(t, ok)
				require.Equal(t, l.Constraint, c)
			}
			for _, l := range pair.base.Links() {
				if _, inOverlay := pair.overlay.Get(l.Package); inOverlay {
					continue
				}
				c, ok := pair.got.Get(l.Package)
				require.True(t, ok)
				require.Equal(t, l.Constraint, c)
			}
			// Base packages keep their leading positions.
			require.Equal(t, pair.base.Packages(), pair.got.Packages()[:pair.base.Len()])
		}
	})
}

func TestMergeProperty_InputsUnchanged(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := Manifest{Repositories: drawRepositories(t, "base"), Require: drawRequirements(t, "base")}
		overlay := Manifest{Repositories: drawRepositories(t, "overlay"), Require: drawRequirements(t, "overlay")}
		baseBefore, overlayBefore := base.Clone(), overlay.Clone()

		_ = Merge(base, overlay)

		require.Equal(t, rawRepos(baseBefore.Repositories), rawRepos(base.Repositories))
		require.Equal(t, baseBefore.Require.Links(), base.Require.Links())
		require.Equal(t, rawRepos(overlayBefore.Repositories), rawRepos(overlay.Repositories))
		require.Equal(t, overlayBefore.Require.Links(), overlay.Require.Links())
	})
}
