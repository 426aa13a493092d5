package manifest

// Merge returns a new manifest combining base with overlay. Neither input is
// modified. Keys other than the mergeable ones come from base only.
//
// Requirements merge by key: base entries come first, overlay entries after,
// and on a collision the overlay constraint wins while the package keeps its
// base position. Repositories are appended, base first, without
// deduplication; only keyed repositories replace a base entry with the same
// name. Merge is therefore not idempotent: merging the same overlay twice
// repeats its unnamed repositories.
func Merge(base, overlay Manifest) Manifest {
	return Manifest{
		Repositories: mergeRepositories(base.Repositories, overlay.Repositories),
		Require:      mergeRequirements(base.Require, overlay.Require),
		RequireDev:   mergeRequirements(base.RequireDev, overlay.RequireDev),
		document:     base.document,
	}
}

func mergeRequirements(base, overlay Requirements) Requirements {
	out := NewRequirements(base.Links()...)
	for _, l := range overlay.Links() {
		out.Set(l.Package, l.Constraint)
	}
	return out
}

func mergeRepositories(base, overlay []Repository) []Repository {
	out := make([]Repository, 0, len(base)+len(overlay))
	for _, r := range base {
		out = append(out, r.clone())
	}

	for _, r := range overlay {
		if r.Name != "" {
			if i := indexOfNamed(out, r.Name); i >= 0 {
				out[i] = r.clone()
				continue
			}
		}
		out = append(out, r.clone())
	}

	return out
}

func indexOfNamed(repos []Repository, name string) int {
	for i, r := range repos {
		if r.Name == name {
			return i
		}
	}
	return -1
}
