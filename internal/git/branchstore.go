package git

import (
	"context"
	"fmt"
)

// detachedHeadName is what `git rev-parse --abbrev-ref HEAD` prints when
// HEAD does not point at a branch.
const detachedHeadName = "HEAD"

// BranchStore answers the branch questions environment detection asks:
// which branch is checked out, and which branch it was forked from.
type BranchStore struct {
	repo Repository
}

// NewBranchStore creates a new BranchStore wrapping the given Repository.
func NewBranchStore(repo Repository) *BranchStore {
	return &BranchStore{repo: repo}
}

// CurrentBranch returns the friendly name of the checked-out branch, or
// "HEAD" when HEAD is detached. Returns an empty string when the repository
// has no commits yet.
func (s *BranchStore) CurrentBranch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	head, err := s.repo.Head()
	if err != nil {
		return "", fmt.Errorf("reading current branch: %w", err)
	}
	if head.IsDetachedHead {
		return detachedHeadName, nil
	}
	return head.FriendlyName(), nil
}

// ParentBranch returns the nearest ancestor branch of HEAD: the local branch,
// other than the current one, whose fork point with HEAD is the most recent
// in history. A fork point that descends from another wins over it. Commit
// time orders only fork points on unrelated lines of history, and branch
// name breaks remaining ties. Branches that are strictly ahead of HEAD are
// descendants and are not considered. Returns an empty string when no
// ancestor branch exists.
func (s *BranchStore) ParentBranch(ctx context.Context) (string, error) {
	head, err := s.repo.Head()
	if err != nil {
		return "", fmt.Errorf("reading current branch: %w", err)
	}
	if head.Tip == nil {
		return "", nil
	}

	branches, err := s.repo.Branches()
	if err != nil {
		return "", fmt.Errorf("listing branches: %w", err)
	}

	var best *forkPoint
	for _, b := range branches {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("searching parent branch: %w", err)
		}
		if b.Tip == nil {
			continue
		}
		if !head.IsDetachedHead && b.FriendlyName() == head.FriendlyName() {
			continue
		}

		mb, err := s.repo.FindMergeBase(head.Tip.Sha, b.Tip.Sha)
		if err != nil || mb == "" {
			continue
		}
		if mb == head.Tip.Sha && b.Tip.Sha != head.Tip.Sha {
			continue
		}

		commit, err := s.repo.CommitFromSha(mb)
		if err != nil {
			continue
		}

		candidate := &forkPoint{branch: b.FriendlyName(), base: commit}
		if best == nil || s.closer(candidate, best) {
			best = candidate
		}
	}

	if best == nil {
		return "", nil
	}
	return best.branch, nil
}

// forkPoint is where a candidate parent branch meets HEAD.
type forkPoint struct {
	branch string
	base   Commit
}

// closer reports whether a is nearer to HEAD than b.
func (s *BranchStore) closer(a, b *forkPoint) bool {
	if a.base.Sha == b.base.Sha {
		return a.branch < b.branch
	}
	if ok, err := s.repo.IsAncestor(b.base.Sha, a.base.Sha); err == nil && ok {
		return true
	}
	if ok, err := s.repo.IsAncestor(a.base.Sha, b.base.Sha); err == nil && ok {
		return false
	}
	if !a.base.When.Equal(b.base.When) {
		return a.base.When.After(b.base.When)
	}
	return a.branch < b.branch
}
