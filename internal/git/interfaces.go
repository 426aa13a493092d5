package git

// Repository provides the low-level git operations needed to work out which
// branch a checkout is on and where it was branched from.
// This is the key abstraction point for testing and backend swapping.
type Repository interface {
	// Head returns the current HEAD branch. A detached HEAD is reported
	// with IsDetachedHead set.
	Head() (Branch, error)

	// Branches returns all local branches in the repository.
	Branches() ([]Branch, error)

	// CommitFromSha returns the commit with the given SHA.
	CommitFromSha(sha string) (Commit, error)

	// FindMergeBase returns the best common ancestor of two commits.
	// Returns an empty string if no merge base exists.
	FindMergeBase(sha1, sha2 string) (string, error)

	// IsAncestor reports whether ancestor is reachable from descendant.
	// A commit is its own ancestor.
	IsAncestor(ancestor, descendant string) (bool, error)
}
