// Package git provides the git abstraction layer for environment detection.
// It defines concrete entity types (Commit, Branch), a Repository interface,
// and the branch queries used to pick an environment via BranchStore.
package git

import (
	"strings"
	"time"
)

const localBranchPrefix = "refs/heads/"

// Commit represents a git commit.
type Commit struct {
	Sha  string
	When time.Time
}

// ReferenceName represents a git reference with canonical and friendly forms.
type ReferenceName struct {
	Canonical string // e.g., "refs/heads/dev"
	Friendly  string // e.g., "dev"
}

// NewReferenceName creates a ReferenceName from a canonical ref path.
func NewReferenceName(canonical string) ReferenceName {
	return ReferenceName{
		Canonical: canonical,
		Friendly:  strings.TrimPrefix(canonical, localBranchPrefix),
	}
}

// NewBranchReferenceName creates a ReferenceName for a local branch.
func NewBranchReferenceName(name string) ReferenceName {
	return NewReferenceName(localBranchPrefix + name)
}

// Branch represents a local git branch.
type Branch struct {
	Name           ReferenceName
	Tip            *Commit
	IsDetachedHead bool
}

// FriendlyName returns the friendly name of the branch.
func (b Branch) FriendlyName() string {
	return b.Name.Friendly
}
