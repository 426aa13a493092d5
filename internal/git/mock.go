package git

// Compile-time check that MockRepository implements Repository.
var _ Repository = (*MockRepository)(nil)

// MockRepository is a configurable mock implementation of Repository for testing.
// Each method is backed by a function field. If the function field is nil,
// the method returns sensible zero values.
type MockRepository struct {
	HeadFunc          func() (Branch, error)
	BranchesFunc      func() ([]Branch, error)
	CommitFromShaFunc func(string) (Commit, error)
	FindMergeBaseFunc func(string, string) (string, error)
	IsAncestorFunc    func(string, string) (bool, error)
}

func (m *MockRepository) Head() (Branch, error) {
	if m.HeadFunc != nil {
		return m.HeadFunc()
	}
	return Branch{}, nil
}

func (m *MockRepository) Branches() ([]Branch, error) {
	if m.BranchesFunc != nil {
		return m.BranchesFunc()
	}
	return nil, nil
}

func (m *MockRepository) CommitFromSha(sha string) (Commit, error) {
	if m.CommitFromShaFunc != nil {
		return m.CommitFromShaFunc(sha)
	}
	return Commit{}, nil
}

func (m *MockRepository) FindMergeBase(sha1, sha2 string) (string, error) {
	if m.FindMergeBaseFunc != nil {
		return m.FindMergeBaseFunc(sha1, sha2)
	}
	return "", nil
}

func (m *MockRepository) IsAncestor(ancestor, descendant string) (bool, error) {
	if m.IsAncestorFunc != nil {
		return m.IsAncestorFunc(ancestor, descendant)
	}
	return false, nil
}
