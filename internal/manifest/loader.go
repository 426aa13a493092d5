package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/tidwall/jsonc"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrFragmentNotFound is returned by LoadFile when the manifest file does
// not exist.
var ErrFragmentNotFound = errors.New("manifest fragment not found")

// LoadFile reads and parses a JSON dependency manifest. A missing file
// yields an error wrapping ErrFragmentNotFound.
func LoadFile(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Manifest{}, fmt.Errorf("%w: %s", ErrFragmentNotFound, path)
		}
		return Manifest{}, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// mergeableKeys are the top-level keys a fragment contributes, in the order
// they are written when the base manifest lacks them.
var mergeableKeys = []string{"repositories", "require", "require-dev"}

// Parse reads a JSON manifest. Comments and trailing commas are tolerated.
// Repositories, require and require-dev are decoded; other keys are kept
// verbatim for output.
func Parse(data []byte) (Manifest, error) {
	raw := bytes.TrimSpace(jsonc.ToJSON(data))
	if !json.Valid(raw) {
		return Manifest{}, errors.New("parsing manifest: invalid JSON")
	}
	if raw[0] != '{' {
		return Manifest{}, errors.New("parsing manifest: manifest must be an object")
	}

	doc := orderedmap.New[string, json.RawMessage]()
	if err := doc.UnmarshalJSON(raw); err != nil {
		return Manifest{}, fmt.Errorf("parsing manifest: %w", err)
	}

	repos, _ := doc.Get("repositories")
	repositories, err := parseRepositories(repos)
	if err != nil {
		return Manifest{}, fmt.Errorf("parsing manifest: %w", err)
	}
	req, err := requirementsField(doc, "require")
	if err != nil {
		return Manifest{}, fmt.Errorf("parsing manifest: %w", err)
	}
	reqDev, err := requirementsField(doc, "require-dev")
	if err != nil {
		return Manifest{}, fmt.Errorf("parsing manifest: %w", err)
	}

	return Manifest{
		Repositories: repositories,
		Require:      req,
		RequireDev:   reqDev,
		document:     doc,
	}, nil
}

func requirementsField(doc *orderedmap.OrderedMap[string, json.RawMessage], key string) (Requirements, error) {
	var r Requirements
	raw, ok := doc.Get(key)
	if !ok {
		return r, nil
	}
	if err := r.UnmarshalJSON(raw); err != nil {
		return Requirements{}, fmt.Errorf("%s: %w", key, err)
	}
	return r, nil
}

// parseRepositories accepts both the list form and the keyed form. Numeric
// keys in the keyed form behave like list positions and stay unnamed.
func parseRepositories(raw json.RawMessage) ([]Repository, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	switch raw[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("repositories: %w", err)
		}
		repos := make([]Repository, 0, len(items))
		for _, item := range items {
			repos = append(repos, Repository{Raw: item})
		}
		return repos, nil

	case '{':
		keyed := orderedmap.New[string, json.RawMessage]()
		if err := keyed.UnmarshalJSON(raw); err != nil {
			return nil, fmt.Errorf("repositories: %w", err)
		}
		repos := make([]Repository, 0, keyed.Len())
		for pair := keyed.Oldest(); pair != nil; pair = pair.Next() {
			name := pair.Key
			if _, err := strconv.Atoi(name); err == nil {
				name = ""
			}
			repos = append(repos, Repository{Name: name, Raw: pair.Value})
		}
		return repos, nil

	default:
		return nil, errors.New("repositories must be a list or an object")
	}
}

// UnmarshalJSON decodes a JSON object of package constraints, keeping key
// order. An empty list is accepted as an empty object.
func (r *Requirements) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("[]")) {
		*r = Requirements{}
		return nil
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errors.New("requirements must be an object")
	}

	constraints := orderedmap.New[string, string]()
	if err := constraints.UnmarshalJSON(trimmed); err != nil {
		return fmt.Errorf("requirements: %w", err)
	}

	var out Requirements
	for pair := constraints.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
	}
	*r = out
	return nil
}

// MarshalJSON encodes the requirements as a JSON object in order.
func (r Requirements) MarshalJSON() ([]byte, error) {
	constraints := orderedmap.New[string, string]()
	for _, l := range r.Links() {
		constraints.Set(l.Package, l.Constraint)
	}
	return constraints.MarshalJSON()
}

// MarshalJSON encodes the manifest in the key order it was parsed with.
// "repositories" is always written as a list, and mergeable keys the
// parsed document lacked are appended.
func (m Manifest) MarshalJSON() ([]byte, error) {
	repos := make([]json.RawMessage, 0, len(m.Repositories))
	for _, r := range m.Repositories {
		repos = append(repos, r.Raw)
	}

	merged := make(map[string]json.RawMessage, len(mergeableKeys))
	for key, v := range map[string]any{
		"repositories": repos,
		"require":      m.Require,
		"require-dev":  m.RequireDev,
	} {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", key, err)
		}
		merged[key] = data
	}

	out := orderedmap.New[string, json.RawMessage]()
	if m.document != nil {
		for pair := m.document.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, pair.Value)
		}
	}
	for _, key := range mergeableKeys {
		out.Set(key, merged[key])
	}
	return out.MarshalJSON()
}
