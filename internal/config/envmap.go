package config

import (
	"bytes"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// EnvEntry maps an environment name to its manifest fragment path.
type EnvEntry struct {
	Name string
	Path string
}

// EnvMap is an ordered environment-name to fragment-path mapping. Its keys
// are the set of valid environment names, and declaration order is kept so
// that interactive choices are listed the way the user wrote them.
// The zero value is an empty map. Copies share entries once populated.
type EnvMap struct {
	om *orderedmap.OrderedMap[string, string]
}

// NewEnvMap builds an EnvMap from entries. Later duplicates overwrite
// earlier values in place.
func NewEnvMap(entries ...EnvEntry) EnvMap {
	var m EnvMap
	for _, e := range entries {
		m.Set(e.Name, e.Path)
	}
	return m
}

// Set assigns path to name. An existing name keeps its position.
func (m *EnvMap) Set(name, path string) {
	if m.om == nil {
		m.om = orderedmap.New[string, string]()
	}
	m.om.Set(name, path)
}

// Lookup returns the fragment path for name and whether name is defined.
func (m EnvMap) Lookup(name string) (string, bool) {
	if m.om == nil {
		return "", false
	}
	return m.om.Get(name)
}

// Has reports whether name is a valid environment.
func (m EnvMap) Has(name string) bool {
	_, ok := m.Lookup(name)
	return ok
}

// Names returns the environment names in declaration order.
func (m EnvMap) Names() []string {
	names := make([]string, 0, m.Len())
	for _, e := range m.Entries() {
		names = append(names, e.Name)
	}
	return names
}

// Entries returns a copy of the entries in declaration order.
func (m EnvMap) Entries() []EnvEntry {
	if m.om == nil {
		return nil
	}
	entries := make([]EnvEntry, 0, m.om.Len())
	for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
		entries = append(entries, EnvEntry{Name: pair.Key, Path: pair.Value})
	}
	return entries
}

// Len returns the number of environments.
func (m EnvMap) Len() int {
	if m.om == nil {
		return 0
	}
	return m.om.Len()
}

// UnmarshalYAML decodes a YAML mapping, keeping key order. Null values
// decode as empty paths.
func (m *EnvMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("git-env must be a mapping, got %s", yamlKindName(node.Kind))
	}

	om := orderedmap.New[string, string]()
	if err := om.UnmarshalYAML(node); err != nil {
		return fmt.Errorf("git-env: %w", err)
	}
	*m = fromOrdered(om)
	return nil
}

// UnmarshalJSON decodes a JSON object, keeping key order. Null values
// decode as empty paths.
func (m *EnvMap) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*m = EnvMap{}
		return nil
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("git-env must be an object")
	}

	om := orderedmap.New[string, string]()
	if err := om.UnmarshalJSON(trimmed); err != nil {
		return fmt.Errorf("git-env: %w", err)
	}
	*m = fromOrdered(om)
	return nil
}

// MarshalJSON encodes the map as a JSON object in declaration order.
func (m EnvMap) MarshalJSON() ([]byte, error) {
	if m.om == nil {
		return []byte("{}"), nil
	}
	return m.om.MarshalJSON()
}

// fromOrdered leaves an empty map unallocated so that every empty EnvMap
// is the zero value.
func fromOrdered(om *orderedmap.OrderedMap[string, string]) EnvMap {
	if om.Len() == 0 {
		return EnvMap{}
	}
	return EnvMap{om: om}
}

func yamlKindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	default:
		return "unknown"
	}
}
