// Package manifest reads dependency manifests, models the parts an
// environment fragment can contribute (repositories, require, require-dev)
// and merges a fragment into a base manifest.
package manifest

import (
	"encoding/json"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Repository is one package repository descriptor. Raw holds the descriptor
// exactly as written. Name is set only when the manifest used the keyed
// (object) repositories form with a non-numeric key.
type Repository struct {
	Name string
	Raw  json.RawMessage
}

// Type returns the descriptor's "type" field, if any.
func (r Repository) Type() string {
	return r.field("type")
}

// URL returns the descriptor's "url" field, if any.
func (r Repository) URL() string {
	return r.field("url")
}

func (r Repository) field(key string) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(r.Raw, &fields); err != nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(fields[key], &s); err != nil {
		return ""
	}
	return s
}

func (r Repository) clone() Repository {
	return Repository{Name: r.Name, Raw: append(json.RawMessage(nil), r.Raw...)}
}

// Link is a single package requirement.
type Link struct {
	Package    string
	Constraint string
}

// Requirements is an ordered package-name to version-constraint mapping.
// Package names compare case-insensitively. The zero value is empty.
type Requirements struct {
	links *orderedmap.OrderedMap[string, Link]
}

// NewRequirements builds Requirements from links. A later link for the same
// package overwrites the earlier one in place.
func NewRequirements(links ...Link) Requirements {
	var r Requirements
	for _, l := range links {
		r.Set(l.Package, l.Constraint)
	}
	return r
}

// Set assigns constraint to pkg. An existing package keeps its position and
// takes the new spelling.
func (r *Requirements) Set(pkg, constraint string) {
	if r.links == nil {
		r.links = orderedmap.New[string, Link]()
	}
	r.links.Set(strings.ToLower(pkg), Link{Package: pkg, Constraint: constraint})
}

// Get returns the constraint for pkg.
func (r Requirements) Get(pkg string) (string, bool) {
	if r.links == nil {
		return "", false
	}
	l, ok := r.links.Get(strings.ToLower(pkg))
	return l.Constraint, ok
}

// Links returns a copy of the links in order.
func (r Requirements) Links() []Link {
	if r.links == nil {
		return nil
	}
	out := make([]Link, 0, r.links.Len())
	for pair := r.links.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Packages returns the package names in order.
func (r Requirements) Packages() []string {
	out := make([]string, 0, r.Len())
	for _, l := range r.Links() {
		out = append(out, l.Package)
	}
	return out
}

// Len returns the number of requirements.
func (r Requirements) Len() int {
	if r.links == nil {
		return 0
	}
	return r.links.Len()
}

// Manifest is a dependency manifest. Repositories, Require and RequireDev
// are the mergeable parts; every other top-level key is kept as parsed and
// written back unchanged.
type Manifest struct {
	Repositories []Repository
	Require      Requirements
	RequireDev   Requirements

	// document holds the parsed top-level keys in order. It is never
	// modified after Parse, so copies share it.
	document *orderedmap.OrderedMap[string, json.RawMessage]
}

// Clone returns a deep copy of m.
func (m Manifest) Clone() Manifest {
	out := Manifest{
		Require:    NewRequirements(m.Require.Links()...),
		RequireDev: NewRequirements(m.RequireDev.Links()...),
		document:   m.document,
	}
	if m.Repositories != nil {
		out.Repositories = make([]Repository, 0, len(m.Repositories))
		for _, r := range m.Repositories {
			out.Repositories = append(out.Repositories, r.clone())
		}
	}
	return out
}
