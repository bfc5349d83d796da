// Package sidebar defines the documentation navigation tree.
//
// A sidebar is an ordered list of navigation nodes. The only node kind in use is a
// category: a label plus an ordered list of document IDs. Item order is display order.
package sidebar

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DefaultName is the name of the built-in sidebar.
const DefaultName = "tutorialSidebar"

// TypeCategory is the wire name of a Category node.
const TypeCategory = "category"

var (
	ErrUnknownNodeType = errors.New("unknown sidebar node type")
	ErrMissingDocs     = errors.New("sidebar references unknown documents")
)

// DocumentReference is a doc ID, resolved against the loaded documents at build time.
type DocumentReference string

// Node is one entry of a sidebar.
type Node interface {
	Type() string
	References() []DocumentReference
}

// Category groups document references under a label.
type Category struct {
	Label string
	Items []DocumentReference
}

func (Category) Type() string { return TypeCategory }

func (c Category) References() []DocumentReference { return c.Items }

// Sidebars maps a sidebar name to its top-level nodes.
type Sidebars map[string][]Node

// Default returns the built-in sidebar tree.
//
// "calander/readme" is spelled the way the docs collection names it.
func Default() Sidebars {
	return Sidebars{
		DefaultName: {
			Category{
				Label: "RCC",
				Items: []DocumentReference{
					"components/readme",
					"typography/readme",
					"navigation/readme",
					"features/readme",
					"calander/readme",
				},
			},
		},
	}
}

// Names returns the sidebar names in sorted order.
func (s Sidebars) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Flatten returns every document reference of nodes in display order.
func Flatten(nodes []Node) []DocumentReference {
	var refs []DocumentReference
	for _, n := range nodes {
		refs = append(refs, n.References()...)
	}
	return refs
}

// Neighbors returns the documents displayed before and after id.
// ok is false when id is not part of nodes.
func Neighbors(nodes []Node, id DocumentReference) (prev, next DocumentReference, ok bool) {
	refs := Flatten(nodes)
	for i, ref := range refs {
		if ref != id {
			continue
		}
		if i > 0 {
			prev = refs[i-1]
		}
		if i < len(refs)-1 {
			next = refs[i+1]
		}
		return prev, next, true
	}
	return "", "", false
}

// Find returns the name of the first sidebar, in name order, that contains id.
func (s Sidebars) Find(id DocumentReference) (string, bool) {
	for _, name := range s.Names() {
		for _, ref := range Flatten(s[name]) {
			if ref == id {
				return name, true
			}
		}
	}
	return "", false
}

// Resolve checks that every reference in s names a known document.
func Resolve(s Sidebars, known map[DocumentReference]bool) error {
	var missing []string
	seen := make(map[DocumentReference]bool)
	for _, name := range s.Names() {
		for _, ref := range Flatten(s[name]) {
			if known[ref] || seen[ref] {
				continue
			}
			seen[ref] = true
			missing = append(missing, fmt.Sprintf("%s (sidebar %q)", ref, name))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingDocs, strings.Join(missing, ", "))
	}
	return nil
}
