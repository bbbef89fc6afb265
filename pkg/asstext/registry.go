// registry.go defines tag definitions and the process-wide tag registry.
package asstext

import (
	"fmt"
	"sort"
)

// Category says whether a tag applies to the whole event or to the text after it.
type Category int

const (
	Inline     Category = iota // affects text following the tag
	EventLevel                 // affects the whole event wherever it appears
)

func (c Category) String() string {
	if c == EventLevel {
		return "event"
	}
	return "inline"
}

// Precedence selects which of several occurrences in one exclusivity group survives.
type Precedence int

const (
	LastWins  Precedence = iota // the latest occurrence in document order
	FirstWins                   // the earliest occurrence in document order
)

func (p Precedence) String() string {
	if p == FirstWins {
		return "first-wins"
	}
	return "last-wins"
}

// TagDefinition describes one override tag. Definitions are built once when the
// package is initialized and are never modified afterwards.
type TagDefinition struct {
	Name       string     // tag name without the backslash, e.g. "pos", "1c"
	Category   Category   // event level or inline
	Precedence Precedence // first or last occurrence wins within the group
	Group      string     // exclusivity group; empty means the tag competes only with itself
	Function   bool       // parameter uses function syntax: \name(args)

	// Simple tags: the parameter is the longest match of pattern at the start
	// of the text before the next backslash.
	pattern      *paramPattern
	emptyDefault bool // bare \name reverts to the style value (StyleDefault)

	decode func(param string) (any, error)
	format func(value any) (string, error)

	order int // canonical position, used for stable output
}

// GroupKey returns the key under which the resolver groups this tag.
func (d TagDefinition) GroupKey() string {
	if d.Group != "" {
		return d.Group
	}
	return d.Name
}

// tagRegistry is an immutable lookup table over the closed set of definitions.
type tagRegistry struct {
	byName  map[string]*TagDefinition
	byFirst map[byte][]*TagDefinition // candidates per first byte, longest name first
	ordered []*TagDefinition
}

// registry is the process-wide registry. It is fully built during package
// initialization, so concurrent readers need no synchronization.
var registry = mustBuildRegistry(definitions)

// mustBuildRegistry indexes defs and checks that group members agree on
// category and precedence. It panics on an inconsistent table.
func mustBuildRegistry(defs []*TagDefinition) *tagRegistry {
	r := &tagRegistry{
		byName:  make(map[string]*TagDefinition, len(defs)),
		byFirst: make(map[byte][]*TagDefinition),
	}
	groups := make(map[string]*TagDefinition)

	for i, d := range defs {
		if d.Name == "" {
			panic("asstext: tag definition without name")
		}
		if _, dup := r.byName[d.Name]; dup {
			panic(fmt.Sprintf("asstext: duplicate tag definition %q", d.Name))
		}
		if d.decode == nil || d.format == nil {
			panic(fmt.Sprintf("asstext: tag %q has no codec", d.Name))
		}
		if !d.Function && d.pattern == nil {
			panic(fmt.Sprintf("asstext: simple tag %q has no parameter pattern", d.Name))
		}
		if d.Group != "" {
			if first, ok := groups[d.Group]; ok {
				if first.Precedence != d.Precedence || first.Category != d.Category {
					panic(fmt.Sprintf("asstext: group %q mixes %q and %q with different rules", d.Group, first.Name, d.Name))
				}
			} else {
				groups[d.Group] = d
			}
		}
		d.order = i
		r.byName[d.Name] = d
		r.byFirst[d.Name[0]] = append(r.byFirst[d.Name[0]], d)
		r.ordered = append(r.ordered, d)
	}

	for _, list := range r.byFirst {
		sort.SliceStable(list, func(i, j int) bool {
			return len(list[i].Name) > len(list[j].Name)
		})
	}
	return r
}

// candidates returns every definition whose name is a prefix of s, longest first.
func (r *tagRegistry) candidates(s string) []*TagDefinition {
	if s == "" {
		return nil
	}
	var out []*TagDefinition
	for _, d := range r.byFirst[s[0]] {
		if len(d.Name) <= len(s) && s[:len(d.Name)] == d.Name {
			out = append(out, d)
		}
	}
	return out
}

// Candidates returns every definition whose name prefixes s, longest name first.
func Candidates(s string) []TagDefinition {
	list := registry.candidates(s)
	out := make([]TagDefinition, len(list))
	for i, d := range list {
		out[i] = *d
	}
	return out
}

// Lookup returns the definition registered under name. Names are case-sensitive
// (\k and \K are different tags).
func Lookup(name string) (TagDefinition, bool) {
	d, ok := registry.byName[name]
	if !ok {
		return TagDefinition{}, false
	}
	return *d, true
}

// Definitions returns all registered definitions in canonical order.
func Definitions() []TagDefinition {
	out := make([]TagDefinition, len(registry.ordered))
	for i, d := range registry.ordered {
		out[i] = *d
	}
	return out
}

// EventTagNames returns the names of all event-level tags in canonical order.
func EventTagNames() []string {
	var names []string
	for _, d := range registry.ordered {
		if d.Category == EventLevel {
			names = append(names, d.Name)
		}
	}
	return names
}

// canonicalOrder sorts tag names by registry order; unknown names go last, alphabetically.
func canonicalOrder(names []string) {
	sort.Slice(names, func(i, j int) bool {
		di, iok := registry.byName[names[i]]
		dj, jok := registry.byName[names[j]]
		switch {
		case iok && jok:
			return di.order < dj.order
		case iok != jok:
			return iok
		default:
			return names[i] < names[j]
		}
	})
}
