// Package model builds and exposes the resolved tag graph.
//
// The package turns a flat, order-preserving list of raw tag declarations
// (see [github.com/tagdoc/xmldoc/pkg/schema]) into a bidirectionally linked
// graph: named child references are resolved to stable in-process
// identifiers, reverse parent edges are computed, and structural anomalies
// (unresolved references, zero or multiple roots) are surfaced as non-fatal
// warnings. The graph is built once by [Load] and is read-only afterwards.
//
// Identifiers are dense arena indices: a [TagID] is the position of the tag
// in the declaration order of its file. They never cross process or file
// boundaries and must not be persisted.
package model

import (
	"iter"
	"slices"
)

// TagID identifies a tag within its TagList. It is a dense arena index
// assigned in declaration order, so ascending TagID order equals ascending
// declaration order.
type TagID int

// InvalidTagID marks a child reference whose target name was not declared.
const InvalidTagID TagID = -1

// TagList is the resolved, read-only tag graph.
//
// The zero value is not usable - TagLists are produced exclusively by [Load].
// A TagList is never mutated after Load returns, so concurrent reads are safe.
type TagList struct {
	namespace string
	tags      []Tag             // arena, index == TagID, declaration order
	names     map[string]TagID  // tag name -> identifier
	parents   map[TagID][]TagID // child -> set of referencing parents, sorted ascending
}

// Tag describes a single XML element of the vocabulary.
type Tag struct {
	ID          TagID       // arena index, unique within the TagList
	Name        string      // public tag name, unique within the TagList
	Description string      // mandatory description, whitespace-trimmed
	Attributes  []Attribute // declaration order
	Children    []Child     // declaration order
	Value       string      // optional scalar value description ("" = absent)
	Example     string      // optional XML example snippet ("" = absent)
	Index       int         // 1-based declaration index in the source file
}

// Attribute describes an allowed (or expected) attribute of a tag.
type Attribute struct {
	Name     string // attribute name
	Brief    string // mandatory short description
	Long     string // optional long description ("" = absent)
	Optional bool   // whether the attribute can be omitted
	Expected string // what kind of value the schema expects ("" = absent)
	Default  string // default value when omitted ("" = absent)
}

// Child is a reference from a parent tag to a tag that may appear inside it.
// A resolved reference carries the target's TagID; an unresolved one keeps
// only the raw name it failed to look up.
type Child struct {
	Target     TagID  // resolved target, or InvalidTagID
	Ref        string // raw referenced name as declared
	Optional   bool   // the parent may contain no instance of the child
	Repeatable bool   // the parent may contain multiple instances
}

// Resolved reports whether the reference points at a declared tag.
func (c Child) Resolved() bool { return c.Target != InvalidTagID }

// Namespace returns the XML namespace shared by every tag in the list.
func (l *TagList) Namespace() string { return l.namespace }

// Len returns the number of tags in the list.
func (l *TagList) Len() int { return len(l.tags) }

// ByID returns the tag with the given identifier, or false when the
// identifier is out of range.
func (l *TagList) ByID(id TagID) (*Tag, bool) {
	if id < 0 || int(id) >= len(l.tags) {
		return nil, false
	}
	return &l.tags[id], true
}

// ByName returns the tag with the given name, or false when no tag with
// that name was declared.
func (l *TagList) ByName(name string) (*Tag, bool) {
	id, ok := l.names[name]
	if !ok {
		return nil, false
	}
	return &l.tags[id], true
}

// All returns an iterator over the tags in ascending declaration-index
// order. The sequence is finite and restartable.
func (l *TagList) All() iter.Seq[*Tag] {
	return func(yield func(*Tag) bool) {
		for i := range l.tags {
			if !yield(&l.tags[i]) {
				return
			}
		}
	}
}

// Parents returns the identifiers of every tag holding a resolved child
// reference to id, sorted by declaration index. Returns an empty slice when
// the tag is a root (or id is unknown). The returned slice is a copy and may
// be modified by the caller.
func (l *TagList) Parents(id TagID) []TagID {
	return slices.Clone(l.parents[id])
}

// IsRoot reports whether no resolved child reference targets id.
func (l *TagList) IsRoot(id TagID) bool { return len(l.parents[id]) == 0 }

// Roots returns every tag without a resolved parent, sorted by declaration
// index. A well-formed vocabulary has exactly one root.
func (l *TagList) Roots() []*Tag {
	var roots []*Tag
	for i := range l.tags {
		if l.IsRoot(l.tags[i].ID) {
			roots = append(roots, &l.tags[i])
		}
	}
	slices.SortFunc(roots, func(a, b *Tag) int { return a.Index - b.Index })
	return roots
}
