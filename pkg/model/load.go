package model

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/tagdoc/xmldoc/pkg/schema"
)

// Version is the single taglist format version this build understands.
const Version = "r1"

// Supported reports whether a declared schema version matches [Version].
// The comparison is case-insensitive and ignores surrounding whitespace.
func Supported(version string) bool {
	return strings.TrimSpace(strings.ToLower(version)) == Version
}

// Load builds a TagList from a deserialized taglist document.
//
// Loading runs in three phases over the declarations, strictly in input
// order: materialization (fresh identifiers, text trimming), name indexing,
// and reference resolution (forward child links plus reverse parent edges).
// Root analysis runs last.
//
// Non-fatal anomalies - empty or non-ASCII namespace, unresolved child
// references, zero or multiple roots - are accumulated as warnings and
// returned alongside the model. The only fatal conditions are an unsupported
// schema version (*VersionError) and a duplicated tag name
// (*DuplicateNameError); both yield a nil model.
func Load(doc *schema.Document) (*TagList, []string, error) {
	if !Supported(doc.Schema.Version) {
		return nil, nil, &VersionError{Found: doc.Schema.Version, Expected: Version}
	}

	var warnings []string

	list := &TagList{
		namespace: doc.Schema.Namespace,
		tags:      make([]Tag, 0, len(doc.Tags)),
		names:     make(map[string]TagID, len(doc.Tags)),
		parents:   make(map[TagID][]TagID),
	}

	if list.namespace == "" || !isASCII(list.namespace) {
		warnings = append(warnings, "schema namespace must be a non-empty ascii sequence")
	}

	// Phase 1: materialize tags and stash raw child references per identifier.
	refs := make([][]schema.ChildRef, len(doc.Tags))
	for i, raw := range doc.Tags {
		id := TagID(len(list.tags))
		tag := Tag{
			ID:          id,
			Name:        raw.ID,
			Description: strings.TrimSpace(raw.Description),
			Value:       strings.TrimSpace(raw.Value),
			Example:     raw.Example,
			Index:       i + 1,
		}
		for _, attr := range raw.Attributes {
			tag.Attributes = append(tag.Attributes, Attribute{
				Name:     attr.ID,
				Brief:    attr.Brief,
				Long:     attr.Description,
				Optional: attr.Optional,
				Expected: attr.Expected,
				Default:  attr.Default,
			})
		}
		list.tags = append(list.tags, tag)
		refs[id] = raw.Children
	}

	// Phase 2: index names. Two declarations sharing a name violates the
	// name->identifier bijection and aborts the load.
	for i := range list.tags {
		tag := &list.tags[i]
		if prev, exists := list.names[tag.Name]; exists {
			return nil, nil, &DuplicateNameError{
				Name:   tag.Name,
				First:  list.tags[prev].Index,
				Second: tag.Index,
			}
		}
		list.names[tag.Name] = tag.ID
	}

	// Phase 3: resolve stashed references and record reverse parent edges.
	for source := range list.tags {
		sourceID := list.tags[source].ID
		for _, ref := range refs[sourceID] {
			child := Child{
				Target:     InvalidTagID,
				Ref:        ref.Ref,
				Optional:   ref.Optional,
				Repeatable: ref.Multiple,
			}
			if target, ok := list.names[ref.Ref]; ok {
				child.Target = target
				if !slices.Contains(list.parents[target], sourceID) {
					list.parents[target] = append(list.parents[target], sourceID)
				}
			} else {
				warnings = append(warnings,
					fmt.Sprintf("unresolved child reference: %s->%s", list.tags[sourceID].Name, ref.Ref))
			}
			list.tags[sourceID].Children = append(list.tags[sourceID].Children, child)
		}
	}

	// Parent sets came out of map-driven resolution; keep them sorted by
	// declaration index so every surfaced ordering is deterministic.
	for id := range list.parents {
		slices.Sort(list.parents[id])
	}

	warnings = append(warnings, rootWarnings(list)...)

	return list, warnings, nil
}

// rootWarnings checks the root-count expectation: exactly one tag without a
// resolved parent. Zero roots means the vocabulary is self-referential;
// multiple roots are named in declaration order.
func rootWarnings(list *TagList) []string {
	roots := list.Roots()
	switch len(roots) {
	case 1:
		return nil
	case 0:
		if list.Len() == 0 {
			return nil
		}
		return []string{"no root tags, likely self-referential"}
	default:
		names := make([]string, len(roots))
		for i, tag := range roots {
			names[i] = tag.Name
		}
		return []string{fmt.Sprintf("multiple root tags: %s", strings.Join(names, ", "))}
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}
