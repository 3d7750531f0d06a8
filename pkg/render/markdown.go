// Package render projects a resolved tag graph into markdown reference
// documentation.
//
// The output dialect is fixed: one section per tag, emitted in ascending
// declaration-index order, with a literal-code header, description,
// attribute bullets, optional value, child links, a parent list, and an
// optional fenced XML example. Rendering the same model twice with identical
// options produces byte-identical output.
//
// Anchors are the lowercase namespace concatenated directly with the
// lowercase tag name, with no separator and no escaping. The mapping is not
// injective (distinct names can collide after lowercasing and
// concatenation); it is kept as-is for output-format compatibility.
package render

import (
	"io"
	"slices"
	"strings"

	charmlog "github.com/charmbracelet/log"

	"github.com/tagdoc/xmldoc/pkg/model"
)

// Renderer writes markdown documentation for tag graphs.
// A Renderer is stateless between calls and may be reused for several lists.
type Renderer struct {
	opts     Options
	logger   *charmlog.Logger
	newline  string
	newblock string
}

// New validates opts and returns a Renderer.
// Returns *HeaderLevelError when opts.Level is outside [1,6].
func New(opts Options) (*Renderer, error) {
	if opts.Level < 1 || opts.Level > 6 {
		return nil, &HeaderLevelError{Level: int(opts.Level)}
	}
	logger := opts.Logger
	if logger == nil {
		logger = charmlog.Default()
	}
	newline := "\n"
	if opts.CRLF {
		newline = "\r\n"
	}
	return &Renderer{
		opts:     opts,
		logger:   logger,
		newline:  newline,
		newblock: newline + newline,
	}, nil
}

// Render writes the documentation for list to w.
//
// Tags are emitted strictly in ascending declaration-index order, regardless
// of internal storage order. The first write fault aborts generation with a
// *WriteError; partial output must be treated as invalid by the caller.
func (r *Renderer) Render(list *model.TagList, w io.Writer) error {
	out := &sink{w: w}

	for tag := range list.All() {
		r.tagHeader(out, list.Namespace(), tag.Name)
		r.paragraph(out, tag.Description)

		if len(tag.Attributes) > 0 {
			r.subheader(out, "Attributes")
			for _, attr := range tag.Attributes {
				r.attribute(out, attr)
			}
		}

		if tag.Value != "" {
			r.subheader(out, "Value")
			r.paragraph(out, tag.Value)
		}

		if len(tag.Children) > 0 {
			r.subheader(out, "Children")
			r.children(out, list, tag)
		}

		// The parent block is always present.
		r.subheader(out, "Parents")
		r.parents(out, list, tag)

		if tag.Example != "" {
			r.subheader(out, "Example")
			r.example(out, tag.Example)
		}

		if out.err != nil {
			return out.err
		}
	}

	return out.err
}

// =============================================================================
// Block Emitters
// =============================================================================

func (r *Renderer) tagHeader(out *sink, namespace, name string) {
	out.str(strings.Repeat("#", int(r.opts.Level)))
	out.str(" `")
	out.str(namespace)
	out.str(":")
	out.str(name)
	out.str("`")
	out.str(r.newblock)
}

func (r *Renderer) subheader(out *sink, text string) {
	out.str("_**")
	out.str(text)
	out.str(":**_")
	out.str(r.newblock)
}

func (r *Renderer) paragraph(out *sink, text string) {
	out.str(text)
	out.str(r.newblock)
}

func (r *Renderer) attribute(out *sink, attr model.Attribute) {
	out.str("* `")
	out.str(attr.Name)
	out.str("` - ")
	out.str(attr.Brief)
	if attr.Optional {
		out.str(" _(optional)_")
	}
	out.str(r.newline)

	if attr.Long != "" {
		out.str("  * ")
		out.str(attr.Long)
		out.str(r.newline)
	}
	if attr.Expected != "" {
		out.str("  * _Expected value:_ ")
		out.str(attr.Expected)
		out.str(r.newline)
	}
	if attr.Default != "" {
		out.str("  * _Default value:_ ")
		out.str(attr.Default)
		out.str(r.newline)
	}

	out.str(r.newline)
}

func (r *Renderer) children(out *sink, list *model.TagList, tag *model.Tag) {
	for _, child := range tag.Children {
		out.str("* ")
		if target, ok := list.ByID(child.Target); child.Resolved() && ok {
			r.link(out, list.Namespace(), target.Name)
		} else {
			out.str("`")
			out.str(child.Ref)
			out.str("`")
		}
		if qualifier := childQualifier(child); qualifier != "" {
			out.str(" ")
			out.str(qualifier)
		}
		out.str(r.newline)
	}
	out.str(r.newline)
}

func (r *Renderer) parents(out *sink, list *model.TagList, tag *model.Tag) {
	parents := list.Parents(tag.ID)
	if len(parents) == 0 {
		r.paragraph(out, "This tag has no possible parents!")
		return
	}

	// Parent sets are map-derived; order by declaration index explicitly
	// rather than trusting upstream iteration order. TagIDs are arena
	// indices, so sorting them sorts by declaration index.
	slices.Sort(parents)
	for _, id := range parents {
		parent, ok := list.ByID(id)
		if !ok {
			r.logger.Warnf("failed to resolve parent name for %d -> %d", tag.ID, id)
			continue
		}
		out.str("* ")
		r.link(out, list.Namespace(), parent.Name)
		out.str(r.newline)
	}
	out.str(r.newline)
}

func (r *Renderer) link(out *sink, namespace, name string) {
	out.str("[`")
	out.str(namespace)
	out.str(":")
	out.str(name)
	out.str("`](#")
	out.str(Anchor(namespace, name))
	out.str(")")
}

func (r *Renderer) example(out *sink, code string) {
	out.str("```xml")
	out.str(r.newline)
	out.str(strings.TrimRight(code, " \t\r\n"))
	out.str(r.newline)
	out.str("```")
	out.str(r.newblock)
}

// Anchor computes the link target for a tag section: the lowercase namespace
// concatenated directly with the lowercase name. No separator is inserted
// and non-alphanumeric characters are not escaped, so the mapping is not
// injective across all possible names.
func Anchor(namespace, name string) string {
	return strings.ToLower(namespace) + strings.ToLower(name)
}

// childQualifier renders the flag suffix for a child bullet. The suffix is
// omitted entirely when neither flag is set.
func childQualifier(child model.Child) string {
	switch {
	case child.Optional && child.Repeatable:
		return "_(optional, repeated)_"
	case child.Optional:
		return "_(optional)_"
	case child.Repeatable:
		return "_(repeated)_"
	default:
		return ""
	}
}

// =============================================================================
// Output Sink
// =============================================================================

// sink wraps an io.Writer with sticky error handling: after the first write
// fault every subsequent write is a no-op, so emitters stay linear and the
// fault propagates unchanged.
type sink struct {
	w   io.Writer
	err error
}

func (s *sink) str(text string) {
	if s.err != nil {
		return
	}
	if _, err := io.WriteString(s.w, text); err != nil {
		s.err = &WriteError{Cause: err}
	}
}
