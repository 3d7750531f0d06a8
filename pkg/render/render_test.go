package render

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/tagdoc/xmldoc/pkg/model"
	"github.com/tagdoc/xmldoc/pkg/schema"
)

// load builds a model out of tags declared under the "ex" namespace.
func load(t *testing.T, tags ...schema.Tag) *model.TagList {
	t.Helper()
	list, _, err := model.Load(&schema.Document{
		Schema: schema.Params{Version: "r1", Namespace: "ex"},
		Tags:   tags,
	})
	if err != nil {
		t.Fatalf("model.Load() error = %v", err)
	}
	return list
}

// render runs a renderer with the given options over the list.
func render(t *testing.T, list *model.TagList, opts Options) string {
	t.Helper()
	r, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	var buf bytes.Buffer
	if err := r.Render(list, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestNewHeaderLevel(t *testing.T) {
	for level := 1; level <= 6; level++ {
		if _, err := NewHeaderLevel(level); err != nil {
			t.Errorf("NewHeaderLevel(%d) error = %v, want nil", level, err)
		}
	}

	for _, level := range []int{0, 7, -1, 100} {
		_, err := NewHeaderLevel(level)
		var herr *HeaderLevelError
		if !errors.As(err, &herr) {
			t.Errorf("NewHeaderLevel(%d) error = %v, want *HeaderLevelError", level, err)
			continue
		}
		if herr.Level != level {
			t.Errorf("HeaderLevelError.Level = %d, want %d", herr.Level, level)
		}
	}
}

func TestHeaderLevelNext(t *testing.T) {
	h, _ := NewHeaderLevel(5)
	next, err := h.Next()
	if err != nil || next != 6 {
		t.Errorf("Next() = (%d, %v), want (6, nil)", next, err)
	}
	if _, err := next.Next(); err == nil {
		t.Error("Next() past 6 succeeded, want error")
	}
}

func TestNewRejectsUncheckedLevel(t *testing.T) {
	if _, err := New(Options{Level: 0}); err == nil {
		t.Error("New() accepted a zero header level")
	}
	if _, err := New(Options{Level: 7}); err == nil {
		t.Error("New() accepted a header level of 7")
	}
}

func TestRenderSingleRootScenario(t *testing.T) {
	list := load(t, schema.Tag{ID: "Root", Description: "The root element."})

	got := render(t, list, Options{Level: 3})
	want := "### `ex:Root`\n\n" +
		"The root element.\n\n" +
		"_**Parents:**_\n\n" +
		"This tag has no possible parents!\n\n"
	if got != want {
		t.Errorf("output mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestRenderDeterminism(t *testing.T) {
	list := load(t,
		schema.Tag{ID: "Root", Description: "r", Children: []schema.ChildRef{
			{Ref: "A"}, {Ref: "B"},
		}},
		schema.Tag{ID: "A", Description: "a", Children: []schema.ChildRef{{Ref: "Leaf"}}},
		schema.Tag{ID: "B", Description: "b", Children: []schema.ChildRef{{Ref: "Leaf"}}},
		schema.Tag{ID: "Leaf", Description: "l", Example: "<leaf/>"},
	)

	first := render(t, list, Options{Level: 2})
	for i := 0; i < 10; i++ {
		if again := render(t, list, Options{Level: 2}); again != first {
			t.Fatalf("run %d produced different bytes", i)
		}
	}
}

func TestRenderDeclarationOrder(t *testing.T) {
	list := load(t,
		schema.Tag{ID: "Zulu", Description: "z"},
		schema.Tag{ID: "Alpha", Description: "a"},
		schema.Tag{ID: "Mike", Description: "m"},
	)

	got := render(t, list, Options{Level: 3})
	zulu := strings.Index(got, "`ex:Zulu`")
	alpha := strings.Index(got, "`ex:Alpha`")
	mike := strings.Index(got, "`ex:Mike`")
	if !(zulu < alpha && alpha < mike) {
		t.Errorf("sections out of declaration order: Zulu@%d Alpha@%d Mike@%d", zulu, alpha, mike)
	}
}

func TestRenderAttributes(t *testing.T) {
	list := load(t, schema.Tag{
		ID:          "Entry",
		Description: "An entry.",
		Attributes: []schema.Attribute{
			{ID: "name", Brief: "Entry name."},
			{
				ID:          "weight",
				Brief:       "Sort weight.",
				Description: "Heavier entries sink.",
				Expected:    "an integer",
				Default:     "0",
				Optional:    true,
			},
		},
	})

	got := render(t, list, Options{Level: 3})

	want := "_**Attributes:**_\n\n" +
		"* `name` - Entry name.\n" +
		"\n" +
		"* `weight` - Sort weight. _(optional)_\n" +
		"  * Heavier entries sink.\n" +
		"  * _Expected value:_ an integer\n" +
		"  * _Default value:_ 0\n" +
		"\n"
	if !strings.Contains(got, want) {
		t.Errorf("attributes block missing:\ngot:  %q\nwant substring: %q", got, want)
	}
}

func TestRenderValue(t *testing.T) {
	list := load(t, schema.Tag{ID: "Entry", Description: "d", Value: "Free-form text."})

	got := render(t, list, Options{Level: 3})
	if !strings.Contains(got, "_**Value:**_\n\nFree-form text.\n\n") {
		t.Errorf("value block missing in %q", got)
	}
}

func TestRenderChildren(t *testing.T) {
	tests := []struct {
		name string
		ref  schema.ChildRef
		want string
	}{
		{
			name: "ResolvedPlain",
			ref:  schema.ChildRef{Ref: "Item"},
			want: "* [`ex:Item`](#exitem)\n",
		},
		{
			name: "ResolvedOptional",
			ref:  schema.ChildRef{Ref: "Item", Optional: true},
			want: "* [`ex:Item`](#exitem) _(optional)_\n",
		},
		{
			name: "ResolvedRepeated",
			ref:  schema.ChildRef{Ref: "Item", Multiple: true},
			want: "* [`ex:Item`](#exitem) _(repeated)_\n",
		},
		{
			name: "ResolvedBoth",
			ref:  schema.ChildRef{Ref: "Item", Optional: true, Multiple: true},
			want: "* [`ex:Item`](#exitem) _(optional, repeated)_\n",
		},
		{
			name: "Unresolved",
			ref:  schema.ChildRef{Ref: "Ghost"},
			want: "* `Ghost`\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := load(t,
				schema.Tag{ID: "Root", Description: "r", Children: []schema.ChildRef{tt.ref}},
				schema.Tag{ID: "Item", Description: "i"},
			)

			got := render(t, list, Options{Level: 3})
			if !strings.Contains(got, "_**Children:**_\n\n"+tt.want) {
				t.Errorf("children block mismatch:\ngot: %q\nwant bullet: %q", got, tt.want)
			}
		})
	}
}

func TestRenderUnresolvedChildNotLinked(t *testing.T) {
	list := load(t,
		schema.Tag{ID: "X", Description: "x", Children: []schema.ChildRef{{Ref: "Y"}}},
	)

	got := render(t, list, Options{Level: 3})
	if strings.Contains(got, "](#exy)") {
		t.Error("unresolved reference rendered as a hyperlink")
	}
	if !strings.Contains(got, "* `Y`\n") {
		t.Errorf("unresolved reference not rendered as inline code in %q", got)
	}
}

func TestRenderParentsSorted(t *testing.T) {
	list := load(t,
		schema.Tag{ID: "Beta", Description: "b", Children: []schema.ChildRef{{Ref: "Shared"}}},
		schema.Tag{ID: "Alpha", Description: "a", Children: []schema.ChildRef{{Ref: "Shared"}}},
		schema.Tag{ID: "Shared", Description: "s"},
	)

	got := render(t, list, Options{Level: 3})
	want := "_**Parents:**_\n\n" +
		"* [`ex:Beta`](#exbeta)\n" +
		"* [`ex:Alpha`](#exalpha)\n" +
		"\n"
	if !strings.Contains(got, want) {
		t.Errorf("parents block mismatch:\ngot: %q\nwant substring: %q", got, want)
	}
}

func TestRenderExampleTrimsTrailingWhitespace(t *testing.T) {
	list := load(t, schema.Tag{
		ID:          "Entry",
		Description: "d",
		Example:     "<entry>\n  <child/>\n</entry>\n\n  ",
	})

	got := render(t, list, Options{Level: 3})
	want := "_**Example:**_\n\n```xml\n<entry>\n  <child/>\n</entry>\n```\n\n"
	if !strings.Contains(got, want) {
		t.Errorf("example block mismatch:\ngot: %q\nwant substring: %q", got, want)
	}
}

func TestRenderCRLF(t *testing.T) {
	list := load(t, schema.Tag{ID: "Root", Description: "The root element."})

	lf := render(t, list, Options{Level: 3})
	crlf := render(t, list, Options{Level: 3, CRLF: true})

	if strings.Contains(lf, "\r") {
		t.Error("LF output contains carriage returns")
	}
	if got := strings.ReplaceAll(crlf, "\r\n", "\n"); got != lf {
		t.Errorf("CRLF output differs beyond line terminators:\nlf:   %q\ncrlf: %q", lf, crlf)
	}
}

func TestRenderHeaderLevels(t *testing.T) {
	list := load(t, schema.Tag{ID: "Root", Description: "d"})

	for level := 1; level <= 6; level++ {
		got := render(t, list, Options{Level: HeaderLevel(level)})
		want := strings.Repeat("#", level) + " `ex:Root`\n\n"
		if !strings.HasPrefix(got, want) {
			t.Errorf("level %d output starts with %q, want %q", level, got[:min(len(got), 20)], want)
		}
	}
}

// failWriter fails every write after the first n successful ones.
type failWriter struct {
	n int
}

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n <= 0 {
		return 0, io.ErrClosedPipe
	}
	w.n--
	return len(p), nil
}

func TestRenderWriteFault(t *testing.T) {
	list := load(t, schema.Tag{ID: "Root", Description: "The root element."})

	r, err := New(Options{Level: 3})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	err = r.Render(list, &failWriter{n: 2})
	var werr *WriteError
	if !errors.As(err, &werr) {
		t.Fatalf("Render() error = %v, want *WriteError", err)
	}
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Error("WriteError does not carry the underlying cause")
	}
}

func TestAnchor(t *testing.T) {
	tests := []struct {
		namespace string
		name      string
		want      string
	}{
		{"ex", "Root", "exroot"},
		{"EX", "ROOT", "exroot"},
		{"ns", "Some-Tag", "nssome-tag"},
		{"", "Solo", "solo"},
	}

	for _, tt := range tests {
		if got := Anchor(tt.namespace, tt.name); got != tt.want {
			t.Errorf("Anchor(%q, %q) = %q, want %q", tt.namespace, tt.name, got, tt.want)
		}
	}
}
