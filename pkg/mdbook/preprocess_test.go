package mdbook

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"

	"github.com/tagdoc/xmldoc/pkg/errors"
	"github.com/tagdoc/xmldoc/pkg/pipeline"
)

const bookTaglist = `
schema:
  version: r1
  namespace: ex
tags:
  - id: Root
    description: The root element.
`

const renderedRoot = "### `ex:Root`\n\n" +
	"The root element.\n\n" +
	"_**Parents:**_\n\n" +
	"This tag has no possible parents!\n\n"

func newTestPreprocessor() *Preprocessor {
	logger := charmlog.New(io.Discard)
	return New(pipeline.NewRunner(logger), logger, pipeline.Options{Level: 3})
}

// bookRoot creates an mdBook-like tree with a src/list.yml taglist and
// returns the root directory.
func bookRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "src"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "src", "list.yml"), []byte(bookTaglist), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

// input assembles the [context, book] protocol payload.
func input(t *testing.T, root string, book map[string]any) string {
	t.Helper()
	payload, err := json.Marshal([]any{
		map[string]any{
			"root":   root,
			"config": map[string]any{"book": map[string]any{"src": "src"}},
		},
		book,
	})
	if err != nil {
		t.Fatal(err)
	}
	return string(payload)
}

func chapter(content string, subItems ...any) map[string]any {
	c := map[string]any{
		"name":    "Reference",
		"content": content,
		"path":    "reference.md",
	}
	if subItems != nil {
		c["sub_items"] = subItems
	}
	return map[string]any{"Chapter": c}
}

// run invokes the preprocessor and decodes the emitted book.
func run(t *testing.T, in string) map[string]any {
	t.Helper()
	var out strings.Builder
	if err := newTestPreprocessor().Run(strings.NewReader(in), &out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var book map[string]any
	if err := json.Unmarshal([]byte(out.String()), &book); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	return book
}

func content(t *testing.T, book map[string]any, indexes ...int) string {
	t.Helper()
	items := book["sections"].([]any)
	var ch map[string]any
	for _, i := range indexes {
		ch = items[i].(map[string]any)["Chapter"].(map[string]any)
		if sub, ok := ch["sub_items"].([]any); ok {
			items = sub
		}
	}
	return ch["content"].(string)
}

func TestRunExpandsDirective(t *testing.T) {
	root := bookRoot(t)
	book := map[string]any{
		"sections": []any{
			chapter("Intro.\n\n{{#xmldoc list.yml}}\n\nOutro.\n"),
		},
		"__non_exhaustive": nil,
	}

	got := run(t, input(t, root, book))

	want := "Intro.\n\n" + renderedRoot + "\n\nOutro.\n"
	if c := content(t, got, 0); c != want {
		t.Errorf("content = %q, want %q", c, want)
	}

	// Unknown book fields survive the round trip.
	if _, ok := got["__non_exhaustive"]; !ok {
		t.Error("unknown top-level field was dropped")
	}
	ch := got["sections"].([]any)[0].(map[string]any)["Chapter"].(map[string]any)
	if ch["path"] != "reference.md" {
		t.Error("chapter path field was dropped")
	}
}

func TestRunLeavesPlainChaptersAlone(t *testing.T) {
	root := bookRoot(t)
	plain := "No directives here.\n"
	book := map[string]any{"sections": []any{chapter(plain)}}

	got := run(t, input(t, root, book))
	if c := content(t, got, 0); c != plain {
		t.Errorf("content = %q, want untouched %q", c, plain)
	}
}

func TestRunProcessesSubItems(t *testing.T) {
	root := bookRoot(t)
	book := map[string]any{
		"sections": []any{
			chapter("top", chapter("{{#xmldoc list.yml}}")),
		},
	}

	got := run(t, input(t, root, book))
	if c := content(t, got, 0, 0); c != renderedRoot {
		t.Errorf("nested content = %q, want %q", c, renderedRoot)
	}
}

func TestRunSkipsNonChapterItems(t *testing.T) {
	root := bookRoot(t)
	book := map[string]any{
		"sections": []any{
			"Separator",
			map[string]any{"PartTitle": "Reference"},
			chapter("{{#xmldoc list.yml}}"),
		},
	}

	got := run(t, input(t, root, book))
	sections := got["sections"].([]any)
	if sections[0] != "Separator" {
		t.Errorf("separator rewritten to %v", sections[0])
	}
	if c := content(t, got, 2); c != renderedRoot {
		t.Errorf("chapter content = %q, want %q", c, renderedRoot)
	}
}

func TestRunAbsoluteDirectivePath(t *testing.T) {
	root := bookRoot(t)
	abs := filepath.Join(root, "src", "list.yml")
	book := map[string]any{
		"sections": []any{chapter(fmt.Sprintf("{{#xmldoc %s}}", abs))},
	}

	got := run(t, input(t, root, book))
	if c := content(t, got, 0); c != renderedRoot {
		t.Errorf("content = %q, want %q", c, renderedRoot)
	}
}

func TestRunMissingTaglistFails(t *testing.T) {
	root := bookRoot(t)
	book := map[string]any{
		"sections": []any{chapter("{{#xmldoc nope.yml}}")},
	}

	var out strings.Builder
	err := newTestPreprocessor().Run(strings.NewReader(input(t, root, book)), &out)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("Run() error = %v, want FILE_NOT_FOUND", err)
	}
	if !strings.Contains(err.Error(), "{{#xmldoc nope.yml}}") {
		t.Errorf("error %q does not name the failing directive", err)
	}
	if out.Len() != 0 {
		t.Error("failed run still emitted output")
	}
}

func TestRunRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"NotJSON", "not json"},
		{"WrongArity", `[{"root": "/tmp"}]`},
		{"NotAnArray", `{"root": "/tmp"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newTestPreprocessor().Run(strings.NewReader(tt.in), io.Discard)
			if !errors.Is(err, errors.ErrCodeInvalidSchema) {
				t.Errorf("Run() error = %v, want INVALID_SCHEMA", err)
			}
		})
	}
}

func TestDirectivePattern(t *testing.T) {
	tests := []struct {
		in   string
		path string
	}{
		{"{{#xmldoc list.yml}}", "list.yml"},
		{"{{#xmldoc   spaced/path.yaml  }}", "spaced/path.yaml"},
		{"{{#xmldoc a b.yml}}", "a b.yml"},
	}

	for _, tt := range tests {
		m := directivePattern.FindStringSubmatch(tt.in)
		if m == nil {
			t.Errorf("pattern did not match %q", tt.in)
			continue
		}
		if got := strings.TrimSpace(m[1]); got != tt.path {
			t.Errorf("captured %q, want %q", got, tt.path)
		}
	}

	if directivePattern.MatchString("{{#include other.md}}") {
		t.Error("pattern matched a foreign directive")
	}
}
