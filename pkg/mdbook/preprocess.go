// Package mdbook implements the mdBook preprocessor protocol for xmldoc.
//
// mdBook invokes a preprocessor with no arguments, passing a two-element
// JSON array [context, book] on standard input and expecting the processed
// book JSON on standard output. It separately invokes "supports <renderer>"
// to query capabilities; that query is handled by the CLI, not here.
//
// The preprocessor scans every chapter for directives of the form
//
//	{{#xmldoc path/to/taglist.yml}}
//
// and replaces each directive with the markdown documentation generated from
// the referenced taglist. Relative paths are resolved against the book's
// source directory. Unknown JSON fields in the book are preserved intact -
// the book is manipulated as generic JSON, never re-modelled.
package mdbook

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	charmlog "github.com/charmbracelet/log"

	"github.com/tagdoc/xmldoc/pkg/errors"
	"github.com/tagdoc/xmldoc/pkg/pipeline"
)

// directivePattern matches an xmldoc directive and captures the taglist path.
var directivePattern = regexp.MustCompile(`\{\{#xmldoc\s+([^}]+?)\s*\}\}`)

// Preprocessor rewrites mdBook chapters by expanding xmldoc directives.
type Preprocessor struct {
	runner *pipeline.Runner
	logger *charmlog.Logger
	opts   pipeline.Options
}

// New creates a Preprocessor rendering with the given pipeline options.
// A nil logger falls back to the charmbracelet/log default.
func New(runner *pipeline.Runner, logger *charmlog.Logger, opts pipeline.Options) *Preprocessor {
	if logger == nil {
		logger = charmlog.Default()
	}
	return &Preprocessor{runner: runner, logger: logger, opts: opts}
}

// context is the subset of the mdBook preprocessor context we need for
// resolving relative taglist paths.
type context struct {
	Root   string `json:"root"`
	Config struct {
		Book struct {
			Src string `json:"src"`
		} `json:"book"`
	} `json:"config"`
}

// Run reads [context, book] JSON from r, expands every directive, and
// writes the processed book JSON to w.
//
// Load warnings are logged (to stderr via the injected logger) rather than
// emitted on the protocol stream. Any fatal load or render error aborts the
// whole invocation: mdBook treats a non-zero exit as a failed build.
func (p *Preprocessor) Run(r io.Reader, w io.Writer) error {
	var input []json.RawMessage
	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSchema, err, "failed to decode preprocessor input")
	}
	if len(input) != 2 {
		return errors.New(errors.ErrCodeInvalidSchema, "expected [context, book] input, got %d elements", len(input))
	}

	var ctx context
	if err := json.Unmarshal(input[0], &ctx); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSchema, err, "failed to decode preprocessor context")
	}

	var book map[string]any
	if err := json.Unmarshal(input[1], &book); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSchema, err, "failed to decode book")
	}

	srcDir := ctx.Root
	if ctx.Config.Book.Src != "" {
		srcDir = filepath.Join(ctx.Root, ctx.Config.Book.Src)
	}

	if sections, ok := book["sections"].([]any); ok {
		if err := p.processItems(sections, srcDir); err != nil {
			return err
		}
	}

	if err := json.NewEncoder(w).Encode(book); err != nil {
		return errors.Wrap(errors.ErrCodeOutputFailed, err, "failed to encode book")
	}
	return nil
}

// processItems walks book items recursively. Non-chapter items (separators,
// part titles) are passed through untouched.
func (p *Preprocessor) processItems(items []any, srcDir string) error {
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		chapter, ok := entry["Chapter"].(map[string]any)
		if !ok {
			continue
		}

		content, ok := chapter["content"].(string)
		if ok && directivePattern.MatchString(content) {
			expanded, err := p.expand(content, srcDir)
			if err != nil {
				return err
			}
			chapter["content"] = expanded
		}

		if subItems, ok := chapter["sub_items"].([]any); ok {
			if err := p.processItems(subItems, srcDir); err != nil {
				return err
			}
		}
	}
	return nil
}

// expand replaces every directive in content with generated markdown.
func (p *Preprocessor) expand(content, srcDir string) (string, error) {
	var firstErr error

	result := directivePattern.ReplaceAllStringFunc(content, func(match string) string {
		if firstErr != nil {
			return match
		}
		path := strings.TrimSpace(directivePattern.FindStringSubmatch(match)[1])
		if !filepath.IsAbs(path) {
			path = filepath.Join(srcDir, path)
		}

		list, warnings, err := p.runner.Check(path)
		if err != nil {
			firstErr = fmt.Errorf("directive %s: %w", match, err)
			return match
		}
		for _, warning := range warnings {
			p.logger.Warn(warning)
		}

		var buf strings.Builder
		if err := p.runner.RenderTo(list, &buf, p.opts); err != nil {
			firstErr = fmt.Errorf("directive %s: %w", match, err)
			return match
		}
		return buf.String()
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}
