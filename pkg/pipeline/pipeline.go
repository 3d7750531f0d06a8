// Package pipeline provides the load → render pipeline for xmldoc.
//
// This package implements the sequential call chain shared by the CLI
// commands and the mdBook preprocessor: deserialize a taglist file, build
// the resolved tag graph, and project it into markdown. Centralizing the
// chain keeps warning accumulation and error mapping consistent across all
// entry points.
//
// The pipeline is single-threaded and synchronous. The tag graph is fully
// constructed before rendering starts and never mutated afterwards; any
// fault is non-retryable and propagates unchanged to the caller.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//
//	// Validate only
//	list, warnings, err := runner.Check("taglist.yml")
//
//	// Full generation
//	warnings, err := runner.Generate("taglist.yml", "reference.md", pipeline.Options{
//	    Level: 3,
//	})
package pipeline

import (
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"

	"github.com/tagdoc/xmldoc/pkg/config"
	"github.com/tagdoc/xmldoc/pkg/errors"
	"github.com/tagdoc/xmldoc/pkg/model"
	"github.com/tagdoc/xmldoc/pkg/render"
	"github.com/tagdoc/xmldoc/pkg/schema"
)

// StdoutSentinel is the output path designating the process standard output.
const StdoutSentinel = "-"

// Options control markdown generation for a single run.
type Options struct {
	// Level is the heading level for tag sections. Zero selects
	// config.DefaultHeaderLevel.
	Level int

	// CRLF selects carriage-return-plus-line-feed line endings.
	CRLF bool
}

// Runner executes the pipeline stages with an injected logger.
type Runner struct {
	logger *charmlog.Logger
}

// NewRunner creates a Runner. A nil logger falls back to the
// charmbracelet/log default.
func NewRunner(logger *charmlog.Logger) *Runner {
	if logger == nil {
		logger = charmlog.Default()
	}
	return &Runner{logger: logger}
}

// Check loads and validates the taglist at path without rendering.
// It returns the built model together with the accumulated non-fatal
// warnings. Fatal conditions (unreadable file, malformed YAML, unsupported
// version, duplicate tag name) abort with an error and no model.
func (r *Runner) Check(path string) (*model.TagList, []string, error) {
	doc, err := schema.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	list, warnings, err := model.Load(doc)
	if err != nil {
		return nil, nil, wrapLoadError(path, err)
	}

	r.logger.Debugf("loaded %d tags from %s", list.Len(), path)
	return list, warnings, nil
}

// Generate loads the taglist at path and renders it to output.
// The output is the process standard output when output is empty or equals
// [StdoutSentinel]; otherwise it is a file path that is created or
// truncated. Returns the accumulated load warnings.
//
// A render fault leaves a partially written destination behind; callers must
// treat it as invalid.
func (r *Runner) Generate(path, output string, opts Options) ([]string, error) {
	list, warnings, err := r.Check(path)
	if err != nil {
		return nil, err
	}

	sink, closeSink, err := openSink(output)
	if err != nil {
		return nil, err
	}

	if err := r.RenderTo(list, sink, opts); err != nil {
		closeSink()
		return nil, err
	}
	if err := closeSink(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeOutputFailed, err, "failed to finalize output %q", output)
	}

	r.logger.Debugf("generated documentation for %s", path)
	return warnings, nil
}

// RenderTo renders an already built model to w using opts.
// This is the seam used by the mdBook preprocessor, which renders into
// chapter buffers instead of files.
func (r *Runner) RenderTo(list *model.TagList, w io.Writer, opts Options) error {
	level := opts.Level
	if level == 0 {
		level = config.DefaultHeaderLevel
	}
	headerLevel, err := render.NewHeaderLevel(level)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidHeaderLevel, err, "invalid render options")
	}

	renderer, err := render.New(render.Options{
		Level:  headerLevel,
		CRLF:   opts.CRLF,
		Logger: r.logger,
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidHeaderLevel, err, "invalid render options")
	}

	if err := renderer.Render(list, w); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "failed to generate markdown")
	}
	return nil
}

// openSink resolves the output destination. The returned close function is a
// no-op for the stdout sentinel, since the process owns that stream.
func openSink(output string) (io.Writer, func() error, error) {
	if output == "" || output == StdoutSentinel {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(output)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeOutputFailed, err, "failed to create output file %q", output)
	}
	return f, f.Close, nil
}

// wrapLoadError attaches the boundary error code matching the typed model
// error, preserving the original error in the chain for errors.As callers.
func wrapLoadError(path string, err error) error {
	switch err.(type) {
	case *model.VersionError:
		return errors.Wrap(errors.ErrCodeUnsupportedVersion, err, "failed to load taglist from %q", path)
	case *model.DuplicateNameError:
		return errors.Wrap(errors.ErrCodeDuplicateTag, err, "failed to load taglist from %q", path)
	default:
		return fmt.Errorf("failed to load taglist from %q: %w", path, err)
	}
}
