// Package pkg provides the core libraries for xmldoc documentation generation.
//
// # Overview
//
// xmldoc converts a declarative YAML description of an XML vocabulary (a
// "taglist") into markdown reference documentation. The pkg directory is
// organized along the pipeline stages:
//
//  1. [schema] - Raw taglist deserialization (YAML, no cross-validation)
//  2. [model] - Resolved tag graph (name index, parent edges, warnings)
//  3. [render] - Markdown projection of the graph
//  4. [pipeline] - The load → render chain shared by all entry points
//  5. [mdbook] - The mdBook preprocessor protocol on top of the pipeline
//
// Supporting packages: [config] for xmldoc.toml defaults, [errors] for
// machine-readable error codes, [buildinfo] for version metadata.
//
// # Quick Start
//
// Validate a taglist and render it to markdown:
//
//	runner := pipeline.NewRunner(logger)
//
//	list, warnings, err := runner.Check("taglist.yml")
//	if err != nil {
//	    return err
//	}
//	for _, w := range warnings {
//	    logger.Warn(w)
//	}
//
//	err = runner.RenderTo(list, os.Stdout, pipeline.Options{Level: 3})
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...         # All tests
//	go test ./pkg/model/...   # Specific package
//
// [schema]: https://pkg.go.dev/github.com/tagdoc/xmldoc/pkg/schema
// [model]: https://pkg.go.dev/github.com/tagdoc/xmldoc/pkg/model
// [render]: https://pkg.go.dev/github.com/tagdoc/xmldoc/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/tagdoc/xmldoc/pkg/pipeline
// [mdbook]: https://pkg.go.dev/github.com/tagdoc/xmldoc/pkg/mdbook
// [config]: https://pkg.go.dev/github.com/tagdoc/xmldoc/pkg/config
// [errors]: https://pkg.go.dev/github.com/tagdoc/xmldoc/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/tagdoc/xmldoc/pkg/buildinfo
package pkg
