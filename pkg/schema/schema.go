// Package schema deserializes taglist files.
//
// A taglist is a YAML document describing an XML vocabulary: a namespace,
// a format version, and a flat, order-preserving list of tag declarations.
// This package performs raw deserialization only - no cross-validation is
// done here. Reference resolution and structural checks happen in
// [github.com/tagdoc/xmldoc/pkg/model].
//
// # File Format
//
//	schema:
//	  version: r1
//	  namespace: ex
//	tags:
//	  - id: Root
//	    description: The root element.
//	    children:
//	      - ref: Item
//	        multiple: true
//	  - id: Item
//	    description: A single entry.
//	    attributes:
//	      - id: name
//	        brief: Entry name.
//	    value: Free-form text.
package schema

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tagdoc/xmldoc/pkg/errors"
)

// Document is the root structure of a taglist file.
type Document struct {
	Schema Params `yaml:"schema"`
	Tags   []Tag  `yaml:"tags"`
}

// Params carries file-level parameters.
type Params struct {
	Version   string `yaml:"version"`
	Namespace string `yaml:"namespace"`
}

// Tag is a single raw tag declaration. Order within the file is significant
// and preserved by the Tags slice.
type Tag struct {
	ID          string      `yaml:"id"`
	Description string      `yaml:"description"`
	Attributes  []Attribute `yaml:"attributes"`
	Children    []ChildRef  `yaml:"children"`
	Value       string      `yaml:"value"`
	Example     string      `yaml:"example"`
}

// Attribute is a raw attribute declaration.
type Attribute struct {
	ID          string `yaml:"id"`
	Brief       string `yaml:"brief"`
	Description string `yaml:"description"`
	Expected    string `yaml:"expected"`
	Default     string `yaml:"default"`
	Optional    bool   `yaml:"optional"`
}

// ChildRef is a raw, unresolved reference to another tag by name.
type ChildRef struct {
	Ref      string `yaml:"ref"`
	Optional bool   `yaml:"optional"`
	Multiple bool   `yaml:"multiple"`
}

// Read decodes a taglist document from r.
// Returns an INVALID_SCHEMA error if the YAML is malformed.
func Read(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSchema, err, "failed to parse taglist")
	}
	return &doc, nil
}

// ReadFile opens and decodes the taglist file at path.
// Returns a FILE_NOT_FOUND error when the file cannot be opened, so callers
// can distinguish I/O failures from malformed content.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "failed to open source file %q", path)
	}
	defer f.Close()

	doc, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
