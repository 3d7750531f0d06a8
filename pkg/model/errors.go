package model

import "fmt"

// VersionError is returned by [Load] when the schema's declared format
// version does not match [Version]. No model is produced.
type VersionError struct {
	Found    string // version token as declared in the file
	Expected string // the single supported token, Version
}

// Error implements the error interface.
func (e *VersionError) Error() string {
	return fmt.Sprintf("unsupported schema version %q, expected %q", e.Found, e.Expected)
}

// DuplicateNameError is returned by [Load] when two declarations share a tag
// name. Tag names must map to exactly one identifier, so this is a fatal
// structural-invariant violation of the input.
type DuplicateNameError struct {
	Name   string // the duplicated tag name
	First  int    // 1-based declaration index of the first occurrence
	Second int    // 1-based declaration index of the conflicting occurrence
}

// Error implements the error interface.
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate tag name %q (declarations %d and %d)", e.Name, e.First, e.Second)
}
