package manifest

import "fmt"

const malformedManifestTemplateConstant = "malformed manifest %s at offset %d: %v"

// MalformedManifestError reports an unparseable manifest document. It is fatal
// for the owning package only; sibling packages continue processing.
type MalformedManifestError struct {
	Path   string
	Offset int64
	Err    error
}

// Error describes the parse failure including path and position.
func (parseError MalformedManifestError) Error() string {
	return fmt.Sprintf(malformedManifestTemplateConstant, parseError.Path, parseError.Offset, parseError.Err)
}

// Unwrap exposes the underlying parse failure.
func (parseError MalformedManifestError) Unwrap() error {
	return parseError.Err
}
