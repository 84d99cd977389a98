package index

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported manifest format (use .json or .xml)")

	ErrInvalidRoot    = errors.New("invalid manifest root")
	ErrMissingFiles   = errors.New("missing required field 'files'")
	ErrFilesNotList   = errors.New("field 'files' must be an array")
	ErrNoEntries      = errors.New("<files> must contain at least one <file> element")
	ErrMissingElement = errors.New("missing required element")
	ErrEmptyElement   = errors.New("element must not be empty")

	ErrNotObject        = errors.New("entry must be an object")
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidField     = errors.New("invalid field value")
	ErrUnknownAlgorithm = errors.New("unknown hash type")
	ErrInvalidChecksum  = errors.New("invalid checksum")
)

// ManifestError means the manifest itself could not be read or decoded.
type ManifestError struct {
	Path string
	Op   string // "read", "decode" or "detect format"
	Err  error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("manifest %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *ManifestError) Unwrap() error { return e.Err }

// ValidationError means the manifest is well formed but some value violates
// the record model. Entry is the 1-based position of the offending entry in
// the collection named by List, or 0 for document-level problems.
type ValidationError struct {
	List   string
	Entry  int
	Field  string
	Detail string
	Err    error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Entry > 0 {
		list := e.List
		if list == "" {
			list = "entry"
		}
		fmt.Fprintf(&b, "%s[%d]: ", list, e.Entry)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, "%s: ", e.Field)
	}
	b.WriteString(e.Err.Error())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, kind error, detail string) *ValidationError {
	return &ValidationError{Field: field, Err: kind, Detail: detail}
}

// atEntry tags a validation failure with the position of the entry that caused it.
func atEntry(err error, list string, pos int) error {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	tagged := *ve
	tagged.List = list
	tagged.Entry = pos
	return &tagged
}
