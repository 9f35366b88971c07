package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingField is wrapped when a required field is absent.
	ErrMissingField = errors.New("missing required field")
	// ErrUnknownField is wrapped when a strict record carries an unknown key.
	ErrUnknownField = errors.New("unknown field")
	// ErrUnsupportedFormat is wrapped when a file extension is not recognised.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrDuplicateRecord is wrapped when a record name appears twice in one file.
	ErrDuplicateRecord = errors.New("duplicate record")
	// ErrNoMatches is wrapped when a pottery glob matches no files.
	ErrNoMatches = errors.New("no files match")
)

// LoadError reports a malformed or structurally invalid input source.
type LoadError struct {
	// Path is the source file, empty for in-memory sources.
	Path string
	// Record is the offending record name, empty for document-level failures.
	Record string
	Err    error
}

func (e *LoadError) Error() string {
	var b strings.Builder

	b.WriteString("load")

	if e.Path != "" {
		b.WriteString(" " + e.Path)
	}

	if e.Record != "" {
		fmt.Fprintf(&b, " record %q", e.Record)
	}

	b.WriteString(": ")
	b.WriteString(e.Err.Error())

	return b.String()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// withPath fills in the source path of a LoadError returned by a parser.
func withPath(err error, path string) error {
	var le *LoadError
	if errors.As(err, &le) && le.Path == "" {
		le.Path = path
	}

	return err
}
