package catalog

import (
	"path/filepath"
	"strings"
)

//go:generate go tool stringer -type=Format -linecomment -output=format_string.go

// Format is the syntax of a data file.
type Format int

const (
	FormatUnknown Format = iota // unknown
	FormatTOML                  // toml
	FormatYAML                  // yaml
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}
