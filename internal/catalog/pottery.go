package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// potteryFields are the keys an item record may carry.
var potteryFields = []string{
	"company", "material", "type", "design",
	"factory", "designer", "category", "era", "notes", "photo_urls",
	"location", "area", "successor", "defunct",
}

// potteryRecord is the on-disk shape of a PotteryItem.
type potteryRecord struct {
	Company   *string         `toml:"company" yaml:"company"`
	Material  *string         `toml:"material" yaml:"material"`
	Type      *string         `toml:"type" yaml:"type"`
	Design    *string         `toml:"design" yaml:"design"`
	Factory   *string         `toml:"factory" yaml:"factory"`
	Designer  *string         `toml:"designer" yaml:"designer"`
	Category  *string         `toml:"category" yaml:"category"`
	Era       *string         `toml:"era" yaml:"era"`
	Notes     []string        `toml:"notes" yaml:"notes"`
	PhotoURLs []string        `toml:"photo_urls" yaml:"photo_urls"`
	Location  *locationRecord `toml:"location" yaml:"location"`
	Area      *string         `toml:"area" yaml:"area"`
	Successor *string         `toml:"successor" yaml:"successor"`
	Defunct   *bool           `toml:"defunct" yaml:"defunct"`
}

func (r potteryRecord) toItem(identifier string) (PotteryItem, error) {
	var missing []string

	required := []struct {
		name  string
		value *string
	}{
		{"company", r.Company},
		{"material", r.Material},
		{"type", r.Type},
		{"design", r.Design},
	}
	for _, f := range required {
		if f.value == nil {
			missing = append(missing, f.name)
		}
	}

	if len(missing) > 0 {
		return PotteryItem{}, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	item := NewPotteryItem(identifier, *r.Company, *r.Material, *r.Type, *r.Design)

	optional := []struct {
		dst *string
		src *string
	}{
		{&item.Factory, r.Factory},
		{&item.Designer, r.Designer},
		{&item.Category, r.Category},
		{&item.Era, r.Era},
		{&item.Area, r.Area},
		{&item.Successor, r.Successor},
	}
	for _, f := range optional {
		if f.src != nil {
			*f.dst = *f.src
		}
	}

	if r.Notes != nil {
		item.Notes = r.Notes
	}

	if r.PhotoURLs != nil {
		item.PhotoURLs = r.PhotoURLs
	}

	if r.Defunct != nil {
		item.Defunct = *r.Defunct
	}

	loc, err := r.Location.coordinates()
	if err != nil {
		return PotteryItem{}, err
	}

	item.Location = loc

	return item, nil
}

// LoadPotteryCollection loads a pottery collection from one or more files.
// Each pattern is a path or a doublestar glob ("pottery/**/*.toml"); glob
// matches are read in lexical order and the items concatenated.
func LoadPotteryCollection(patterns ...string) ([]PotteryItem, error) {
	paths, err := ExpandPaths(patterns)
	if err != nil {
		return nil, err
	}

	var pottery []PotteryItem

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}

		format := FormatFromPath(path)
		if format == FormatUnknown {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)}
		}

		items, err := ParsePottery(data, format)
		if err != nil {
			return nil, withPath(err, path)
		}

		pottery = append(pottery, items...)
	}

	return pottery, nil
}

// ParsePottery parses pottery item records.
func ParsePottery(data []byte, format Format) ([]PotteryItem, error) {
	records, err := readRecords(data, format)
	if err != nil {
		return nil, err
	}

	pottery := make([]PotteryItem, 0, len(records))

	for _, rec := range records {
		if unknown := rec.unknownFields(potteryFields); len(unknown) > 0 {
			return nil, &LoadError{
				Record: rec.Name,
				Err:    fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(unknown, ", ")),
			}
		}

		var raw potteryRecord
		if err := rec.Decode(&raw); err != nil {
			return nil, &LoadError{Record: rec.Name, Err: err}
		}

		item, err := raw.toItem(rec.Name)
		if err != nil {
			return nil, &LoadError{Record: rec.Name, Err: err}
		}

		pottery = append(pottery, item)
	}

	return pottery, nil
}

// ExpandPaths resolves glob patterns to file paths. Plain paths are passed
// through unchanged; a glob matching nothing is an error. Duplicates are
// dropped, keeping the first occurrence.
func ExpandPaths(patterns []string) ([]string, error) {
	var paths []string

	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}

		seen[p] = struct{}{}
		paths = append(paths, p)
	}

	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			add(pattern)
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, &LoadError{Path: pattern, Err: err}
		}

		if len(matches) == 0 {
			return nil, &LoadError{Path: pattern, Err: ErrNoMatches}
		}

		sort.Strings(matches)

		for _, m := range matches {
			add(m)
		}
	}

	return paths, nil
}
