package catalog

import (
	"fmt"
	"os"
	"strings"

	"pottery-map/internal/diagnostic"
)

// companyFields are the keys a company record may carry.
var companyFields = []string{"factory", "location", "successor", "area", "defunct"}

// companyRecord is the on-disk shape of a company.
type companyRecord struct {
	Factory   *string         `toml:"factory" yaml:"factory"`
	Location  *locationRecord `toml:"location" yaml:"location"`
	Successor *string         `toml:"successor" yaml:"successor"`
	Area      *string         `toml:"area" yaml:"area"`
	Defunct   *bool           `toml:"defunct" yaml:"defunct"`
}

func (r companyRecord) toCompany(name string) (Company, error) {
	c := NewCompany(name)

	if r.Factory != nil {
		c.Factory = *r.Factory
	}

	loc, err := r.Location.coordinates()
	if err != nil {
		return Company{}, err
	}

	c.Location = loc

	if r.Successor != nil {
		c.Successor = *r.Successor
	}

	if r.Area != nil {
		c.Area = *r.Area
	}

	if r.Defunct != nil {
		c.Defunct = *r.Defunct
	}

	return c, nil
}

// LoadCompanies loads company data (name, factory, location, successor)
// from a TOML or YAML file.
func LoadCompanies(path string) (*CompanyMap, *diagnostic.Diagnostics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &LoadError{Path: path, Err: err}
	}

	format := FormatFromPath(path)
	if format == FormatUnknown {
		return nil, nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)}
	}

	companies, diags, err := ParseCompanies(data, format)
	if err != nil {
		return nil, nil, withPath(err, path)
	}

	return companies, diags, nil
}

// ParseCompanies parses company records. Data-quality findings (duplicate
// locations, unknown keys) are returned as diagnostics, never as errors.
func ParseCompanies(data []byte, format Format) (*CompanyMap, *diagnostic.Diagnostics, error) {
	records, err := readRecords(data, format)
	if err != nil {
		return nil, nil, err
	}

	companies := NewCompanyMap()
	diags := &diagnostic.Diagnostics{}

	// First company seen at each location.
	occupied := make(map[Coordinates]string)

	for _, rec := range records {
		var raw companyRecord
		if err := rec.Decode(&raw); err != nil {
			return nil, nil, &LoadError{Record: rec.Name, Err: err}
		}

		company, err := raw.toCompany(rec.Name)
		if err != nil {
			return nil, nil, &LoadError{Record: rec.Name, Err: err}
		}

		if unknown := rec.unknownFields(companyFields); len(unknown) > 0 {
			diags.AddWarning("unknown_field",
				fmt.Sprintf("ignoring unknown keys %s", strings.Join(unknown, ", ")),
				rec.Name, unknown[0])
		}

		if loc := company.Location; loc != nil {
			if first, ok := occupied[*loc]; ok {
				diags.AddWarning("duplicate_location",
					fmt.Sprintf("multiple factories at location (%g, %g): %s and %s",
						loc.Latitude, loc.Longitude, first, rec.Name),
					rec.Name, "location")
			} else {
				occupied[*loc] = rec.Name
			}
		}

		companies.Set(rec.Name, company)
	}

	return companies, diags, nil
}
