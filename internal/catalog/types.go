package catalog

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"pottery-map/internal/slug"
)

const (
	// DefaultFactory is used when a record names no factory.
	DefaultFactory = "Unknown"
	// DefaultCategory is used when an item names no category.
	DefaultCategory = "Other"
)

// Coordinates are the coordinates of a factory.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Company is a manufacturing entity.
type Company struct {
	// Name is the unique key of the company.
	Name string
	// Factory is the name of the works, "Unknown" if not recorded.
	Factory string
	// Location of the factory, nil if not recorded.
	Location *Coordinates
	// Successor is the company this one became part of, empty if none.
	Successor string
	// Area is the town or region, e.g. "Hanley" or "Jingdezhen".
	Area string
	Defunct bool
}

// NewCompany returns a company with every default applied.
func NewCompany(name string) Company {
	return Company{
		Name:    name,
		Factory: DefaultFactory,
	}
}

// HasSuccessor returns true if the company records a successor.
func (c Company) HasSuccessor() bool {
	return c.Successor != ""
}

// CompanyMap maps company names to records in file order.
type CompanyMap = orderedmap.OrderedMap[string, Company]

// NewCompanyMap returns an empty CompanyMap.
func NewCompanyMap() *CompanyMap {
	return orderedmap.New[string, Company]()
}

// PotteryItem is an item in the pottery collection.
type PotteryItem struct {
	// ID is the slug of the record name; unique across the collection.
	ID      string
	Company string
	// Material, e.g. "Bone China".
	Material string
	// Type, e.g. "Sandwich Plate".
	Type   string
	Design string
	// Factory is only consulted when the company has no record of its own.
	Factory  string
	Designer string
	// Category, e.g. "Plate", "Bowl", "Cup". Defaults to "Other".
	Category  string
	Era       string
	Notes     []string
	PhotoURLs []string
	Location  *Coordinates
	Area      string
	Successor string
	Defunct   bool
}

// NewPotteryItem returns an item with its ID derived from identifier and
// every default applied.
func NewPotteryItem(identifier, company, material, itemType, design string) PotteryItem {
	return PotteryItem{
		ID:        slug.Make(identifier),
		Company:   company,
		Material:  material,
		Type:      itemType,
		Design:    design,
		Factory:   DefaultFactory,
		Category:  DefaultCategory,
		Notes:     []string{},
		PhotoURLs: []string{},
	}
}
