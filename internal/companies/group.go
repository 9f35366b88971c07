package companies

import (
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"pottery-map/internal/catalog"
)

// ItemData is a pottery item as listed under its maker. Company-level fields
// (company, factory, location, successor) are held by the Group instead.
type ItemData struct {
	ID        string
	Material  string
	Type      string
	Design    string
	Designer  string
	Category  string
	Era       string
	Notes     []string
	PhotoURLs []string
	Area      string
	Defunct   bool
}

func newItemData(item catalog.PotteryItem) ItemData {
	return ItemData{
		ID:        item.ID,
		Material:  item.Material,
		Type:      item.Type,
		Design:    item.Design,
		Designer:  item.Designer,
		Category:  item.Category,
		Era:       item.Era,
		Notes:     slices.Clone(item.Notes),
		PhotoURLs: slices.Clone(item.PhotoURLs),
		Area:      item.Area,
		Defunct:   item.Defunct,
	}
}

// Group is a company together with the items it made.
type Group struct {
	Name      string
	Factory   string
	Location  *catalog.Coordinates
	Successor string
	Area      string
	Defunct   bool
	Items     []ItemData
}

// GroupMap maps company names to groups in order of first appearance.
type GroupMap = orderedmap.OrderedMap[string, *Group]

// GroupPotteryByCompany groups the pottery collection by the company that
// made each item.
//
// A group takes its factory, location and successor from the company record
// when there is one, and otherwise from the first item seen for that
// company. Items keep their collection order within a group.
func GroupPotteryByCompany(pottery []catalog.PotteryItem, companies *catalog.CompanyMap) *GroupMap {
	groups := orderedmap.New[string, *Group]()

	for _, item := range pottery {
		group, ok := groups.Get(item.Company)
		if !ok {
			group = newGroup(item, companies)
			groups.Set(item.Company, group)
		}

		group.Items = append(group.Items, newItemData(item))
	}

	return groups
}

func newGroup(item catalog.PotteryItem, companies *catalog.CompanyMap) *Group {
	if companies != nil {
		if company, ok := companies.Get(item.Company); ok {
			return &Group{
				Name:      item.Company,
				Factory:   company.Factory,
				Location:  company.Location,
				Successor: company.Successor,
				Area:      company.Area,
				Defunct:   company.Defunct,
				Items:     []ItemData{},
			}
		}
	}

	return &Group{
		Name:      item.Company,
		Factory:   item.Factory,
		Location:  item.Location,
		Successor: item.Successor,
		Area:      item.Area,
		Defunct:   item.Defunct,
		Items:     []ItemData{},
	}
}
