package companies

import (
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"pottery-map/internal/catalog"
	"pottery-map/internal/common"
	"pottery-map/internal/lineage"
	"pottery-map/internal/slug"
)

// Companies is the aggregate the site is rendered from. It is built once by
// FromRawData and only read afterwards.
type Companies struct {
	// Graph shows the relationships between companies and their successors.
	Graph *lineage.Graph
	// AllCompanies holds every graph node and every company that made an item.
	AllCompanies map[string]struct{}
	// CompaniesData holds the company records as loaded.
	CompaniesData *catalog.CompanyMap
	// PotteryByCompany holds the collection grouped by maker.
	PotteryByCompany *GroupMap
}

// FromRawData builds the aggregate from a pottery collection and the company
// records.
func FromRawData(pottery []catalog.PotteryItem, companies *catalog.CompanyMap) *Companies {
	if companies == nil {
		companies = catalog.NewCompanyMap()
	}

	graph := lineage.Build(companies)
	groups := GroupPotteryByCompany(pottery, companies)

	all := make(map[string]struct{}, graph.Len()+groups.Len())
	for _, name := range graph.Nodes() {
		all[name] = struct{}{}
	}

	for pair := groups.Oldest(); pair != nil; pair = pair.Next() {
		all[pair.Key] = struct{}{}
	}

	return &Companies{
		Graph:            graph,
		AllCompanies:     all,
		CompaniesData:    companies,
		PotteryByCompany: groups,
	}
}

// Has reports whether name is a known company.
func (c *Companies) Has(name string) bool {
	_, ok := c.AllCompanies[name]
	return ok
}

func (c *Companies) check(name string) error {
	if !c.Has(name) {
		return &lineage.UnknownCompanyError{Name: name}
	}

	return nil
}

// SortedCompanyNames returns every known company name in ascending byte
// order.
func (c *Companies) SortedCompanyNames() []string {
	return common.SortedKeys(c.AllCompanies)
}

// CompanyItemCounts returns the number of items each company made directly,
// in group order. Companies with no items are absent.
func (c *Companies) CompanyItemCounts() *orderedmap.OrderedMap[string, int] {
	counts := orderedmap.New[string, int](c.PotteryByCompany.Len())

	for pair := c.PotteryByCompany.Oldest(); pair != nil; pair = pair.Next() {
		counts.Set(pair.Key, len(pair.Value.Items))
	}

	return counts
}

// ItemCount returns the number of items name made directly, zero when it
// made none.
func (c *Companies) ItemCount(name string) int {
	if group, ok := c.PotteryByCompany.Get(name); ok {
		return len(group.Items)
	}

	return 0
}

// TopLevelCompanies returns the graph nodes with no successor, in graph
// order.
func (c *Companies) TopLevelCompanies() []string {
	var top []string

	for _, name := range c.Graph.Nodes() {
		if out, _ := c.Graph.OutDegree(name); out == 0 {
			top = append(top, name)
		}
	}

	return top
}

// DescendantRollup returns the number of items made by name and by every
// company that was (transitively) absorbed into it.
func (c *Companies) DescendantRollup(name string) (int, error) {
	if err := c.check(name); err != nil {
		return 0, err
	}

	total := c.ItemCount(name)

	if !c.Graph.Has(name) {
		return total, nil
	}

	ancestors, err := c.Graph.Ancestors(name)
	if err != nil {
		return 0, err
	}

	for _, a := range ancestors {
		total += c.ItemCount(a)
	}

	return total, nil
}

// UltimateParent returns the current owner of name: the end of its successor
// chain. A company with no successor, or not in the graph, is its own
// ultimate parent.
func (c *Companies) UltimateParent(name string) (string, error) {
	if err := c.check(name); err != nil {
		return "", err
	}

	if !c.Graph.Has(name) {
		return name, nil
	}

	return c.Graph.UltimateParent(name)
}

// View is what a company page shows.
type View struct {
	Name      string
	Factory   string
	Location  *catalog.Coordinates
	Successor string
	Area      string
	Defunct   bool
	Items     []ItemData
	// UltimateParent is the end of the successor chain; equal to Name when
	// the company has no successor.
	UltimateParent string
	// Predecessors are the companies that became part of this one, sorted.
	Predecessors []string
}

// Company returns the page data for name. The group is used when the
// company made items, then the company record; a successor that is named but
// has neither gets the defaults.
func (c *Companies) Company(name string) (View, error) {
	if err := c.check(name); err != nil {
		return View{}, err
	}

	var view View

	if group, ok := c.PotteryByCompany.Get(name); ok {
		view = View{
			Name:      name,
			Factory:   group.Factory,
			Location:  group.Location,
			Successor: group.Successor,
			Area:      group.Area,
			Defunct:   group.Defunct,
			Items:     group.Items,
		}
	} else {
		company, ok := c.CompaniesData.Get(name)
		if !ok {
			company = catalog.NewCompany(name)
		}

		view = View{
			Name:      name,
			Factory:   company.Factory,
			Location:  company.Location,
			Successor: company.Successor,
			Area:      company.Area,
			Defunct:   company.Defunct,
			Items:     []ItemData{},
		}
	}

	parent, err := c.UltimateParent(name)
	if err != nil {
		return View{}, err
	}

	view.UltimateParent = parent

	if c.Graph.Has(name) {
		preds, _ := c.Graph.Predecessors(name)
		slices.Sort(preds)
		view.Predecessors = preds
	}

	return view, nil
}

// LineageNode is one company in a "By Parent" tree.
type LineageNode struct {
	Name string
	Slug string
	// Count is the number of items the company made directly.
	Count int
	// Rollup includes the items of every company absorbed into this one.
	Rollup   int
	Children []*LineageNode
}

// Lineage returns the tree of companies absorbed into name. Children are the
// direct predecessors, sorted by name. A company already on the path from
// the root is not expanded again.
func (c *Companies) Lineage(name string) (*LineageNode, error) {
	if err := c.check(name); err != nil {
		return nil, err
	}

	return c.lineage(name, map[string]struct{}{})
}

func (c *Companies) lineage(name string, path map[string]struct{}) (*LineageNode, error) {
	rollup, err := c.DescendantRollup(name)
	if err != nil {
		return nil, err
	}

	n := &LineageNode{
		Name:     name,
		Slug:     slug.Make(name),
		Count:    c.ItemCount(name),
		Rollup:   rollup,
		Children: []*LineageNode{},
	}

	if !c.Graph.Has(name) {
		return n, nil
	}

	path[name] = struct{}{}
	defer delete(path, name)

	preds, err := c.Graph.Predecessors(name)
	if err != nil {
		return nil, err
	}

	slices.Sort(preds)

	for _, p := range preds {
		if _, seen := path[p]; seen {
			continue
		}

		child, err := c.lineage(p, path)
		if err != nil {
			return nil, err
		}

		n.Children = append(n.Children, child)
	}

	return n, nil
}

// Forest returns the lineage tree of every top-level company, in top-level
// order.
func (c *Companies) Forest() ([]*LineageNode, error) {
	top := c.TopLevelCompanies()
	forest := make([]*LineageNode, 0, len(top))

	for _, name := range top {
		tree, err := c.Lineage(name)
		if err != nil {
			return nil, err
		}

		forest = append(forest, tree)
	}

	return forest, nil
}
