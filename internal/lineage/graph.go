package lineage

import (
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"pottery-map/internal/catalog"
	"pottery-map/internal/common"
)

type node struct {
	successors   []string
	predecessors []string
}

// Graph is a directed graph of company names. Node iteration order is
// insertion order; edge order is the order edges were added.
type Graph struct {
	nodes *orderedmap.OrderedMap[string, *node]
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{nodes: orderedmap.New[string, *node]()}
}

// Build returns the successor graph of companies: one node per company, one
// node per named successor (which need not have a record of its own) and an
// edge from every company to its successor.
func Build(companies *catalog.CompanyMap) *Graph {
	g := New()

	if companies == nil {
		return g
	}

	for pair := companies.Oldest(); pair != nil; pair = pair.Next() {
		g.AddNode(pair.Key)

		if pair.Value.HasSuccessor() {
			g.AddEdge(pair.Key, pair.Value.Successor)
		}
	}

	return g
}

// AddNode adds name to the graph if it is not already present.
func (g *Graph) AddNode(name string) {
	g.node(name)
}

// AddEdge adds an edge from -> to, adding both nodes as needed. Adding an
// existing edge is a no-op.
func (g *Graph) AddEdge(from, to string) {
	f := g.node(from)
	t := g.node(to)

	if slices.Contains(f.successors, to) {
		return
	}

	f.successors = append(f.successors, to)
	t.predecessors = append(t.predecessors, from)
}

func (g *Graph) node(name string) *node {
	if n, ok := g.nodes.Get(name); ok {
		return n
	}

	n := &node{}
	g.nodes.Set(name, n)

	return n
}

func (g *Graph) lookup(name string) (*node, error) {
	n, ok := g.nodes.Get(name)
	if !ok {
		return nil, &UnknownCompanyError{Name: name}
	}

	return n, nil
}

// Nodes returns every node in insertion order.
func (g *Graph) Nodes() []string {
	return common.Keys(g.nodes)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return g.nodes.Len()
}

// Has reports whether name is a node.
func (g *Graph) Has(name string) bool {
	_, ok := g.nodes.Get(name)
	return ok
}

// Successors returns the direct successors of name.
func (g *Graph) Successors(name string) ([]string, error) {
	n, err := g.lookup(name)
	if err != nil {
		return nil, err
	}

	return slices.Clone(n.successors), nil
}

// Predecessors returns the companies that name a given company as their
// direct successor.
func (g *Graph) Predecessors(name string) ([]string, error) {
	n, err := g.lookup(name)
	if err != nil {
		return nil, err
	}

	return slices.Clone(n.predecessors), nil
}

// OutDegree returns the number of successor edges of name.
func (g *Graph) OutDegree(name string) (int, error) {
	n, err := g.lookup(name)
	if err != nil {
		return 0, err
	}

	return len(n.successors), nil
}

// InDegree returns the number of predecessor edges of name.
func (g *Graph) InDegree(name string) (int, error) {
	n, err := g.lookup(name)
	if err != nil {
		return 0, err
	}

	return len(n.predecessors), nil
}

// Ancestors returns every node that can reach name by following successor
// edges, in breadth-first order. name itself is never included, even when
// it lies on a cycle.
func (g *Graph) Ancestors(name string) ([]string, error) {
	return g.walk(name, func(n *node) []string { return n.predecessors })
}

// Descendants returns every node reachable from name by following
// successor edges, in breadth-first order, excluding name.
func (g *Graph) Descendants(name string) ([]string, error) {
	return g.walk(name, func(n *node) []string { return n.successors })
}

func (g *Graph) walk(name string, next func(*node) []string) ([]string, error) {
	start, err := g.lookup(name)
	if err != nil {
		return nil, err
	}

	visited := map[string]struct{}{name: {}}
	queue := slices.Clone(next(start))

	var out []string

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if _, ok := visited[cur]; ok {
			continue
		}

		visited[cur] = struct{}{}
		out = append(out, cur)

		n, _ := g.nodes.Get(cur)
		queue = append(queue, next(n)...)
	}

	return out, nil
}

// UltimateParent follows successor edges from name until it reaches a node
// with no successor. On a cycle it stops at the last node before the walk
// would repeat. A node with no successor is its own ultimate parent.
func (g *Graph) UltimateParent(name string) (string, error) {
	n, err := g.lookup(name)
	if err != nil {
		return "", err
	}

	cur := name
	visited := map[string]struct{}{name: {}}

	for len(n.successors) > 0 {
		nextName := n.successors[0]
		if _, ok := visited[nextName]; ok {
			break
		}

		visited[nextName] = struct{}{}
		cur = nextName
		n, _ = g.nodes.Get(cur)
	}

	return cur, nil
}

// Cycles returns the groups of nodes that lie on a successor cycle. Each
// group lists its members in node order; groups are ordered by their first
// member. A self-loop is a group of one.
func (g *Graph) Cycles() [][]string {
	names := g.Nodes()
	index := make(map[string]int, len(names))

	for i, name := range names {
		index[name] = i
	}

	// Peel off nodes with no predecessors, then nodes with no successors.
	// What is left is either on a cycle or between cycles.
	remaining := g.peel(names, index, func(n *node) []string { return n.predecessors }, func(n *node) []string { return n.successors })
	remaining = g.peel(remaining, index, func(n *node) []string { return n.successors }, func(n *node) []string { return n.predecessors })

	var groups [][]string

	assigned := make(map[string]struct{})

	for _, name := range remaining {
		if _, ok := assigned[name]; ok {
			continue
		}

		desc, _ := g.Descendants(name)
		if !g.reaches(desc, name) {
			continue
		}

		anc, _ := g.Ancestors(name)
		group := []string{name}

		for _, d := range desc {
			if slices.Contains(anc, d) {
				group = append(group, d)
			}
		}

		slices.SortFunc(group, func(a, b string) int { return index[a] - index[b] })

		for _, member := range group {
			assigned[member] = struct{}{}
		}

		groups = append(groups, group)
	}

	return groups
}

// reaches reports whether one of from has a successor edge to target.
func (g *Graph) reaches(from []string, target string) bool {
	self, _ := g.nodes.Get(target)
	if slices.Contains(self.successors, target) {
		return true
	}

	for _, name := range from {
		n, _ := g.nodes.Get(name)
		if slices.Contains(n.successors, target) {
			return true
		}
	}

	return false
}

// peel repeatedly removes the nodes of subset with no inbound edges (as
// given by in) within the subset, Kahn style, and returns the survivors in
// node order.
func (g *Graph) peel(subset []string, index map[string]int, in, out func(*node) []string) []string {
	alive := make(map[string]struct{}, len(subset))
	for _, name := range subset {
		alive[name] = struct{}{}
	}

	degree := make(map[string]int, len(subset))

	var ready []string

	for _, name := range subset {
		n, _ := g.nodes.Get(name)
		for _, p := range in(n) {
			if _, ok := alive[p]; ok {
				degree[name]++
			}
		}

		if degree[name] == 0 {
			ready = append(ready, name)
		}
	}

	for len(ready) > 0 {
		cur := ready[0]
		ready = ready[1:]

		delete(alive, cur)

		n, _ := g.nodes.Get(cur)
		for _, s := range out(n) {
			if _, ok := alive[s]; !ok {
				continue
			}

			degree[s]--
			if degree[s] == 0 {
				ready = append(ready, s)
			}
		}
	}

	survivors := make([]string, 0, len(alive))
	for name := range alive {
		survivors = append(survivors, name)
	}

	slices.SortFunc(survivors, func(a, b string) int { return index[a] - index[b] })

	return survivors
}
