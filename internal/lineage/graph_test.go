package lineage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pottery-map/internal/catalog"
)

func companyMap(successors ...[2]string) *catalog.CompanyMap {
	m := catalog.NewCompanyMap()

	for _, s := range successors {
		c := catalog.NewCompany(s[0])
		c.Successor = s[1]
		m.Set(s[0], c)
	}

	return m
}

func TestBuild(t *testing.T) {
	g := Build(companyMap(
		[2]string{"Alfred Meakin", "Myott-Meakin"},
		[2]string{"Myott-Meakin", "Churchill"},
		[2]string{"Spode", ""},
		[2]string{"J&G Meakin", "Churchill"},
	))

	// Successors are added when first referenced.
	assert.Equal(t, []string{"Alfred Meakin", "Myott-Meakin", "Churchill", "Spode", "J&G Meakin"}, g.Nodes())
	assert.Equal(t, 5, g.Len())
	assert.True(t, g.Has("Churchill"))
	assert.False(t, g.Has("Wedgwood"))

	succ, err := g.Successors("Alfred Meakin")
	require.NoError(t, err)
	assert.Equal(t, []string{"Myott-Meakin"}, succ)

	pred, err := g.Predecessors("Churchill")
	require.NoError(t, err)
	assert.Equal(t, []string{"Myott-Meakin", "J&G Meakin"}, pred)

	out, err := g.OutDegree("Churchill")
	require.NoError(t, err)
	assert.Zero(t, out)

	in, err := g.InDegree("Churchill")
	require.NoError(t, err)
	assert.Equal(t, 2, in)

	out, err = g.OutDegree("Spode")
	require.NoError(t, err)
	assert.Zero(t, out)
}

func TestBuild_Nil(t *testing.T) {
	g := Build(nil)
	assert.Empty(t, g.Nodes())
}

func TestAddEdge_Idempotent(t *testing.T) {
	g := New()
	g.AddEdge("A", "B")
	g.AddEdge("A", "B")

	in, err := g.InDegree("B")
	require.NoError(t, err)
	assert.Equal(t, 1, in)
}

func TestAncestorsAndDescendants(t *testing.T) {
	g := Build(companyMap(
		[2]string{"A", "B"},
		[2]string{"B", "D"},
		[2]string{"C", "D"},
		[2]string{"E", "A"},
	))

	anc, err := g.Ancestors("D")
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A", "E"}, anc)

	anc, err = g.Ancestors("E")
	require.NoError(t, err)
	assert.Empty(t, anc)

	desc, err := g.Descendants("E")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "D"}, desc)

	desc, err = g.Descendants("D")
	require.NoError(t, err)
	assert.Empty(t, desc)
}

func TestWalks_TerminateOnCycles(t *testing.T) {
	g := Build(companyMap(
		[2]string{"A", "B"},
		[2]string{"B", "C"},
		[2]string{"C", "A"},
		[2]string{"X", "A"},
		[2]string{"S", "S"},
	))

	anc, err := g.Ancestors("A")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"C", "X", "B"}, anc)
	assert.NotContains(t, anc, "A")

	desc, err := g.Descendants("X")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, desc)

	anc, err = g.Ancestors("S")
	require.NoError(t, err)
	assert.Empty(t, anc)

	parent, err := g.UltimateParent("X")
	require.NoError(t, err)
	assert.Equal(t, "C", parent)

	parent, err = g.UltimateParent("S")
	require.NoError(t, err)
	assert.Equal(t, "S", parent)
}

func TestUltimateParent(t *testing.T) {
	g := Build(companyMap(
		[2]string{"Alfred Meakin", "Myott-Meakin"},
		[2]string{"Myott-Meakin", "Churchill"},
		[2]string{"Spode", ""},
	))

	tests := []struct {
		name string
		want string
	}{
		{"Alfred Meakin", "Churchill"},
		{"Myott-Meakin", "Churchill"},
		{"Churchill", "Churchill"},
		{"Spode", "Spode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.UltimateParent(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCycles(t *testing.T) {
	tests := []struct {
		name       string
		successors [][2]string
		want       [][]string
	}{
		{
			name:       "acyclic",
			successors: [][2]string{{"A", "B"}, {"B", "C"}, {"D", "C"}},
			want:       nil,
		},
		{
			name:       "two node cycle with tail",
			successors: [][2]string{{"T", "A"}, {"A", "B"}, {"B", "A"}},
			want:       [][]string{{"A", "B"}},
		},
		{
			name:       "self loop",
			successors: [][2]string{{"S", "S"}, {"R", "S"}},
			want:       [][]string{{"S"}},
		},
		{
			name:       "cycle fed by a chain",
			successors: [][2]string{{"A", "B"}, {"B", "A"}, {"C", "A"}, {"D", "E"}, {"E", "C"}, {"F", "G"}, {"G", "D"}},
			want:       [][]string{{"A", "B"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Build(companyMap(tt.successors...))
			assert.Equal(t, tt.want, g.Cycles())
		})
	}
}

func TestCycles_BetweenCycles(t *testing.T) {
	g := New()
	g.AddEdge("A", "B")
	g.AddEdge("B", "A")
	g.AddEdge("B", "M")
	g.AddEdge("M", "C")
	g.AddEdge("C", "D")
	g.AddEdge("D", "C")

	// M sits between two cycles and survives peeling, but is on neither.
	assert.Equal(t, [][]string{{"A", "B"}, {"C", "D"}}, g.Cycles())
}

func TestUnknownCompany(t *testing.T) {
	g := New()

	calls := map[string]func() error{
		"Successors":     func() error { _, err := g.Successors("nope"); return err },
		"Predecessors":   func() error { _, err := g.Predecessors("nope"); return err },
		"OutDegree":      func() error { _, err := g.OutDegree("nope"); return err },
		"InDegree":       func() error { _, err := g.InDegree("nope"); return err },
		"Ancestors":      func() error { _, err := g.Ancestors("nope"); return err },
		"Descendants":    func() error { _, err := g.Descendants("nope"); return err },
		"UltimateParent": func() error { _, err := g.UltimateParent("nope"); return err },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()

			var uc *UnknownCompanyError
			require.ErrorAs(t, err, &uc)
			assert.Equal(t, "nope", uc.Name)
			assert.EqualError(t, err, `unknown company "nope"`)
		})
	}
}
