package dashboard

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pottery-map/internal/catalog"
	"pottery-map/internal/companies"
)

// fixture builds an aggregate from "company -> successor" pairs and a list
// of makers, one item each.
func fixture(successors [][2]string, makers ...string) *companies.Companies {
	records := catalog.NewCompanyMap()

	for _, s := range successors {
		c := catalog.NewCompany(s[0])
		c.Successor = s[1]
		records.Set(s[0], c)
	}

	pottery := make([]catalog.PotteryItem, 0, len(makers))
	for i, m := range makers {
		pottery = append(pottery, catalog.NewPotteryItem(fmt.Sprintf("item %d", i), m, "Earthenware", "Plate", "Plain"))
	}

	return companies.FromRawData(pottery, records)
}

func TestGroupsPieChart(t *testing.T) {
	c := fixture(
		[][2]string{
			{"Alfred Meakin", "Churchill"},
			{"Churchill", ""},
			{"Spode", "Portmeirion"},
			{"Portmeirion", ""},
			{"Wood & Sons", ""},
			{"Adams", ""},
		},
		"Alfred Meakin", "Churchill", "Churchill",
		"Spode", "Spode",
		"Wood & Sons",
		"Adams",
	)

	chart, err := GroupsPieChart(c)
	require.NoError(t, err)

	assert.Equal(t, []string{"Churchill", "Portmeirion", OtherLabel}, chart.Labels)
	require.Len(t, chart.Datasets, 1)

	ds := chart.Datasets[0]
	assert.Equal(t, []int{3, 2, 2}, ds.Data)
	assert.Equal(t, ColourCycle, ds.BackgroundColor)
	assert.Equal(t, "#8b8680", ds.BorderColor)
	assert.Equal(t, 1, ds.BorderWidth)
}

func TestGroupsPieChart_OtherAlwaysPresent(t *testing.T) {
	chart, err := GroupsPieChart(fixture(nil))
	require.NoError(t, err)

	assert.Equal(t, []string{OtherLabel}, chart.Labels)
	assert.Equal(t, []int{0}, chart.Datasets[0].Data)
}

func TestGroupsPieChart_StableForEqualCounts(t *testing.T) {
	c := fixture(
		[][2]string{{"B", ""}, {"A", ""}},
		"A", "A", "B", "B",
	)

	chart, err := GroupsPieChart(c)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", OtherLabel}, chart.Labels)
}

func TestCompaniesBarChart(t *testing.T) {
	c := fixture(nil, "A", "B", "B", "B", "C", "C", "D", "D", "D")

	chart := CompaniesBarChart(c)

	assert.Equal(t, []string{"B", "D", "C", "A"}, chart.Labels)

	ds := chart.Datasets[0]
	assert.Equal(t, []int{3, 3, 2, 1}, ds.Data)
	assert.Equal(t, []string{"#00ff00", "#00ff00", "#008080", "#0000ff"}, ds.BackgroundColor)
	assert.Equal(t, "#fff", ds.BorderColor)
	assert.Zero(t, ds.BorderWidth)
}

func TestCompaniesBarChart_SingleDistinctCount(t *testing.T) {
	chart := CompaniesBarChart(fixture(nil, "A", "B"))
	assert.Equal(t, []string{"#0000ff", "#0000ff"}, chart.Datasets[0].BackgroundColor)
}

func TestGradientColours(t *testing.T) {
	colours := GradientColours([]int{1, 2, 3, 10, 12})

	assert.Equal(t, "#0000ff", colours[1])
	assert.Equal(t, "#00ff00", colours[12])
	assert.Equal(t, "#008080", colours[3])
	assert.Len(t, colours, 5)

	assert.Empty(t, GradientColours(nil))
}

func TestChart_JSON(t *testing.T) {
	chart := Chart{
		Labels: []string{"A"},
		Datasets: []Dataset{{
			Data:            []int{1},
			BackgroundColor: []string{"#0000ff"},
			BorderColor:     "#fff",
		}},
	}

	data, err := json.Marshal(chart)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"labels": ["A"],
		"datasets": [{"data": [1], "backgroundColor": ["#0000ff"], "borderColor": "#fff"}]
	}`, string(data))
}

func TestMaterialsAndTypesCharts(t *testing.T) {
	pottery := []catalog.PotteryItem{
		catalog.NewPotteryItem("1", "A", "Earthenware", "Plate", "Plain"),
		catalog.NewPotteryItem("2", "B", "Bone China", "Cup", "Plain"),
		catalog.NewPotteryItem("3", "A", "Bone China", "Cup", "Plain"),
		catalog.NewPotteryItem("4", "B", "Porcelain", "Cup", "Plain"),
	}
	c := companies.FromRawData(pottery, nil)

	materials := MaterialsPieChart(c)
	assert.Equal(t, []string{"Bone China", "Earthenware", "Porcelain"}, materials.Labels)
	assert.Equal(t, []int{2, 1, 1}, materials.Datasets[0].Data)
	assert.Equal(t, 1, materials.Datasets[0].BorderWidth)

	types := TypesBarChart(c)
	assert.Equal(t, []string{"Cup", "Plate"}, types.Labels)
	assert.Equal(t, []int{3, 1}, types.Datasets[0].Data)
	assert.Equal(t, []string{"#00ff00", "#0000ff"}, types.Datasets[0].BackgroundColor)
}
