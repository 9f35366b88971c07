// Package dashboard formats the aggregate as ChartJS chart data.
package dashboard

import (
	"fmt"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"pottery-map/internal/companies"
)

// OtherLabel is the pie slice holding every group with at most one item.
const OtherLabel = "Other"

// ColourCycle is the palette of the groups pie chart.
var ColourCycle = []string{
	"blue", "green", "red", "cyan", "magenta", "yellow",
	"black", "purple", "pink", "brown", "orange", "teal",
	"coral", "lightblue", "lime", "lavender", "turquoise", "darkgreen",
	"tan", "salmon", "gold", "lightpurple", "darkred", "darkblue",
}

const (
	pieBorderColour = "#8b8680"
	barBorderColour = "#fff"
)

var (
	gradientStart = colorful.Color{R: 0, G: 0, B: 1}
	gradientEnd   = colorful.Color{R: 0, G: 1, B: 0}
)

// Chart is the data argument of a ChartJS chart.
type Chart struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one ChartJS dataset.
type Dataset struct {
	Data            []int    `json:"data"`
	BackgroundColor []string `json:"backgroundColor"`
	BorderColor     string   `json:"borderColor"`
	BorderWidth     int      `json:"borderWidth,omitempty"`
}

type count struct {
	name  string
	value int
}

// GroupsPieChart returns the pie chart of company groups: one slice per
// top-level company whose lineage made more than one item, largest first,
// then an "Other" slice for the rest.
func GroupsPieChart(c *companies.Companies) (Chart, error) {
	var (
		counts []count
		other  int
	)

	for _, name := range c.TopLevelCompanies() {
		rollup, err := c.DescendantRollup(name)
		if err != nil {
			return Chart{}, fmt.Errorf("groups pie chart: %w", err)
		}

		if rollup > 1 {
			counts = append(counts, count{name, rollup})
		} else {
			other += rollup
		}
	}

	sortDescending(counts)

	chart := Chart{
		Labels: make([]string, 0, len(counts)+1),
		Datasets: []Dataset{{
			Data:            make([]int, 0, len(counts)+1),
			BackgroundColor: slices.Clone(ColourCycle),
			BorderColor:     pieBorderColour,
			BorderWidth:     1,
		}},
	}

	for _, cnt := range counts {
		chart.Labels = append(chart.Labels, cnt.name)
		chart.Datasets[0].Data = append(chart.Datasets[0].Data, cnt.value)
	}

	chart.Labels = append(chart.Labels, OtherLabel)
	chart.Datasets[0].Data = append(chart.Datasets[0].Data, other)

	return chart, nil
}

// CompaniesBarChart returns the bar chart of items per company, largest
// first. Bars are coloured from blue (fewest items) to green (most) by the
// rank of their count among the distinct counts.
func CompaniesBarChart(c *companies.Companies) Chart {
	itemCounts := c.CompanyItemCounts()

	counts := make([]count, 0, itemCounts.Len())
	for pair := itemCounts.Oldest(); pair != nil; pair = pair.Next() {
		counts = append(counts, count{pair.Key, pair.Value})
	}

	sortDescending(counts)

	return barChart(counts)
}

func barChart(counts []count) Chart {
	colours := GradientColours(distinctCounts(counts))

	chart := Chart{
		Labels: make([]string, 0, len(counts)),
		Datasets: []Dataset{{
			Data:            make([]int, 0, len(counts)),
			BackgroundColor: make([]string, 0, len(counts)),
			BorderColor:     barBorderColour,
		}},
	}

	for _, cnt := range counts {
		chart.Labels = append(chart.Labels, cnt.name)
		chart.Datasets[0].Data = append(chart.Datasets[0].Data, cnt.value)
		chart.Datasets[0].BackgroundColor = append(chart.Datasets[0].BackgroundColor, colours[cnt.value])
	}

	return chart
}

// MaterialsPieChart returns the pie chart of items per material, largest
// first.
func MaterialsPieChart(c *companies.Companies) Chart {
	counts := countItems(c, func(item companies.ItemData) string { return item.Material })
	sortDescending(counts)

	chart := Chart{
		Labels: make([]string, 0, len(counts)),
		Datasets: []Dataset{{
			Data:            make([]int, 0, len(counts)),
			BackgroundColor: slices.Clone(ColourCycle),
			BorderColor:     pieBorderColour,
			BorderWidth:     1,
		}},
	}

	for _, cnt := range counts {
		chart.Labels = append(chart.Labels, cnt.name)
		chart.Datasets[0].Data = append(chart.Datasets[0].Data, cnt.value)
	}

	return chart
}

// TypesBarChart returns the bar chart of items per item type, coloured like
// CompaniesBarChart.
func TypesBarChart(c *companies.Companies) Chart {
	counts := countItems(c, func(item companies.ItemData) string { return item.Type })
	sortDescending(counts)

	return barChart(counts)
}

// countItems counts every item by key, in order of first appearance.
func countItems(c *companies.Companies, key func(companies.ItemData) string) []count {
	var counts []count

	index := make(map[string]int)

	for pair := c.PotteryByCompany.Oldest(); pair != nil; pair = pair.Next() {
		for _, item := range pair.Value.Items {
			k := key(item)

			i, ok := index[k]
			if !ok {
				i = len(counts)
				index[k] = i
				counts = append(counts, count{name: k})
			}

			counts[i].value++
		}
	}

	return counts
}

// GradientColours maps each of the ascending values to an evenly spaced
// point on the blue to green gradient. A single value gets the start colour.
func GradientColours(values []int) map[int]string {
	colours := make(map[int]string, len(values))

	for i, v := range values {
		t := 0.0
		if len(values) > 1 {
			t = float64(i) / float64(len(values)-1)
		}

		colours[v] = gradientStart.BlendRgb(gradientEnd, t).Clamped().Hex()
	}

	return colours
}

// sortDescending sorts by value, largest first, keeping input order for
// equal values.
func sortDescending(counts []count) {
	slices.SortStableFunc(counts, func(a, b count) int {
		return b.value - a.value
	})
}

func distinctCounts(counts []count) []int {
	values := make([]int, 0, len(counts))
	for _, cnt := range counts {
		values = append(values, cnt.value)
	}

	slices.Sort(values)

	return slices.Compact(values)
}
