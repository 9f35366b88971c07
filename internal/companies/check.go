package companies

import (
	"fmt"
	"strings"

	"pottery-map/internal/common"
	"pottery-map/internal/diagnostic"
	"pottery-map/internal/match"
)

// Check reports data-quality findings on the aggregate: successor cycles,
// makers with no company record and successors with no company record.
// Nothing it reports stops a site from being built.
func (c *Companies) Check() *diagnostic.Diagnostics {
	diags := &diagnostic.Diagnostics{}

	for _, cycle := range c.Graph.Cycles() {
		diags.AddWarning("successor_cycle",
			"successors form a cycle through "+strings.Join(cycle, ", "),
			cycle[0], "successor")
	}

	known := common.Keys(c.CompaniesData)

	for pair := c.PotteryByCompany.Oldest(); pair != nil; pair = pair.Next() {
		if _, ok := c.CompaniesData.Get(pair.Key); ok {
			continue
		}

		diags.AddInfo("unknown_company",
			fmt.Sprintf("no company record for maker of %d item(s)", len(pair.Value.Items)),
			pair.Key, "company",
			match.Suggest(pair.Key, known, match.DefaultSuggestionLimit)...)
	}

	for pair := c.CompaniesData.Oldest(); pair != nil; pair = pair.Next() {
		successor := pair.Value.Successor
		if successor == "" {
			continue
		}

		if _, ok := c.CompaniesData.Get(successor); ok {
			continue
		}

		diags.AddInfo("unknown_successor",
			fmt.Sprintf("successor %q has no company record", successor),
			pair.Key, "successor",
			match.Suggest(successor, known, match.DefaultSuggestionLimit)...)
	}

	return diags
}
