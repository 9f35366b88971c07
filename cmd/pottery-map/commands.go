package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"pottery-map/internal/catalog"
	"pottery-map/internal/companies"
	"pottery-map/internal/config"
	"pottery-map/internal/dashboard"
	"pottery-map/internal/diagnostic"
	"pottery-map/internal/logging"
	"pottery-map/internal/site"
)

// app carries the state shared by every subcommand.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	var flags config.Config

	root := &cobra.Command{
		Use:   "pottery-map",
		Short: "Render a static pottery catalogue site",
		Long: `pottery-map loads a companies file and a pottery collection and renders
a static website: a map of factories, a page per company and a dashboard.

Settings are read from POTTERY_* environment variables and may be
overridden with flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, &flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.Companies, "companies", "", "companies file (env POTTERY_COMPANIES)")
	pf.StringArrayVar(&flags.Pottery, "pottery", nil, "pottery collection file or glob, repeatable (env POTTERY_COLLECTION)")
	pf.StringVarP(&flags.Output, "output", "o", "", "output directory (env POTTERY_OUTPUT)")
	pf.StringVar(&flags.Seed, "seed", "", "seed for generated element IDs (env POTTERY_SEED)")
	pf.StringVar(&flags.LogLevel, "log-level", "", "debug, info, warn or error (env POTTERY_LOG_LEVEL)")
	pf.StringVar(&flags.LogFormat, "log-format", "", "text or json (env POTTERY_LOG_FORMAT)")

	root.AddCommand(
		a.newBuildCmd(),
		a.newCheckCmd(),
		a.newCompaniesCmd(),
		a.newChartsCmd(),
	)

	return root
}

// setup loads the environment configuration, applies the flags that were
// set and builds the logger.
func (a *app) setup(cmd *cobra.Command, flags *config.Config) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	set := cmd.Flags().Changed

	if set("companies") {
		cfg.Companies = flags.Companies
	}

	if set("pottery") {
		cfg.Pottery = flags.Pottery
	}

	if set("output") {
		cfg.Output = flags.Output
	}

	if set("seed") {
		cfg.Seed = flags.Seed
	}

	if set("log-level") {
		cfg.LogLevel = flags.LogLevel
	}

	if set("log-format") {
		cfg.LogFormat = flags.LogFormat
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger

	return nil
}

// load reads both data files and builds the aggregate. Load-time findings
// are returned, not logged.
func (a *app) load() (*companies.Companies, *diagnostic.Diagnostics, error) {
	records, diags, err := catalog.LoadCompanies(a.cfg.Companies)
	if err != nil {
		return nil, nil, err
	}

	a.logger.Info("loaded companies", slog.String("path", a.cfg.Companies), slog.Int("count", records.Len()))

	pottery, err := catalog.LoadPotteryCollection(a.cfg.Pottery...)
	if err != nil {
		return nil, nil, err
	}

	a.logger.Info("loaded pottery collection", slog.Any("paths", a.cfg.Pottery), slog.Int("count", len(pottery)))

	return companies.FromRawData(pottery, records), diags, nil
}

func (a *app) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Render the site into the output directory",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runBuild()
		},
	}
}

func (a *app) runBuild() error {
	c, diags, err := a.load()
	if err != nil {
		return err
	}

	diags.Merge(c.Check())
	diags.Log(a.logger)

	gen, err := site.NewGenerator(site.DefaultConfig(), site.NewIDs(a.cfg.Seed))
	if err != nil {
		return err
	}

	files, err := gen.Generate(c)
	if err != nil {
		return err
	}

	if err := site.WriteFiles(files, a.cfg.Output); err != nil {
		return err
	}

	for _, f := range files {
		a.logger.Debug("wrote file", slog.String("path", f.Filename), slog.Int("bytes", len(f.Content)))
	}

	a.logger.Info("site written",
		slog.String("output", a.cfg.Output),
		slog.Int("files", len(files)),
		slog.Int("companies", len(c.AllCompanies)))

	return nil
}

func (a *app) newCheckCmd() *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report data-quality findings without writing anything",
		Long: `Load the companies file and the pottery collection and print every
finding: duplicate factory locations, unknown keys, successor cycles and
makers or successors with no company record.

Exits non-zero only when a finding is an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runCheck(cmd.OutOrStdout(), dump)
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "also dump the loaded aggregate")

	return cmd
}

// summary is what check --dump prints.
type summary struct {
	Companies        []string
	TopLevel         []string
	ItemCounts       map[string]int
	Rollups          map[string]int
	PotteryByCompany map[string]*companies.Group
}

func (a *app) runCheck(out io.Writer, dump bool) error {
	c, diags, err := a.load()
	if err != nil {
		return err
	}

	diags.Merge(c.Check())

	for _, d := range diags.All() {
		fmt.Fprintf(out, "%s: %s\n", d.Severity, d)
	}

	fmt.Fprintf(out, "%d error(s), %d warning(s), %d info(s)\n",
		len(diags.Errors), len(diags.Warnings), len(diags.Infos))

	if dump {
		s := summary{
			Companies:        c.SortedCompanyNames(),
			TopLevel:         c.TopLevelCompanies(),
			ItemCounts:       make(map[string]int),
			Rollups:          make(map[string]int),
			PotteryByCompany: make(map[string]*companies.Group),
		}

		for pair := c.PotteryByCompany.Oldest(); pair != nil; pair = pair.Next() {
			s.ItemCounts[pair.Key] = len(pair.Value.Items)
			s.PotteryByCompany[pair.Key] = pair.Value
		}

		for _, name := range s.TopLevel {
			rollup, err := c.DescendantRollup(name)
			if err != nil {
				return err
			}

			s.Rollups[name] = rollup
		}

		cs := spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true, DisableCapacities: true}
		cs.Fdump(out, s)
	}

	return diags.Error()
}

func (a *app) newCompaniesCmd() *cobra.Command {
	var sorted bool

	cmd := &cobra.Command{
		Use:   "companies",
		Short: "List top-level companies with roll-up counts",
		Long: `List top-level companies (those with no successor) with the number of
items made by each lineage. With --sorted, list every company
alphabetically with the number of items it made itself.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runCompanies(cmd.OutOrStdout(), sorted)
		},
	}

	cmd.Flags().BoolVar(&sorted, "sorted", false, "list every company with its direct count")

	return cmd
}

func (a *app) runCompanies(out io.Writer, sorted bool) error {
	c, _, err := a.load()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	if sorted {
		for _, name := range c.SortedCompanyNames() {
			fmt.Fprintf(tw, "%s\t%d\n", name, c.ItemCount(name))
		}

		return tw.Flush()
	}

	for _, name := range c.TopLevelCompanies() {
		rollup, err := c.DescendantRollup(name)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%s\t%d\n", name, rollup)
	}

	return tw.Flush()
}

var chartNames = []string{"pie", "bar", "materials", "types"}

func (a *app) newChartsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "charts {pie|bar|materials|types}",
		Short:     "Print ChartJS data for one dashboard chart",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: chartNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCharts(cmd.OutOrStdout(), args[0])
		},
	}
}

func (a *app) runCharts(out io.Writer, name string) error {
	c, _, err := a.load()
	if err != nil {
		return err
	}

	var chart dashboard.Chart

	switch name {
	case "pie":
		chart, err = dashboard.GroupsPieChart(c)
		if err != nil {
			return err
		}
	case "bar":
		chart = dashboard.CompaniesBarChart(c)
	case "materials":
		chart = dashboard.MaterialsPieChart(c)
	case "types":
		chart = dashboard.TypesBarChart(c)
	default:
		return fmt.Errorf("unknown chart %q, want one of %v", name, chartNames)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(chart)
}
