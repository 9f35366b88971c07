package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	textcatalog "golang.org/x/text/message/catalog"

	"pottery-map/internal/catalog"
	"pottery-map/internal/companies"
	"pottery-map/internal/dashboard"
	"pottery-map/internal/slug"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	leafletCSS        = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	leafletJS         = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"
	markerClusterCSS  = "https://unpkg.com/leaflet.markercluster@1.5.3/dist/MarkerCluster.css"
	markerClusterDef  = "https://unpkg.com/leaflet.markercluster@1.5.3/dist/MarkerCluster.Default.css"
	markerClusterJS   = "https://unpkg.com/leaflet.markercluster@1.5.3/dist/leaflet.markercluster.js"
	chartJS           = "https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"
	chartDataLabelsJS = "https://cdn.jsdelivr.net/npm/chartjs-plugin-datalabels@2.2.0/dist/chartjs-plugin-datalabels.min.js"
)

// itemsKey is the message key for item counts.
const itemsKey = "%d items"

// GeneratedFile is one file of the rendered site.
type GeneratedFile struct {
	// Filename is the slash-separated path relative to the output directory
	// (e.g. "companies/alfred_meakin.html").
	Filename string
	Content  []byte
}

// Generator renders the site from a Companies aggregate.
type Generator struct {
	config  Config
	ids     *IDs
	tmpl    *template.Template
	printer *message.Printer
	lang    language.Tag
}

// NewGenerator creates a generator. ids supplies every random element ID,
// so two generators built with the same seed render identical output.
func NewGenerator(config Config, ids *IDs) (*Generator, error) {
	lang, err := language.Parse(config.Language)
	if err != nil {
		return nil, fmt.Errorf("site language %q: %w", config.Language, err)
	}

	messages := textcatalog.NewBuilder(textcatalog.Fallback(language.English))
	for _, tag := range []language.Tag{language.English, lang} {
		err := messages.Set(tag, itemsKey, plural.Selectf(1, "%d",
			plural.One, "%d item",
			plural.Other, "%d items",
		))
		if err != nil {
			return nil, fmt.Errorf("item count messages: %w", err)
		}
	}

	g := &Generator{
		config:  config,
		ids:     ids,
		printer: message.NewPrinter(lang, message.Catalog(messages)),
		lang:    lang,
	}

	tmpl, err := template.New("site").Funcs(template.FuncMap{
		"items":   g.items,
		"slug":    slug.Make,
		"mapsURL": MapsURL,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	g.tmpl = tmpl

	return g, nil
}

// items formats an item count, e.g. "1 item" or "1,204 items".
func (g *Generator) items(n int) string {
	return g.printer.Sprintf(itemsKey, n)
}

// MapsURL returns the Google Maps link for a location.
func MapsURL(loc *catalog.Coordinates) string {
	if loc == nil {
		return ""
	}

	return fmt.Sprintf("https://www.google.com/maps/place/%v,%v", loc.Latitude, loc.Longitude)
}

// Generate renders every page and static asset of the site. Nothing is
// written to disk.
func (g *Generator) Generate(c *companies.Companies) ([]GeneratedFile, error) {
	var files []GeneratedFile

	steps := []struct {
		name string
		fn   func(*companies.Companies) ([]GeneratedFile, error)
	}{
		{"map", g.generateMap},
		{"company index", g.generateCompanyIndex},
		{"company pages", g.generateCompanyPages},
		{"dashboard", g.generateDashboard},
		{"static files", func(*companies.Companies) ([]GeneratedFile, error) { return staticFiles() }},
	}

	for _, step := range steps {
		out, err := step.fn(c)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", step.name, err)
		}

		files = append(files, out...)
	}

	return files, nil
}

// page is the data every template shares.
type page struct {
	Lang        string
	SiteTitle   string
	Title       string
	Root        string
	Stylesheets []string
	Scripts     []string
	Sidebar     []link
}

type link struct {
	Name string
	Slug string
}

func (g *Generator) page(title, root string) page {
	return page{
		Lang:      g.lang.String(),
		SiteTitle: g.config.Title,
		Title:     title,
		Root:      root,
	}
}

func (g *Generator) render(filename, tmpl string, data any) (GeneratedFile, error) {
	var buf bytes.Buffer

	if err := g.tmpl.ExecuteTemplate(&buf, tmpl, data); err != nil {
		return GeneratedFile{}, fmt.Errorf("rendering %s: %w", filename, err)
	}

	return GeneratedFile{Filename: filename, Content: clean(buf.Bytes())}, nil
}

type mapData struct {
	ID               string     `json:"id"`
	Centre           [2]float64 `json:"centre"`
	Zoom             int        `json:"zoom"`
	MaxClusterRadius int        `json:"maxClusterRadius"`
	Markers          []marker   `json:"markers"`
}

type marker struct {
	Name     string       `json:"name"`
	URL      string       `json:"url"`
	Factory  string       `json:"factory"`
	Location [2]float64   `json:"location"`
	Items    []markerItem `json:"items"`
}

type markerItem struct {
	Design   string   `json:"design"`
	Material string   `json:"material"`
	Type     string   `json:"type"`
	Era      string   `json:"era"`
	Photos   []string `json:"photos"`
}

// markers returns one marker per company with a known location, in group
// order.
func markers(c *companies.Companies) []marker {
	out := []marker{}

	for pair := c.PotteryByCompany.Oldest(); pair != nil; pair = pair.Next() {
		group := pair.Value
		if group.Location == nil {
			continue
		}

		m := marker{
			Name:     group.Name,
			URL:      "companies/" + slug.Make(group.Name) + ".html",
			Factory:  group.Factory,
			Location: [2]float64{group.Location.Latitude, group.Location.Longitude},
			Items:    make([]markerItem, 0, len(group.Items)),
		}

		for _, item := range group.Items {
			photos := item.PhotoURLs
			if photos == nil {
				photos = []string{}
			}

			m.Items = append(m.Items, markerItem{
				Design:   item.Design,
				Material: item.Material,
				Type:     item.Type,
				Era:      item.Era,
				Photos:   photos,
			})
		}

		out = append(out, m)
	}

	return out
}

func (g *Generator) generateMap(c *companies.Companies) ([]GeneratedFile, error) {
	p := g.page("", "")
	p.Stylesheets = []string{leafletCSS, markerClusterCSS, markerClusterDef}
	p.Scripts = []string{leafletJS, markerClusterJS, "static/js/map.js"}

	data := struct {
		page
		MapID string
		Map   mapData
	}{
		page:  p,
		MapID: g.ids.Next("map"),
	}

	data.Map = mapData{
		ID:               data.MapID,
		Centre:           [2]float64{g.config.MapCentre.Latitude, g.config.MapCentre.Longitude},
		Zoom:             g.config.MapZoom,
		MaxClusterRadius: g.config.MaxClusterRadius,
		Markers:          markers(c),
	}

	f, err := g.render("index.html", "index.tmpl", data)
	if err != nil {
		return nil, err
	}

	return []GeneratedFile{f}, nil
}

type companyCount struct {
	Name  string
	Slug  string
	Count int
}

func (g *Generator) generateCompanyIndex(c *companies.Companies) ([]GeneratedFile, error) {
	names := c.SortedCompanyNames()
	counts := make([]companyCount, 0, len(names))

	for _, name := range names {
		counts = append(counts, companyCount{Name: name, Slug: slug.Make(name), Count: c.ItemCount(name)})
	}

	forest, err := c.Forest()
	if err != nil {
		return nil, err
	}

	data := struct {
		page
		Counts []companyCount
		Forest []*companies.LineageNode
	}{
		page:   g.page("Companies", "../"),
		Counts: counts,
		Forest: forest,
	}

	f, err := g.render("companies/index.html", "companies.tmpl", data)
	if err != nil {
		return nil, err
	}

	return []GeneratedFile{f}, nil
}

func (g *Generator) generateCompanyPages(c *companies.Companies) ([]GeneratedFile, error) {
	names := c.SortedCompanyNames()

	sidebar := make([]link, 0, len(names))
	for _, name := range names {
		sidebar = append(sidebar, link{Name: name, Slug: slug.Make(name)})
	}

	owners := make(map[string]string, len(names))
	files := make([]GeneratedFile, 0, len(names))

	for _, l := range sidebar {
		if other, ok := owners[l.Slug]; ok {
			return nil, fmt.Errorf("companies %q and %q both map to page %s.html", other, l.Name, l.Slug)
		}

		owners[l.Slug] = l.Name

		view, err := c.Company(l.Name)
		if err != nil {
			return nil, err
		}

		p := g.page(l.Name, "../")
		p.Sidebar = sidebar

		data := struct {
			page
			Company companies.View
		}{page: p, Company: view}

		f, err := g.render("companies/"+l.Slug+".html", "company.tmpl", data)
		if err != nil {
			return nil, err
		}

		files = append(files, f)
	}

	return files, nil
}

type chartSpec struct {
	Name  string
	Kind  string
	Title string
	ID    string
}

type chartData struct {
	Kind  string          `json:"kind"`
	Title string          `json:"title"`
	Data  dashboard.Chart `json:"data"`
}

func (g *Generator) generateDashboard(c *companies.Companies) ([]GeneratedFile, error) {
	groups, err := dashboard.GroupsPieChart(c)
	if err != nil {
		return nil, err
	}

	charts := []struct {
		chartSpec
		chart dashboard.Chart
	}{
		{chartSpec{Name: "groups", Kind: "pie", Title: "Company Groups"}, groups},
		{chartSpec{Name: "companies", Kind: "bar", Title: "Companies"}, dashboard.CompaniesBarChart(c)},
		{chartSpec{Name: "materials", Kind: "pie", Title: "Materials"}, dashboard.MaterialsPieChart(c)},
		{chartSpec{Name: "types", Kind: "bar", Title: "Item Types"}, dashboard.TypesBarChart(c)},
	}

	specs := make([]chartSpec, 0, len(charts))
	payload := make(map[string]chartData, len(charts))

	for _, ch := range charts {
		spec := ch.chartSpec
		spec.ID = g.ids.Next("chart")
		specs = append(specs, spec)
		payload[spec.Name] = chartData{Kind: spec.Kind, Title: spec.Title, Data: ch.chart}
	}

	p := g.page("Dashboard", "")
	p.Scripts = []string{chartJS, chartDataLabelsJS, "static/js/dashboard.js"}

	data := struct {
		page
		Charts []chartSpec
		Data   map[string]chartData
	}{page: p, Charts: specs, Data: payload}

	f, err := g.render("dashboard.html", "dashboard.tmpl", data)
	if err != nil {
		return nil, err
	}

	return []GeneratedFile{f}, nil
}

// staticFiles returns the embedded CSS and JavaScript, in lexical order.
func staticFiles() ([]GeneratedFile, error) {
	var files []GeneratedFile

	err := fs.WalkDir(staticFS, "static", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		content, err := staticFS.ReadFile(p)
		if err != nil {
			return err
		}

		files = append(files, GeneratedFile{Filename: path.Clean(p), Content: content})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading static files: %w", err)
	}

	return files, nil
}
