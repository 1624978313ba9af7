package dashboard

import (
	"context"
	"fmt"
	"html/template"

	"mbtidash/domain/mbti"
	"mbtidash/internal/charts"
	"mbtidash/internal/dataset"
	"mbtidash/internal/errors"
	"mbtidash/internal/logging"

	"github.com/gomarkdown/markdown"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TableSource hands out the current table.
type TableSource interface {
	Table(ctx context.Context) (*dataset.Table, error)
	Path() string
}

// Row is one line of a panel's value table.
type Row struct {
	Label     string
	Value     float64
	Display   string
	Highlight bool
}

// Panel is one chart section. When Error is set there is no chart.
type Panel struct {
	ID        string
	Heading   string
	Title     string
	SVG       template.HTML
	Rows      []Row
	Error     string
	ErrorCode string
}

func (p *Panel) fail(message string, err error) {
	p.SVG = ""
	p.Rows = nil
	p.Error = message
	p.ErrorCode = errors.GetCode(err)
	logging.Warnf("[Panel:%s] %s: %v", p.ID, message, err)
}

// Page is everything the dashboard template needs. When Fatal is set the
// page shows only the header and the error.
type Page struct {
	Header    string
	Title     string
	Intro     template.HTML
	Fatal     string
	FatalCode string
	Warnings  []dataset.Warning
	Countries []string
	Types     []mbti.Type
	Selection mbti.Selection
	Reference string
	TopN      int

	CountryPanel *Panel
	AveragePanel *Panel
	TopPanel     *Panel
}

const introMarkdown = `📊 **Data source**: [Kaggle - MBTI Types by Country](https://www.kaggle.com/datasets/yamaerenay/mbtitypes-full/data)

Share of the sixteen MBTI personality types in each country, in percent. Pick a country to see its distribution and a type to rank countries by it.`

// Builder assembles dashboard pages.
type Builder struct {
	source    TableSource
	reference string
	topN      int
	intro     template.HTML
	printer   *message.Printer
}

// NewBuilder creates a page builder. reference is pinned to the ranking panel.
func NewBuilder(source TableSource, reference string, topN int) *Builder {
	return &Builder{
		source:    source,
		reference: reference,
		topN:      topN,
		intro:     template.HTML(markdown.ToHTML([]byte(introMarkdown), nil, nil)),
		printer:   message.NewPrinter(language.English),
	}
}

// Source returns the table source pages are built from.
func (b *Builder) Source() TableSource { return b.source }

// Reference returns the pinned country.
func (b *Builder) Reference() string { return b.reference }

// TopN returns the ranking size.
func (b *Builder) TopN() int { return b.topN }

// Format renders a percentage with two decimals.
func (b *Builder) Format(v float64) string {
	return b.printer.Sprintf("%.2f", v)
}

// Build loads the table and assembles all three panels for the selection.
func (b *Builder) Build(ctx context.Context, raw mbti.Selection) *Page {
	page := b.newPage()

	table, err := b.source.Table(ctx)
	if err != nil {
		b.setFatal(page, err)
		return page
	}

	page.Warnings = table.Warnings()
	page.Countries = table.Countries()
	page.Selection = ResolveSelection(table, raw)

	page.CountryPanel = b.CountryPanel(table, page.Selection.Country)
	page.AveragePanel = b.AveragePanel(table)
	page.TopPanel = b.TopPanel(table, page.Selection.Type)
	return page
}

func (b *Builder) newPage() *Page {
	return &Page{
		Header:    "🧑🏻‍💻 Explore personality types around the world 👩🏻‍💻",
		Title:     "🌍 MBTI by Country",
		Intro:     b.intro,
		Types:     mbti.Types(),
		Reference: b.reference,
		TopN:      b.topN,
	}
}

func (b *Builder) setFatal(page *Page, err error) {
	page.FatalCode = errors.GetCode(err)
	page.Fatal = b.FatalMessage(err)
	logging.Errorf("[Build] page halted: %v", err)
}

// FatalMessage is the user-facing text for a table that could not be loaded.
func (b *Builder) FatalMessage(err error) string {
	if errors.HasCode(err, errors.CodeInputMissing) {
		return fmt.Sprintf("❌ The data file (%s) could not be found. Place it in the working directory of the server.", b.source.Path())
	}
	return fmt.Sprintf("❌ The data file could not be loaded: %v", err)
}

// ResolveSelection fills empty choices with defaults: the first country and the first type.
// Explicit choices are kept even when the table does not know them.
func ResolveSelection(table *dataset.Table, raw mbti.Selection) mbti.Selection {
	sel := mbti.Selection{Country: raw.Country, Type: mbti.ParseType(string(raw.Type))}
	if sel.Country == "" {
		if countries := table.Countries(); len(countries) > 0 {
			sel.Country = countries[0]
		}
	}
	if sel.Type == "" {
		sel.Type = mbti.Types()[0]
	}
	return sel
}

// CountryPanel charts one country's distribution.
func (b *Builder) CountryPanel(table *dataset.Table, country string) *Panel {
	p := &Panel{
		ID:      "country",
		Heading: fmt.Sprintf("📊 MBTI distribution in %s", country),
		Title:   fmt.Sprintf("MBTI distribution in %s", country),
	}
	if country == "" {
		p.fail("There are no countries in the data.", errors.NotFound("country"))
		return p
	}

	values, err := dataset.CountryDistribution(table, country)
	if errors.HasCode(err, errors.CodeNotFound) {
		p.fail(fmt.Sprintf("Country %q does not exist in the data.", country), err)
		return p
	}
	if err != nil {
		p.fail(fmt.Sprintf("Error while loading data: %v", err), err)
		return p
	}
	b.plot(p, b.typeRows(values), charts.TypeBars(values))
	return p
}

// AveragePanel charts the per-type mean across all countries.
func (b *Builder) AveragePanel(table *dataset.Table) *Panel {
	p := &Panel{
		ID:      "average",
		Heading: "📊 Average MBTI share across all countries",
		Title:   "Average MBTI share across countries",
	}

	values, err := dataset.GlobalAverage(table)
	if err != nil {
		p.fail(fmt.Sprintf("Error while computing averages: %v", err), err)
		return p
	}
	b.plot(p, b.typeRows(values), charts.TypeBars(values))
	return p
}

// TopPanel ranks countries by one type and pins the reference country.
// An unknown type skips the computation; any other failure, panics included,
// becomes a generic panel error.
func (b *Builder) TopPanel(table *dataset.Table, typ mbti.Type) (p *Panel) {
	p = &Panel{
		ID:      "top",
		Heading: fmt.Sprintf("🏆 Top %d countries by %s & %s", b.topN, typ, b.reference),
		Title:   fmt.Sprintf("%s share: top %d & %s", typ, b.topN, b.reference),
	}
	defer func() {
		if r := recover(); r != nil {
			err := errors.ComputationFailed(fmt.Errorf("%v", r))
			p.fail(fmt.Sprintf("Error while loading data: %v", r), err)
		}
	}()

	if !table.HasColumn(string(typ)) {
		p.fail("The selected MBTI type does not exist in the data.", errors.TypeNotFound(string(typ)))
		return p
	}

	values, err := dataset.TopWithReference(table, typ, b.topN, b.reference)
	if err != nil {
		p.fail(fmt.Sprintf("Error while loading data: %v", err), errors.ComputationFailed(err))
		return p
	}

	rows := make([]Row, len(values))
	for i, v := range values {
		rows[i] = Row{Label: v.Country, Value: v.Value, Display: b.Format(v.Value), Highlight: v.Reference}
	}
	b.plot(p, rows, charts.CountryBars(values))
	return p
}

func (b *Builder) typeRows(values []mbti.TypeValue) []Row {
	rows := make([]Row, len(values))
	for i, v := range values {
		rows[i] = Row{Label: string(v.Type), Value: v.Value, Display: b.Format(v.Value)}
	}
	return rows
}

// plot draws bars as a chart and attaches rows as its value table, or fails the panel.
func (b *Builder) plot(p *Panel, rows []Row, bars []charts.Bar) {
	svg, err := charts.RenderSVG(p.Title, bars)
	if err != nil {
		p.fail(fmt.Sprintf("The chart could not be drawn: %v", err), err)
		return
	}
	p.Rows = rows
	p.SVG = template.HTML(svg)
}
