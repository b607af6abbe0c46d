// Package layout describes the dashboard page as a tree of bootstrap
// containers, rows and columns. Trees are built fresh for every request and
// never modified afterwards.
package layout

import (
	"dashboard/internal/models"
	"dashboard/internal/theme"
)

type Container struct {
	Fluid bool
	Class string
	Rows  []Row
}

type Row struct {
	Class string
	Cols  []Col
}

// Col is one grid column. LG is the span on large screens; zero leaves it
// to bootstrap. Auto sizes the column to its content.
type Col struct {
	LG      int
	Auto    bool
	Content Content
}

type ContentKind string

const (
	KindEmpty      ContentKind = ""
	KindHeader     ContentKind = "header"
	KindBreadcrumb ContentKind = "breadcrumb"
	KindDropdown   ContentKind = "dropdown"
	KindNav        ContentKind = "nav"
	KindGraphs     ContentKind = "graphs"
	KindGraph      ContentKind = "graph"
)

// Content is whatever sits inside a column. Only the fields for Kind are set.
type Content struct {
	Kind  ContentKind
	ID    string
	Class string
	Text  string

	Links   []Link
	Options []string
	Value   string

	Spec *models.ChartSpec
	Rows []Row
}

// Link is a breadcrumb or nav entry. Links with Children render as a
// dropdown menu.
type Link struct {
	Label    string
	Href     string
	External bool
	Active   bool
	Disabled bool
	Children []string
}

// GraphsID is the element the graphs region is swapped into.
const GraphsID = "graphs"

func Header(title string) Content {
	return Content{Kind: KindHeader, Text: title}
}

func Breadcrumb() Content {
	return Content{Kind: KindBreadcrumb, Links: []Link{
		{Label: "Docs", Href: "/docs", External: true},
		{Label: "Components", Href: "/docs/components", External: true},
		{Label: "Breadcrumb", Active: true},
	}}
}

// TemplateDropdown offers every figure template with selected preselected.
func TemplateDropdown(selected theme.ID) Content {
	return Content{
		Kind:    KindDropdown,
		ID:      "template",
		Class:   "pb-4",
		Text:    "Change figure template",
		Options: theme.Names(),
		Value:   string(selected),
	}
}

func Nav() Content {
	return Content{Kind: KindNav, Links: []Link{
		{Label: "Active", Href: "#", Active: true},
		{Label: "A link", Href: "#"},
		{Label: "Another link", Href: "#"},
		{Label: "Disabled", Href: "#", Disabled: true},
		{Label: "Dropdown", Children: []string{"Item 1", "Item 2"}},
	}}
}

// Graph wraps one chart. A nil spec gives an empty cell.
func Graph(spec *models.ChartSpec) Content {
	if spec == nil {
		return Content{}
	}
	c := Content{Kind: KindGraph, Spec: spec}
	// Only themed charts are framed.
	if spec.Theme != "" {
		c.Class = "border"
	}
	return c
}

// Graphs arranges the charts two per row in slot order. An odd chart out
// shares its row with an empty column.
func Graphs(specs []models.ChartSpec) []Row {
	var rows []Row
	for i := 0; i < len(specs); i += 2 {
		row := Row{}
		if i > 0 && i+1 < len(specs) {
			row.Class = "mt-4"
		}
		first := specs[i]
		row.Cols = append(row.Cols, Col{LG: 6, Content: Graph(&first)})
		if i+1 < len(specs) {
			second := specs[i+1]
			row.Cols = append(row.Cols, Col{LG: 6, Content: Graph(&second)})
		} else {
			row.Cols = append(row.Cols, Col{})
		}
		rows = append(rows, row)
	}
	return rows
}

// GraphsRegion holds the chart rows under the element the template picker
// refreshes.
func GraphsRegion(specs []models.ChartSpec) Content {
	return Content{Kind: KindGraphs, ID: GraphsID, Rows: Graphs(specs)}
}

// Page is the whole dashboard with the charts for selected.
func Page(selected theme.ID, specs []models.ChartSpec) Container {
	return Container{
		Fluid: true,
		Class: "dbc p-4",
		Rows: []Row{
			{Cols: []Col{{Auto: true, Content: Header("Dashboard")}}},
			{Cols: []Col{{LG: 6, Content: Breadcrumb()}}},
			{Cols: []Col{{LG: 6, Content: TemplateDropdown(selected)}}},
			{Cols: []Col{{LG: 6, Content: Nav()}}},
			{Cols: []Col{{Content: GraphsRegion(specs)}}},
		},
	}
}

// Cells flattens graph rows into their wire form.
func Cells(rows []Row) []models.GraphRow {
	out := make([]models.GraphRow, 0, len(rows))
	for _, r := range rows {
		gr := models.GraphRow{Class: r.Class, Cells: make([]models.GraphCell, 0, len(r.Cols))}
		for _, c := range r.Cols {
			gr.Cells = append(gr.Cells, models.GraphCell{Spec: c.Content.Spec, LG: c.LG})
		}
		out = append(out, gr)
	}
	return out
}
