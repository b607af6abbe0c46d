package api

import (
	"embed"
	"html/template"
	"io"
	"strconv"

	"github.com/labstack/echo/v4"

	"dashboard/internal/layout"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	bootstrapCSS = "https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css"
	bootstrapJS  = "https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/js/bootstrap.bundle.min.js"
)

// Templates renders the page and fragment views for echo.
type Templates struct {
	t *template.Template
}

func NewTemplates() (*Templates, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"colClass": colClass,
		"cell":     newCell,
		"css":      func() string { return bootstrapCSS },
		"js":       func() string { return bootstrapJS },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Templates{t: t}, nil
}

func (t *Templates) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.t.ExecuteTemplate(w, name, data)
}

// chartView is a drawn chart ready for embedding.
type chartView struct {
	Element template.HTML
	Script  template.HTML
	Frames  []frameLink
}

type frameLink struct {
	Label  string
	Href   string
	Active bool
}

// pageView backs both the full page and the graphs fragment.
type pageView struct {
	Theme  string
	Root   layout.Container
	Region layout.Content
	Charts map[int]chartView
	Assets []string
}

// cell pairs one piece of content with the drawn charts it may refer to.
type cell struct {
	Charts  map[int]chartView
	Content layout.Content
}

func newCell(charts map[int]chartView, c layout.Content) cell {
	return cell{Charts: charts, Content: c}
}

func colClass(c layout.Col) string {
	switch {
	case c.Auto:
		return "col-auto"
	case c.LG > 0:
		return "col-lg-" + strconv.Itoa(c.LG)
	default:
		return "col"
	}
}
