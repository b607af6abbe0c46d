package api

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"

	"github.com/labstack/echo/v4"
	"github.com/zeebo/xxh3"
	"go.uber.org/zap"

	"dashboard/internal/engine"
	"dashboard/internal/figure"
	"dashboard/internal/layout"
	"dashboard/internal/models"
	"dashboard/internal/render"
	"dashboard/internal/theme"
)

const (
	headerETag        = "ETag"
	headerIfNoneMatch = "If-None-Match"
)

// dataset is what the background load publishes.
type dataset struct {
	renderer *render.Renderer
	drawer   *figure.Drawer
}

type Handler struct {
	logger  *zap.Logger
	metrics *Metrics
	data    atomic.Pointer[dataset]
}

// NewHandler returns a handler with no data yet. Data routes answer 503
// until SetData is called.
func NewHandler(logger *zap.Logger, metrics *Metrics) *Handler {
	return &Handler{logger: logger, metrics: metrics}
}

// SetData publishes the loaded datasets to the live API.
func (h *Handler) SetData(catalog *engine.Catalog) {
	h.data.Store(&dataset{
		renderer: render.New(catalog),
		drawer:   figure.NewDrawer(catalog),
	})
}

func (h *Handler) Ready() bool {
	return h.data.Load() != nil
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.GetPage)
	e.GET("/graphs", h.GetGraphs)
	e.GET("/charts/:slot", h.GetChart)
	e.GET("/healthz", h.GetHealth)

	api := e.Group("/api")
	api.GET("/themes", h.GetThemes)
	api.GET("/graphs", h.GetGraphSpecs)
}

// --- HANDLERS ---

func (h *Handler) GetPage(c echo.Context) error {
	view, err := h.view(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "page", view)
}

// GetGraphs returns just the graphs region, as the template picker
// refreshes it.
func (h *Handler) GetGraphs(c echo.Context) error {
	view, err := h.view(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "graphs", view)
}

// GetChart serves one chart as a standalone document.
func (h *Handler) GetChart(c echo.Context) error {
	d, err := h.loaded()
	if err != nil {
		return err
	}
	t, err := templateParam(c)
	if err != nil {
		return err
	}
	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "unknown chart slot").SetInternal(err)
	}

	spec, err := figure.Slot(d.renderer.Render(t), slot)
	if err != nil {
		return h.fail(err)
	}
	fig, err := d.drawer.Draw(spec, figure.Options{Frame: c.QueryParam("frame")})
	if err != nil {
		return h.fail(err)
	}
	h.metrics.rendered(string(t))

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return fig.Chart.Render(c.Response())
}

func (h *Handler) GetThemes(c echo.Context) error {
	return c.JSON(http.StatusOK, models.ThemesResponse{
		Themes:  theme.Names(),
		Default: string(theme.Default),
	})
}

// GetGraphSpecs returns the chart specs laid out in rows. The ETag changes
// only when a spec does.
func (h *Handler) GetGraphSpecs(c echo.Context) error {
	d, err := h.loaded()
	if err != nil {
		return err
	}
	t, err := templateParam(c)
	if err != nil {
		return err
	}

	specs := d.renderer.Render(t)
	tag := etag(specs)
	c.Response().Header().Set(headerETag, tag)
	if c.Request().Header.Get(headerIfNoneMatch) == tag {
		return c.NoContent(http.StatusNotModified)
	}
	h.metrics.rendered(string(t))

	return c.JSON(http.StatusOK, models.GraphsResponse{
		Theme: string(t),
		Rows:  layout.Cells(layout.Graphs(specs)),
		ETag:  tag,
	})
}

func (h *Handler) GetHealth(c echo.Context) error {
	status := "loading"
	if h.Ready() {
		status = "ok"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": status,
		"ready":  h.Ready(),
	})
}

// --- HELPERS ---

func (h *Handler) loaded() (*dataset, error) {
	d := h.data.Load()
	if d == nil {
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "datasets are still loading")
	}
	return d, nil
}

func templateParam(c echo.Context) (theme.ID, error) {
	t, err := theme.Parse(c.QueryParam("template"))
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return t, nil
}

// fail maps domain errors onto HTTP statuses.
func (h *Handler) fail(err error) error {
	switch {
	case errors.Is(err, figure.ErrUnknownSlot):
		return echo.NewHTTPError(http.StatusNotFound, err.Error()).SetInternal(err)
	case errors.Is(err, figure.ErrUnknownFrame):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	default:
		h.logger.Error("drawing chart failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "chart could not be drawn").SetInternal(err)
	}
}

// view draws every chart for the requested template.
func (h *Handler) view(c echo.Context) (*pageView, error) {
	d, err := h.loaded()
	if err != nil {
		return nil, err
	}
	t, err := templateParam(c)
	if err != nil {
		return nil, err
	}

	specs := d.renderer.Render(t)
	view := &pageView{
		Theme:  string(t),
		Root:   layout.Page(t, specs),
		Region: layout.GraphsRegion(specs),
		Charts: make(map[int]chartView, len(specs)),
	}

	seen := make(map[string]bool)
	for _, spec := range specs {
		fig, err := d.drawer.Draw(spec, figure.Options{})
		if err != nil {
			return nil, h.fail(err)
		}
		snippet, assets := fig.Snippet()
		for _, a := range assets {
			if !seen[a] {
				seen[a] = true
				view.Assets = append(view.Assets, a)
			}
		}
		view.Charts[spec.Slot] = chartView{
			Element: template.HTML(snippet.Element),
			Script:  template.HTML(snippet.Script),
			Frames:  frameLinks(t, fig),
		}
	}
	h.metrics.rendered(string(t))
	return view, nil
}

func frameLinks(t theme.ID, fig *figure.Figure) []frameLink {
	if len(fig.Frames) == 0 {
		return nil
	}
	links := make([]frameLink, len(fig.Frames))
	for i, f := range fig.Frames {
		q := url.Values{"template": {string(t)}, "frame": {f}}
		links[i] = frameLink{
			Label:  f,
			Href:   fmt.Sprintf("/charts/%d?%s", fig.Spec.Slot, q.Encode()),
			Active: f == fig.Frame,
		}
	}
	return links
}

// etag hashes the spec fingerprints in slot order.
func etag(specs []models.ChartSpec) string {
	hs := xxh3.New()
	for _, s := range specs {
		_, _ = hs.WriteString(s.Fingerprint())
	}
	return strconv.Quote(strconv.FormatUint(hs.Sum64(), 16))
}
