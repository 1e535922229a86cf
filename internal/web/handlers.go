package web

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/vendorboard/internal/core"
	"github.com/JonMunkholm/vendorboard/internal/logging"
	"github.com/JonMunkholm/vendorboard/internal/web/templates"
)

// page assembles the layout data shared by every page.
func (s *Server) page(r *http.Request, title, current string) templates.Page {
	var nav []templates.NavGroup
	byGroup := s.service.ListTablesByGroup()
	for _, g := range s.service.Groups() {
		nav = append(nav, templates.NavGroup{Name: g, Tables: byGroup[g]})
	}
	return templates.Page{
		Title:   title,
		Theme:   core.ThemeFromContext(r.Context()),
		Nav:     nav,
		Current: current,
		Path:    r.URL.RequestURI(),
	}
}

func render(w http.ResponseWriter, r *http.Request, p templates.Page, body templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Layout(p, body).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "path", r.URL.Path, "error", err)
	}
}

// previewRows is the page size of the dashboard table preview.
const previewRows = 5

// handleDashboard renders the summary cards and the tabbed table preview.
// tab= selects the preview table; unknown values fall back to the first tab.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := templates.DashboardData{
		Summary:   s.service.Summary(),
		Formatter: s.service.Formatter(),
		Now:       s.opts.Now(),
	}

	var infos []core.TableInfo
	active := -1
	for _, key := range s.opts.PreviewTables {
		t, err := s.service.GetTable(key)
		if err != nil {
			continue
		}
		if key == r.URL.Query().Get("tab") {
			active = len(infos)
		}
		infos = append(infos, t.Info())
	}
	if len(infos) > 0 {
		if active < 0 {
			active = 0
		}
		for i, info := range infos {
			data.Tabs = append(data.Tabs, templates.PreviewTab{Key: info.Key, Label: info.Label, Active: i == active})
		}

		preview, err := s.service.GetTableData(ctx, core.ViewIDFromContext(ctx), infos[active].Key, core.Query{PageSize: previewRows})
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		data.Preview = preview
	}

	render(w, r, s.page(r, "Dashboard", ""), templates.Dashboard(data))
}

// handleTableView renders the table data view page.
func (s *Server) handleTableView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tableKey := chi.URLParam(r, "tableKey")

	t, err := s.service.GetTable(tableKey)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	q := parseQuery(r, t)
	data, err := s.service.GetTableData(ctx, core.ViewIDFromContext(ctx), tableKey, q)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	body := templates.Table(templates.TableView{
		Data:   data,
		Params: r.URL.Query(),
		Hidden: parseHidden(r.URL.Query(), t),
		Search: q.Search,
		Axes:   q.Axes,
	})
	render(w, r, s.page(r, t.Info().Label, tableKey), body)
}

// handleTheme flips (or sets, with theme=) the browser's theme and returns
// to the page the form was posted from.
func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	theme, ok := core.ParseTheme(r.PostForm.Get("theme"))
	if !ok {
		theme = core.ThemeFromContext(r.Context()).Toggle()
	}
	s.setCookie(w, themeCookie, string(theme))

	if wantsJSON(r) {
		writeJSON(w, r, map[string]string{"theme": string(theme)})
		return
	}
	http.Redirect(w, r, safeReturn(r.PostForm.Get("return"), "/"), http.StatusSeeOther)
}
