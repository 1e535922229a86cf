// Package templates renders the dashboard pages as templ components.
//
// Components live in the .templ files; the matching _templ.go files are
// produced by `templ generate` and checked in.
package templates

//go:generate templ generate

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/vendorboard/internal/core"
)

// NavGroup is one sidebar section.
type NavGroup struct {
	Name   string
	Tables []core.TableInfo
}

// Page carries what every page needs besides its body.
type Page struct {
	Title   string
	Theme   core.Theme
	Nav     []NavGroup
	Current string // active table key, "" on the dashboard
	Path    string // current request path with query, used as the theme form return
}

// DashboardData feeds the summary cards and the table preview.
type DashboardData struct {
	Summary   core.Summary
	Formatter *core.Formatter
	Now       time.Time

	Tabs    []PreviewTab
	Preview core.TableData // first page of the active tab's table
}

// PreviewTab is one tab of the dashboard table preview.
type PreviewTab struct {
	Key    string
	Label  string
	Active bool
}

func (d DashboardData) formatter() *core.Formatter {
	if d.Formatter == nil {
		return core.DefaultFormatter
	}
	return d.Formatter
}

// TableView is the view model for GET /table/{tableKey}.
type TableView struct {
	Data   core.TableData
	Params url.Values      // the request query, reused for every link
	Hidden map[string]bool // column keys hidden via hide=
	Search string
	Axes   map[string]string
}

func (v TableView) path() string { return "/table/" + v.Data.Info.Key }

func (v TableView) link(kv ...string) string {
	return withParams(v.path(), v.Params, kv...)
}

func (v TableView) axisSelected(axis, value string) bool {
	selected := v.Axes[axis]
	return value == selected || (selected == "" && value == core.AxisAll)
}

// hiddenParam is a query parameter carried across filter submissions.
type hiddenParam struct {
	Name, Value string
}

// carried keeps sort and hidden columns when the filter form is submitted.
func (v TableView) carried() []hiddenParam {
	var out []hiddenParam
	for _, key := range []string{"sort", "dir", "hide"} {
		if val := v.Params.Get(key); val != "" {
			out = append(out, hiddenParam{Name: key, Value: val})
		}
	}
	return out
}

var exportFormats = []string{"csv", "excel"}

// exportURL links to the export endpoint with the active search and axes.
// Sort and pagination do not apply to exports.
func (v TableView) exportURL(format string) string {
	filters := url.Values{}
	if v.Search != "" {
		filters.Set("search", v.Search)
	}
	for k, val := range v.Axes {
		filters.Set(k, val)
	}
	filters.Set("format", format)
	return "/api/export/" + v.Data.Info.Key + "?" + filters.Encode()
}

func (v TableView) toggleAction(rowID string) string {
	return "/api/toggle/" + url.PathEscape(v.Data.Info.Key) + "/" + url.PathEscape(rowID)
}

func (v TableView) visibleColumns() []core.ColumnMeta {
	cols := make([]core.ColumnMeta, 0, len(v.Data.Columns))
	for _, c := range v.Data.Columns {
		if !v.Hidden[c.Key] {
			cols = append(cols, c)
		}
	}
	return cols
}

// emptyColspan spans the selection column, the visible columns and the
// toggle column when the table has one.
func (v TableView) emptyColspan() int {
	n := 1 + len(v.visibleColumns())
	if v.Data.HasToggle() {
		n++
	}
	return n
}

func (v TableView) columnLabel(c core.ColumnMeta) string {
	if v.Hidden[c.Key] {
		return "+ " + c.Header
	}
	return c.Header
}

// withParams returns path with params, overriding the given key/value pairs.
// An empty value removes the key.
func withParams(path string, params url.Values, kv ...string) string {
	q := url.Values{}
	for k, v := range params {
		q[k] = append([]string(nil), v...)
	}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			q.Del(kv[i])
			continue
		}
		q.Set(kv[i], kv[i+1])
	}
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

// toggledHidden returns the hide= value after flipping key, in column order.
func toggledHidden(hidden map[string]bool, key string, cols []core.ColumnMeta) string {
	var keys []string
	for _, c := range cols {
		on := hidden[c.Key]
		if c.Key == key {
			on = !on
		}
		if on {
			keys = append(keys, c.Key)
		}
	}
	return strings.Join(keys, ",")
}

func toneClass(t core.Tone) string {
	return "badge badge-" + string(t)
}

func sortMarker(specs []core.SortSpec, key string) string {
	if len(specs) == 0 || specs[0].Column != key {
		return ""
	}
	if specs[0].Dir == "desc" {
		return " ↓"
	}
	return " ↑"
}

func nextDir(specs []core.SortSpec, key string) string {
	if len(specs) > 0 && specs[0].Column == key && specs[0].Dir == "asc" {
		return "desc"
	}
	return "asc"
}

func themeLabel(t core.Theme) string {
	if t == core.ThemeDark {
		return "Light mode"
	}
	return "Dark mode"
}

func pagerText(d core.TableData) string {
	return strconv.Itoa(d.Total) + " of " + strconv.Itoa(d.SourceRows) + " rows"
}

func pageText(d core.TableData) string {
	return "Page " + strconv.Itoa(d.Page) + " of " + strconv.Itoa(d.TotalPages)
}

func (v TableView) pageLink(page int) string {
	return v.link("page", strconv.Itoa(page))
}
