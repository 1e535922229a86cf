package web

// handlers_common.go parses table query parameters shared by the page,
// JSON and export handlers.

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/vendorboard/internal/core"
)

// pathParam returns a decoded URL parameter. chi routes on RawPath when it
// is set and on the already decoded Path otherwise.
func pathParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}

// parseIntParam parses a positive integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// parseSorts parses comma-separated sort and dir parameters.
// Unknown columns are dropped later by the table.
func parseSorts(params url.Values) []core.SortSpec {
	sortStr := params.Get("sort")
	if sortStr == "" {
		return nil
	}

	cols := strings.Split(sortStr, ",")
	dirs := strings.Split(params.Get("dir"), ",")

	var sorts []core.SortSpec
	for i, col := range cols {
		col = strings.TrimSpace(col)
		if col == "" {
			continue
		}
		dir := "asc"
		if i < len(dirs) && strings.TrimSpace(dirs[i]) == "desc" {
			dir = "desc"
		}
		sorts = append(sorts, core.SortSpec{Column: col, Dir: dir})
		if len(sorts) >= core.MaxSortKeys {
			break
		}
	}
	return sorts
}

// parseAxes reads one parameter per table axis. Parameters that are not
// axes of this table are ignored; bad values on a real axis are rejected by
// the table with ErrInvalidFilter.
func parseAxes(params url.Values, t core.Table) map[string]string {
	axes := make(map[string]string)
	for _, a := range t.Axes() {
		if v := strings.TrimSpace(params.Get(a.Key)); v != "" {
			axes[a.Key] = v
		}
	}
	return axes
}

// parseHidden returns the hideable columns listed in hide=.
func parseHidden(params url.Values, t core.Table) map[string]bool {
	hidden := make(map[string]bool)
	raw := params.Get("hide")
	if raw == "" {
		return hidden
	}
	hideable := make(map[string]bool)
	for _, c := range t.Columns() {
		if c.Hideable {
			hideable[c.Key] = true
		}
	}
	for _, key := range strings.Split(raw, ",") {
		key = strings.TrimSpace(key)
		if hideable[key] {
			hidden[key] = true
		}
	}
	return hidden
}

// parseQuery builds the table query from the request.
func parseQuery(r *http.Request, t core.Table) core.Query {
	params := r.URL.Query()
	return core.Query{
		Search:   params.Get("search"),
		Axes:     parseAxes(params, t),
		Sort:     parseSorts(params),
		Page:     parseIntParam(r, "page", 1),
		PageSize: parseIntParam(r, "pageSize", 0),
	}
}

// safeReturn accepts only local absolute paths as redirect targets.
func safeReturn(target, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return fallback
	}
	return target
}
