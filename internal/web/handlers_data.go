package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/vendorboard/internal/core"
	"github.com/JonMunkholm/vendorboard/internal/logging"
)

// errBadToggle is returned when enabled= is not a boolean.
var errBadToggle = errors.New("invalid filter: enabled must be true or false")

// TableGroupResponse is one navigation group in GET /api/tables.
type TableGroupResponse struct {
	Name   string           `json:"name"`
	Tables []core.TableInfo `json:"tables"`
}

// ToggleResponse is the body of POST /api/toggle.
type ToggleResponse struct {
	Table   string `json:"table"`
	RowID   string `json:"rowId"`
	Enabled bool   `json:"enabled"`
}

// handleListTables returns all tables organized by group, in sidebar order.
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	byGroup := s.service.ListTablesByGroup()
	groups := make([]TableGroupResponse, 0, len(byGroup))
	for _, g := range s.service.Groups() {
		groups = append(groups, TableGroupResponse{Name: g, Tables: byGroup[g]})
	}
	writeJSON(w, r, groups)
}

// handleTableData returns one filtered, sorted page as JSON.
func (s *Server) handleTableData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tableKey := chi.URLParam(r, "tableKey")

	t, err := s.service.GetTable(tableKey)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	data, err := s.service.GetTableData(ctx, core.ViewIDFromContext(ctx), tableKey, parseQuery(r, t))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, r, data)
}

// handleSummary returns the dashboard totals.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s.service.Summary())
}

// handleExport downloads the filtered rows as CSV. Sort and paging
// parameters are ignored; rows keep filter order.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tableKey := chi.URLParam(r, "tableKey")

	t, err := s.service.GetTable(tableKey)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	params := r.URL.Query()
	q := core.Query{Search: params.Get("search"), Axes: parseAxes(params, t)}

	format := params.Get("format")
	if format == "" {
		format = core.ExportCSV.Name
	}

	file, err := s.service.Export(ctx, core.ViewIDFromContext(ctx), tableKey, q, format)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", file.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Body)))
	w.Header().Set("X-Export-ID", file.ID)
	if _, err := w.Write(file.Body); err != nil {
		logging.WithFields(ctx, "table", tableKey, "export_id", file.ID).
			Warn("export write failed", "error", err)
	}
}

// handleToggle sets the enabled state of one row for this browser's view.
// Form posts carrying a return path are redirected back to the table.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tableKey := chi.URLParam(r, "tableKey")
	rowID := pathParam(r, "rowID")

	if err := r.ParseForm(); err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}
	enabled, err := strconv.ParseBool(r.Form.Get("enabled"))
	if err != nil {
		respondError(w, r, errBadToggle, http.StatusBadRequest)
		return
	}

	viewID := core.ViewIDFromContext(ctx)
	if err := s.service.SetRowToggle(ctx, viewID, tableKey, rowID, enabled); err != nil {
		respondServiceError(w, r, err)
		return
	}

	logging.WithFields(ctx, "table", tableKey, "row", rowID).
		Info("row toggled", "enabled", enabled)

	if ret := r.PostForm.Get("return"); ret != "" {
		http.Redirect(w, r, safeReturn(ret, "/table/"+tableKey), http.StatusSeeOther)
		return
	}
	writeJSON(w, r, ToggleResponse{Table: tableKey, RowID: rowID, Enabled: enabled})
}

// handleResetView discards every toggle this browser has set.
func (s *Server) handleResetView(w http.ResponseWriter, r *http.Request) {
	s.service.ResetView(core.ViewIDFromContext(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}
