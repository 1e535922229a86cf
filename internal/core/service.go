package core

import (
	"context"
	"fmt"
	"log/slog"
)

// Service is the entry point for every table operation. It joins the
// registry, the per-view toggle store and the locale formatter.
type Service struct {
	registry  *Registry
	views     *ViewStore
	formatter *Formatter
	pageSize  int
	summary   Summary
}

// ServiceOptions configures a Service. Zero values select defaults.
type ServiceOptions struct {
	Formatter *Formatter
	Views     *ViewStore
	PageSize  int
}

// NewService creates a Service over reg. summary is computed once at startup
// from the same fixtures the tables were built from.
func NewService(reg *Registry, summary Summary, opts ServiceOptions) *Service {
	if reg == nil {
		reg = DefaultRegistry()
	}
	if opts.Formatter == nil {
		opts.Formatter = DefaultFormatter
	}
	if opts.Views == nil {
		opts.Views = NewViewStore()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}

	return &Service{
		registry:  reg,
		views:     opts.Views,
		formatter: opts.Formatter,
		pageSize:  opts.PageSize,
		summary:   summary,
	}
}

// Formatter returns the service's locale formatter.
func (s *Service) Formatter() *Formatter { return s.formatter }

// Views returns the transient view state store.
func (s *Service) Views() *ViewStore { return s.views }

// PageSize returns the default page size.
func (s *Service) PageSize() int { return s.pageSize }

// Summary returns the dashboard totals.
func (s *Service) Summary() Summary { return s.summary }

// ListTables returns information about all registered tables.
func (s *Service) ListTables() []TableInfo {
	tables := s.registry.All()
	infos := make([]TableInfo, len(tables))
	for i, t := range tables {
		infos[i] = t.Info()
	}
	return infos
}

// Groups returns the navigation groups in display order.
func (s *Service) Groups() []string {
	return s.registry.Groups()
}

// ListTablesByGroup returns tables organized by group.
func (s *Service) ListTablesByGroup() map[string][]TableInfo {
	result := make(map[string][]TableInfo)
	for _, group := range s.registry.Groups() {
		for _, t := range s.registry.ByGroup(group) {
			result[group] = append(result[group], t.Info())
		}
	}
	return result
}

// GetTable returns a registered table or ErrTableNotFound.
func (s *Service) GetTable(key string) (Table, error) {
	return s.registry.Lookup(key)
}

// GetTableData runs q against a table with the view's toggles applied.
func (s *Service) GetTableData(ctx context.Context, viewID, tableKey string, q Query) (TableData, error) {
	t, err := s.registry.Lookup(tableKey)
	if err != nil {
		return TableData{}, err
	}

	if q.PageSize <= 0 {
		q.PageSize = s.pageSize
	}
	q.Toggles = s.viewToggles(viewID, t)

	data, err := t.Query(ctx, q, s.formatter)
	if err != nil {
		return TableData{}, fmt.Errorf("query %s: %w", tableKey, err)
	}
	return data, nil
}

// Export renders the filtered rows of a table in the requested format.
// Sorting and pagination do not apply; rows keep filter order.
func (s *Service) Export(ctx context.Context, viewID, tableKey string, q Query, formatName string) (ExportFile, error) {
	format, err := ParseExportFormat(formatName)
	if err != nil {
		return ExportFile{}, err
	}

	t, err := s.registry.Lookup(tableKey)
	if err != nil {
		return ExportFile{}, err
	}
	q.Toggles = s.viewToggles(viewID, t)

	file, err := t.Export(ctx, q, format)
	if err != nil {
		return ExportFile{}, fmt.Errorf("export %s: %w", tableKey, err)
	}

	slog.Info("table exported",
		"table", tableKey,
		"format", format.Name,
		"rows", file.Rows,
		"export_id", file.ID,
	)
	return file, nil
}

// SetRowToggle records an enabled override for one row in one view.
// Only the view's in-memory state changes; fixtures are never written.
func (s *Service) SetRowToggle(ctx context.Context, viewID, tableKey, rowID string, enabled bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t, err := s.registry.Lookup(tableKey)
	if err != nil {
		return err
	}
	if t.ToggleName() == "" {
		return fmt.Errorf("%s: %w", tableKey, ErrToggleUnsupported)
	}
	if !t.HasRow(rowID) {
		return fmt.Errorf("%s: %w: %q", tableKey, ErrRowNotFound, rowID)
	}

	s.views.SetToggle(viewID, tableKey, rowID, enabled)
	return nil
}

// ResetView discards every override held by a view.
func (s *Service) ResetView(viewID string) {
	s.views.Reset(viewID)
}

func (s *Service) viewToggles(viewID string, t Table) Toggles {
	if viewID == "" || t.ToggleName() == "" {
		return nil
	}
	s.views.Touch(viewID)
	return s.views.Toggles(viewID, t.Info().Key)
}
