package internal

import (
	"context"
	"sync"
	"time"
)

// ViewState reports the two independent activity axes of the archive view
type ViewState struct {
	Searching bool
	Exporting bool
}

// ArchiveView is the surface a UI drives: filter changes go through the
// debounced scheduler, while selection and export act on session ids only.
type ArchiveView struct {
	engine    *Engine
	scheduler *Scheduler
	selection *Selection
	exporter  *BulkExporter
	onResults func([]SearchResult)

	mu        sync.RWMutex
	results   []SearchResult
	filters   SearchFilters
	exporting bool
}

// ViewOption configures an ArchiveView
type ViewOption func(*viewConfig)

type viewConfig struct {
	debounce  time.Duration
	trigger   DownloadTrigger
	onResults func([]SearchResult)
}

// WithDebounce sets the scheduler quiet period
func WithDebounce(d time.Duration) ViewOption {
	return func(c *viewConfig) {
		c.debounce = d
	}
}

// WithDownloadTrigger sets where exported content is saved
func WithDownloadTrigger(trigger DownloadTrigger) ViewOption {
	return func(c *viewConfig) {
		c.trigger = trigger
	}
}

// WithResultsHandler registers a callback invoked after each delivered search
func WithResultsHandler(fn func([]SearchResult)) ViewOption {
	return func(c *viewConfig) {
		c.onResults = fn
	}
}

// NewArchiveView opens an archive view with an empty selection
func NewArchiveView(engine *Engine, exporter Exporter, opts ...ViewOption) *ArchiveView {
	cfg := viewConfig{debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(&cfg)
	}

	v := &ArchiveView{
		engine:    engine,
		selection: NewSelection(),
		onResults: cfg.onResults,
		filters:   DefaultFilters(),
	}
	v.exporter = NewBulkExporter(v.selection, exporter, cfg.trigger)
	v.scheduler = NewScheduler(engine.Search, cfg.debounce, v.handleDelivery)
	return v
}

// OnSearchFiltersChanged schedules a debounced search for filters
func (v *ArchiveView) OnSearchFiltersChanged(filters SearchFilters) {
	v.mu.Lock()
	v.filters = filters
	v.mu.Unlock()
	v.scheduler.Schedule(filters)
}

// Filters returns the most recently requested filters
func (v *ArchiveView) Filters() SearchFilters {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.filters
}

// OrderedResults returns the latest delivered results
func (v *ArchiveView) OrderedResults() []SearchResult {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]SearchResult, len(v.results))
	copy(out, v.results)
	return out
}

// VisibleIDs returns the ids of the latest delivered results, in rank order
func (v *ArchiveView) VisibleIDs() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	ids := make([]string, 0, len(v.results))
	for _, result := range v.results {
		ids = append(ids, result.Session.ID)
	}
	return ids
}

// Selection returns the selected session ids
func (v *ArchiveView) Selection() []string {
	return v.selection.Selected()
}

// IsSelected reports whether id is selected
func (v *ArchiveView) IsSelected(id string) bool {
	return v.selection.Contains(id)
}

// ToggleSelection flips one session's membership
func (v *ArchiveView) ToggleSelection(id string) {
	v.selection.Toggle(id)
}

// SelectAllVisible replaces the selection with the visible results
func (v *ArchiveView) SelectAllVisible() {
	v.selection.SelectAll(v.VisibleIDs())
}

// ClearSelection empties the selection
func (v *ArchiveView) ClearSelection() {
	v.selection.Clear()
}

// ExportSelected exports the selection, clearing it only on success
func (v *ArchiveView) ExportSelected(ctx context.Context, format ExportFormat) (*ExportPayload, error) {
	v.mu.Lock()
	v.exporting = true
	v.mu.Unlock()
	defer func() {
		v.mu.Lock()
		v.exporting = false
		v.mu.Unlock()
	}()

	return v.exporter.ExportSelected(ctx, format)
}

// State reports whether a search and/or an export is in progress
func (v *ArchiveView) State() ViewState {
	v.mu.RLock()
	exporting := v.exporting
	v.mu.RUnlock()
	return ViewState{
		Searching: v.scheduler.Busy(),
		Exporting: exporting,
	}
}

// Close stops pending searches and discards the view's state
func (v *ArchiveView) Close() {
	v.scheduler.Close()
	v.selection.Clear()
}

func (v *ArchiveView) handleDelivery(d Delivery) {
	v.mu.Lock()
	v.results = d.Results
	onResults := v.onResults
	v.mu.Unlock()

	if onResults != nil {
		onResults(d.Results)
	}
}
