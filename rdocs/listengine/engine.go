// Package listengine keeps the recent documents list state: the canonical
// record set, the filtered view, column sort state and the selection.
//
// An Engine is owned by a single host and is not safe for concurrent use.
package listengine

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/ZanzyTHEbar/recent-documents/rdocs/documents"
	"github.com/ZanzyTHEbar/recent-documents/rdocs/source"

	roaring "github.com/RoaringBitmap/roaring"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidArgument   = documents.ErrInvalidArgument
	ErrSourceUnavailable = source.ErrSourceUnavailable
)

// Engine sorts, filters and tracks selection over an in-memory record set.
type Engine struct {
	records  []documents.Record // canonical set, fixed after construction
	visible  []uint32           // positions into records, in display order
	columns  []ColumnDescriptor
	filter   string
	selected *roaring.Bitmap // positions into records
	ids      *identityIndex

	sourceErr error
	logger    zerolog.Logger
}

type options struct {
	columns     []ColumnDescriptor
	logger      zerolog.Logger
	initialSort *sortSpec
}

type sortSpec struct {
	field      string
	descending bool
}

// Option configures an Engine.
type Option func(*options)

// WithColumns replaces DefaultColumns.
func WithColumns(columns []ColumnDescriptor) Option {
	return func(o *options) { o.columns = cloneColumns(columns) }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithInitialSort orders the canonical set once during construction.
// An unknown field is logged and ignored.
func WithInitialSort(field string, descending bool) Option {
	return func(o *options) { o.initialSort = &sortSpec{field: field, descending: descending} }
}

// New builds an Engine over a copy of records.
func New(records []documents.Record, opts ...Option) *Engine {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.columns == nil {
		o.columns = DefaultColumns()
	}

	e := &Engine{
		records:  slices.Clone(records),
		columns:  o.columns,
		selected: roaring.New(),
		logger:   o.logger,
	}
	if e.records == nil {
		e.records = []documents.Record{}
	}

	if o.initialSort != nil {
		if field, err := documents.ParseField(o.initialSort.field); err != nil {
			e.logger.Warn().Err(err).Msg("ignoring initial sort")
		} else {
			slices.SortStableFunc(e.records, comparator(field, o.initialSort.descending))
			markSorted(e.columns, field, o.initialSort.descending)
		}
	}

	e.ids = newIdentityIndex(e.records)
	e.visible = e.allPositions()
	return e
}

// Load fetches records from src once and builds an Engine over them.
// A nil src falls back to the placeholder generator. When src fails the
// engine starts empty and SourceError reports the failure.
func Load(ctx context.Context, src source.RecordSource, opts ...Option) *Engine {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	if src == nil {
		o.logger.Debug().Msg("no record source configured, using generator")
		src = source.NewGenerator(source.DefaultGeneratorConfig())
	}

	records, err := src.FetchRecords(ctx)
	if err != nil {
		err = source.Unavailable(err)
		o.logger.Warn().Err(err).Msg("record source failed, starting with an empty list")
		records = nil
	}

	e := New(records, opts...)
	e.sourceErr = err
	e.logger.Info().Int("records", len(e.records)).Msg("list engine loaded")
	return e
}

// SourceError returns the error from Load's fetch, if any. It wraps ErrSourceUnavailable.
func (e *Engine) SourceError() error { return e.sourceErr }

func (e *Engine) allPositions() []uint32 {
	positions := make([]uint32, len(e.records))
	for i := range e.records {
		positions[i] = uint32(i)
	}
	return positions
}

func comparator(field documents.Field, descending bool) func(a, b documents.Record) int {
	if descending {
		return func(a, b documents.Record) int { return documents.Compare(b, a, field) }
	}
	return func(a, b documents.Record) int { return documents.Compare(a, b, field) }
}

// SortBy stably reorders the visible view by fieldKey and marks the matching
// column as the active sort column. Records with equal keys keep their
// relative order in both directions.
func (e *Engine) SortBy(fieldKey string, descending bool) ([]documents.Record, error) {
	field, err := documents.ParseField(fieldKey)
	if err != nil {
		return nil, err
	}

	cmpRecords := comparator(field, descending)
	slices.SortStableFunc(e.visible, func(a, b uint32) int {
		return cmpRecords(e.records[a], e.records[b])
	})
	markSorted(e.columns, field, descending)

	e.logger.Debug().
		Str("field", field.Key()).
		Bool("descending", descending).
		Int("visible", len(e.visible)).
		Msg("sorted view")

	return e.Visible(), nil
}

// ClickColumn handles a header click: the active column flips direction,
// any other column becomes active sorted descending.
func (e *Engine) ClickColumn(columnKey string) ([]documents.Record, error) {
	idx := slices.IndexFunc(e.columns, func(c ColumnDescriptor) bool { return c.Key == columnKey })
	if idx < 0 {
		return nil, fmt.Errorf("%w: unknown column %q", ErrInvalidArgument, columnKey)
	}
	col := e.columns[idx]
	if !col.Sortable {
		return nil, fmt.Errorf("%w: column %q is not sortable", ErrInvalidArgument, columnKey)
	}

	descending := true
	if col.IsSorted {
		descending = !col.IsSortedDescending
	}
	return e.SortBy(col.Field.Key(), descending)
}

// Filter shows the records whose name contains text, ignoring case, in
// canonical order. Empty text shows everything. Selected records that are
// filtered out are deselected.
func (e *Engine) Filter(text string) []documents.Record {
	e.filter = text
	needle := strings.ToLower(text)

	visible := make([]uint32, 0, len(e.records))
	for i, r := range e.records {
		if needle == "" || strings.Contains(strings.ToLower(r.Name), needle) {
			visible = append(visible, uint32(i))
		}
	}
	e.visible = visible
	e.selected.And(roaring.BitmapOf(visible...))

	e.logger.Debug().
		Str("filter", text).
		Int("visible", len(visible)).
		Msg("filtered view")

	return e.Visible()
}

// Select replaces the selection with ids. Identities that are not visible
// are ignored. A blank identity is rejected and leaves the selection as it was.
func (e *Engine) Select(ids []string) error {
	visible := roaring.BitmapOf(e.visible...)
	next := roaring.New()
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: blank record identity", ErrInvalidArgument)
		}
		for _, pos := range e.ids.lookup(id) {
			if visible.Contains(pos) {
				next.Add(pos)
			}
		}
	}
	e.selected = next

	e.logger.Debug().Int("requested", len(ids)).Uint64("selected", next.GetCardinality()).Msg("selection changed")
	return nil
}

// ClearSelection deselects everything.
func (e *Engine) ClearSelection() {
	e.selected = roaring.New()
}

// SelectionSummary describes the current selection.
func (e *Engine) SelectionSummary() SelectionSummary {
	return summarize(e.records, e.selected)
}

// Selected returns the selected records in visible order.
func (e *Engine) Selected() []documents.Record {
	out := make([]documents.Record, 0, e.selected.GetCardinality())
	for _, pos := range e.visible {
		if e.selected.Contains(pos) {
			out = append(out, e.records[pos])
		}
	}
	return out
}

// Invoke returns the visible record with identity id, for the host to open.
func (e *Engine) Invoke(id string) (documents.Record, error) {
	visible := roaring.BitmapOf(e.visible...)
	for _, pos := range e.ids.lookup(id) {
		if visible.Contains(pos) {
			r := e.records[pos]
			e.logger.Info().Str("name", r.Name).Str("link", r.Link).Msg("item invoked")
			return r, nil
		}
	}
	return documents.Record{}, fmt.Errorf("%w: no visible record %q", ErrInvalidArgument, id)
}

// Visible returns a copy of the visible view.
func (e *Engine) Visible() []documents.Record {
	out := make([]documents.Record, len(e.visible))
	for i, pos := range e.visible {
		out[i] = e.records[pos]
	}
	return out
}

// Records returns a copy of the canonical set.
func (e *Engine) Records() []documents.Record { return slices.Clone(e.records) }

// Columns returns a copy of the column descriptors.
func (e *Engine) Columns() []ColumnDescriptor { return cloneColumns(e.columns) }

// FilterText returns the active filter, "" when none.
func (e *Engine) FilterText() string { return e.filter }

// Len returns the size of the canonical set.
func (e *Engine) Len() int { return len(e.records) }

// View is everything a host needs to render the list.
type View struct {
	Columns    []ColumnDescriptor `json:"columns"`
	Records    []documents.Record `json:"items"`
	Selection  SelectionSummary   `json:"selection"`
	FilterText string             `json:"filterText,omitempty"`
}

// Snapshot captures the current view.
func (e *Engine) Snapshot() View {
	return View{
		Columns:    e.Columns(),
		Records:    e.Visible(),
		Selection:  e.SelectionSummary(),
		FilterText: e.filter,
	}
}
