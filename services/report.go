package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hotelorders/pivot"
)

const defaultTimeout = 30 * time.Second

// TableSource yields the raw order sheet. now is the caller's clock and is
// used by caching sources to judge freshness; the returned time is when the
// table was actually fetched.
type TableSource interface {
	Fetch(ctx context.Context, now time.Time) (pivot.RawTable, time.Time, error)
}

// Renderer turns a laid-out document into file bytes.
type Renderer interface {
	Render(doc Document) ([]byte, error)
}

// Report is every pivot computed for one date. It is never mutated after
// Build returns it.
type Report struct {
	RunID     string
	Date      time.Time
	FetchedAt time.Time
	// SourceRows counts rows in the fetched sheet; Records those that
	// survived normalization.
	SourceRows int
	Records    int
	// Warning is pivot.ErrNoMatchingRecords when the sheet had no usable
	// rows for Date. The report is still complete, with empty sections.
	Warning    error
	Vegetables pivot.PivotTable
	Vendors    pivot.VendorPivotTable
	Hotels     []pivot.HotelExtract
}

// Preview summarizes the raw sheet without aggregating it.
type Preview struct {
	FetchedAt  time.Time      `json:"fetched_at"`
	Columns    []string       `json:"columns"`
	Records    int            `json:"total_records"`
	Hotels     []string       `json:"hotels"`
	Vegetables []string       `json:"vegetables"`
	Sample     []pivot.RawRow `json:"sample"`
}

// Generator runs the report pipeline: fetch, normalize, pivot, lay out and
// render.
type Generator struct {
	Source     TableSource
	Normalizer pivot.Normalizer
	Hotels     *pivot.HotelRegistry
	Workers    int
	Timeout    time.Duration
	// IncludeAbsentHotels lists every preferred hotel in the hotel report,
	// with a no-orders notice for those that ordered nothing.
	IncludeAbsentHotels bool
	Assembler           Assembler
	PDF                 Renderer
	Excel               Renderer
	Logger              *zap.Logger
	Clock               func() time.Time
}

func (g *Generator) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

func (g *Generator) now() time.Time {
	if g.Clock == nil {
		return time.Now()
	}
	return g.Clock()
}

func (g *Generator) timeout() time.Duration {
	if g.Timeout <= 0 {
		return defaultTimeout
	}
	return g.Timeout
}

// fetch reads the sheet under ctx and maps failures onto ErrTimedOut or
// ErrSourceUnavailable.
func (g *Generator) fetch(ctx context.Context) (pivot.RawTable, time.Time, error) {
	table, fetchedAt, err := g.Source.Fetch(ctx, g.now())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return pivot.RawTable{}, time.Time{}, ErrTimedOut
		}
		return pivot.RawTable{}, time.Time{}, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	if table.Len() == 0 {
		return pivot.RawTable{}, time.Time{}, fmt.Errorf("%w: %w", ErrSourceUnavailable, pivot.ErrEmptySource)
	}
	return table, fetchedAt, nil
}

// Build computes the pivots for date. The whole fetch and aggregation runs
// under the generator timeout; when it expires the result is ErrTimedOut
// and no partial report.
func (g *Generator) Build(ctx context.Context, date time.Time) (*Report, error) {
	runID := uuid.NewString()
	log := g.logger().With(zap.String("run_id", runID), zap.String("date", DisplayDate(date)))
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, g.timeout())
	defer cancel()

	table, fetchedAt, err := g.fetch(ctx)
	if err != nil {
		log.Error("fetch orders", zap.Error(err))
		return nil, err
	}

	rep := &Report{RunID: runID, Date: date, FetchedAt: fetchedAt, SourceRows: table.Len()}

	norm := g.Normalizer
	if norm.Hotels == nil {
		norm.Hotels = g.Hotels
	}
	records, err := norm.Normalize(table, date)
	switch {
	case errors.Is(err, pivot.ErrNoMatchingRecords):
		rep.Warning = err
		log.Warn("no matching records", zap.Int("rows", table.Len()))
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	rep.Records = len(records)

	b := pivot.Builder{Policy: g.Hotels, Workers: g.Workers}
	rep.Vegetables = b.Vegetables(records)

	if rep.Vendors, err = b.Vendors(ctx, records); err != nil {
		return nil, g.aggregateErr(log, err)
	}

	hotels := g.Hotels.Columns(records)
	if g.IncludeAbsentHotels {
		hotels = g.Hotels.Enumerate(records)
	}
	if rep.Hotels, err = b.Hotels(ctx, records, hotels); err != nil {
		return nil, g.aggregateErr(log, err)
	}

	log.Info("report built",
		zap.Int("rows", rep.SourceRows),
		zap.Int("records", rep.Records),
		zap.Int("vegetables", len(rep.Vegetables.Rows)),
		zap.Int("vendors", len(rep.Vendors)),
		zap.Int("hotels", len(rep.Hotels)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return rep, nil
}

func (g *Generator) aggregateErr(log *zap.Logger, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		log.Error("aggregation timed out")
		return ErrTimedOut
	}
	log.Error("aggregation failed", zap.Error(err))
	return err
}

// Document lays out one kind of report.
func (g *Generator) Document(r *Report, kind DocumentKind) (Document, error) {
	switch kind {
	case DocCombinedPDF, DocCombinedExcel:
		return g.Assembler.Combined(r.Date, r.Vegetables, r.Vendors), nil
	case DocHotelsPDF:
		return g.Assembler.Hotels(r.Date, r.Hotels), nil
	}
	return Document{}, fmt.Errorf("unknown document %q", kind)
}

// Render produces one document of r. Failures come back as *RenderError.
func (g *Generator) Render(r *Report, kind DocumentKind) (out []byte, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &RenderError{Document: kind, Err: fmt.Errorf("panic: %v", p)}
		}
		if err != nil {
			g.logger().Error("render document",
				zap.String("run_id", r.RunID),
				zap.String("document", string(kind)),
				zap.Error(err),
			)
		}
	}()

	doc, err := g.Document(r, kind)
	if err != nil {
		return nil, &RenderError{Document: kind, Err: err}
	}

	renderer := g.PDF
	if kind == DocCombinedExcel {
		renderer = g.Excel
	}
	if renderer == nil {
		return nil, &RenderError{Document: kind, Err: errors.New("no renderer configured")}
	}

	out, err = renderer.Render(doc)
	if err != nil {
		return nil, &RenderError{Document: kind, Err: err}
	}
	return out, nil
}

// RenderAll renders every document kind. Documents that fail are left out of
// the map and their errors joined; the rest are still returned.
func (g *Generator) RenderAll(r *Report) (map[DocumentKind][]byte, error) {
	out := make(map[DocumentKind][]byte)
	var errs []error
	for _, kind := range []DocumentKind{DocCombinedPDF, DocHotelsPDF, DocCombinedExcel} {
		data, err := g.Render(r, kind)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[kind] = data
	}
	return out, errors.Join(errs...)
}

// Preview fetches the sheet and summarizes it. sample caps the number of raw
// rows included.
func (g *Generator) Preview(ctx context.Context, sample int) (*Preview, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout())
	defer cancel()

	table, fetchedAt, err := g.fetch(ctx)
	if err != nil {
		g.logger().Error("preview orders", zap.Error(err))
		return nil, err
	}

	p := &Preview{
		FetchedAt:  fetchedAt,
		Columns:    table.Columns,
		Records:    table.Len(),
		Hotels:     table.Distinct(pivot.ColHotel),
		Vegetables: table.Distinct(pivot.ColVegetable),
	}
	if sample > table.Len() {
		sample = table.Len()
	}
	if sample > 0 {
		p.Sample = table.Rows[:sample]
	}
	return p, nil
}

// Refresh drops the cached sheet, if the source caches. It reports whether
// anything was invalidated.
func (g *Generator) Refresh() bool {
	inv, ok := g.Source.(interface{ Invalidate() })
	if !ok {
		return false
	}
	inv.Invalidate()
	g.logger().Info("order cache invalidated")
	return true
}
