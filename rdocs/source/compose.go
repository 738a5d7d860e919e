package source

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/ZanzyTHEbar/recent-documents/rdocs/documents"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
)

// Fallback serves Primary and switches to Secondary when Primary fails.
type Fallback struct {
	Primary   RecordSource
	Secondary RecordSource
	logger    zerolog.Logger
}

// NewFallback builds a Fallback. A nil primary always uses secondary.
func NewFallback(primary, secondary RecordSource, logger zerolog.Logger) *Fallback {
	return &Fallback{Primary: primary, Secondary: secondary, logger: logger}
}

func (f *Fallback) FetchRecords(ctx context.Context) ([]documents.Record, error) {
	var primaryErr error
	if f.Primary != nil {
		records, err := f.Primary.FetchRecords(ctx)
		if err == nil {
			return records, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		primaryErr = err
		f.logger.Warn().Err(err).Msg("primary record source failed, using fallback")
	}

	if f.Secondary == nil {
		return nil, Unavailable(primaryErr)
	}
	records, err := f.Secondary.FetchRecords(ctx)
	if err != nil {
		return nil, Unavailable(errors.Join(primaryErr, err))
	}
	return records, nil
}

// Close closes both sources.
func (f *Fallback) Close() error {
	return errors.Join(Close(f.Primary), Close(f.Secondary))
}

// Merge fetches several sources concurrently and concatenates their records
// in source order. Failing sources are skipped unless all of them fail.
type Merge struct {
	sources    []RecordSource
	maxWorkers int
	logger     zerolog.Logger
}

// NewMerge builds a Merge over sources.
func NewMerge(logger zerolog.Logger, sources ...RecordSource) *Merge {
	workers := runtime.NumCPU()
	if workers > len(sources) {
		workers = len(sources)
	}
	if workers < 1 {
		workers = 1
	}
	return &Merge{sources: sources, maxWorkers: workers, logger: logger}
}

func (m *Merge) FetchRecords(ctx context.Context) ([]documents.Record, error) {
	if len(m.sources) == 0 {
		return []documents.Record{}, nil
	}

	results := make([][]documents.Record, len(m.sources))
	errs := make([]error, len(m.sources))

	p := pool.New().WithMaxGoroutines(m.maxWorkers).WithContext(ctx)
	for i, src := range m.sources {
		p.Go(func(ctx context.Context) error {
			results[i], errs[i] = src.FetchRecords(ctx)
			return nil
		})
	}
	_ = p.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		merged []documents.Record
		failed []error
	)
	for i := range m.sources {
		if errs[i] != nil {
			m.logger.Warn().Err(errs[i]).Int("source", i).Msg("skipping failed record source")
			failed = append(failed, fmt.Errorf("source %d: %w", i, errs[i]))
			continue
		}
		merged = append(merged, results[i]...)
	}

	if len(failed) == len(m.sources) {
		return nil, Unavailable(errors.Join(failed...))
	}
	if merged == nil {
		merged = []documents.Record{}
	}
	return merged, nil
}

// Close closes every source.
func (m *Merge) Close() error {
	var errs []error
	for _, src := range m.sources {
		errs = append(errs, Close(src))
	}
	return errors.Join(errs...)
}
