// Package source supplies the records shown in the recent documents list.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/ZanzyTHEbar/recent-documents/rdocs/documents"
)

// ErrSourceUnavailable marks a failed fetch. Callers recover by falling back
// to another source or to an empty list.
var ErrSourceUnavailable = errors.New("record source unavailable")

// RecordSource supplies document records. FetchRecords is expected to be
// called once when the list starts.
type RecordSource interface {
	FetchRecords(ctx context.Context) ([]documents.Record, error)
}

// Func adapts a function to RecordSource.
type Func func(ctx context.Context) ([]documents.Record, error)

func (f Func) FetchRecords(ctx context.Context) ([]documents.Record, error) { return f(ctx) }

// Static serves a fixed record set. A nil Static serves an empty list.
type Static []documents.Record

func (s Static) FetchRecords(ctx context.Context) ([]documents.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s), nil
}

// Unavailable wraps err with ErrSourceUnavailable unless it already is one.
func Unavailable(err error) error {
	if err == nil || errors.Is(err, ErrSourceUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
}

// Close releases src if it holds resources. Composite sources close their children.
func Close(src RecordSource) error {
	if c, ok := src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
