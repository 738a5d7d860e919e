package source

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/recent-documents/rdocs/documents"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	values []any
	err    error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = f.values[i].(string)
		case *int64:
			*p = f.values[i].(int64)
		}
	}
	return nil
}

func TestScanRecord(t *testing.T) {
	modified := time.Date(2020, time.October, 5, 8, 30, 0, 0, time.Local)
	row := fakeRow{values: []any{"id-1", "Plan.docx", documents.IconURL("docx"), modified.UnixMilli(), int64(64), "https://example.com/plan"}}

	r, err := scanRecord(row)
	require.NoError(t, err)

	assert.Equal(t, documents.New("Plan.docx", "id-1", documents.IconURL("docx"), modified, 64, "https://example.com/plan"), r)
}

func TestScanRecordError(t *testing.T) {
	_, err := scanRecord(fakeRow{err: errors.New("column mismatch")})
	assert.ErrorContains(t, err, "column mismatch")
}

func TestOpenSQLSourceRequiresDSN(t *testing.T) {
	_, err := OpenSQLSource(DatabaseConfig{DSN: "  "}, zerolog.Nop())
	assert.ErrorIs(t, err, documents.ErrInvalidArgument)
}

func TestSQLSourceRoundTrip(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "nested", "recent.db")

	src, err := OpenSQLSource(DatabaseConfig{DSN: dsn, Limit: 2}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	require.NoError(t, src.EnsureSchema(ctx))
	require.NoError(t, src.EnsureSchema(ctx), "schema creation must be repeatable")

	base := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.Local)
	a := documents.New("a.docx", "id-a", documents.IconURL("docx"), base, 10, "https://example.com/a")
	b := documents.New("b.xlsx", "id-b", documents.IconURL("xlsx"), base.Add(time.Hour), 20, "https://example.com/b")
	c := documents.New("c.pptx", "id-c", documents.IconURL("pptx"), base.Add(2*time.Hour), 30, "https://example.com/c")
	require.NoError(t, src.Insert(ctx, a, b, c))

	records, err := src.FetchRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []documents.Record{c, b}, records)

	// Same value replaces the stored row.
	renamed := documents.New("a-final.docx", "id-a", documents.IconURL("docx"), base.Add(3*time.Hour), 12, "https://example.com/a")
	require.NoError(t, src.Insert(ctx, renamed))

	records, err = src.FetchRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []documents.Record{renamed, c}, records)

	unlimited := NewSQLSource(src.db, 0, zerolog.Nop())
	all, err := unlimited.FetchRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
