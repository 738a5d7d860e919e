package source

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/recent-documents/rdocs/documents"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedGenerator(seed uint64, count int) *Generator {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	return NewGenerator(GeneratorConfig{
		Count: count,
		Seed:  seed,
		Link:  "https://google.com",
		Start: time.Date(2012, time.January, 1, 0, 0, 0, 0, time.UTC),
		Now:   func() time.Time { return now },
	})
}

func TestGeneratorProducesPlaceholderRecords(t *testing.T) {
	records, err := fixedGenerator(7, 10).FetchRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 10)

	start := time.Date(2012, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	end := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC).UnixMilli()
	seen := map[string]bool{}

	for _, r := range records {
		assert.True(t, strings.HasPrefix(r.Name, "Filenamebla."), r.Name)
		ext := strings.TrimPrefix(r.Name, "Filenamebla.")
		assert.True(t, documents.HasIcon(ext), ext)
		assert.Equal(t, documents.IconURL(ext), r.IconName)

		assert.GreaterOrEqual(t, r.FileSizeRaw, int64(30))
		assert.LessOrEqual(t, r.FileSizeRaw, int64(129))
		assert.Equal(t, documents.FormatSize(r.FileSizeRaw), r.FileSize)

		assert.GreaterOrEqual(t, r.DateModifiedValue, start)
		assert.Less(t, r.DateModifiedValue, end)
		assert.Equal(t, "https://google.com", r.Link)

		assert.NotEmpty(t, r.Value)
		assert.False(t, seen[r.Value], "duplicate identity %s", r.Value)
		seen[r.Value] = true
	}
}

func TestGeneratorIsDeterministicForSeed(t *testing.T) {
	a, err := fixedGenerator(99, 5).FetchRecords(context.Background())
	require.NoError(t, err)
	b, err := fixedGenerator(99, 5).FetchRecords(context.Background())
	require.NoError(t, err)
	c, err := fixedGenerator(100, 5).FetchRecords(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestGeneratorZeroCount(t *testing.T) {
	records, err := fixedGenerator(1, 0).FetchRecords(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGeneratorStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fixedGenerator(1, 3).FetchRecords(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
