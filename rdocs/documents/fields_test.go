package documents

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	tests := []struct {
		key     string
		want    Field
		wantErr bool
	}{
		{key: "name", want: FieldName},
		{key: "value", want: FieldValue},
		{key: "dateModifiedValue", want: FieldDateModifiedValue},
		{key: "fileSizeRaw", want: FieldFileSizeRaw},
		{key: " link ", want: FieldLink},
		{key: "Name", wantErr: true},
		{key: "size", wantErr: true},
		{key: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := ParseField(tt.key)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidArgument))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldKeysRoundTrip(t *testing.T) {
	for _, f := range Fields() {
		parsed, err := ParseField(f.Key())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}
	assert.Len(t, Fields(), 8)
}

func TestFieldKind(t *testing.T) {
	assert.Equal(t, KindNumber, FieldDateModifiedValue.Kind())
	assert.Equal(t, KindNumber, FieldFileSizeRaw.Kind())
	assert.Equal(t, KindText, FieldName.Kind())
	assert.Equal(t, KindText, FieldFileSize.Kind())
}

func TestCompare(t *testing.T) {
	small := Record{Name: "Alpha", FileSize: "9 KB", FileSizeRaw: 9, DateModifiedValue: 100}
	large := Record{Name: "beta", FileSize: "100 KB", FileSizeRaw: 100, DateModifiedValue: 50}

	// Numbers compare numerically.
	assert.Equal(t, -1, Compare(small, large, FieldFileSizeRaw))
	assert.Equal(t, 1, Compare(small, large, FieldDateModifiedValue))

	// Text compares lexicographically, so "9 KB" sorts after "100 KB".
	assert.Equal(t, 1, Compare(small, large, FieldFileSize))

	// Upper case sorts before lower case.
	assert.Equal(t, -1, Compare(small, large, FieldName))
	assert.Equal(t, 0, Compare(small, small, FieldName))
}

func TestNewFillsDisplayFields(t *testing.T) {
	modified := time.Date(2019, time.March, 7, 15, 4, 5, 0, time.UTC)

	r := New("Report.docx", "id-1", IconURL("docx"), modified, 47, "https://example.com/report")

	assert.Equal(t, "3/7/2019", r.DateModified)
	assert.Equal(t, modified.UnixMilli(), r.DateModifiedValue)
	assert.Equal(t, "47 KB", r.FileSize)
	assert.Equal(t, int64(47), r.FileSizeRaw)
	assert.True(t, r.ModifiedAt().Equal(modified))
	assert.Equal(t, "47", Text(r, FieldFileSizeRaw))
	assert.Equal(t, "Report.docx", Text(r, FieldName))
}

func TestIcons(t *testing.T) {
	assert.Equal(t, IconBaseURL+"/xlsx_16x1.svg", IconURL(".XLSX"))
	assert.True(t, HasIcon("pptx"))
	assert.False(t, HasIcon("pdf"))
	assert.Equal(t, IconURL("docx"), IconForName("notes.docx"))
	assert.Empty(t, IconForName("photo.png"))
	assert.Len(t, IconExtensions, 23)
}
