package documents

import (
	"fmt"
	"time"
)

// Record represents one entry in the recent documents list.
// Records are values: the list engine copies them and never mutates them in place.
type Record struct {
	Name              string `json:"name"`              // Display name
	Value             string `json:"value"`             // Identity key used for selection
	IconName          string `json:"iconName"`          // Icon URL for the file type
	DateModified      string `json:"dateModified"`      // Human readable modified date
	DateModifiedValue int64  `json:"dateModifiedValue"` // Modified time in unix milliseconds
	FileSize          string `json:"fileSize"`          // Human readable size
	FileSizeRaw       int64  `json:"fileSizeRaw"`       // Size in KB
	Link              string `json:"link"`              // Target URL
}

// ModifiedAt returns DateModifiedValue as a time.Time.
func (r Record) ModifiedAt() time.Time {
	return time.UnixMilli(r.DateModifiedValue)
}

// FormatDate renders t the way the list displays modified dates (M/D/YYYY).
func FormatDate(t time.Time) string {
	return t.Format("1/2/2006")
}

// FormatSize renders a KB count the way the list displays file sizes.
func FormatSize(kb int64) string {
	return fmt.Sprintf("%d KB", kb)
}

// New builds a Record from typed values and fills in the display fields.
func New(name, value, iconName string, modified time.Time, sizeKB int64, link string) Record {
	return Record{
		Name:              name,
		Value:             value,
		IconName:          iconName,
		DateModified:      FormatDate(modified),
		DateModifiedValue: modified.UnixMilli(),
		FileSize:          FormatSize(sizeKB),
		FileSizeRaw:       sizeKB,
		Link:              link,
	}
}
