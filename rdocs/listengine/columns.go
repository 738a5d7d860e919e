package listengine

import (
	"github.com/ZanzyTHEbar/recent-documents/rdocs/documents"
)

// ColumnDescriptor describes one list column and its sort state.
type ColumnDescriptor struct {
	Key                string          `json:"key"`
	Name               string          `json:"name"`
	Field              documents.Field `json:"-"`
	FieldName          string          `json:"fieldName"`
	IconOnly           bool            `json:"isIconOnly,omitempty"`
	Sortable           bool            `json:"sortable"`
	IsSorted           bool            `json:"isSorted"`
	IsSortedDescending bool            `json:"isSortedDescending"`
}

func newColumn(key, name string, field documents.Field, sortable bool) ColumnDescriptor {
	return ColumnDescriptor{
		Key:       key,
		Name:      name,
		Field:     field,
		FieldName: field.Key(),
		Sortable:  sortable,
	}
}

// DefaultColumns returns the recent documents columns. The name column starts
// out marked as sorted ascending.
func DefaultColumns() []ColumnDescriptor {
	icon := newColumn("column1", "File Type", documents.FieldName, false)
	icon.IconOnly = true

	name := newColumn("column2", "Name", documents.FieldName, true)
	name.IsSorted = true

	return []ColumnDescriptor{
		icon,
		name,
		newColumn("column3", "Date Modified", documents.FieldDateModifiedValue, true),
		newColumn("column4", "File Size", documents.FieldFileSizeRaw, true),
	}
}

// DisplayField is the field a column renders, which can differ from the field it sorts by.
func (c ColumnDescriptor) DisplayField() documents.Field {
	switch {
	case c.IconOnly:
		return documents.FieldIconName
	case c.Field == documents.FieldDateModifiedValue:
		return documents.FieldDateModified
	case c.Field == documents.FieldFileSizeRaw:
		return documents.FieldFileSize
	default:
		return c.Field
	}
}

// markSorted makes the first sortable column reading field the only sorted one.
// Every other column is reset to unsorted with the descending flag set.
func markSorted(columns []ColumnDescriptor, field documents.Field, descending bool) {
	active := -1
	for i := range columns {
		if columns[i].Sortable && columns[i].Field == field {
			active = i
			break
		}
	}
	for i := range columns {
		if i == active {
			columns[i].IsSorted = true
			columns[i].IsSortedDescending = descending
			continue
		}
		columns[i].IsSorted = false
		columns[i].IsSortedDescending = true
	}
}

func cloneColumns(columns []ColumnDescriptor) []ColumnDescriptor {
	out := make([]ColumnDescriptor, len(columns))
	copy(out, columns)
	return out
}
