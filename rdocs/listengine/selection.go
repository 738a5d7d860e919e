package listengine

import (
	"fmt"

	"github.com/ZanzyTHEbar/recent-documents/rdocs/documents"

	roaring "github.com/RoaringBitmap/roaring"
	"github.com/armon/go-radix"
)

// SelectionKind classifies how many records are selected.
type SelectionKind int

const (
	SelectionNone SelectionKind = iota
	SelectionSingle
	SelectionMultiple
)

func (k SelectionKind) String() string {
	switch k {
	case SelectionSingle:
		return "single"
	case SelectionMultiple:
		return "multiple"
	default:
		return "none"
	}
}

// SelectionSummary is the status line shown for the current selection.
type SelectionSummary struct {
	Kind   SelectionKind     `json:"kind"`
	Count  int               `json:"count"`
	Record *documents.Record `json:"record,omitempty"` // set only for SelectionSingle
	Text   string            `json:"text"`
}

func (s SelectionSummary) String() string { return s.Text }

func summarize(records []documents.Record, selected *roaring.Bitmap) SelectionSummary {
	count := int(selected.GetCardinality())
	switch count {
	case 0:
		return SelectionSummary{Kind: SelectionNone, Text: "No items selected"}
	case 1:
		r := records[selected.Minimum()]
		return SelectionSummary{
			Kind:   SelectionSingle,
			Count:  1,
			Record: &r,
			Text:   "1 item selected: " + r.Name,
		}
	default:
		return SelectionSummary{
			Kind:  SelectionMultiple,
			Count: count,
			Text:  fmt.Sprintf("%d items selected", count),
		}
	}
}

// identityIndex maps record identities to their canonical positions.
// Identities are not required to be unique.
type identityIndex struct {
	tree *radix.Tree
}

func newIdentityIndex(records []documents.Record) *identityIndex {
	tree := radix.New()
	for i, r := range records {
		var positions []uint32
		if existing, ok := tree.Get(r.Value); ok {
			positions = existing.([]uint32)
		}
		tree.Insert(r.Value, append(positions, uint32(i)))
	}
	return &identityIndex{tree: tree}
}

func (ix *identityIndex) lookup(id string) []uint32 {
	v, ok := ix.tree.Get(id)
	if !ok {
		return nil
	}
	return v.([]uint32)
}
