package listengine

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ViewStats summarizes the visible view.
type ViewStats struct {
	Count       int       `json:"count"`
	TotalSizeKB int64     `json:"totalSizeKB"`
	MeanSizeKB  float64   `json:"meanSizeKB"`
	Newest      time.Time `json:"newest"`
	Oldest      time.Time `json:"oldest"`
}

// Stats computes size and age figures over the visible records.
// An empty view yields the zero value.
func (e *Engine) Stats() ViewStats {
	if len(e.visible) == 0 {
		return ViewStats{}
	}

	sizes := make([]float64, len(e.visible))
	modified := make([]float64, len(e.visible))
	for i, pos := range e.visible {
		r := e.records[pos]
		sizes[i] = float64(r.FileSizeRaw)
		modified[i] = float64(r.DateModifiedValue)
	}

	return ViewStats{
		Count:       len(e.visible),
		TotalSizeKB: int64(floats.Sum(sizes)),
		MeanSizeKB:  stat.Mean(sizes, nil),
		Newest:      time.UnixMilli(int64(floats.Max(modified))),
		Oldest:      time.UnixMilli(int64(floats.Min(modified))),
	}
}
