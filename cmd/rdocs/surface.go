package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/ZanzyTHEbar/recent-documents/rdocs/documents"
	"github.com/ZanzyTHEbar/recent-documents/rdocs/listengine"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// consoleSurface renders list views to a terminal.
type consoleSurface struct {
	out    io.Writer
	errOut io.Writer
	format string
}

func newConsoleSurface(out, errOut io.Writer, format string) (*consoleSurface, error) {
	switch format {
	case formatTable, formatJSON:
	default:
		return nil, fmt.Errorf("unknown output format %q (want %s or %s)", format, formatTable, formatJSON)
	}
	return &consoleSurface{out: out, errOut: errOut, format: format}, nil
}

func (s *consoleSurface) Render(view listengine.View) {
	if s.format == formatJSON {
		data, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			s.Error("Could not encode view", err)
			return
		}
		fmt.Fprintln(s.out, string(data))
		return
	}

	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	headers := make([]string, len(view.Columns))
	for i, c := range view.Columns {
		headers[i] = columnHeader(c)
	}
	fmt.Fprintln(w, strings.Join(headers, "\t"))

	for _, r := range view.Records {
		cells := make([]string, len(view.Columns))
		for i, c := range view.Columns {
			cells[i] = cellText(r, c)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()

	if view.FilterText != "" {
		fmt.Fprintf(s.out, "Filter: %q\n", view.FilterText)
	}
	fmt.Fprintln(s.out, view.Selection.Text)
}

func (s *consoleSurface) Notify(message string) {
	fmt.Fprintln(s.out, message)
}

func (s *consoleSurface) Error(message string, err error) {
	if err == nil {
		fmt.Fprintf(s.errOut, "Error: %s\n", message)
		return
	}
	fmt.Fprintf(s.errOut, "Error: %s: %v\n", message, err)
}

func columnHeader(c listengine.ColumnDescriptor) string {
	header := strings.ToUpper(c.Name)
	if c.IsSorted {
		if c.IsSortedDescending {
			return header + " v"
		}
		return header + " ^"
	}
	return header
}

func cellText(r documents.Record, c listengine.ColumnDescriptor) string {
	if c.IconOnly {
		return strings.TrimPrefix(filepath.Ext(r.Name), ".")
	}
	return documents.Text(r, c.DisplayField())
}
