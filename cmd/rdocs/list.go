package main

import (
	"fmt"

	"github.com/ZanzyTHEbar/recent-documents/rdocs/documents"
	"github.com/ZanzyTHEbar/recent-documents/rdocs/listengine"

	"github.com/spf13/cobra"
)

var (
	listFormat string
	listSort   string
	listDesc   bool
	listFilter string
	listSelect []string
	listStats  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the recent documents list",
	Long: `Load the recent documents once, apply the optional filter, sort and
selection, and print the resulting view.

Examples:
  rdocs list
  rdocs list --sort=fileSizeRaw --desc
  rdocs list --filter=report --select=<id>,<id>
  rdocs list --format=json`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listFormat, "format", formatTable, "Output format (table, json)")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Field to sort by (name, dateModifiedValue, fileSizeRaw, ...)")
	listCmd.Flags().BoolVar(&listDesc, "desc", false, "Sort descending")
	listCmd.Flags().StringVar(&listFilter, "filter", "", "Only show documents whose name contains this text")
	listCmd.Flags().StringSliceVar(&listSelect, "select", nil, "Identities of documents to select")
	listCmd.Flags().BoolVar(&listStats, "stats", false, "Print size and age figures for the view")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	surface, err := newConsoleSurface(cmd.OutOrStdout(), cmd.ErrOrStderr(), listFormat)
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), surface)
	if err != nil {
		return err
	}
	defer s.Close()

	if listFilter != "" {
		s.engine.Filter(listFilter)
	}
	if listSort != "" {
		if _, err := s.engine.SortBy(listSort, listDesc); err != nil {
			return err
		}
	}
	if len(listSelect) > 0 {
		if err := s.engine.Select(listSelect); err != nil {
			return err
		}
	}

	surface.Render(s.engine.Snapshot())
	if listStats {
		surface.Notify(formatStats(s.engine.Stats()))
	}
	return nil
}

func formatStats(st listengine.ViewStats) string {
	if st.Count == 0 {
		return "No documents"
	}
	return fmt.Sprintf("%d documents, %d KB total, %.1f KB average, modified %s to %s",
		st.Count, st.TotalSizeKB, st.MeanSizeKB,
		documents.FormatDate(st.Oldest), documents.FormatDate(st.Newest))
}
