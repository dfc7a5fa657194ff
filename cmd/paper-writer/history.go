// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-writer/internal/archive"
	"github.com/pdiddy/paper-writer/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List archived runs, or show one run's section sizes",
	Long: `History lists past pipeline runs recorded in the local archive. With a
run ID argument it shows that run's per-section character counts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := viperString("archive.dir", ".paper-writer")
		store, err := archive.Open(types.ArchiveConfig{Dir: dir})
		if err != nil {
			return err
		}
		defer store.Close()

		out := cmd.OutOrStdout()

		if len(args) == 1 {
			runID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid run ID %q: %w", args[0], err)
			}
			sections, err := store.Sections(cmd.Context(), runID)
			if err != nil {
				return err
			}
			if len(sections) == 0 {
				fmt.Fprintf(out, "No sections recorded for run %d.\n", runID)
				return nil
			}
			total := 0
			for _, sec := range sections {
				fmt.Fprintf(out, "%2d  %-24s  %d chars\n", sec.Position+1, sec.Name, sec.Chars)
				total += sec.Chars
			}
			fmt.Fprintf(out, "\nTotal: %d chars across %d sections\n", total, len(sections))
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := store.List(cmd.Context(), limit)
		if err != nil {
			return err
		}
		archive.FormatTable(runs, out)
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list (0 for all)")

	rootCmd.AddCommand(historyCmd)
}
