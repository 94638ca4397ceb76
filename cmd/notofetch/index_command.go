package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"notofetch/internal/catalog"
)

func newIndexCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Rebuild the category index from the stored catalog snapshot",
		Long: "Rebuild _categories.json from an existing _metadata.json without " +
			"touching the network. Useful after hand-pruning the mirror or when " +
			"the index file was lost.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			items, err := catalog.ReadMetadata(cfg.Paths.OutputDir)
			if err != nil {
				return fmt.Errorf("no usable catalog snapshot (run `notofetch sync` first): %w", err)
			}

			index := catalog.BuildIndex(items)
			if err := catalog.WriteIndex(cfg.Paths.OutputDir, index); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Rebuilt category index for %d items\n\n", len(items))
			fmt.Fprintln(out, renderCategoryCounts(index.Counts()))
			return nil
		},
	}
}

func renderCategoryCounts(counts []catalog.CategoryCount) string {
	rows := make([][]string, 0, len(counts))
	for _, count := range counts {
		rows = append(rows, []string{count.Name, strconv.Itoa(count.Count)})
	}
	return renderTable(
		[]string{"Category", "Items"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	)
}
