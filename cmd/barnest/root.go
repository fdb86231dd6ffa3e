package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "barnest",
	Short: "Steel bar nesting planner",
	Long: `BarNest packs required cuts onto steel stock bars.

It nests a cut list against either a catalog of standard stock lengths
(when stock has not been purchased yet) or a countable inventory of bars
on hand, charging the saw kerf between consecutive cuts. The planner is
deterministic: the same input always produces the same plan.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(nestCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(backupCmd)
}
