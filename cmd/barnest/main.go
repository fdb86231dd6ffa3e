// BarNest is a 1D nesting planner for steel bar cutting. It packs required
// cuts onto stock bars with a deterministic best-fit heuristic, accounting
// for saw kerf, and produces cutting lists, PDF reports, labels and DXF
// drawings for the workshop.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
