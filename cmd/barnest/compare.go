package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BarNest/internal/engine"
	"github.com/piwi3910/BarNest/internal/model"
	"github.com/piwi3910/BarNest/internal/project"
)

var compareFlags struct {
	cutsPath     string
	stockPath    string
	kerf         float64
	stockLengths []float64
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare what-if nesting scenarios",
	Long: `Compare runs the nesting planner under several scenarios (current
settings, thinner blade, restricted catalog) and reports bar count,
waste and unmet demand side by side. Each scenario gets its own supply
snapshot, so trials never deplete each other's inventory.`,
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.StringVarP(&compareFlags.cutsPath, "cuts", "c", "", "required cuts file (.csv or .xlsx)")
	f.StringVarP(&compareFlags.stockPath, "stock", "s", "", "stock inventory file; switches to from-stock mode")
	f.Float64VarP(&compareFlags.kerf, "kerf", "k", -1, "saw kerf in mm (default from config)")
	f.Float64SliceVar(&compareFlags.stockLengths, "stock-lengths", nil, "catalog stock lengths in mm (default from config)")

	compareCmd.MarkFlagRequired("cuts")
}

func runCompare(cmd *cobra.Command, args []string) error {
	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return err
	}

	settings := model.DefaultSettings()
	config.ApplyToSettings(&settings)
	if compareFlags.kerf >= 0 {
		settings.Kerf = compareFlags.kerf
	}
	if len(compareFlags.stockLengths) > 0 {
		settings.StockLengths = compareFlags.stockLengths
	}

	reqs, err := loadCuts(compareFlags.cutsPath, cmd)
	if err != nil {
		return err
	}

	var stock []model.StockUnit
	if compareFlags.stockPath != "" {
		settings.Mode = model.ModeFromStock
		stock, err = loadStock(compareFlags.stockPath, cmd)
		if err != nil {
			return err
		}
	}

	scenarios := engine.BuildDefaultScenarios(settings)
	results := engine.CompareScenarios(scenarios, reqs, stock)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Scenario\tBars\tCuts\tWaste %\tUnmet")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", r.Scenario.Name, r.Err)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f\t%d\n",
			r.Scenario.Name, r.BarsUsed, r.CutsPlaced, r.WastePercent, r.UnmetCount)
	}
	return w.Flush()
}
