package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BarNest/internal/model"
	"github.com/piwi3910/BarNest/internal/project"
)

var estimateFlags struct {
	cutsPath    string
	stockLength float64
	kerf        float64
	waste       float64
	cost        float64
}

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Quick bar purchase estimate for a cut list",
	Long: `Estimate sizes a stock order without running a full nesting pass:
total cut length plus a pessimistic one-kerf-per-cut allowance, divided
by the stock length, with a waste factor on top.`,
	RunE: runEstimate,
}

func init() {
	f := estimateCmd.Flags()
	f.StringVarP(&estimateFlags.cutsPath, "cuts", "c", "", "required cuts file (.csv or .xlsx)")
	f.Float64VarP(&estimateFlags.stockLength, "stock-length", "l", 0, "stock bar length in mm")
	f.Float64VarP(&estimateFlags.kerf, "kerf", "k", -1, "saw kerf in mm (default from config)")
	f.Float64VarP(&estimateFlags.waste, "waste", "w", 10, "waste factor percent added to the order")
	f.Float64Var(&estimateFlags.cost, "cost", 0, "stock cost per metre")

	estimateCmd.MarkFlagRequired("cuts")
	estimateCmd.MarkFlagRequired("stock-length")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return err
	}
	kerf := estimateFlags.kerf
	if kerf < 0 {
		kerf = config.DefaultKerf
	}

	reqs, err := loadCuts(estimateFlags.cutsPath, cmd)
	if err != nil {
		return err
	}

	est := model.CalculatePurchaseEstimate(reqs,
		estimateFlags.stockLength, kerf, estimateFlags.waste, estimateFlags.cost)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Total cut length\t%.0f mm\n", est.TotalCutLength)
	fmt.Fprintf(w, "Kerf allowance\t%.0f mm\n", est.KerfAllowance)
	fmt.Fprintf(w, "Stock length\t%.0f mm\n", est.StockLength)
	fmt.Fprintf(w, "Bars needed (minimum)\t%d\n", est.BarsNeededMin)
	fmt.Fprintf(w, "Bars to order (+%.0f%% waste)\t%d\n", est.WastePercent, est.BarsWithWaste)
	fmt.Fprintf(w, "Meters to order\t%.2f m\n", est.MetersOrdered)
	if est.CostPerMeter > 0 {
		fmt.Fprintf(w, "Estimated cost\t%.2f\n", est.EstimatedCost)
	}
	return w.Flush()
}
