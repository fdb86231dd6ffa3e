package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BarNest/internal/engine"
	"github.com/piwi3910/BarNest/internal/export"
	"github.com/piwi3910/BarNest/internal/importer"
	"github.com/piwi3910/BarNest/internal/model"
	"github.com/piwi3910/BarNest/internal/project"
)

var nestFlags struct {
	cutsPath     string
	stockPath    string
	presetName   string
	presetQty    int
	kerf         float64
	stockLengths []float64

	pdfPath    string
	zipPath    string
	labelsPath string
	dxfPath    string
	savePath   string

	name     string
	location string
	person   string
	supplier string
	order    string
	drawing  string
	revision string
	material string
}

var nestCmd = &cobra.Command{
	Use:   "nest",
	Short: "Nest a cut list onto stock bars",
	Long: `Nest reads a required-cuts table (CSV or Excel) and packs the cuts
onto stock bars. Without a stock source it nests against the standard
stock length catalog with unlimited supply per length. With --stock it
nests against the given inventory of bars, depleting it as bars are
consumed; --preset does the same with bars drawn from a saved stock
preset instead of a file.`,
	RunE: runNest,
}

func init() {
	f := nestCmd.Flags()
	f.StringVarP(&nestFlags.cutsPath, "cuts", "c", "", "required cuts file (.csv or .xlsx)")
	f.StringVarP(&nestFlags.stockPath, "stock", "s", "", "stock inventory file; switches to from-stock mode")
	f.StringVar(&nestFlags.presetName, "preset", "", "named stock preset to draw bars from; switches to from-stock mode")
	f.IntVar(&nestFlags.presetQty, "preset-qty", 1, "number of bars available from the preset")
	f.Float64VarP(&nestFlags.kerf, "kerf", "k", -1, "saw kerf in mm (default from config)")
	f.Float64SliceVar(&nestFlags.stockLengths, "stock-lengths", nil, "catalog stock lengths in mm (default from config)")

	f.StringVar(&nestFlags.pdfPath, "pdf", "", "write consolidated PDF report to this path")
	f.StringVar(&nestFlags.zipPath, "zip", "", "write per-tag PDF bundle (ZIP) to this path")
	f.StringVar(&nestFlags.labelsPath, "labels", "", "write QR cut labels PDF to this path")
	f.StringVar(&nestFlags.dxfPath, "dxf", "", "write cut layout DXF drawing to this path")
	f.StringVar(&nestFlags.savePath, "save", "", "save the project (JSON) to this path")

	f.StringVar(&nestFlags.name, "name", "", "project name")
	f.StringVar(&nestFlags.location, "location", "", "site or workshop location")
	f.StringVar(&nestFlags.person, "person", "", "person cutting")
	f.StringVar(&nestFlags.supplier, "supplier", "", "steel supplier")
	f.StringVar(&nestFlags.order, "order", "", "order number")
	f.StringVar(&nestFlags.drawing, "drawing", "", "drawing number")
	f.StringVar(&nestFlags.revision, "revision", "", "drawing revision")
	f.StringVar(&nestFlags.material, "material", "", "material description")

	nestCmd.MarkFlagRequired("cuts")
}

func runNest(cmd *cobra.Command, args []string) error {
	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return err
	}

	settings := model.DefaultSettings()
	config.ApplyToSettings(&settings)
	if nestFlags.kerf >= 0 {
		settings.Kerf = nestFlags.kerf
	}
	if len(nestFlags.stockLengths) > 0 {
		settings.StockLengths = nestFlags.stockLengths
	}

	reqs, err := loadCuts(nestFlags.cutsPath, cmd)
	if err != nil {
		return err
	}

	var stock []model.StockUnit
	switch {
	case nestFlags.stockPath != "" && nestFlags.presetName != "":
		return fmt.Errorf("--stock and --preset are mutually exclusive")
	case nestFlags.stockPath != "":
		settings.Mode = model.ModeFromStock
		stock, err = loadStock(nestFlags.stockPath, cmd)
		if err != nil {
			return err
		}
	case nestFlags.presetName != "":
		settings.Mode = model.ModeFromStock
		presets, _, err := project.LoadOrCreatePresets()
		if err != nil {
			return err
		}
		stock, err = stockFromPreset(presets, nestFlags.presetName, nestFlags.presetQty)
		if err != nil {
			return err
		}
	}

	planner := engine.New(settings)
	plan, rejections, err := planner.Plan(reqs, stock)
	printRejections(cmd, rejections)
	if err != nil {
		return err
	}

	stats, overall := engine.Summarize(plan, reqs)

	proj := buildProject(reqs, stock, settings)
	proj.Plan = &plan
	proj.Stats = stats

	printPlan(cmd, plan)
	printStats(cmd, stats, overall)

	if err := writeOutputs(cmd, proj, plan); err != nil {
		return err
	}

	if nestFlags.savePath != "" {
		if err := project.SaveProject(nestFlags.savePath, proj); err != nil {
			return err
		}
		project.AddRecentProject(&config, nestFlags.savePath)
		if err := project.SaveAppConfig(project.DefaultConfigPath(), config); err != nil {
			return err
		}
		cmd.Printf("Project saved to %s\n", nestFlags.savePath)
	}
	return nil
}

func buildProject(reqs []model.CutRequirement, stock []model.StockUnit, settings model.NestSettings) model.Project {
	name := nestFlags.name
	if name == "" {
		base := filepath.Base(nestFlags.cutsPath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	proj := model.NewProject(name)
	proj.Requirements = reqs
	proj.Stock = stock
	proj.Settings = settings
	proj.Meta.Location = nestFlags.location
	proj.Meta.PersonCutting = nestFlags.person
	proj.Meta.Supplier = nestFlags.supplier
	proj.Meta.OrderNumber = nestFlags.order
	proj.Meta.DrawingNumber = nestFlags.drawing
	proj.Meta.Revision = nestFlags.revision
	proj.Meta.Material = nestFlags.material
	return proj
}

func loadCuts(path string, cmd *cobra.Command) ([]model.CutRequirement, error) {
	var result importer.CutImportResult
	if isExcel(path) {
		result = importer.ImportCutsExcel(path)
	} else {
		result = importer.ImportCutsCSV(path)
	}
	for _, w := range result.Warnings {
		cmd.PrintErrln("Warning:", w)
	}
	for _, e := range result.Errors {
		cmd.PrintErrln("Skipped:", e)
	}
	if len(result.Requirements) == 0 {
		return nil, fmt.Errorf("no usable cut rows in %s", path)
	}
	return result.Requirements, nil
}

func loadStock(path string, cmd *cobra.Command) ([]model.StockUnit, error) {
	var result importer.StockImportResult
	if isExcel(path) {
		result = importer.ImportStockExcel(path)
	} else {
		result = importer.ImportStockCSV(path)
	}
	for _, w := range result.Warnings {
		cmd.PrintErrln("Warning:", w)
	}
	for _, e := range result.Errors {
		cmd.PrintErrln("Skipped:", e)
	}
	if len(result.Units) == 0 {
		return nil, fmt.Errorf("no usable stock rows in %s", path)
	}
	return result.Units, nil
}

// stockFromPreset expands a saved stock preset, looked up by name or ID,
// into qty individual bars.
func stockFromPreset(presets model.Presets, name string, qty int) ([]model.StockUnit, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("preset quantity must be positive")
	}
	preset := presets.FindStockByName(name)
	if preset == nil {
		preset = presets.FindStockByID(name)
	}
	if preset == nil {
		return nil, fmt.Errorf("unknown stock preset %q (have: %s)",
			name, strings.Join(presets.StockNames(), ", "))
	}
	return preset.ToStockUnits(qty), nil
}

func isExcel(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".xlsx" || ext == ".xlsm"
}

func printRejections(cmd *cobra.Command, rejections []model.Rejection) {
	for _, r := range rejections {
		cmd.PrintErrf("Skipped requirement %q (%.0f mm x %d): %s\n",
			r.Requirement.Tag, r.Requirement.Length, r.Requirement.Quantity, r.Reason)
	}
}

func printPlan(cmd *cobra.Command, plan model.NestingPlan) {
	cmd.Println()
	cmd.Println("Cut Layout")
	cmd.Println("----------")
	for i, bar := range plan.Bars {
		label := fmt.Sprintf("Bar %d", i+1)
		if bar.StockLabel != "" {
			label = fmt.Sprintf("Bar %d (%s)", i+1, bar.StockLabel)
		}
		cuts := make([]string, 0, len(bar.Placements))
		for _, p := range bar.Placements {
			cuts = append(cuts, fmt.Sprintf("%s %.0f", p.Item.Tag, p.Item.Length))
		}
		cmd.Printf("%s  %.0f mm: [%s]  waste %.0f mm (%.1f%% used)\n",
			label, bar.Length, strings.Join(cuts, " | "), bar.Leftover, bar.Utilization())
	}
	if len(plan.Unmet) > 0 {
		cmd.Println()
		cmd.Println("Unmet Demand")
		for _, u := range plan.Unmet {
			cmd.Printf("  %s %.0f mm: %s\n", u.Item.Tag, u.Item.Length, u.Reason)
		}
	}
}

func printStats(cmd *cobra.Command, stats []model.SummaryStat, overall model.SummaryStat) {
	cmd.Println()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Tag\tBars\tCuts\tCut Len (mm)\tKerf (mm)\tWaste (mm)\tUtil %\tMeters\tCost")
	for _, s := range stats {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.0f\t%.1f\t%.1f\t%.1f\t%.2f\t%.2f\n",
			s.Tag, s.BarsUsed, s.CutsPlaced, s.ProductLength, s.KerfLoss, s.Waste,
			s.Utilization, s.MetersOrdered, s.TotalCost)
	}
	fmt.Fprintf(w, "TOTAL\t%d\t%d\t%.0f\t%.1f\t%.1f\t%.1f\t%.2f\t%.2f\n",
		overall.BarsUsed, overall.CutsPlaced, overall.ProductLength, overall.KerfLoss,
		overall.Waste, overall.Utilization, overall.MetersOrdered, overall.TotalCost)
	w.Flush()
	if overall.UnmetCount > 0 {
		cmd.Printf("\nWARNING: %d cuts (%.0f mm) could not be placed\n",
			overall.UnmetCount, overall.UnmetLength)
	}
}

func writeOutputs(cmd *cobra.Command, proj model.Project, plan model.NestingPlan) error {
	if nestFlags.pdfPath != "" {
		if err := export.ExportPDF(nestFlags.pdfPath, proj); err != nil {
			return fmt.Errorf("pdf export: %w", err)
		}
		cmd.Printf("PDF report written to %s\n", nestFlags.pdfPath)
	}
	if nestFlags.zipPath != "" {
		if err := export.ExportPerTagZIP(nestFlags.zipPath, proj); err != nil {
			return fmt.Errorf("zip export: %w", err)
		}
		cmd.Printf("Per-tag PDF bundle written to %s\n", nestFlags.zipPath)
	}
	if nestFlags.labelsPath != "" {
		if err := export.ExportLabels(nestFlags.labelsPath, plan); err != nil {
			return fmt.Errorf("labels export: %w", err)
		}
		cmd.Printf("Labels written to %s\n", nestFlags.labelsPath)
	}
	if nestFlags.dxfPath != "" {
		if err := export.ExportDXF(nestFlags.dxfPath, plan); err != nil {
			return fmt.Errorf("dxf export: %w", err)
		}
		cmd.Printf("DXF drawing written to %s\n", nestFlags.dxfPath)
	}
	return nil
}
