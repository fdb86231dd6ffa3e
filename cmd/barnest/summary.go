package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BarNest/internal/engine"
	"github.com/piwi3910/BarNest/internal/export"
	"github.com/piwi3910/BarNest/internal/project"
)

var summaryFlags struct {
	pdfPath string
}

var summaryCmd = &cobra.Command{
	Use:   "summary <project.json>",
	Short: "Show the saved plan and statistics of a project",
	Long: `Summary loads a saved project file and prints its nesting plan and
per-tag statistics. Statistics are always recomputed from the stored
plan so the table and totals agree with it.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryFlags.pdfPath, "pdf", "", "write consolidated PDF report to this path")
}

func runSummary(cmd *cobra.Command, args []string) error {
	proj, err := project.LoadProject(args[0])
	if err != nil {
		return err
	}
	if proj.Plan == nil {
		return fmt.Errorf("project %q has no saved plan; run nest first", proj.Meta.Name)
	}

	cmd.Printf("Project: %s\n", proj.Meta.Name)
	if proj.Meta.Material != "" {
		cmd.Printf("Material: %s\n", proj.Meta.Material)
	}
	if proj.Meta.Date != "" {
		cmd.Printf("Date: %s\n", proj.Meta.Date)
	}
	cmd.Printf("Kerf: %.1f mm  Mode: %s\n", proj.Settings.Kerf, proj.Settings.Mode)

	// Stored stats may predate the stored plan; recompute both from the
	// plan so the per-tag table and the totals cannot disagree.
	stats, overall := engine.Summarize(*proj.Plan, proj.Requirements)

	printPlan(cmd, *proj.Plan)
	printStats(cmd, stats, overall)

	if summaryFlags.pdfPath != "" {
		if err := export.ExportPDF(summaryFlags.pdfPath, proj); err != nil {
			return fmt.Errorf("pdf export: %w", err)
		}
		cmd.Printf("PDF report written to %s\n", summaryFlags.pdfPath)
	}
	return nil
}
