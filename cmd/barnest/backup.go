package main

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/BarNest/internal/project"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or restore application data",
	Long: `Backup moves the application configuration and stock presets in and
out of a single JSON file, for transfer to another machine or plain
safekeeping.`,
}

var backupExportCmd = &cobra.Command{
	Use:   "export <file.json>",
	Short: "Export config and stock presets to a backup file",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupExport,
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Restore config and stock presets from a backup file",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupImport,
}

func init() {
	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
}

func runBackupExport(cmd *cobra.Command, args []string) error {
	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return err
	}
	presets, _, err := project.LoadOrCreatePresets()
	if err != nil {
		return err
	}
	if err := project.ExportAllData(args[0], config, presets); err != nil {
		return err
	}
	cmd.Printf("Backup written to %s\n", args[0])
	return nil
}

func runBackupImport(cmd *cobra.Command, args []string) error {
	backup, err := project.ImportAllData(args[0])
	if err != nil {
		return err
	}
	if err := project.SaveAppConfig(project.DefaultConfigPath(), backup.Config); err != nil {
		return err
	}
	presetsPath, err := project.DefaultPresetsPath()
	if err != nil {
		return err
	}
	if err := project.SavePresets(presetsPath, backup.Presets); err != nil {
		return err
	}
	cmd.Printf("Restored config and %d stock presets from %s\n",
		len(backup.Presets.Stocks), args[0])
	return nil
}
