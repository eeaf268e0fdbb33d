package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/nishad/drugrake/internal/analysis"
	"github.com/nishad/drugrake/internal/database"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every table to SQLite",
	Long: `Extract the source document and write all tables plus the per-drug
pathway counts into a SQLite database. Existing contents are replaced.`,
	Example: `  drugrake export
  drugrake export --db ./drugbank.db`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var exportDBPath string

func init() {
	exportCmd.Flags().StringVar(&exportDBPath, "db", "", "Database path (default: config database.path)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if exportDBPath == "" {
		exportDBPath = cfg.Database.Path
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	tables, err := loadTables()
	if err != nil {
		return err
	}

	printInfo("Writing %s", exportDBPath)
	db, err := database.Initialize(exportDBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveTables(ctx, tables); err != nil {
		return fmt.Errorf("failed to save tables: %w", err)
	}
	if err := db.SavePathwayCounts(ctx, analysis.CountPathwaysPerDrug(tables.PathwayDrugLinks)); err != nil {
		return fmt.Errorf("failed to save pathway counts: %w", err)
	}

	stats, err := db.GetStatistics()
	if err != nil {
		return err
	}

	if !quiet {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TABLE\tROWS")
		for _, name := range database.ExportedTables() {
			fmt.Fprintf(w, "%s\t%d\n", name, stats[name])
		}
		w.Flush()
	}
	printSuccess("Exported to %s (%.1f MB)", exportDBPath, float64(db.Size())/(1024*1024))
	return nil
}
