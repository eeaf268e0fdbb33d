package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/nishad/drugrake/internal/analysis"
	"github.com/nishad/drugrake/internal/database"
	"github.com/nishad/drugrake/internal/models"
	"github.com/nishad/drugrake/internal/service"
	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables <table>",
	Short: "Print one extracted table",
	Long: `Extract the source document and print one table.

Tables: ` + strings.Join(models.TableNames(), ", "),
	Example: `  drugrake tables drugs
  drugrake tables synonyms --drug DB00001
  drugrake tables targets --format csv --output targets.csv`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: models.TableNames(),
	RunE:      runTables,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show table sizes and aggregate counts",
	Long: `Show the number of rows in every table together with the aggregate
queries: unique pathways, drugs with pathways and drugs that are approved
and not withdrawn.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var pathwaysCmd = &cobra.Command{
	Use:   "pathways",
	Short: "Count distinct pathways per drug",
	Long: `Count the distinct pathways each drug participates in. With --drug the
answer comes from the same lookup the server uses, including its
"Drug not found" result.

With --db the counts are read from a database written by "drugrake export"
instead of extracting the source document.`,
	Example: `  drugrake pathways
  drugrake pathways --drug DB00001
  drugrake pathways --db ./drugbank.db --drug DB00001`,
	Args: cobra.NoArgs,
	RunE: runPathways,
}

var (
	tablesFormat string
	tablesDrug   string
	tablesOutput string
	statsFormat  string

	pathwaysDrug   string
	pathwaysFormat string
	pathwaysDB     string
)

func init() {
	tablesCmd.Flags().StringVarP(&tablesFormat, "format", "f", formatTable, "Output format (table|csv|tsv|json)")
	tablesCmd.Flags().StringVarP(&tablesDrug, "drug", "d", "", "Only rows of this drugbank id (not for the pathways table)")
	tablesCmd.Flags().StringVarP(&tablesOutput, "output", "o", "", "Write to file instead of stdout")

	statsCmd.Flags().StringVarP(&statsFormat, "format", "f", formatTable, "Output format (table|json)")

	pathwaysCmd.Flags().StringVarP(&pathwaysDrug, "drug", "d", "", "Look up a single drug")
	pathwaysCmd.Flags().StringVarP(&pathwaysFormat, "format", "f", formatTable, "Output format (table|csv|tsv|json)")
	pathwaysCmd.Flags().StringVar(&pathwaysDB, "db", "", "Read counts from an exported database")
}

func runTables(cmd *cobra.Command, args []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}

	t, err := tables.Table(args[0], tablesDrug)
	if err != nil {
		return err
	}

	w, closeFn, err := outputWriter(tablesOutput)
	if err != nil {
		return err
	}
	if err := writeTable(w, t, tablesFormat); err != nil {
		discardClose(closeFn, tablesOutput)
		return err
	}
	if err := closeFn(); err != nil {
		return err
	}
	if tablesOutput != "" {
		printSuccess("Wrote %d rows to %s", len(t.Rows), tablesOutput)
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}
	summary := analysis.Summarize(tables)

	if statsFormat == formatJSON {
		return writeJSON(cmd.OutOrStdout(), summary)
	}

	printInfo("Source: %s", summary.Source)
	printRule()

	names := models.TableNames()
	width := 0
	for _, n := range names {
		width = max(width, len(n))
	}
	for _, n := range names {
		fmt.Printf("  %-*s %s\n", width+1, n+":", colorize(colorBold, fmt.Sprint(summary.RowCounts[n])))
	}

	fmt.Println()
	fmt.Printf("  Unique pathways:             %d\n", summary.UniquePathways)
	fmt.Printf("  Drugs with pathways:         %d\n", summary.DrugsWithPathways)
	fmt.Printf("  Approved and not withdrawn:  %d\n", summary.ApprovedNonWithdrawn)
	if summary.MissingPrimaryIDs > 0 {
		printWarning("%d drugs have no primary drugbank-id", summary.MissingPrimaryIDs)
	}

	if verbose {
		groups := make(map[string]int)
		for _, g := range tables.Groups {
			groups[g.Group]++
		}
		keys := make([]string, 0, len(groups))
		for k := range groups {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Println()
		fmt.Println(colorize(colorBold, "Groups:"))
		for _, k := range keys {
			fmt.Printf("  %-16s %d\n", k, groups[k])
		}
	}
	return nil
}

func runPathways(cmd *cobra.Command, args []string) error {
	if pathwaysDB != "" {
		return runStoredPathways(cmd)
	}

	tables, err := loadTables()
	if err != nil {
		return err
	}
	counts := analysis.CountPathwaysPerDrug(tables.PathwayDrugLinks)

	if pathwaysDrug == "" {
		return writeTable(cmd.OutOrStdout(), models.PathwayCountTable(counts), pathwaysFormat)
	}
	res := service.NewPathwayService(service.NewSnapshot(counts, tables.Source), logger).Lookup(pathwaysDrug)
	return printLookup(cmd, res)
}

func runStoredPathways(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if pathwaysDrug == "" {
		counts, err := storedPathwayCounts(ctx, pathwaysDB)
		if err != nil {
			return err
		}
		return writeTable(cmd.OutOrStdout(), models.PathwayCountTable(counts), pathwaysFormat)
	}

	res, err := lookupStored(ctx, pathwaysDB, pathwaysDrug)
	if err != nil {
		return err
	}
	return printLookup(cmd, res)
}

func printLookup(cmd *cobra.Command, res service.LookupResult) error {
	if pathwaysFormat == formatJSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	if !res.Found {
		printWarning("%s: %s", res.DrugbankID, res.Message())
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", res.DrugbankID, res.Message())
	return nil
}

// openExported opens a database written by export. It never creates one.
func openExported(path string) (*database.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no exported database at %s (run drugrake export): %w", path, err)
	}
	return database.Initialize(path)
}

// storedPathwayCounts reads every per-drug count from an exported database.
func storedPathwayCounts(ctx context.Context, path string) ([]models.PathwayCount, error) {
	db, err := openExported(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.LoadPathwayCounts(ctx)
}

// lookupStored answers one lookup from an exported database with the same
// result shape as the in-memory snapshot.
func lookupStored(ctx context.Context, path, id string) (service.LookupResult, error) {
	db, err := openExported(path)
	if err != nil {
		return service.LookupResult{}, err
	}
	defer db.Close()

	id = strings.TrimSpace(id)
	n, ok, err := db.GetPathwayCount(ctx, id)
	if err != nil {
		return service.LookupResult{}, fmt.Errorf("failed to look up %s: %w", id, err)
	}
	return service.LookupResult{DrugbankID: id, NumPathways: n, Found: ok}, nil
}
