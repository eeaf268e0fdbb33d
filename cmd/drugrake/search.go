package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/nishad/drugrake/internal/search"
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the full-text search index",
	Long: `Index every drug with a primary id: name, synonyms, groups, description
and indication. Re-running updates documents in place.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search drugs by name, synonym or text",
	Long: `Search the full-text index built by "drugrake index". The query uses
Bleve query string syntax, so field scoped queries such as groups:approved
or drugbank_id:DB00001 work.`,
	Example: `  drugrake search cetuximab
  drugrake search "thrombocytopenia" --limit 5
  drugrake search "+groups:approved -groups:withdrawn" --facets`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var (
	indexPath    string
	searchLimit  int
	searchFormat string
	searchFacets bool
)

func init() {
	indexCmd.Flags().StringVar(&indexPath, "index-path", "", "Path to search index (default: config search.index_path)")

	searchCmd.Flags().StringVar(&indexPath, "index-path", "", "Path to search index (default: config search.index_path)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 0, "Maximum results to return (default: config search.default_limit)")
	searchCmd.Flags().StringVarP(&searchFormat, "format", "f", formatTable, "Output format (table|json)")
	searchCmd.Flags().BoolVar(&searchFacets, "facets", false, "Show counts by drug group")
}

func resolveIndexPath() string {
	if indexPath != "" {
		return indexPath
	}
	return cfg.Search.IndexPath
}

func runIndex(cmd *cobra.Command, args []string) error {
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}
	tables, err := loadTables()
	if err != nil {
		return err
	}

	path := resolveIndexPath()
	printInfo("Indexing into %s", path)
	idx, n, err := search.BuildIndex(path, tables)
	if err != nil {
		return err
	}
	defer idx.Close()

	total, err := idx.GetDocCount()
	if err != nil {
		return err
	}
	printSuccess("Indexed %d drugs (%d documents in index)", n, total)
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	path := resolveIndexPath()
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no index at %s, run \"drugrake index\" first", path)
	}

	idx, err := search.InitBleveIndex(path)
	if err != nil {
		return err
	}
	defer idx.Close()

	limit := searchLimit
	if limit <= 0 {
		limit = cfg.Search.DefaultLimit
	}
	res, err := idx.Search(strings.Join(args, " "), limit)
	if err != nil {
		return err
	}

	if searchFormat == formatJSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}

	if len(res.Hits) == 0 {
		printWarning("No drugs match %q", res.Query)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DRUGBANK_ID\tNAME\tSCORE")
	for _, h := range res.Hits {
		fmt.Fprintf(w, "%s\t%s\t%.3f\n", h.DrugbankID, h.Name, h.Score)
	}
	w.Flush()
	printInfo("%d of %d matches", len(res.Hits), res.Total)

	if searchFacets && len(res.Groups) > 0 {
		groups := make([]string, 0, len(res.Groups))
		for g := range res.Groups {
			groups = append(groups, g)
		}
		sort.Strings(groups)
		fmt.Println()
		fmt.Println(colorize(colorBold, "Groups:"))
		for _, g := range groups {
			fmt.Printf("  %-16s %d\n", g, res.Groups[g])
		}
	}
	return nil
}
