package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nishad/drugrake/internal/analysis"
	"github.com/nishad/drugrake/internal/enrichment"
	"github.com/nishad/drugrake/internal/models"
	"github.com/spf13/cobra"
)

var diseasesCmd = &cobra.Command{
	Use:   "diseases <drugbank-id>",
	Short: "Diseases associated with a drug's target genes",
	Long: `Look up every target gene of a drug in UniProtKB and list the diseases
annotated on the human protein. A gene without annotations yields one
"No info" row. Lookups are rate limited (enrichment.min_delay) and a
failed lookup is reported without affecting the other genes.`,
	Example: `  drugrake diseases DB00001
  drugrake diseases DB00002 --format json --min-delay 0`,
	Args: cobra.ExactArgs(1),
	RunE: runDiseases,
}

var (
	diseasesFormat   string
	diseasesMinDelay time.Duration
	diseasesTimeout  time.Duration
)

func init() {
	diseasesCmd.Flags().StringVarP(&diseasesFormat, "format", "f", formatTable, "Output format (table|csv|tsv|json)")
	diseasesCmd.Flags().DurationVar(&diseasesMinDelay, "min-delay", -1, "Minimum delay between requests (default: config)")
	diseasesCmd.Flags().DurationVar(&diseasesTimeout, "timeout", 0, "Per-request timeout (default: config)")
}

func runDiseases(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tables, err := loadTables()
	if err != nil {
		return err
	}

	opts := cfg.EnrichmentOptions()
	if diseasesMinDelay >= 0 {
		opts.MinDelay = diseasesMinDelay
	}
	if diseasesTimeout > 0 {
		opts.Timeout = diseasesTimeout
	}
	opts.Logger = logger

	client, err := enrichment.NewClient(opts)
	if err != nil {
		return err
	}
	defer client.Close()

	drugID := args[0]
	report := analysis.DiseasesForDrug(ctx, tables.Targets, drugID, client, logger)

	if diseasesFormat == formatJSON {
		return writeJSON(cmd.OutOrStdout(), report)
	}

	if len(report.Genes) == 0 {
		printWarning("%s has no target genes", drugID)
		return nil
	}
	if err := writeTable(cmd.OutOrStdout(), models.DiseaseTable(report.Rows), diseasesFormat); err != nil {
		return err
	}
	for _, f := range report.Failures {
		printWarning("%s: %s", f.Gene, f.Error)
	}
	return nil
}
