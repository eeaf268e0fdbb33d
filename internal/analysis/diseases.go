package analysis

import (
	"context"
	"strings"

	"github.com/nishad/drugrake/internal/enrichment"
	"github.com/nishad/drugrake/internal/errors"
	"github.com/nishad/drugrake/internal/models"
	"go.uber.org/zap"
)

// NoInfo is the disease value of the row emitted for a gene with no known
// disease.
const NoInfo = "No info"

// GeneFailure records a gene whose lookup failed.
type GeneFailure struct {
	Gene   string            `json:"gene_name"`
	Reason enrichment.Reason `json:"-"`
	Error  string            `json:"error"`
}

// DiseaseReport is the outcome of a per-drug disease enrichment.
type DiseaseReport struct {
	DrugbankID string              `json:"drugbank_id"`
	Genes      []string            `json:"genes"`
	Rows       []models.DiseaseRow `json:"rows"`
	Failures   []GeneFailure       `json:"failures,omitempty"`
}

// TargetGenes returns the distinct non-empty gene names of drugID's targets
// in first-seen order.
func TargetGenes(targets []models.Target, drugID string) []string {
	seen := make(map[string]bool)
	genes := make([]string, 0)
	for _, t := range targets {
		if t.DrugbankID != drugID || t.GeneName == nil {
			continue
		}
		gene := strings.TrimSpace(*t.GeneName)
		if gene == "" || seen[gene] {
			continue
		}
		seen[gene] = true
		genes = append(genes, gene)
	}
	return genes
}

// DiseasesForDrug looks up the diseases of every target gene of drugID.
// Each disease becomes one row; a gene with no diseases gets a single
// NoInfo row. A timed-out lookup is treated as "no diseases" and also
// recorded as a failure. Other failures are recorded and produce no rows.
// Failures never affect the rows of other genes.
func DiseasesForDrug(ctx context.Context, targets []models.Target, drugID string, lookup enrichment.Lookup, logger *zap.Logger) *DiseaseReport {
	if logger == nil {
		logger = zap.NewNop()
	}

	report := &DiseaseReport{
		DrugbankID: drugID,
		Genes:      TargetGenes(targets, drugID),
		Rows:       make([]models.DiseaseRow, 0),
	}
	skips := errors.NewSkipCounter("analysis.DiseasesForDrug")

	for _, gene := range report.Genes {
		res := lookup.Diseases(ctx, gene)

		if !res.OK() {
			report.Failures = append(report.Failures, GeneFailure{
				Gene:   gene,
				Reason: res.Reason(),
				Error:  res.Err.Error(),
			})
			skips.Skip(res.Err, gene)
			if res.Reason() != enrichment.ReasonTimeout {
				continue
			}
		}

		if len(res.Diseases) == 0 {
			report.Rows = append(report.Rows, models.DiseaseRow{DrugbankID: drugID, GeneName: gene, Disease: NoInfo})
			continue
		}
		for _, d := range res.Diseases {
			report.Rows = append(report.Rows, models.DiseaseRow{DrugbankID: drugID, GeneName: gene, Disease: d})
		}
	}

	skips.Report(logger)
	return report
}
