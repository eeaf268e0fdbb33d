package analysis

import "github.com/nishad/drugrake/internal/models"

// Summary is an overview of one load of a document.
type Summary struct {
	Source               string         `json:"source"`
	RowCounts            map[string]int `json:"row_counts"`
	UniquePathways       int            `json:"unique_pathways"`
	DrugsWithPathways    int            `json:"drugs_with_pathways"`
	ApprovedNonWithdrawn int            `json:"approved_non_withdrawn"`
	MissingPrimaryIDs    int            `json:"missing_primary_ids"`
}

// Summarize computes the aggregate queries over tables.
func Summarize(tables *models.Tables) Summary {
	missing := 0
	for _, d := range tables.Drugs {
		if d.DrugbankID == nil {
			missing++
		}
	}

	return Summary{
		Source:               tables.Source,
		RowCounts:            tables.Counts(),
		UniquePathways:       CountUniquePathways(tables.Pathways),
		DrugsWithPathways:    len(CountPathwaysPerDrug(tables.PathwayDrugLinks)),
		ApprovedNonWithdrawn: ApprovedAndNonWithdrawnDrugs(tables.Groups),
		MissingPrimaryIDs:    missing,
	}
}
