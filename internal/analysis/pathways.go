// Package analysis holds the aggregate queries computed over extracted
// tables. None of them look at the XML tree.
package analysis

import (
	"sort"

	"github.com/nishad/drugrake/internal/models"
)

// CountUniquePathways returns the number of distinct pathway names.
// Rows without a name are ignored.
func CountUniquePathways(pathways []models.Pathway) int {
	names := make(map[string]struct{}, len(pathways))
	for _, p := range pathways {
		if p.PathwayName != nil {
			names[*p.PathwayName] = struct{}{}
		}
	}
	return len(names)
}

// CountPathwaysPerDrug counts distinct pathway names per drug. It returns
// one row per drug id present in links, sorted by id. Links of drugs
// without an id are skipped; a drug whose links all lack a pathway name is
// kept with a count of zero.
func CountPathwaysPerDrug(links []models.PathwayDrugLink) []models.PathwayCount {
	perDrug := make(map[string]map[string]struct{})
	for _, l := range links {
		if l.DrugbankID == "" {
			continue
		}
		names, ok := perDrug[l.DrugbankID]
		if !ok {
			names = make(map[string]struct{})
			perDrug[l.DrugbankID] = names
		}
		if l.PathwayName != nil {
			names[*l.PathwayName] = struct{}{}
		}
	}

	counts := make([]models.PathwayCount, 0, len(perDrug))
	for id, names := range perDrug {
		counts = append(counts, models.PathwayCount{DrugbankID: id, NumPathways: len(names)})
	}
	sort.Slice(counts, func(i, j int) bool {
		return counts[i].DrugbankID < counts[j].DrugbankID
	})
	return counts
}
