package analysis

import "github.com/nishad/drugrake/internal/models"

const (
	GroupApproved  = "approved"
	GroupWithdrawn = "withdrawn"
)

// ApprovedAndNonWithdrawnDrugs counts drugs holding the approved group and
// not the withdrawn group. Only drugs present in groups are considered.
// Rows of drugs without a primary id are skipped.
func ApprovedAndNonWithdrawnDrugs(groups []models.Group) int {
	memberships := GroupsByDrug(groups)

	count := 0
	for _, set := range memberships {
		if set[GroupApproved] && !set[GroupWithdrawn] {
			count++
		}
	}
	return count
}

// GroupsByDrug collects the set of group names held by each drug with a
// primary id.
func GroupsByDrug(groups []models.Group) map[string]map[string]bool {
	out := make(map[string]map[string]bool)
	for _, g := range groups {
		if g.DrugbankID == "" {
			continue
		}
		set, ok := out[g.DrugbankID]
		if !ok {
			set = make(map[string]bool)
			out[g.DrugbankID] = set
		}
		set[g.Group] = true
	}
	return out
}
