package processor

import (
	"github.com/nishad/drugrake/internal/models"
	"github.com/nishad/drugrake/internal/parser"
)

// ExtractInteractions returns one row per drug-drug interaction
func ExtractInteractions(root *parser.Node) []models.Interaction {
	interactions := make([]models.Interaction, 0)
	for _, drug := range root.Elements(tagDrug) {
		id := drugKey(drug)
		for _, in := range drug.FindAll(tagDrugInteractions, tagDrugInteraction) {
			interactions = append(interactions, models.Interaction{
				DrugbankID:      id,
				OtherDrugbankID: in.ChildText(tagDrugbankID),
				Description:     in.ChildText(tagDescription),
			})
		}
	}
	return interactions
}
