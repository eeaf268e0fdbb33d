package processor

import (
	"strings"

	"github.com/nishad/drugrake/internal/models"
	"github.com/nishad/drugrake/internal/parser"
)

// ExtractDrugs returns one row per <drug> element, including drugs that have
// no primary drugbank-id.
func ExtractDrugs(root *parser.Node) []models.Drug {
	drugs := make([]models.Drug, 0)
	for _, drug := range root.Elements(tagDrug) {
		drugs = append(drugs, extractDrugData(drug))
	}
	return drugs
}

func extractDrugData(drug *parser.Node) models.Drug {
	food := texts(drug.FindAll(tagFoodInteractions, tagFoodInteraction))

	return models.Drug{
		DrugbankID:        primaryID(drug),
		Name:              drug.ChildText(tagName),
		Type:              drug.AttrPtr("type"),
		Description:       drug.ChildText(tagDescription),
		DosageForm:        drug.ChildText(tagDosageForm),
		Indication:        drug.ChildText(tagIndication),
		MechanismOfAction: drug.ChildText(tagMechanismOfAction),
		FoodInteractions:  strings.Join(food, FoodInteractionSeparator),
	}
}
