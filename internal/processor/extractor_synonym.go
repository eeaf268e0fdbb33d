package processor

import (
	"github.com/nishad/drugrake/internal/models"
	"github.com/nishad/drugrake/internal/parser"
)

// ExtractSynonyms returns one row per synonym. A drug without synonyms
// contributes no rows.
func ExtractSynonyms(root *parser.Node) []models.Synonym {
	synonyms := make([]models.Synonym, 0)
	for _, drug := range root.Elements(tagDrug) {
		id := drugKey(drug)
		for _, s := range drug.FindAll(tagSynonyms, tagSynonym) {
			synonyms = append(synonyms, models.Synonym{
				DrugbankID: id,
				Synonym:    s.TextContent(),
			})
		}
	}
	return synonyms
}
