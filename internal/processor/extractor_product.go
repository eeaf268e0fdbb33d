package processor

import (
	"github.com/nishad/drugrake/internal/models"
	"github.com/nishad/drugrake/internal/parser"
)

// ExtractProducts returns one row per marketed product
func ExtractProducts(root *parser.Node) []models.Product {
	products := make([]models.Product, 0)
	for _, drug := range root.Elements(tagDrug) {
		id := drugKey(drug)
		for _, p := range drug.FindAll(tagProducts, tagProduct) {
			products = append(products, models.Product{
				DrugbankID:     id,
				ProductName:    p.ChildText(tagName),
				Labeller:       p.ChildText(tagLabeller),
				NDCProductCode: p.ChildText(tagNDCProductCode),
				DosageForm:     p.ChildText(tagDosageForm),
				Route:          p.ChildText(tagRoute),
				Strength:       p.ChildText(tagStrength),
				Country:        p.ChildText(tagCountry),
				Source:         p.ChildText(tagSource),
			})
		}
	}
	return products
}
