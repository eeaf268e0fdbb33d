package processor

import (
	"github.com/nishad/drugrake/internal/models"
	"github.com/nishad/drugrake/internal/parser"
)

// ExtractGroups returns one row per group membership
func ExtractGroups(root *parser.Node) []models.Group {
	groups := make([]models.Group, 0)
	for _, drug := range root.Elements(tagDrug) {
		id := drugKey(drug)
		for _, g := range drug.FindAll(tagGroups, tagGroup) {
			groups = append(groups, models.Group{DrugbankID: id, Group: g.TextContent()})
		}
	}
	return groups
}
