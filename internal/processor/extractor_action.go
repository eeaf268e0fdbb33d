package processor

import (
	"github.com/nishad/drugrake/internal/models"
	"github.com/nishad/drugrake/internal/parser"
)

// ExtractActions returns one row per target, with or without a polypeptide.
// A target without <actions> gets an empty, non-nil list.
func ExtractActions(root *parser.Node) []models.Action {
	actions := make([]models.Action, 0)
	for _, drug := range root.Elements(tagDrug) {
		id := drugKey(drug)
		for _, t := range drug.FindAll(tagTargets, tagTarget) {
			actions = append(actions, models.Action{
				DrugbankID: id,
				TargetID:   t.ChildText(tagID),
				Actions:    texts(t.FindAll(tagActions, tagAction)),
			})
		}
	}
	return actions
}
