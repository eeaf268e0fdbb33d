package processor

import (
	"github.com/nishad/drugrake/internal/models"
	"github.com/nishad/drugrake/internal/parser"
)

// ExtractTargets returns one row per target that carries a <polypeptide>.
// Targets without one are skipped here but still appear in ExtractActions.
func ExtractTargets(root *parser.Node) []models.Target {
	targets := make([]models.Target, 0)
	for _, drug := range root.Elements(tagDrug) {
		id := drugKey(drug)
		for _, t := range drug.FindAll(tagTargets, tagTarget) {
			poly := t.Child(tagPolypeptide)
			if poly == nil {
				continue
			}
			targets = append(targets, models.Target{
				DrugbankID:         id,
				TargetID:           t.ChildText(tagID),
				ExternalID:         poly.AttrPtr("id"),
				ExternalSource:     poly.AttrPtr("source"),
				PolypeptideName:    poly.ChildText(tagName),
				GeneName:           poly.ChildText(tagGeneName),
				GenAtlasID:         genAtlasID(poly),
				ChromosomeLocation: poly.ChildText(tagChromosomeLocation),
				CellularLocation:   poly.ChildText(tagCellularLocation),
			})
		}
	}
	return targets
}

// genAtlasID returns the identifier of the first external identifier whose
// resource is GenAtlas. Later GenAtlas entries are ignored.
func genAtlasID(poly *parser.Node) *string {
	for _, ext := range poly.FindAll(tagExternalIdentifiers, tagExternalIdentifier) {
		if models.Deref(ext.ChildText(tagResource)) == GenAtlasResource {
			return ext.ChildText(tagIdentifier)
		}
	}
	return nil
}
