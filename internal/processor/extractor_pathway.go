package processor

import (
	"github.com/nishad/drugrake/internal/models"
	"github.com/nishad/drugrake/internal/parser"
)

// ExtractPathways returns one row per <pathway> occurrence. The same pathway
// listed under several drugs appears once per drug.
func ExtractPathways(root *parser.Node) []models.Pathway {
	pathways := make([]models.Pathway, 0)
	for _, drug := range root.Elements(tagDrug) {
		for _, p := range drug.FindAll(tagPathways, tagPathway) {
			pathways = append(pathways, pathwayIdentity(p))
		}
	}
	return pathways
}

// ExtractPathwayDrugLinks walks every pathway of every drug and emits one
// row per drug reference nested in the pathway. Repeated references are
// kept; deduplication happens at query time.
func ExtractPathwayDrugLinks(root *parser.Node) []models.PathwayDrugLink {
	links := make([]models.PathwayDrugLink, 0)
	for _, drug := range root.Elements(tagDrug) {
		for _, p := range drug.FindAll(tagPathways, tagPathway) {
			identity := pathwayIdentity(p)
			for _, ref := range p.FindAll(tagDrugs, tagDrug, tagDrugbankID) {
				links = append(links, models.PathwayDrugLink{
					PathwayName: identity.PathwayName,
					DrugbankID:  ref.TextContent(),
					SMPDBID:     identity.SMPDBID,
				})
			}
		}
	}
	return links
}

// pathwayIdentity is shared by both pathway extractors so a link row always
// agrees with its pathway row on name and smpdb-id.
func pathwayIdentity(p *parser.Node) models.Pathway {
	return models.Pathway{
		PathwayName: p.ChildText(tagName),
		SMPDBID:     p.ChildText(tagSMPDBID),
	}
}
