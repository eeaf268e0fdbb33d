package processor

import (
	"time"

	"github.com/nishad/drugrake/internal/parser"
)

var ns = parser.DrugBank

// Qualified DrugBank element names used by the extractors
var (
	tagDrug                = ns.Name("drug")
	tagDrugbankID          = ns.Name("drugbank-id")
	tagName                = ns.Name("name")
	tagDescription         = ns.Name("description")
	tagDosageForm          = ns.Name("dosage-form")
	tagIndication          = ns.Name("indication")
	tagMechanismOfAction   = ns.Name("mechanism-of-action")
	tagFoodInteractions    = ns.Name("food-interactions")
	tagFoodInteraction     = ns.Name("food-interaction")
	tagSynonyms            = ns.Name("synonyms")
	tagSynonym             = ns.Name("synonym")
	tagProducts            = ns.Name("products")
	tagProduct             = ns.Name("product")
	tagLabeller            = ns.Name("labeller")
	tagNDCProductCode      = ns.Name("ndc-product-code")
	tagRoute               = ns.Name("route")
	tagStrength            = ns.Name("strength")
	tagCountry             = ns.Name("country")
	tagSource              = ns.Name("source")
	tagPathways            = ns.Name("pathways")
	tagPathway             = ns.Name("pathway")
	tagSMPDBID             = ns.Name("smpdb-id")
	tagDrugs               = ns.Name("drugs")
	tagTargets             = ns.Name("targets")
	tagTarget              = ns.Name("target")
	tagID                  = ns.Name("id")
	tagPolypeptide         = ns.Name("polypeptide")
	tagGeneName            = ns.Name("gene-name")
	tagChromosomeLocation  = ns.Name("chromosome-location")
	tagCellularLocation    = ns.Name("cellular-location")
	tagExternalIdentifiers = ns.Name("external-identifiers")
	tagExternalIdentifier  = ns.Name("external-identifier")
	tagResource            = ns.Name("resource")
	tagIdentifier          = ns.Name("identifier")
	tagActions             = ns.Name("actions")
	tagAction              = ns.Name("action")
	tagGroups              = ns.Name("groups")
	tagGroup               = ns.Name("group")
	tagDrugInteractions    = ns.Name("drug-interactions")
	tagDrugInteraction     = ns.Name("drug-interaction")
)

// GenAtlasResource is the external-identifier resource whose identifier
// populates Target.GenAtlasID.
const GenAtlasResource = "GenAtlas"

// FoodInteractionSeparator joins a drug's food interactions into one column.
const FoodInteractionSeparator = "; "

// ExtractionStats tracks extraction statistics
type ExtractionStats struct {
	DrugsProcessed   int
	TablesExtracted  int
	RowCounts        map[string]int
	MissingPrimaryID int
	StartTime        time.Time
	Duration         time.Duration
}
