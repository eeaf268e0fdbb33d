// Package models defines the relational records projected from a DrugBank
// document. Optional single-valued fields are pointers (nil when the source
// element is absent); repeated fields are slices that extractors never leave nil.
package models

// Drug represents one <drug> element
type Drug struct {
	DrugbankID        *string `json:"drugbank_id" db:"drugbank_id"` // nil when no id is marked primary
	Name              *string `json:"name" db:"name"`
	Type              *string `json:"type" db:"type"`
	Description       *string `json:"description" db:"description"`
	DosageForm        *string `json:"dosage_form" db:"dosage_form"`
	Indication        *string `json:"indication" db:"indication"`
	MechanismOfAction *string `json:"mechanism_of_action" db:"mechanism_of_action"`
	FoodInteractions  string  `json:"food_interactions" db:"food_interactions"` // "; " joined
}

// Synonym links a drug to one of its synonyms
type Synonym struct {
	DrugbankID string `json:"drugbank_id" db:"drugbank_id"`
	Synonym    string `json:"synonym" db:"synonym"`
}

// Product is a marketed product of a drug
type Product struct {
	DrugbankID     string  `json:"drugbank_id" db:"drugbank_id"`
	ProductName    *string `json:"product_name" db:"product_name"`
	Labeller       *string `json:"labeller" db:"labeller"`
	NDCProductCode *string `json:"ndc_product_code" db:"ndc_product_code"`
	DosageForm     *string `json:"dosage_form" db:"dosage_form"`
	Route          *string `json:"route" db:"route"`
	Strength       *string `json:"strength" db:"strength"`
	Country        *string `json:"country" db:"country"`
	Source         *string `json:"source" db:"source"`
}

// Pathway is one <pathway> occurrence. Names are not unique identifiers;
// SMPDBID is the stable external id.
type Pathway struct {
	PathwayName *string `json:"pathway_name" db:"pathway_name"`
	SMPDBID     *string `json:"smpdb_id" db:"smpdb_id"`
}

// PathwayDrugLink resolves the many-to-many between pathways and drugs
type PathwayDrugLink struct {
	PathwayName *string `json:"pathway_name" db:"pathway_name"`
	DrugbankID  string  `json:"drugbank_id" db:"drugbank_id"`
	SMPDBID     *string `json:"smpdb_id" db:"smpdb_id"`
}

// Target is a drug target that carries a polypeptide
type Target struct {
	DrugbankID         string  `json:"drugbank_id" db:"drugbank_id"`
	TargetID           *string `json:"target_id" db:"target_id"`
	ExternalID         *string `json:"external_id" db:"external_id"`
	ExternalSource     *string `json:"external_source" db:"external_source"`
	PolypeptideName    *string `json:"polypeptide_name" db:"polypeptide_name"`
	GeneName           *string `json:"gene_name" db:"gene_name"`
	GenAtlasID         *string `json:"genatlas_id" db:"genatlas_id"`
	ChromosomeLocation *string `json:"chromosome_location" db:"chromosome_location"`
	CellularLocation   *string `json:"cellular_location" db:"cellular_location"`
}

// Group is one group membership of a drug (approved, withdrawn, ...)
type Group struct {
	DrugbankID string `json:"drugbank_id" db:"drugbank_id"`
	Group      string `json:"group" db:"group"`
}

// Interaction is a drug-drug interaction
type Interaction struct {
	DrugbankID      string  `json:"drugbank_id" db:"drugbank_id"`
	OtherDrugbankID *string `json:"other_drugbank_id" db:"other_drugbank_id"`
	Description     *string `json:"description" db:"description"`
}

// Action lists the actions of a drug on one target
type Action struct {
	DrugbankID string   `json:"drugbank_id" db:"drugbank_id"`
	TargetID   *string  `json:"target_id" db:"target_id"`
	Actions    []string `json:"actions" db:"actions"`
}

// PathwayCount is the number of distinct pathways a drug participates in
type PathwayCount struct {
	DrugbankID  string `json:"drugbank_id" db:"drugbank_id"`
	NumPathways int    `json:"num_pathways" db:"num_pathways"`
}

// DiseaseRow associates a drug, through a target gene, with a disease
type DiseaseRow struct {
	DrugbankID string `json:"drugbank_id"`
	GeneName   string `json:"gene_name"`
	Disease    string `json:"disease"`
}

// Tables holds every table extracted from one load of a document.
// It is never mutated after extraction.
type Tables struct {
	Source           string            `json:"source,omitempty"`
	Drugs            []Drug            `json:"drugs"`
	Synonyms         []Synonym         `json:"synonyms"`
	Products         []Product         `json:"products"`
	Pathways         []Pathway         `json:"pathways"`
	PathwayDrugLinks []PathwayDrugLink `json:"pathway_drug_links"`
	Targets          []Target          `json:"targets"`
	Groups           []Group           `json:"groups"`
	Interactions     []Interaction     `json:"interactions"`
	Actions          []Action          `json:"actions"`
}

// Str returns a pointer to s.
func Str(s string) *string {
	return &s
}

// Deref returns the pointed-to string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
