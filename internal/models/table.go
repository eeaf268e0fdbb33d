package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Table is a rendered view of one extracted table: column names in
// insertion order and string cells in row order. Absent values render as "".
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Table names accepted by Tables.Table.
const (
	TableDrugs            = "drugs"
	TableSynonyms         = "synonyms"
	TableProducts         = "products"
	TablePathways         = "pathways"
	TablePathwayDrugLinks = "pathway_drugs"
	TableTargets          = "targets"
	TableGroups           = "groups"
	TableInteractions     = "interactions"
	TableActions          = "actions"
)

// TableNames returns all table names in extraction order.
func TableNames() []string {
	return []string{
		TableDrugs, TableSynonyms, TableProducts, TablePathways, TablePathwayDrugLinks,
		TableTargets, TableGroups, TableInteractions, TableActions,
	}
}

// Table renders the named table. drugID, when non-empty, keeps only rows
// belonging to that drug. The pathways table has no drug column and
// rejects a drug filter; use pathway_drugs instead.
func (t *Tables) Table(name, drugID string) (*Table, error) {
	out := &Table{Name: name}
	keep := func(id string) bool { return drugID == "" || id == drugID }

	switch name {
	case TableDrugs:
		out.Columns = []string{"drugbank_id", "name", "type", "description", "dosage_form",
			"indication", "mechanism_of_action", "food_interactions"}
		for _, d := range t.Drugs {
			if keep(Deref(d.DrugbankID)) {
				out.Rows = append(out.Rows, []string{Deref(d.DrugbankID), Deref(d.Name), Deref(d.Type),
					Deref(d.Description), Deref(d.DosageForm), Deref(d.Indication),
					Deref(d.MechanismOfAction), d.FoodInteractions})
			}
		}
	case TableSynonyms:
		out.Columns = []string{"drugbank_id", "synonym"}
		for _, s := range t.Synonyms {
			if keep(s.DrugbankID) {
				out.Rows = append(out.Rows, []string{s.DrugbankID, s.Synonym})
			}
		}
	case TableProducts:
		out.Columns = []string{"drugbank_id", "product_name", "labeller", "ndc_product_code",
			"dosage_form", "route", "strength", "country", "source"}
		for _, p := range t.Products {
			if keep(p.DrugbankID) {
				out.Rows = append(out.Rows, []string{p.DrugbankID, Deref(p.ProductName), Deref(p.Labeller),
					Deref(p.NDCProductCode), Deref(p.DosageForm), Deref(p.Route), Deref(p.Strength),
					Deref(p.Country), Deref(p.Source)})
			}
		}
	case TablePathways:
		if drugID != "" {
			return nil, fmt.Errorf("table %q has no drug column; filter %q instead", TablePathways, TablePathwayDrugLinks)
		}
		out.Columns = []string{"pathway_name", "smpdb_id"}
		for _, p := range t.Pathways {
			out.Rows = append(out.Rows, []string{Deref(p.PathwayName), Deref(p.SMPDBID)})
		}
	case TablePathwayDrugLinks:
		out.Columns = []string{"pathway_name", "drugbank_id", "smpdb_id"}
		for _, l := range t.PathwayDrugLinks {
			if keep(l.DrugbankID) {
				out.Rows = append(out.Rows, []string{Deref(l.PathwayName), l.DrugbankID, Deref(l.SMPDBID)})
			}
		}
	case TableTargets:
		out.Columns = []string{"drugbank_id", "target_id", "external_id", "external_source",
			"polypeptide_name", "gene_name", "genatlas_id", "chromosome_location", "cellular_location"}
		for _, tg := range t.Targets {
			if keep(tg.DrugbankID) {
				out.Rows = append(out.Rows, []string{tg.DrugbankID, Deref(tg.TargetID), Deref(tg.ExternalID),
					Deref(tg.ExternalSource), Deref(tg.PolypeptideName), Deref(tg.GeneName),
					Deref(tg.GenAtlasID), Deref(tg.ChromosomeLocation), Deref(tg.CellularLocation)})
			}
		}
	case TableGroups:
		out.Columns = []string{"drugbank_id", "group"}
		for _, g := range t.Groups {
			if keep(g.DrugbankID) {
				out.Rows = append(out.Rows, []string{g.DrugbankID, g.Group})
			}
		}
	case TableInteractions:
		out.Columns = []string{"drugbank_id", "other_drugbank_id", "description"}
		for _, in := range t.Interactions {
			if keep(in.DrugbankID) {
				out.Rows = append(out.Rows, []string{in.DrugbankID, Deref(in.OtherDrugbankID), Deref(in.Description)})
			}
		}
	case TableActions:
		out.Columns = []string{"drugbank_id", "target_id", "actions"}
		for _, a := range t.Actions {
			if keep(a.DrugbankID) {
				out.Rows = append(out.Rows, []string{a.DrugbankID, Deref(a.TargetID), strings.Join(a.Actions, "; ")})
			}
		}
	default:
		names := TableNames()
		sort.Strings(names)
		return nil, fmt.Errorf("unknown table %q (available: %s)", name, strings.Join(names, ", "))
	}
	return out, nil
}

// Counts returns the number of rows in every table keyed by table name.
func (t *Tables) Counts() map[string]int {
	return map[string]int{
		TableDrugs:            len(t.Drugs),
		TableSynonyms:         len(t.Synonyms),
		TableProducts:         len(t.Products),
		TablePathways:         len(t.Pathways),
		TablePathwayDrugLinks: len(t.PathwayDrugLinks),
		TableTargets:          len(t.Targets),
		TableGroups:           len(t.Groups),
		TableInteractions:     len(t.Interactions),
		TableActions:          len(t.Actions),
	}
}

// PathwayCountTable renders per-drug pathway counts.
func PathwayCountTable(counts []PathwayCount) *Table {
	out := &Table{Name: "pathway_counts", Columns: []string{"drugbank_id", "num_pathways"}}
	for _, c := range counts {
		out.Rows = append(out.Rows, []string{c.DrugbankID, strconv.Itoa(c.NumPathways)})
	}
	return out
}

// DiseaseTable renders disease enrichment rows.
func DiseaseTable(rows []DiseaseRow) *Table {
	out := &Table{Name: "diseases", Columns: []string{"drugbank_id", "gene_name", "disease"}}
	for _, r := range rows {
		out.Rows = append(out.Rows, []string{r.DrugbankID, r.GeneName, r.Disease})
	}
	return out
}
