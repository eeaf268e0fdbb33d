package testutil

import "github.com/nishad/drugrake/internal/models"

// SampleTables returns a small in-memory table bundle mirroring the
// relationships of testdata/drugbank_sample.xml.
func SampleTables() *models.Tables {
	s := models.Str
	return &models.Tables{
		Source: "memory",
		Drugs: []models.Drug{
			{DrugbankID: s("DB00001"), Name: s("Lepirudin"), Type: s("biotech"),
				Description: s("Lepirudin is a recombinant hirudin."),
				Indication:  s("For the treatment of heparin-induced thrombocytopenia.")},
			{DrugbankID: s("DB00002"), Name: s("Cetuximab"), Type: s("biotech"),
				Description: s("Cetuximab is a chimeric monoclonal antibody.")},
			{DrugbankID: s("DB00003"), Name: s("Dornase alfa"), Type: s("biotech")},
		},
		Synonyms: []models.Synonym{
			{DrugbankID: "DB00001", Synonym: "Hirudin variant-1"},
			{DrugbankID: "DB00001", Synonym: "Desulfatohirudin"},
			{DrugbankID: "DB00002", Synonym: "Cetuximabum"},
		},
		Products: []models.Product{
			{DrugbankID: "DB00001", ProductName: s("Refludan"), Labeller: s("Bayer"), Country: s("US")},
		},
		Pathways: []models.Pathway{
			{PathwayName: s("Lepirudin Action Pathway"), SMPDBID: s("SMP0000278")},
			{PathwayName: s("Cetuximab Action Pathway"), SMPDBID: s("SMP0000474")},
		},
		PathwayDrugLinks: []models.PathwayDrugLink{
			{PathwayName: s("Lepirudin Action Pathway"), DrugbankID: "DB00001", SMPDBID: s("SMP0000278")},
			{PathwayName: s("Lepirudin Action Pathway"), DrugbankID: "DB00002", SMPDBID: s("SMP0000278")},
			{PathwayName: s("Lepirudin Action Pathway"), DrugbankID: "DB00001", SMPDBID: s("SMP0000278")},
			{PathwayName: s("Cetuximab Action Pathway"), DrugbankID: "DB00002", SMPDBID: s("SMP0000474")},
		},
		Targets: []models.Target{
			{DrugbankID: "DB00001", TargetID: s("BE0000048"), ExternalID: s("P00734"),
				ExternalSource: s("Swiss-Prot"), PolypeptideName: s("Prothrombin"), GeneName: s("F2")},
			{DrugbankID: "DB00002", TargetID: s("BE0000767"), ExternalID: s("P00533"),
				ExternalSource: s("Swiss-Prot"), GeneName: s("EGFR")},
		},
		Groups: []models.Group{
			{DrugbankID: "DB00001", Group: "approved"},
			{DrugbankID: "DB00001", Group: "withdrawn"},
			{DrugbankID: "DB00002", Group: "approved"},
			{DrugbankID: "DB00003", Group: "approved"},
			{DrugbankID: "DB00003", Group: "investigational"},
		},
		Interactions: []models.Interaction{
			{DrugbankID: "DB00001", OtherDrugbankID: s("DB00002"), Description: s("Bleeding risk.")},
			{DrugbankID: "DB00002", OtherDrugbankID: s("DB00001"), Description: s("Bleeding risk.")},
			{DrugbankID: "DB00002", OtherDrugbankID: s("DB00003")},
		},
		Actions: []models.Action{
			{DrugbankID: "DB00001", TargetID: s("BE0000048"), Actions: []string{"inhibitor"}},
			{DrugbankID: "DB00002", TargetID: s("BE0000767"), Actions: []string{"antagonist", "inhibitor"}},
		},
	}
}
