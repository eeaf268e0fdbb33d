package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nishad/drugrake/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testTables() *models.Tables {
	s := models.Str
	return &models.Tables{
		Drugs: []models.Drug{
			{DrugbankID: s("DB00001"), Name: s("Lepirudin"), Type: s("biotech"), FoodInteractions: "a; b"},
			{Name: s("Unmarked Compound")},
		},
		Synonyms: []models.Synonym{{DrugbankID: "DB00001", Synonym: "Hirudin variant-1"}},
		Products: []models.Product{{DrugbankID: "DB00001", ProductName: s("Refludan")}},
		Pathways: []models.Pathway{{PathwayName: s("Lepirudin Action Pathway"), SMPDBID: s("SMP0000278")}},
		PathwayDrugLinks: []models.PathwayDrugLink{
			{PathwayName: s("Lepirudin Action Pathway"), DrugbankID: "DB00001", SMPDBID: s("SMP0000278")},
			{PathwayName: s("Lepirudin Action Pathway"), DrugbankID: "DB00001", SMPDBID: s("SMP0000278")},
		},
		Targets: []models.Target{{DrugbankID: "DB00001", TargetID: s("BE0000048"), GeneName: s("F2")}},
		Groups: []models.Group{
			{DrugbankID: "DB00001", Group: "approved"},
			{DrugbankID: "", Group: "investigational"},
		},
		Interactions: []models.Interaction{{DrugbankID: "DB00001", OtherDrugbankID: s("DB00002")}},
		Actions: []models.Action{
			{DrugbankID: "DB00001", TargetID: s("BE0000048"), Actions: []string{"inhibitor"}},
			{DrugbankID: "DB00001", TargetID: s("BE0000901"), Actions: []string{}},
		},
	}
}

func TestSaveTables(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.SaveTables(ctx, testTables()); err != nil {
		t.Fatalf("SaveTables failed: %v", err)
	}

	want := map[string]int64{
		"drugs": 2, "synonyms": 1, "products": 1, "pathways": 1, "pathway_drugs": 2,
		"targets": 1, "groups": 2, "interactions": 1, "actions": 2,
	}
	for table, n := range want {
		got, err := db.CountTable(table)
		if err != nil {
			t.Fatalf("CountTable(%s) failed: %v", table, err)
		}
		if got != n {
			t.Errorf("CountTable(%s) = %d, want %d", table, got, n)
		}
	}

	var nullIDs int
	if err := db.QueryRow(`SELECT COUNT(*) FROM drugs WHERE drugbank_id IS NULL`).Scan(&nullIDs); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if nullIDs != 1 {
		t.Errorf("expected 1 drug with NULL id, got %d", nullIDs)
	}

	var actions string
	if err := db.QueryRow(`SELECT actions FROM actions WHERE target_id = 'BE0000901'`).Scan(&actions); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if actions != "[]" {
		t.Errorf("expected empty JSON list, got %s", actions)
	}

	var dosage *string
	if err := db.QueryRow(`SELECT dosage_form FROM drugs WHERE drugbank_id = 'DB00001'`).Scan(&dosage); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if dosage != nil {
		t.Errorf("expected NULL dosage_form, got %q", *dosage)
	}
}

func TestSaveTablesReplacesContents(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.SaveTables(ctx, testTables()); err != nil {
		t.Fatalf("first SaveTables failed: %v", err)
	}
	if err := db.SaveTables(ctx, testTables()); err != nil {
		t.Fatalf("second SaveTables failed: %v", err)
	}

	n, err := db.CountTable("drugs")
	if err != nil {
		t.Fatalf("CountTable failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected wholesale rebuild with 2 drugs, got %d", n)
	}

	stats, err := db.GetStatistics()
	if err != nil {
		t.Fatalf("GetStatistics failed: %v", err)
	}
	if stats["drugs"] != 2 || stats["drug_groups"] != 2 {
		t.Errorf("unexpected statistics: %v", stats)
	}
}

func TestPathwayCounts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	counts := []models.PathwayCount{
		{DrugbankID: "DB00001", NumPathways: 1},
		{DrugbankID: "DB00002", NumPathways: 2},
	}
	if err := db.SavePathwayCounts(ctx, counts); err != nil {
		t.Fatalf("SavePathwayCounts failed: %v", err)
	}

	n, ok, err := db.GetPathwayCount(ctx, "DB00002")
	if err != nil || !ok || n != 2 {
		t.Errorf("GetPathwayCount(DB00002) = %d, %v, %v; want 2, true, nil", n, ok, err)
	}

	_, ok, err = db.GetPathwayCount(ctx, "DB99999")
	if err != nil || ok {
		t.Errorf("GetPathwayCount(DB99999) = %v, %v; want false, nil", ok, err)
	}

	loaded, err := db.LoadPathwayCounts(ctx)
	if err != nil {
		t.Fatalf("LoadPathwayCounts failed: %v", err)
	}
	if len(loaded) != 2 || loaded[1] != counts[1] {
		t.Errorf("LoadPathwayCounts = %v, want %v", loaded, counts)
	}
}

func TestCountTableRejectsUnknownTable(t *testing.T) {
	db := setupTestDB(t)
	if _, err := db.CountTable("sqlite_master"); err == nil {
		t.Error("expected error for table outside whitelist")
	}
}

func TestStatisticsCoverExportedTables(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.SaveTables(ctx, testTables()); err != nil {
		t.Fatalf("SaveTables failed: %v", err)
	}
	if err := db.SavePathwayCounts(ctx, []models.PathwayCount{{DrugbankID: "DB00001", NumPathways: 1}}); err != nil {
		t.Fatalf("SavePathwayCounts failed: %v", err)
	}

	stats, err := db.GetStatistics()
	if err != nil {
		t.Fatalf("GetStatistics failed: %v", err)
	}
	for _, table := range ExportedTables() {
		if _, ok := stats[table]; !ok {
			t.Errorf("no statistics for %s", table)
		}
	}
	if stats["drug_groups"] != 2 {
		t.Errorf("drug_groups = %d, want 2", stats["drug_groups"])
	}
	if stats["pathway_counts"] != 1 {
		t.Errorf("pathway_counts = %d, want 1", stats["pathway_counts"])
	}
}
