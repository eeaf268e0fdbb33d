// Package database persists extracted DrugBank tables into SQLite.
package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/nishad/drugrake/internal/models"
)

// SQL table names. Groups live in drug_groups because GROUPS is a keyword.
const (
	tableDrugs         = "drugs"
	tableSynonyms      = "synonyms"
	tableProducts      = "products"
	tablePathways      = "pathways"
	tablePathwayDrugs  = "pathway_drugs"
	tableTargets       = "targets"
	tableGroups        = "drug_groups"
	tableInteractions  = "interactions"
	tableActions       = "actions"
	tablePathwayCounts = "pathway_counts"
	tableStatistics    = "statistics"
)

// DB wraps the SQL database connection
type DB struct {
	*sql.DB
	path string
}

// Initialize creates and configures the database connection
func Initialize(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_timeout=5000&_sync=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = 10000",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA foreign_keys = OFF",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &DB{
		DB:   db,
		path: path,
	}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS drugs (
		drugbank_id TEXT,
		name TEXT,
		type TEXT,
		description TEXT,
		dosage_form TEXT,
		indication TEXT,
		mechanism_of_action TEXT,
		food_interactions TEXT
	);

	CREATE TABLE IF NOT EXISTS synonyms (
		drugbank_id TEXT,
		synonym TEXT
	);

	CREATE TABLE IF NOT EXISTS products (
		drugbank_id TEXT,
		product_name TEXT,
		labeller TEXT,
		ndc_product_code TEXT,
		dosage_form TEXT,
		route TEXT,
		strength TEXT,
		country TEXT,
		source TEXT
	);

	CREATE TABLE IF NOT EXISTS pathways (
		pathway_name TEXT,
		smpdb_id TEXT
	);

	CREATE TABLE IF NOT EXISTS pathway_drugs (
		pathway_name TEXT,
		drugbank_id TEXT,
		smpdb_id TEXT
	);

	CREATE TABLE IF NOT EXISTS targets (
		drugbank_id TEXT,
		target_id TEXT,
		external_id TEXT,
		external_source TEXT,
		polypeptide_name TEXT,
		gene_name TEXT,
		genatlas_id TEXT,
		chromosome_location TEXT,
		cellular_location TEXT
	);

	CREATE TABLE IF NOT EXISTS drug_groups (
		drugbank_id TEXT,
		group_name TEXT
	);

	CREATE TABLE IF NOT EXISTS interactions (
		drugbank_id TEXT,
		other_drugbank_id TEXT,
		description TEXT
	);

	CREATE TABLE IF NOT EXISTS actions (
		drugbank_id TEXT,
		target_id TEXT,
		actions JSON
	);

	CREATE TABLE IF NOT EXISTS pathway_counts (
		drugbank_id TEXT PRIMARY KEY,
		num_pathways INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_drugs_id ON drugs(drugbank_id);
	CREATE INDEX IF NOT EXISTS idx_synonyms_drug ON synonyms(drugbank_id);
	CREATE INDEX IF NOT EXISTS idx_pathway_drugs_drug ON pathway_drugs(drugbank_id);
	CREATE INDEX IF NOT EXISTS idx_targets_drug ON targets(drugbank_id);
	CREATE INDEX IF NOT EXISTS idx_groups_drug ON drug_groups(drugbank_id);

	CREATE TABLE IF NOT EXISTS statistics (
		table_name TEXT PRIMARY KEY,
		row_count INTEGER,
		last_updated TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := db.Exec(schema)
	return err
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// SaveTables replaces the contents of every entity table with tables in a
// single transaction and refreshes the statistics.
func (db *DB) SaveTables(ctx context.Context, tables *models.Tables) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range entityTables {
		// #nosec G201 - table names are constants
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	inserts := []struct {
		table string
		query string
		rows  func(stmt *sql.Stmt) error
	}{
		{tableDrugs, `INSERT INTO drugs VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, func(stmt *sql.Stmt) error {
			for _, d := range tables.Drugs {
				if _, err := stmt.ExecContext(ctx, d.DrugbankID, d.Name, d.Type, d.Description,
					d.DosageForm, d.Indication, d.MechanismOfAction, d.FoodInteractions); err != nil {
					return err
				}
			}
			return nil
		}},
		{tableSynonyms, `INSERT INTO synonyms VALUES (?, ?)`, func(stmt *sql.Stmt) error {
			for _, s := range tables.Synonyms {
				if _, err := stmt.ExecContext(ctx, nullIfEmpty(s.DrugbankID), s.Synonym); err != nil {
					return err
				}
			}
			return nil
		}},
		{tableProducts, `INSERT INTO products VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, func(stmt *sql.Stmt) error {
			for _, p := range tables.Products {
				if _, err := stmt.ExecContext(ctx, nullIfEmpty(p.DrugbankID), p.ProductName, p.Labeller,
					p.NDCProductCode, p.DosageForm, p.Route, p.Strength, p.Country, p.Source); err != nil {
					return err
				}
			}
			return nil
		}},
		{tablePathways, `INSERT INTO pathways VALUES (?, ?)`, func(stmt *sql.Stmt) error {
			for _, p := range tables.Pathways {
				if _, err := stmt.ExecContext(ctx, p.PathwayName, p.SMPDBID); err != nil {
					return err
				}
			}
			return nil
		}},
		{tablePathwayDrugs, `INSERT INTO pathway_drugs VALUES (?, ?, ?)`, func(stmt *sql.Stmt) error {
			for _, l := range tables.PathwayDrugLinks {
				if _, err := stmt.ExecContext(ctx, l.PathwayName, nullIfEmpty(l.DrugbankID), l.SMPDBID); err != nil {
					return err
				}
			}
			return nil
		}},
		{tableTargets, `INSERT INTO targets VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, func(stmt *sql.Stmt) error {
			for _, t := range tables.Targets {
				if _, err := stmt.ExecContext(ctx, nullIfEmpty(t.DrugbankID), t.TargetID, t.ExternalID,
					t.ExternalSource, t.PolypeptideName, t.GeneName, t.GenAtlasID,
					t.ChromosomeLocation, t.CellularLocation); err != nil {
					return err
				}
			}
			return nil
		}},
		{tableGroups, `INSERT INTO drug_groups VALUES (?, ?)`, func(stmt *sql.Stmt) error {
			for _, g := range tables.Groups {
				if _, err := stmt.ExecContext(ctx, nullIfEmpty(g.DrugbankID), g.Group); err != nil {
					return err
				}
			}
			return nil
		}},
		{tableInteractions, `INSERT INTO interactions VALUES (?, ?, ?)`, func(stmt *sql.Stmt) error {
			for _, in := range tables.Interactions {
				if _, err := stmt.ExecContext(ctx, nullIfEmpty(in.DrugbankID), in.OtherDrugbankID, in.Description); err != nil {
					return err
				}
			}
			return nil
		}},
		{tableActions, `INSERT INTO actions VALUES (?, ?, ?)`, func(stmt *sql.Stmt) error {
			for _, a := range tables.Actions {
				actions, err := json.Marshal(a.Actions)
				if err != nil {
					return err
				}
				if _, err := stmt.ExecContext(ctx, nullIfEmpty(a.DrugbankID), a.TargetID, string(actions)); err != nil {
					return err
				}
			}
			return nil
		}},
	}

	for _, ins := range inserts {
		stmt, err := tx.PrepareContext(ctx, ins.query)
		if err != nil {
			return fmt.Errorf("failed to prepare insert into %s: %w", ins.table, err)
		}
		err = ins.rows(stmt)
		stmt.Close()
		if err != nil {
			return fmt.Errorf("failed to insert into %s: %w", ins.table, err)
		}
	}

	if err := updateStatistics(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

// SavePathwayCounts replaces the pathway_counts table.
func (db *DB) SavePathwayCounts(ctx context.Context, counts []models.PathwayCount) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM pathway_counts"); err != nil {
		return fmt.Errorf("failed to clear pathway_counts: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO pathway_counts (drugbank_id, num_pathways) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, c := range counts {
		if _, err := stmt.ExecContext(ctx, c.DrugbankID, c.NumPathways); err != nil {
			return fmt.Errorf("failed to insert count for %s: %w", c.DrugbankID, err)
		}
	}

	if err := updateStatistics(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

// GetPathwayCount returns the stored pathway count of a drug.
func (db *DB) GetPathwayCount(ctx context.Context, drugbankID string) (int, bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT num_pathways FROM pathway_counts WHERE drugbank_id = ?`, drugbankID).Scan(&n)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// LoadPathwayCounts returns all stored pathway counts sorted by drug id.
func (db *DB) LoadPathwayCounts(ctx context.Context) ([]models.PathwayCount, error) {
	rows, err := db.QueryContext(ctx, `SELECT drugbank_id, num_pathways FROM pathway_counts ORDER BY drugbank_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]models.PathwayCount, 0)
	for rows.Next() {
		var c models.PathwayCount
		if err := rows.Scan(&c.DrugbankID, &c.NumPathways); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// CountTable counts rows in a table.
// The table name is validated against the AllowedTables whitelist
// to prevent SQL injection attacks.
func (db *DB) CountTable(table string) (int64, error) {
	safeTable, err := SafeTableName(table)
	if err != nil {
		return 0, fmt.Errorf("CountTable: %w", err)
	}

	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", safeTable)
	err = db.QueryRow(query).Scan(&count)
	return count, err
}

// GetStatistics retrieves cached row counts from the statistics table
func (db *DB) GetStatistics() (map[string]int64, error) {
	stats := make(map[string]int64)

	rows, err := db.Query(`SELECT table_name, row_count FROM statistics`)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	for rows.Next() {
		var tableName string
		var rowCount int64
		if err := rows.Scan(&tableName, &rowCount); err != nil {
			continue
		}
		stats[tableName] = rowCount
	}

	return stats, rows.Err()
}

// Size returns the size of the database file in bytes.
func (db *DB) Size() int64 {
	if stat, err := os.Stat(db.path); err == nil {
		return stat.Size()
	}
	return 0
}

// entityTables are rebuilt wholesale by SaveTables.
var entityTables = []string{
	tableDrugs, tableSynonyms, tableProducts, tablePathways, tablePathwayDrugs,
	tableTargets, tableGroups, tableInteractions, tableActions,
}

// ExportedTables returns the SQL names of every table written by SaveTables
// and SavePathwayCounts.
func ExportedTables() []string {
	return append(append([]string{}, entityTables...), tablePathwayCounts)
}

func updateStatistics(ctx context.Context, tx *sql.Tx) error {
	for _, table := range ExportedTables() {
		var count int64
		// #nosec G201 - table names are from a fixed list, not user input
		if err := tx.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
			return fmt.Errorf("failed to count %s: %w", table, err)
		}
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO statistics (table_name, row_count, last_updated)
			VALUES (?, ?, CURRENT_TIMESTAMP)
		`, table, count)
		if err != nil {
			return fmt.Errorf("failed to update statistics for %s: %w", table, err)
		}
	}
	return nil
}

// nullIfEmpty stores the "" drug id of drugs without a primary id as NULL.
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
