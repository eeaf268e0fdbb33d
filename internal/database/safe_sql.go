package database

import (
	"fmt"
	"regexp"

	"github.com/nishad/drugrake/internal/models"
)

// AllowedTables is the whitelist of valid table names in the drugrake database.
// Any table name not in this list will be rejected to prevent SQL injection.
var AllowedTables = map[string]bool{
	// Entity tables
	tableDrugs:        true,
	tableSynonyms:     true,
	tableProducts:     true,
	tablePathways:     true,
	tablePathwayDrugs: true,
	tableTargets:      true,
	tableGroups:       true,
	tableInteractions: true,
	tableActions:      true,

	// Derived and system tables
	tablePathwayCounts: true,
	tableStatistics:    true,
}

// ErrInvalidTableName is returned when a table name is not in the whitelist.
var ErrInvalidTableName = fmt.Errorf("invalid table name")

// validIdentifierPattern matches valid SQL identifiers (alphanumeric and underscore).
var validIdentifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ValidateTableName checks if a table name is in the allowed list.
// Returns nil if valid, ErrInvalidTableName otherwise.
func ValidateTableName(table string) error {
	if !AllowedTables[table] {
		return fmt.Errorf("%w: %q", ErrInvalidTableName, table)
	}
	return nil
}

// ValidateIdentifier checks if a string is a valid SQL identifier format.
// Valid format: starts with letter or underscore, followed by alphanumeric or underscore.
func ValidateIdentifier(identifier string) error {
	if identifier == "" {
		return fmt.Errorf("empty identifier")
	}
	if !validIdentifierPattern.MatchString(identifier) {
		return fmt.Errorf("invalid identifier format: %q", identifier)
	}
	return nil
}

// SafeTableName returns the table name if valid, otherwise returns an error.
// Entity table names as used by models.Tables are mapped to their SQL table.
func SafeTableName(table string) (string, error) {
	if table == models.TableGroups {
		table = tableGroups
	}
	if err := ValidateTableName(table); err != nil {
		return "", err
	}
	return table, nil
}
