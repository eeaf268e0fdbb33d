package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "drugrake"

type Paths struct {
	ConfigDir string
	DataDir   string
	CacheDir  string
	StateDir  string
}

// GetPaths returns all base paths respecting environment variables
func GetPaths() Paths {
	return Paths{
		ConfigDir: getDir("DRUGRAKE_CONFIG_HOME", "XDG_CONFIG_HOME", ".config", appName),
		DataDir:   getDir("DRUGRAKE_DATA_HOME", "XDG_DATA_HOME", ".local/share", appName),
		CacheDir:  getDir("DRUGRAKE_CACHE_HOME", "XDG_CACHE_HOME", ".cache", appName),
		StateDir:  getDir("DRUGRAKE_STATE_HOME", "XDG_STATE_HOME", ".local/state", appName),
	}
}

func getDir(appEnv, xdgEnv, defaultBase, app string) string {
	// 1. Check app-specific env
	if dir := os.Getenv(appEnv); dir != "" {
		return dir
	}

	// 2. Check XDG env
	if xdgBase := os.Getenv(xdgEnv); xdgBase != "" {
		return filepath.Join(xdgBase, app)
	}

	// 3. Use default
	home, _ := os.UserHomeDir()
	return filepath.Join(home, defaultBase, app)
}

// GetSourcePath returns the path of the DrugBank document
func GetSourcePath() string {
	if path := os.Getenv("DRUGRAKE_SOURCE"); path != "" {
		return path
	}
	return filepath.Join(GetPaths().DataDir, "drugbank.xml")
}

// GetDatabasePath returns the path to the SQLite export
func GetDatabasePath() string {
	if path := os.Getenv("DRUGRAKE_DB_PATH"); path != "" {
		return path
	}
	return filepath.Join(GetPaths().DataDir, appName+".db")
}

// GetIndexPath returns the path to the search index
// Default: adjacent to database for easy backup/migration
func GetIndexPath() string {
	if path := os.Getenv("DRUGRAKE_INDEX_PATH"); path != "" {
		return path
	}

	dbPath := GetDatabasePath()
	dir := filepath.Dir(dbPath)
	dbName := filepath.Base(dbPath)
	dbNameNoExt := dbName[:len(dbName)-len(filepath.Ext(dbName))]

	// Return path like: /data/drugrake.bleve (next to drugrake.db)
	return filepath.Join(dir, dbNameNoExt+".bleve")
}

// GetGeneratedPath returns the default output path of the synthetic
// document generator
func GetGeneratedPath() string {
	return filepath.Join(GetPaths().DataDir, "drugbank_generated.xml")
}

// EnsureDirectories creates all necessary directories
func EnsureDirectories() error {
	paths := GetPaths()
	dirs := []string{
		paths.ConfigDir,
		paths.DataDir,
		paths.CacheDir,
		paths.StateDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
