// Package testutil provides testing utilities for drugrake packages.
// It includes fixture lookup, temporary files, and in-memory tables.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// Fixture documents under the repository's testdata directory.
const (
	SampleFixture  = "drugbank_sample.xml"
	PartialFixture = "drugbank_partial.xml"
)

// FixturePath returns the absolute path of a file in the repository's
// testdata directory, failing the test when it does not exist.
func FixturePath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot resolve testutil source location")
	}
	path := filepath.Join(filepath.Dir(file), "..", "..", "testdata", name)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("fixture %s: %v", name, err)
	}
	return path
}

// TempDir creates a temporary directory for tests.
// It returns the path and a cleanup function.
func TempDir(t *testing.T) (string, func()) {
	t.Helper()
	dir, err := os.MkdirTemp("", "drugrake-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	return dir, func() {
		os.RemoveAll(dir)
	}
}

// TempFile creates a temporary file with the given content.
// It returns the path and a cleanup function.
func TempFile(t *testing.T, name, content string) (string, func()) {
	t.Helper()
	dir, cleanup := TempDir(t)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		cleanup()
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path, cleanup
}

// SkipIfShort skips the test if running in short mode.
func SkipIfShort(t *testing.T, reason string) {
	t.Helper()
	if testing.Short() {
		t.Skipf("skipping in short mode: %s", reason)
	}
}

// DrugBankXML wraps drug elements in a namespaced <drugbank> root.
func DrugBankXML(drugs ...string) string {
	doc := `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<drugbank xmlns="http://www.drugbank.ca" version="5.1">` + "\n"
	for _, d := range drugs {
		doc += d + "\n"
	}
	return doc + "</drugbank>\n"
}
