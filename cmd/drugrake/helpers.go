package main

import (
	"fmt"
	"os"

	"github.com/nishad/drugrake/internal/errors"
	"github.com/nishad/drugrake/internal/models"
	"github.com/nishad/drugrake/internal/parser"
	"github.com/nishad/drugrake/internal/processor"
	"github.com/nishad/drugrake/internal/ui"
)

// Color codes for terminal output
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// Check if output is to terminal
func isTerminal() bool {
	fileInfo, _ := os.Stdout.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// Apply color if terminal output and color enabled
func colorize(color, text string) string {
	if !noColor && isTerminal() && os.Getenv("NO_COLOR") == "" {
		return color + text + colorReset
	}
	return text
}

// Print error message in user-friendly format
func printError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s %s\n", colorize(colorRed, "✗"), msg)
}

// Print success message
func printSuccess(format string, args ...interface{}) {
	if !quiet {
		msg := fmt.Sprintf(format, args...)
		fmt.Printf("%s %s\n", colorize(colorGreen, "✓"), msg)
	}
}

// Print info message
func printInfo(format string, args ...interface{}) {
	if !quiet {
		msg := fmt.Sprintf(format, args...)
		fmt.Printf("%s\n", colorize(colorCyan, msg))
	}
}

// Print warning message
func printWarning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s %s\n", colorize(colorYellow, "⚠"), msg)
}

// Print debug message
func printDebug(format string, args ...interface{}) {
	if debug {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(os.Stderr, "%s %s\n", colorize(colorGray, "[DEBUG]"), msg)
	}
}

func printRule() {
	if !quiet {
		fmt.Println(colorize(colorGray, "────────────────────────────────────────"))
	}
}

// loadDocument parses the configured source document.
func loadDocument() (*parser.Document, error) {
	printDebug("loading %s", cfg.Source)
	var doc *parser.Document
	load := func() error {
		var err error
		doc, err = parser.Load(cfg.Source)
		return err
	}
	var err error
	if quiet {
		err = load()
	} else {
		err = ui.Run(os.Stderr, "Parsing "+cfg.Source, load)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", cfg.Source, err)
	}
	return doc, nil
}

// loadTables parses the configured source and extracts every table.
func loadTables() (*models.Tables, error) {
	doc, err := loadDocument()
	if err != nil {
		return nil, err
	}
	tables := processor.NewExtractor(logger).Extract(doc)
	printDebug("extracted %d drugs", len(tables.Drugs))
	return tables, nil
}

// outputWriter returns stdout, or the named file created fresh.
func outputWriter(path string) (*os.File, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, f.Close, nil
}

// discardClose closes an output after a failed write. The write error is
// the one reported.
func discardClose(closeFn func() error, path string) {
	errors.IgnoreError(logger, closeFn(), "close "+path+" after failed write")
}
