// Package processor projects a parsed DrugBank document into relational
// tables. Every Extract function is a pure read of the tree and may run
// concurrently with the others.
package processor

import (
	"sync"
	"time"

	"github.com/nishad/drugrake/internal/models"
	"github.com/nishad/drugrake/internal/parser"
	"go.uber.org/zap"
)

// Extractor runs all table extractors over a document and keeps statistics
// about the last run.
type Extractor struct {
	logger *zap.Logger
	stats  ExtractionStats
}

// NewExtractor creates a new extractor. A nil logger disables logging.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// Extract builds every table for doc.
func (e *Extractor) Extract(doc *parser.Document) *models.Tables {
	start := time.Now()
	tables := ExtractAll(doc.Root)
	tables.Source = doc.Path

	missing := 0
	for _, d := range tables.Drugs {
		if d.DrugbankID == nil {
			missing++
		}
	}

	e.stats = ExtractionStats{
		DrugsProcessed:   len(doc.Drugs()),
		TablesExtracted:  len(models.TableNames()),
		RowCounts:        tables.Counts(),
		MissingPrimaryID: missing,
		StartTime:        start,
		Duration:         time.Since(start),
	}

	fields := []zap.Field{
		zap.String("source", doc.Path),
		zap.Int("drugs", e.stats.DrugsProcessed),
		zap.Duration("elapsed", e.stats.Duration),
	}
	for _, name := range models.TableNames() {
		fields = append(fields, zap.Int(name, e.stats.RowCounts[name]))
	}
	e.logger.Info("extraction complete", fields...)
	if missing > 0 {
		e.logger.Warn("drugs without a primary drugbank-id", zap.Int("count", missing))
	}

	return tables
}

// GetStats returns the extraction statistics
func (e *Extractor) GetStats() ExtractionStats {
	return e.stats
}

// ExtractAll runs every extractor over root. The extractors share no state,
// so each one runs in its own goroutine and writes only its own field.
func ExtractAll(root *parser.Node) *models.Tables {
	t := &models.Tables{}

	var wg sync.WaitGroup
	run := func(f func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}

	run(func() { t.Drugs = ExtractDrugs(root) })
	run(func() { t.Synonyms = ExtractSynonyms(root) })
	run(func() { t.Products = ExtractProducts(root) })
	run(func() { t.Pathways = ExtractPathways(root) })
	run(func() { t.PathwayDrugLinks = ExtractPathwayDrugLinks(root) })
	run(func() { t.Targets = ExtractTargets(root) })
	run(func() { t.Groups = ExtractGroups(root) })
	run(func() { t.Interactions = ExtractInteractions(root) })
	run(func() { t.Actions = ExtractActions(root) })

	wg.Wait()
	return t
}

// primaryID returns the text of the drugbank-id marked primary="true".
func primaryID(drug *parser.Node) *string {
	id := drug.ChildWithAttr(tagDrugbankID, "primary", "true")
	if id == nil {
		return nil
	}
	text := id.TextContent()
	return &text
}

// drugKey is primaryID for child tables, where a drug without a primary id
// is keyed by "".
func drugKey(drug *parser.Node) string {
	return models.Deref(primaryID(drug))
}

// texts returns the trimmed text of every node, never nil.
func texts(nodes []*parser.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.TextContent())
	}
	return out
}
