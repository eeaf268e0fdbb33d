package service

import (
	"time"

	"github.com/nishad/drugrake/internal/analysis"
	"github.com/nishad/drugrake/internal/errors"
	"github.com/nishad/drugrake/internal/models"
	"github.com/nishad/drugrake/internal/parser"
	"github.com/nishad/drugrake/internal/processor"
	"go.uber.org/zap"
)

// Snapshot is an immutable table of per-drug pathway counts. It is safe
// for concurrent readers without locking.
type Snapshot struct {
	counts  map[string]int
	source  string
	builtAt time.Time
	summary *analysis.Summary
}

// NewSnapshot copies counts into a new snapshot.
func NewSnapshot(counts []models.PathwayCount, source string) *Snapshot {
	m := make(map[string]int, len(counts))
	for _, c := range counts {
		m[c.DrugbankID] = c.NumPathways
	}
	return &Snapshot{
		counts:  m,
		source:  source,
		builtAt: time.Now(),
	}
}

// BuildSnapshot loads the document at path and computes the pathway counts
// of every drug.
func BuildSnapshot(path string, logger *zap.Logger) (*Snapshot, error) {
	const op errors.Op = "service.BuildSnapshot"

	doc, err := parser.Load(path)
	if err != nil {
		return nil, errors.Wrap(op, err)
	}

	tables := processor.NewExtractor(logger).Extract(doc)
	snap := NewSnapshot(analysis.CountPathwaysPerDrug(tables.PathwayDrugLinks), path)
	summary := analysis.Summarize(tables)
	snap.summary = &summary
	return snap, nil
}

// Lookup returns the pathway count of id.
func (s *Snapshot) Lookup(id string) (int, bool) {
	n, ok := s.counts[id]
	return n, ok
}

// Len returns the number of drugs in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.counts)
}

// Source returns the document the snapshot was built from.
func (s *Snapshot) Source() string {
	return s.source
}

// BuiltAt returns the snapshot's creation time.
func (s *Snapshot) BuiltAt() time.Time {
	return s.builtAt
}

// Summary returns the aggregate summary of the document, if the snapshot
// was built from one.
func (s *Snapshot) Summary() (analysis.Summary, bool) {
	if s.summary == nil {
		return analysis.Summary{}, false
	}
	return *s.summary, true
}

// Info describes the snapshot.
func (s *Snapshot) Info() SnapshotInfo {
	return SnapshotInfo{Source: s.source, Drugs: len(s.counts), BuiltAt: s.builtAt}
}
