package testutil

import (
	"context"
	"sync"

	"github.com/nishad/drugrake/internal/enrichment"
)

// MockLookup is an enrichment.Lookup answering from fixed results.
// Genes missing from Results resolve to an empty disease list.
type MockLookup struct {
	mu    sync.Mutex
	calls []string

	Results map[string]enrichment.Result
}

// Diseases records the call and returns the configured result.
func (m *MockLookup) Diseases(ctx context.Context, gene string) enrichment.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, gene)

	if res, ok := m.Results[gene]; ok {
		res.Gene = gene
		if res.Err != nil {
			e := *res.Err
			e.Gene = gene
			res.Err = &e
		}
		return res
	}
	return enrichment.Result{Gene: gene, Diseases: []string{}}
}

// Calls returns the genes looked up, in call order.
func (m *MockLookup) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Found builds a successful lookup result.
func Found(diseases ...string) enrichment.Result {
	return enrichment.Result{Diseases: diseases}
}

// Failed builds a failed lookup result.
func Failed(reason enrichment.Reason) enrichment.Result {
	return enrichment.Result{Err: &enrichment.LookupError{Reason: reason}}
}
