// Package service answers per-drug pathway count lookups from an immutable
// snapshot that can be replaced at runtime.
package service

import (
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// PathwayService serves lookups from the current snapshot. Readers load the
// snapshot pointer once per call; Reload and Swap replace it whole.
type PathwayService struct {
	current atomic.Pointer[Snapshot]
	reload  sync.Mutex
	logger  *zap.Logger
}

// NewPathwayService creates a service over snap.
func NewPathwayService(snap *Snapshot, logger *zap.Logger) *PathwayService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &PathwayService{logger: logger}
	s.current.Store(snap)
	return s
}

// Lookup returns the pathway count of id. Surrounding whitespace in id is
// ignored.
func (s *PathwayService) Lookup(id string) LookupResult {
	id = strings.TrimSpace(id)
	result := LookupResult{DrugbankID: id}

	snap := s.current.Load()
	if snap == nil {
		return result
	}
	result.NumPathways, result.Found = snap.Lookup(id)
	return result
}

// Snapshot returns the snapshot currently served.
func (s *PathwayService) Snapshot() *Snapshot {
	return s.current.Load()
}

// Swap replaces the served snapshot and returns the previous one.
func (s *PathwayService) Swap(snap *Snapshot) *Snapshot {
	return s.current.Swap(snap)
}

// Reload rebuilds the snapshot from path and swaps it in. On failure the
// current snapshot keeps being served.
func (s *PathwayService) Reload(path string) error {
	s.reload.Lock()
	defer s.reload.Unlock()

	snap, err := BuildSnapshot(path, s.logger)
	if err != nil {
		s.logger.Error("snapshot reload failed", zap.String("source", path), zap.Error(err))
		return err
	}
	s.Swap(snap)
	s.logger.Info("snapshot reloaded", zap.String("source", path), zap.Int("drugs", snap.Len()))
	return nil
}
