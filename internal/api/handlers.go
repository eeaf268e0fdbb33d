package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/nishad/drugrake/internal/service"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 16

// handlePathways answers POST /pathways {"drugbank_id": "..."} with a JSON
// string: the pathway count, or the not found message.
func (s *Server) handlePathways(w http.ResponseWriter, r *http.Request) {
	var req service.LookupRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.DrugbankID) == "" {
		s.writeError(w, http.StatusBadRequest, "drugbank_id is required")
		return
	}

	result := s.pathways.Lookup(req.DrugbankID)
	s.metrics.observeLookup(result)
	s.writeJSON(w, http.StatusOK, result.Message())
}

// handleDrugPathways handles GET /api/v1/drugs/{id}/pathways
func (s *Server) handleDrugPathways(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result := s.pathways.Lookup(id)
	s.metrics.observeLookup(result)

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"drugbank_id":  result.DrugbankID,
		"num_pathways": result.NumPathways,
		"found":        result.Found,
		"message":      result.Message(),
	})
}

// handleStats handles GET /api/v1/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap := s.pathways.Snapshot()
	if snap == nil {
		s.writeError(w, http.StatusServiceUnavailable, "no snapshot loaded")
		return
	}

	stats := map[string]interface{}{
		"snapshot": snap.Info(),
	}
	if summary, ok := snap.Summary(); ok {
		stats["summary"] = summary
	}
	s.writeJSON(w, http.StatusOK, stats)
}

// handleHealth handles GET /api/v1/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	}

	status := http.StatusOK
	if snap := s.pathways.Snapshot(); snap == nil {
		health["status"] = "unhealthy"
		health["snapshot"] = "not loaded"
		status = http.StatusServiceUnavailable
	} else {
		health["snapshot"] = snap.Info()
	}

	s.writeJSON(w, status, health)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":        "drugrake API",
		"version":     "1.0.0",
		"description": "DrugBank pathway lookup API",
		"endpoints": map[string]string{
			"pathways":      "POST /pathways",
			"drug_pathways": "/api/v1/drugs/{id}/pathways",
			"stats":         "/api/v1/stats",
			"health":        "/api/v1/health",
			"metrics":       "/metrics",
		},
	}
	s.writeJSON(w, http.StatusOK, info)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
