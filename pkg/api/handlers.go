package api

import (
	"encoding/json"
	"mime"
	"net/http"

	"edgehierarchy/pkg/graph"
)

// Distancer is satisfied by *query.Query: the one operation the API
// exposes over HTTP is a distance lookup between two external node ids.
type Distancer interface {
	Distance(source, target uint32) uint32
}

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	distancer Distancer
	numNodes  uint32
	stats     StatsResponse
}

// NewHandlers creates handlers with the given distancer.
func NewHandlers(distancer Distancer, numNodes uint32, stats StatsResponse) *Handlers {
	return &Handlers{distancer: distancer, numNodes: numNodes, stats: stats}
}

// HandleDistance handles POST /api/v1/distance.
func (h *Handlers) HandleDistance(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	var req DistanceRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	if req.Source >= h.numNodes {
		writeError(w, http.StatusBadRequest, "invalid_node_id", "source")
		return
	}
	if req.Target >= h.numNodes {
		writeError(w, http.StatusBadRequest, "invalid_node_id", "target")
		return
	}

	dist := h.distancer.Distance(req.Source, req.Target)
	resp := DistanceResponse{Reachable: dist != graph.WeightInfinity}
	if resp.Reachable {
		resp.Distance = dist
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.stats)
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Field: field})
}
