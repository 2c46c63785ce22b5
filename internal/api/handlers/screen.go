package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/pipeline"
	"github.com/wonny/screener/internal/screening"
	"github.com/wonny/screener/pkg/logger"
)

// ProgressBroadcaster receives per-ticker ingestion events for live
// progress feeds
type ProgressBroadcaster interface {
	Broadcast(contracts.ProgressEvent)
}

// ScreenHandler handles screening API endpoints
// ⭐ SSOT: 스크리닝 API 핸들러는 이 구조체에서만
type ScreenHandler struct {
	runner      *pipeline.Runner
	repo        *pipeline.Repository // nil = history endpoints disabled
	broadcaster ProgressBroadcaster  // nil = no live progress
	logger      *logger.Logger
}

// NewScreenHandler creates a screening handler. repo and broadcaster
// may be nil.
func NewScreenHandler(runner *pipeline.Runner, repo *pipeline.Repository, broadcaster ProgressBroadcaster, log *logger.Logger) *ScreenHandler {
	return &ScreenHandler{
		runner:      runner,
		repo:        repo,
		broadcaster: broadcaster,
		logger:      log,
	}
}

// StrategyInfo describes one registered strategy
type StrategyInfo struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	RequiredMetrics []string `json:"required_metrics"`
}

// ListStrategies returns the registered strategies
// GET /api/strategies
func (h *ScreenHandler) ListStrategies(w http.ResponseWriter, r *http.Request) {
	var infos []StrategyInfo
	for _, s := range h.runner.Strategies().All() {
		infos = append(infos, StrategyInfo{
			Name:            s.Name(),
			Description:     s.Description(),
			RequiredMetrics: s.RequiredMetrics(),
		})
	}
	writeJSON(w, http.StatusOK, infos)
}

// ScreenRequest is the POST /api/screen body
type ScreenRequest struct {
	Strategy string   `json:"strategy"`
	Source   string   `json:"source,omitempty"`
	Market   string   `json:"market,omitempty"`
	TopN     int      `json:"top_n,omitempty"`
	Tickers  []string `json:"tickers,omitempty"`
}

// Screen runs a screening pass and returns the full run
// POST /api/screen
func (h *ScreenHandler) Screen(w http.ResponseWriter, r *http.Request) {
	var req ScreenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Strategy == "" {
		writeError(w, http.StatusBadRequest, "strategy is required")
		return
	}

	pipelineReq := pipeline.Request{
		Strategy: req.Strategy,
		Source:   req.Source,
		Market:   req.Market,
		TopN:     req.TopN,
		Tickers:  req.Tickers,
	}
	if h.broadcaster != nil {
		pipelineReq.OnProgress = h.broadcaster.Broadcast
	}

	run, err := h.runner.Run(r.Context(), pipelineReq)
	if err != nil {
		if errors.Is(err, screening.ErrUnknownStrategy) || errors.Is(err, pipeline.ErrUnknownSource) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.WithError(err).Error("Screening run failed")
		writeError(w, http.StatusInternalServerError, "screening run failed")
		return
	}

	writeJSON(w, http.StatusOK, run)
}

// RecentRuns lists stored run headers
// GET /api/runs?limit=20
func (h *ScreenHandler) RecentRuns(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		writeError(w, http.StatusServiceUnavailable, "run history requires a database")
		return
	}

	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	headers, err := h.repo.RecentRuns(r.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list runs")
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	writeJSON(w, http.StatusOK, headers)
}

// RunResults returns the stored results of one run
// GET /api/runs/{id}
func (h *ScreenHandler) RunResults(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		writeError(w, http.StatusServiceUnavailable, "run history requires a database")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid run id")
		return
	}

	results, err := h.repo.RunResults(r.Context(), id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load run results")
		writeError(w, http.StatusInternalServerError, "failed to load run results")
		return
	}
	if len(results) == 0 {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
