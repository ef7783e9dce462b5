package analysis

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the summarizer as the dashboard's analysis endpoint.
type Handler struct {
	summarizer Summarizer
}

// NewHandler wires the analysis routes.
func NewHandler(summarizer Summarizer) *Handler {
	return &Handler{summarizer: summarizer}
}

// Routes mounts the analysis endpoint.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/analysis", h.handleAnalysis)
	return r
}

type analysisRequest struct {
	Data          []map[string]any `json:"data"`
	DimensionName string           `json:"dimensionName"`
}

func (h *Handler) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.DimensionName) == "" {
		writeError(w, http.StatusBadRequest, "dimensionName is required")
		return
	}
	if len(req.Data) == 0 {
		writeError(w, http.StatusBadRequest, "data is required")
		return
	}

	text, err := h.summarizer.Summarize(r.Context(), req.Data, req.DimensionName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"analysis": text})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
