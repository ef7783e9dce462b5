package ingestion

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/jvaldes/tablero/internal/dimension"
	"github.com/jvaldes/tablero/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Handler exposes the ingestion pipeline and its provenance views over HTTP.
type Handler struct {
	service *Service
	logs    repository.UploadLogRepository
	issues  repository.UploadIssueRepository
	records repository.RecordRepository
}

// NewHandler wires the ingestion routes.
func NewHandler(
	service *Service,
	logs repository.UploadLogRepository,
	issues repository.UploadIssueRepository,
	records repository.RecordRepository,
) *Handler {
	return &Handler{service: service, logs: logs, issues: issues, records: records}
}

// Routes mounts the ingestion endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/upload", h.handleUpload)
	r.Get("/uploads", h.handleListUploads)
	r.Get("/uploads/{id}/issues", h.handleListIssues)
	r.Delete("/uploads/{id}", h.handleDeleteUpload)
	r.Get("/records", h.handleListRecords)
	return r
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid form data: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	dimensionLabel := strings.TrimSpace(r.FormValue("dimension"))
	if dimensionLabel == "" {
		writeError(w, http.StatusBadRequest, "dimension is required")
		return
	}

	payload, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read file: %v", err))
		return
	}

	summary, err := h.service.Ingest(r.Context(), header.Filename, payload, dimensionLabel)
	if err != nil {
		if errors.Is(err, ErrUnknownDimension) || errors.Is(err, ErrEmptyFile) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   summary.TotalRows,
	})
}

func (h *Handler) handleListUploads(w http.ResponseWriter, r *http.Request) {
	dimensionLabel := strings.TrimSpace(r.URL.Query().Get("dimension"))
	if _, ok := dimension.Lookup(dimensionLabel); !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown dimension %q", dimensionLabel))
		return
	}

	limit, offset := pagination(r)
	logs, err := h.logs.ListByDimension(r.Context(), dimensionLabel, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"uploads": logs})
}

func (h *Handler) handleListIssues(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid upload id")
		return
	}

	issues, err := h.issues.ListByUpload(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"issues": issues})
}

func (h *Handler) handleDeleteUpload(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid upload id")
		return
	}

	if err := h.logs.DeleteCascade(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrUploadNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) handleListRecords(w http.ResponseWriter, r *http.Request) {
	dimensionLabel := strings.TrimSpace(r.URL.Query().Get("dimension"))
	if _, ok := dimension.Lookup(dimensionLabel); !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown dimension %q", dimensionLabel))
		return
	}

	limit, offset := pagination(r)
	records, err := h.records.ListByDimension(r.Context(), dimension.TableName(dimensionLabel), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

func pagination(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	return limit, offset
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
