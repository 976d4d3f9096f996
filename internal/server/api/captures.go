// Package api provides HTTP API handlers for the Makeover photo booth.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/makeover/internal/store"
)

// CaptureHandler handles HTTP requests for saved captures. Captures are
// created by the pipeline, so the API only reads and deletes them.
type CaptureHandler struct {
	store *store.Store
}

// NewCaptureHandler creates a new CaptureHandler with the given store.
func NewCaptureHandler(s *store.Store) *CaptureHandler {
	return &CaptureHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *CaptureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/captures or /api/captures/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/captures")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/captures
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.list(w, r)
		return
	}

	// Item endpoint: /api/captures/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type captureResponse struct {
	ID               string `json:"id"`
	FilePath         string `json:"file_path"`
	BackgroundID     string `json:"background_id"`
	ClothingCategory string `json:"clothing_category,omitempty"`
	ClothingItem     int    `json:"clothing_item"`
	AccessoryType    string `json:"accessory_type,omitempty"`
	AccessoryItem    int    `json:"accessory_item"`
	CreatedAt        string `json:"created_at"`
}

type listCapturesResponse struct {
	Captures []captureResponse `json:"captures"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Capture to a captureResponse.
func toResponse(c *store.Capture) captureResponse {
	return captureResponse{
		ID:               c.ID,
		FilePath:         c.FilePath,
		BackgroundID:     c.BackgroundID,
		ClothingCategory: c.ClothingCategory,
		ClothingItem:     c.ClothingItem,
		AccessoryType:    c.AccessoryType,
		AccessoryItem:    c.AccessoryItem,
		CreatedAt:        c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/captures and returns all captures, newest first.
func (h *CaptureHandler) list(w http.ResponseWriter, r *http.Request) {
	captures, err := h.store.Captures().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list captures")
		return
	}

	response := listCapturesResponse{Captures: make([]captureResponse, 0, len(captures))}
	for _, c := range captures {
		response.Captures = append(response.Captures, toResponse(c))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/captures/{id}.
func (h *CaptureHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.store.Captures().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Capture not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get capture")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(c))
}

// delete handles DELETE /api/captures/{id}.
func (h *CaptureHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Captures().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Capture not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete capture")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
