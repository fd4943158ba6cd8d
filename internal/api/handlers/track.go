package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/calebds/tracker/internal/schema"
	"github.com/calebds/tracker/internal/state"
	"github.com/calebds/tracker/internal/track"
)

type TrackHandler struct {
	Store    state.Store
	Workflow track.Workflow
}

type trackRequest struct {
	Retailer string          `json:"retailer"`
	Product  json.RawMessage `json:"product"`
}

type TrackResponse struct {
	Product  any                      `json:"product"`
	Created  bool                     `json:"created"`
	Warnings schema.UnknownKeyWarning `json:"warnings,omitempty"`
}

func (h TrackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "read_failed",
			"message": err.Error(),
		})
		return
	}

	var req trackRequest
	if err := json.Unmarshal(bodyBytes, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "invalid_json",
			"message": err.Error(),
		})
		return
	}

	if strings.TrimSpace(req.Retailer) == "" || len(req.Product) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "missing_fields",
			"message": "retailer and product are required",
		})
		return
	}

	parsed, err := schema.ParseAttributesAllowUnknown(req.Product)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "invalid_json",
			"message": err.Error(),
		})
		return
	}

	if res := schema.Validate(parsed.Attributes); !res.IsValid() {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation_failed",
			"issues": res.Issues,
		})
		return
	}

	retailer, ok, err := h.Store.GetRetailerByName(r.Context(), req.Retailer)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "get_retailer_failed",
			"message": err.Error(),
		})
		return
	}
	if !ok {
		writeError(w, &track.NotFoundError{Kind: "retailer", ID: req.Retailer})
		return
	}

	product, created, err := h.Workflow.TrackProduct(r.Context(), parsed.Attributes, retailer)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "track_failed",
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, TrackResponse{
		Product:  product,
		Created:  created,
		Warnings: parsed.Warnings,
	})
}
