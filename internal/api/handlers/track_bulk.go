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

type TrackBulkHandler struct {
	Store    state.Store
	Workflow track.Workflow
}

type trackBulkRequest struct {
	Retailer string          `json:"retailer"`
	Products json.RawMessage `json:"products"`
}

type TrackBulkResponse struct {
	Result   track.BatchOutput        `json:"result"`
	Warnings schema.UnknownKeyWarning `json:"warnings,omitempty"`
}

func (h TrackBulkHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	var req trackBulkRequest
	if err := json.Unmarshal(bodyBytes, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "invalid_json",
			"message": err.Error(),
		})
		return
	}

	if strings.TrimSpace(req.Retailer) == "" || len(req.Products) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "missing_fields",
			"message": "retailer and products are required",
		})
		return
	}

	items, warnings, err := schema.ParseAttributeListAllowUnknown(req.Products)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "invalid_json",
			"message": err.Error(),
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

	out, err := h.Workflow.TrackBatch(r.Context(), items, retailer)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "track_bulk_failed",
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, TrackBulkResponse{
		Result:   out,
		Warnings: warnings,
	})
}
