package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/calebds/tracker/internal/search"
)

type SearchHandler struct {
	Orchestrator search.Orchestrator
}

type SearchRequest struct {
	Retailer string         `json:"retailer"`
	Term     string         `json:"term"`
	Options  search.Options `json:"options"`
}

func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	req := SearchRequest{Options: search.DefaultOptions()}
	if err := json.Unmarshal(bodyBytes, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "invalid_json",
			"message": err.Error(),
		})
		return
	}

	if strings.TrimSpace(req.Retailer) == "" || strings.TrimSpace(req.Term) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "missing_fields",
			"message": "retailer and term are required",
		})
		return
	}

	if res := req.Options.Validate(); !res.IsValid() {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation_failed",
			"issues": res.Issues,
		})
		return
	}

	results, err := h.Orchestrator.Search(r.Context(), req.Retailer, req.Term, req.Options.Canonical())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}
