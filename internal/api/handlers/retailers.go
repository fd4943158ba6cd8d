package handlers

import (
	"net/http"

	"github.com/calebds/tracker/internal/state"
)

type RetailersHandler struct {
	Store state.Store
}

func (h RetailersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	retailers, err := h.Store.ListRetailers(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "list_retailers_failed",
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": retailers,
	})
}
