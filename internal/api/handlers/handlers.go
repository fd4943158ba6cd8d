package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/calebds/tracker/internal/track"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var nf *track.NotFoundError
	if errors.As(err, &nf) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":   "not_found",
			"message": nf.Error(),
		})
		return
	}

	writeJSON(w, http.StatusBadGateway, map[string]any{
		"error":   "backend_failed",
		"message": err.Error(),
	})
}
