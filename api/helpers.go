package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/gorilla/mux"
)

// okResponse is the generic reply shape: every endpoint answers with at
// least the ok flag; error carries a human-readable reason when present.
type okResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, okResponse{OK: false, Error: msg}, status)
}

// writeInternal is the uniform reply for repository failures. Not-found
// conditions are normal responses, not errors; only real store failures land
// here.
func writeInternal(w http.ResponseWriter, op string, err error) {
	logger.Error(op, slog.Any("err", err))
	writeError(w, "internal", http.StatusInternalServerError)
}

// personIDVar parses the {person_id} path variable. The second return is
// false when the value is not an integer, in which case a 400 has already
// been written.
func personIDVar(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["person_id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, "invalid person_id", http.StatusBadRequest)
		return 0, false
	}

	return id, true
}
