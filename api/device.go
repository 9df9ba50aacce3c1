package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/qri-io/jsonschema"
)

// DeviceHandler serves the endpoints the wearable itself calls: the fall
// counter sync and the boot-time config fetch.
type DeviceHandler struct {
	gate *Gate
}

func NewDeviceHandler(gate *Gate) *DeviceHandler {
	return &DeviceHandler{gate: gate}
}

// Firmware payloads are untrusted; the schema rejects non-integer counters
// up front instead of letting them corrupt the stored counts.
var syncPayloadSchema = jsonschema.Must(`{
	"type": "object",
	"required": ["falls_r", "falls_c"],
	"properties": {
		"falls_r": {"type": "integer"},
		"falls_c": {"type": "integer"}
	}
}`)

type syncRequest struct {
	FallsR int64 `json:"falls_r"`
	FallsC int64 `json:"falls_c"`
}

// Sync handles POST /dev/sync/{person_id}. It increments the fall counters
// and stamps last_logged. The reply is {ok:true} even when no device row
// matched; firmware in the field expects unconditional success.
func (h *DeviceHandler) Sync(w http.ResponseWriter, r *http.Request) {
	personID, ok := personIDVar(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	keyErrs, err := syncPayloadSchema.ValidateBytes(r.Context(), body)
	if err != nil || len(keyErrs) > 0 {
		writeError(w, "falls_r and falls_c must be integers", http.StatusBadRequest)
		return
	}

	var req syncRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	store := h.gate.Store()
	if err := store.Devices.IncrementFallCounts(r.Context(), personID, req.FallsR, req.FallsC); err != nil {
		writeInternal(w, "increment fall counts", err)
		return
	}

	writeJSON(w, okResponse{OK: true}, http.StatusOK)
}

type deviceConfigResponse struct {
	OK      bool   `json:"ok"`
	PhoneNr string `json:"phone_nr"`
	Timeout int64  `json:"timeout"`
}

// Config handles GET /dev/config/{person_id}.
func (h *DeviceHandler) Config(w http.ResponseWriter, r *http.Request) {
	personID, ok := personIDVar(w, r)
	if !ok {
		return
	}

	store := h.gate.Store()
	cfg, err := store.Devices.GetDeviceConfig(r.Context(), personID)
	if err != nil {
		writeInternal(w, "get device config", err)
		return
	}
	if cfg == nil {
		writeJSON(w, okResponse{OK: false, Error: "Device not found"}, http.StatusOK)
		return
	}

	writeJSON(w, deviceConfigResponse{OK: true, PhoneNr: cfg.PhoneNr, Timeout: cfg.Timeout}, http.StatusOK)
}
