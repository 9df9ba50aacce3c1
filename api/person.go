package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/qri-io/jsonschema"
)

// PersonHandler serves the caregiver-facing endpoints: device settings
// writes and status reads keyed by person.
type PersonHandler struct {
	gate *Gate
}

func NewPersonHandler(gate *Gate) *PersonHandler {
	return &PersonHandler{gate: gate}
}

type setPhoneNrRequest struct {
	PhoneNr string `json:"phone_nr"`
}

type setPhoneNrResponse struct {
	OK      bool   `json:"ok"`
	PhoneNr string `json:"phone_nr"`
}

// SetPhoneNr handles POST /web/person/data/{person_id}/phone_nr. The device
// row is created on first write.
func (h *PersonHandler) SetPhoneNr(w http.ResponseWriter, r *http.Request) {
	personID, ok := personIDVar(w, r)
	if !ok {
		return
	}

	var req setPhoneNrRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	store := h.gate.Store()
	if err := store.Devices.EnsureDevice(r.Context(), personID); err != nil {
		writeInternal(w, "ensure device", err)
		return
	}
	if err := store.Devices.SetPhoneNumber(r.Context(), personID, req.PhoneNr); err != nil {
		writeInternal(w, "set phone number", err)
		return
	}

	writeJSON(w, setPhoneNrResponse{OK: true, PhoneNr: req.PhoneNr}, http.StatusOK)
}

var timeoutPayloadSchema = jsonschema.Must(`{
	"type": "object",
	"required": ["timeout"],
	"properties": {
		"timeout": {"type": "integer"}
	}
}`)

type setTimeoutRequest struct {
	Timeout int64 `json:"timeout"`
}

type setTimeoutResponse struct {
	OK      bool  `json:"ok"`
	Timeout int64 `json:"timeout"`
}

// SetTimeout handles POST /web/person/data/{person_id}/timeout. The device
// row is created on first write.
func (h *PersonHandler) SetTimeout(w http.ResponseWriter, r *http.Request) {
	personID, ok := personIDVar(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	keyErrs, err := timeoutPayloadSchema.ValidateBytes(r.Context(), body)
	if err != nil || len(keyErrs) > 0 {
		writeError(w, "timeout must be an integer", http.StatusBadRequest)
		return
	}

	var req setTimeoutRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	store := h.gate.Store()
	if err := store.Devices.EnsureDevice(r.Context(), personID); err != nil {
		writeInternal(w, "ensure device", err)
		return
	}
	if err := store.Devices.SetTimeout(r.Context(), personID, req.Timeout); err != nil {
		writeInternal(w, "set timeout", err)
		return
	}

	writeJSON(w, setTimeoutResponse{OK: true, Timeout: req.Timeout}, http.StatusOK)
}

type findPersonResponse struct {
	OK             bool   `json:"ok"`
	PersonID       int64  `json:"person_id"`
	PhoneNr        string `json:"phone_nr"`
	Timeout        int64  `json:"timeout"`
	FallsReal      int64  `json:"falls_real"`
	FallsCancelled int64  `json:"falls_cancelled"`
}

// Find handles GET /web/person/find/{fullname}. Three outcomes: no such
// person ({ok:false, error}), person without a device row (bare {ok:false}),
// or the full status including person_id.
func (h *PersonHandler) Find(w http.ResponseWriter, r *http.Request) {
	fullname := mux.Vars(r)["fullname"]

	store := h.gate.Store()
	person, err := store.People.FindPersonByFullname(r.Context(), fullname)
	if err != nil {
		writeInternal(w, "find person", err)
		return
	}
	if person == nil {
		writeJSON(w, okResponse{OK: false, Error: "Person not found"}, http.StatusOK)
		return
	}

	status, err := store.Devices.GetDeviceStatus(r.Context(), person.PersonID)
	if err != nil {
		writeInternal(w, "get device status", err)
		return
	}
	if status == nil {
		writeJSON(w, okResponse{OK: false}, http.StatusOK)
		return
	}

	writeJSON(w, findPersonResponse{
		OK:             true,
		PersonID:       person.PersonID,
		PhoneNr:        status.PhoneNr,
		Timeout:        status.Timeout,
		FallsReal:      status.FallsReal,
		FallsCancelled: status.FallsCancelled,
	}, http.StatusOK)
}

type syncStatusResponse struct {
	OK             bool   `json:"ok"`
	FallsReal      int64  `json:"falls_real"`
	FallsCancelled int64  `json:"falls_cancelled"`
	SyncTime       *int64 `json:"sync_time"`
}

// SyncStatus handles GET /web/person/data/{person_id}/sync. sync_time is
// null when the device never logged.
func (h *PersonHandler) SyncStatus(w http.ResponseWriter, r *http.Request) {
	personID, ok := personIDVar(w, r)
	if !ok {
		return
	}

	store := h.gate.Store()
	status, err := store.Devices.GetSyncStatus(r.Context(), personID)
	if err != nil {
		writeInternal(w, "get sync status", err)
		return
	}
	if status == nil {
		writeJSON(w, okResponse{OK: false, Error: "Device not found"}, http.StatusOK)
		return
	}

	resp := syncStatusResponse{
		OK:             true,
		FallsReal:      status.FallsReal,
		FallsCancelled: status.FallsCancelled,
	}
	if status.LastLogged.Valid {
		resp.SyncTime = &status.LastLogged.Int64
	}

	writeJSON(w, resp, http.StatusOK)
}
