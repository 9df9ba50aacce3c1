package api

import (
	"github.com/gorilla/mux"
)

func SetupRoutes(version, buildTime string, gate *Gate) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Create handlers
	systemHandler := &SystemHandler{}
	deviceHandler := NewDeviceHandler(gate)
	personHandler := NewPersonHandler(gate)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")

	// Everything below waits for store initialization
	gated := r.PathPrefix("/").Subrouter()
	gated.Use(ReadinessMiddleware(gate))

	// Device-facing endpoints, called by the wearable
	gated.HandleFunc("/dev/sync/{person_id}", deviceHandler.Sync).Methods("POST")
	gated.HandleFunc("/dev/config/{person_id}", deviceHandler.Config).Methods("GET")

	// Web-facing endpoints, called by the caregiver UI
	gated.HandleFunc("/web/person/data/{person_id}/phone_nr", personHandler.SetPhoneNr).Methods("POST")
	gated.HandleFunc("/web/person/data/{person_id}/timeout", personHandler.SetTimeout).Methods("POST")
	gated.HandleFunc("/web/person/find/{fullname}", personHandler.Find).Methods("GET")
	gated.HandleFunc("/web/person/data/{person_id}/sync", personHandler.SyncStatus).Methods("GET")

	return r
}
