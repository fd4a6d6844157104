package api

import (
	"github.com/gorilla/mux"

	"github.com/healthvault/healthvault/internal/api/recovery"
	"github.com/healthvault/healthvault/internal/auth"
	"github.com/healthvault/healthvault/internal/services"
	"github.com/healthvault/healthvault/internal/store"
)

// NewRouter wires all HTTP routes to handlers. Routes under /api/health/ and
// /api/ai/ operate on the authenticated caller and sit behind the auth
// middleware; user creation and the liveness endpoint do not.
func NewRouter(st store.Store, summarySvc *services.SummaryService, authorizer auth.Authorizer) *mux.Router {
	router := mux.NewRouter()
	router.Use(recovery.Middleware)

	healthHandler := NewHealthHandler(st)
	userHandler := NewUserHandler(services.NewUserService(st))
	recordHandler := NewRecordHandler(services.NewRecordService(st))
	aiHandler := NewAIHandler(summarySvc)

	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.HandleFunc("/api/users", userHandler.CreateUser).Methods("POST")
	router.HandleFunc("/api/users/{userId}", userHandler.GetUser).Methods("GET")

	authed := router.PathPrefix("/api").Subrouter()
	authed.Use(auth.Middleware(authorizer))

	authed.HandleFunc("/health/profile", recordHandler.GetProfile).Methods("GET")
	authed.HandleFunc("/health/conditions", recordHandler.AddCondition).Methods("POST")
	authed.HandleFunc("/health/medications", recordHandler.AddMedication).Methods("POST")
	authed.HandleFunc("/health/allergies", recordHandler.AddAllergy).Methods("POST")
	authed.HandleFunc("/health/vitals", recordHandler.AddVital).Methods("POST")
	authed.HandleFunc("/health/appointments", recordHandler.AddAppointment).Methods("POST")

	authed.HandleFunc("/ai/summary", aiHandler.GenerateSummary).Methods("POST")
	authed.HandleFunc("/ai/summaries", aiHandler.ListSummaries).Methods("GET")

	return router
}
