package api

import (
	"github.com/garnizeh/offerdesk/internal/assistant"
	"github.com/garnizeh/offerdesk/internal/config"
	"github.com/garnizeh/offerdesk/internal/db"
	"github.com/garnizeh/offerdesk/internal/repository/sqlite"
	"github.com/gorilla/mux"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, conn *db.DB, mgr *assistant.Manager, eq Enqueuer) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(conn, logger)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, cfg.JWTSecret, cfg.TokenDuration)
	offersHandler := NewOffersHandler(repo, eq)
	applicantsHandler := NewApplicantsHandler(repo, repo)
	interviewsHandler := NewInterviewsHandler(repo, repo, eq)
	chatHandler := NewChatHandler(mgr, repo, repo)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Auth endpoints
	authV1 := apiV1.PathPrefix("/auth").Subrouter()
	authV1.HandleFunc("/signout", authHandler.Signout).Methods("POST")

	// Offer endpoints
	apiV1.HandleFunc("/offers", offersHandler.CreateOffer).Methods("POST")
	apiV1.HandleFunc("/offers", offersHandler.ListOffers).Methods("GET")
	apiV1.HandleFunc("/offers/{id:[0-9]+}", offersHandler.GetOffer).Methods("GET")
	apiV1.HandleFunc("/offers/{id:[0-9]+}", offersHandler.DeleteOffer).Methods("DELETE")

	// Applicant endpoints
	apiV1.HandleFunc("/applicants", applicantsHandler.CreateApplicant).Methods("POST")
	apiV1.HandleFunc("/applicants", applicantsHandler.ListApplicants).Methods("GET")
	apiV1.HandleFunc("/applicants/{id:[0-9]+}/status", applicantsHandler.UpdateStatus).Methods("PATCH")

	// Interview endpoints
	apiV1.HandleFunc("/interviews", interviewsHandler.CreateInterview).Methods("POST")
	apiV1.HandleFunc("/interviews", interviewsHandler.ListInterviews).Methods("GET")

	// Assistant endpoints
	apiV1.HandleFunc("/assistant/chat", chatHandler.Chat).Methods("POST")
	apiV1.HandleFunc("/assistant/session", chatHandler.ResetSession).Methods("DELETE")

	return r
}
