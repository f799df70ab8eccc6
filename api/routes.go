package api

import (
	"github.com/gorilla/mux"

	"github.com/newwork/workforce/internal/config"
	"github.com/newwork/workforce/internal/db"
	"github.com/newwork/workforce/internal/enhance"
	"github.com/newwork/workforce/internal/repository/sqlite"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, db *db.DB, enhancer enhance.Enhancer) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(db)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, cfg.JWTSecret, cfg.TokenDuration)
	usersHandler := NewUsersHandler(repo)
	profilesHandler := NewProfilesHandler(repo)
	absencesHandler := NewAbsencesHandler(repo)
	dataItemsHandler := NewDataItemsHandler(repo, repo, repo, enhancer)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Auth endpoints
	apiV1.HandleFunc("/auth/signout", authHandler.Signout).Methods("POST")

	// User endpoints
	apiV1.HandleFunc("/users", usersHandler.CreateUser).Methods("POST")
	apiV1.HandleFunc("/users", usersHandler.ListUsers).Methods("GET")
	apiV1.HandleFunc("/users/{id}", usersHandler.DeleteUser).Methods("DELETE")

	// Employee profile endpoints
	apiV1.HandleFunc("/employees", profilesHandler.ListProfiles).Methods("GET")
	apiV1.HandleFunc("/employees/{id}", profilesHandler.GetProfile).Methods("GET")
	apiV1.HandleFunc("/employees/{id}", profilesHandler.UpdateProfile).Methods("PUT")

	// Absence endpoints
	apiV1.HandleFunc("/absences", absencesHandler.CreateAbsence).Methods("POST")
	apiV1.HandleFunc("/absences", absencesHandler.ListAbsences).Methods("GET")
	apiV1.HandleFunc("/absences/{id}/status", absencesHandler.UpdateStatus).Methods("PUT")

	// Data item endpoints
	apiV1.HandleFunc("/data-items", dataItemsHandler.CreateDataItem).Methods("POST")
	apiV1.HandleFunc("/data-items", dataItemsHandler.ListDataItems).Methods("GET")
	apiV1.HandleFunc("/data-items/{id}", dataItemsHandler.GetDataItem).Methods("GET")
	apiV1.HandleFunc("/data-items/{id}", dataItemsHandler.UpdateDataItem).Methods("PUT")
	apiV1.HandleFunc("/data-items/{id}", dataItemsHandler.DeleteDataItem).Methods("DELETE")
	apiV1.HandleFunc("/data-items/{id}/restore", dataItemsHandler.RestoreDataItem).Methods("POST")
	apiV1.HandleFunc("/data-items/{id}/feedback", dataItemsHandler.CreateFeedback).Methods("POST")
	apiV1.HandleFunc("/data-items/{id}/feedback", dataItemsHandler.ListFeedback).Methods("GET")

	return r
}
