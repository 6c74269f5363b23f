package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"formforge/internal/service"
	"formforge/internal/transport/rest/handler"
	"formforge/internal/transport/rest/middleware"
	"formforge/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	FormService     *service.FormService
	ResponseService *service.ResponseService
	StatsService    *service.StatsService
	AIService       *service.AIService
	WSHub           *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	formHandler := handler.NewFormHandler(c.FormService, c.ResponseService)
	responseHandler := handler.NewResponseHandler(c.ResponseService)
	statsHandler := handler.NewStatsHandler(c.StatsService)
	aiHandler := handler.NewAIHandler(c.AIService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes: respondents are not required to hold a session token
	v1.HandleFunc("/auth/session", authHandler.Session).Methods("POST", "OPTIONS")
	v1.HandleFunc("/forms/{id}", formHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/responses", responseHandler.Submit).Methods("POST", "OPTIONS")
	v1.HandleFunc("/responses/single/{responseId}", responseHandler.GetSingle).Methods("GET", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/forms/{formId}/watch", wsHandler.WatchForm).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Owner routes (require session auth)
	ownerRoutes := v1.NewRoute().Subrouter()
	ownerRoutes.Use(authMW.RequireUser)

	ownerRoutes.HandleFunc("/forms", formHandler.Create).Methods("POST", "OPTIONS")
	ownerRoutes.HandleFunc("/forms/user/{userId}", formHandler.ListByUser).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/forms/{id}", formHandler.Delete).Methods("DELETE", "OPTIONS")
	ownerRoutes.HandleFunc("/forms/{id}/questions", formHandler.AddQuestion).Methods("POST", "OPTIONS")
	ownerRoutes.HandleFunc("/forms/{formId}/questions/{questionId}", formHandler.UpdateQuestion).Methods("PUT", "OPTIONS")
	ownerRoutes.HandleFunc("/forms/{formId}/questions/{questionId}", formHandler.RemoveQuestion).Methods("DELETE", "OPTIONS")
	ownerRoutes.HandleFunc("/forms/{id}/scoreboard", formHandler.Scoreboard).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/responses/form/{formId}", responseHandler.ListByForm).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/responses/user/{userId}", responseHandler.ListByUser).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/stats/{userId}", statsHandler.GetUserStats).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/ai/generate", aiHandler.Generate).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
