package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	learning "github.com/claritycare/roster-engine/adapters/learning"

	schedulegenHandler "github.com/claritycare/roster-engine/adapters/api/schedulegen"
	"github.com/claritycare/roster-engine/adapters/db"
	"github.com/claritycare/roster-engine/adapters/db/base_schedule_db"
	"github.com/claritycare/roster-engine/adapters/db/callout_db"
	"github.com/claritycare/roster-engine/adapters/db/client_db"
	"github.com/claritycare/roster-engine/adapters/db/therapist_db"
	"github.com/claritycare/roster-engine/config"

	_ "github.com/glebarez/go-sqlite" // SQLite driver
)

func main() {
	// Initialize logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	err := config.LoadEnvFileIfExists(".env")
	if err != nil {
		slog.Error("Error loading env file", "error", err)
	}

	// Initialize database
	dbConfig := config.GetDBConfig()
	database := db.NewDatabase(dbConfig)
	defer database.Close()

	slog.Info("Database initialized successfully", slog.Group("db", "name", dbConfig.DBFilename, "schema", dbConfig.SchemaFile))

	// Initialize repositories
	clientRepo := client_db.NewClientRepository(database)
	therapistRepo := therapist_db.NewTherapistRepository(database)
	calloutRepo := callout_db.NewCalloutRepository(database)
	baseScheduleRepo := base_schedule_db.NewBaseScheduleRepository(database)

	snapshotRepo := db.NewSnapshotRepository(clientRepo, therapistRepo, calloutRepo, baseScheduleRepo)
	learningClient := learning.NewNoopLearningClient()

	engineCfg := config.GetEngineConfig()

	// Initialize handlers
	scheduleGenHandler := schedulegenHandler.NewScheduleGenHandler(snapshotRepo, learningClient, engineCfg)

	// Setup HTTP routes
	mux := http.NewServeMux()

	scheduleGenHandler.RegisterRoutes(mux)

	// Add health check endpoint
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","service":"roster-engine"}`))
	})

	var middleWareStack []func(http.Handler) http.Handler
	var handler http.Handler
	if config.IsDevelopment() {
		// Add CORS middleware
		middleWareStack = append(middleWareStack, corsMiddleware)
	}

	handler = loggingMiddleware(mux)
	for _, middleware := range middleWareStack {
		handler = middleware(handler)
	}

	// Start server
	port := getEnvOrDefault("PORT", "8090")
	slog.Info("Starting server", "port", port)

	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}

// loggingMiddleware logs the HTTP method, path, status code, and response time for each request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap ResponseWriter to capture status
		rw := &statusCapturingResponseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		slog.Info(
			"HTTP",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration", duration.String(),
			"user_agent", r.UserAgent(),
			"remote_addr", r.RemoteAddr,
		)
	})
}

// statusCapturingResponseWriter wraps http.ResponseWriter to capture the status code
// so it can be logged after the handler completes.
type statusCapturingResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusCapturingResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// corsMiddleware adds CORS headers to allow cross-origin requests
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Set CORS headers
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		// Call the next handler
		next.ServeHTTP(w, r)
	})
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
