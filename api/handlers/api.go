package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/pairpad/pairpad-api/api"
	"github.com/pairpad/pairpad-api/api/scheduler"
	"github.com/pairpad/pairpad-api/config"
	"github.com/pairpad/pairpad-api/databases"
	"github.com/pairpad/pairpad-api/judge0"
	"github.com/pairpad/pairpad-api/models"
	"github.com/pairpad/pairpad-api/realtime"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Scheduler *scheduler.Scheduler
	Metrics   *api.Collector
	dbHelper  databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	sessions := databases.NewSessionDatabase(a.dbHelper)
	participants := databases.NewParticipantDatabase(a.dbHelper)

	identity := realtime.NewIdentityProvider(a.Config.AuthSecret, a.Config.IdentityStatePath)
	presence := &realtime.PresenceTracker{DB: participants}
	streamer := &realtime.Streamer{Sessions: sessions, Presence: presence, Identity: identity}

	s := Session{DB: sessions, PDB: participants}
	st := Stream{Streamer: streamer}
	run := Run{Runner: judge0.New(a.Config.Judge0APIKey, a.Config.Judge0APIHost)}
	auth := Auth{Identity: identity}

	if a.Metrics == nil {
		a.Metrics = api.NewCollector()
	}

	r := mux.NewRouter()
	r.Use(api.LoggingMiddleware)
	r.Use(api.MetricsMiddleware(a.Metrics))

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	// the execution proxy speaks the external plain-text contract, so it
	// lives outside the /api/v1 JSON error conventions
	r.Handle("/api/run", http.HandlerFunc(run.RunHandler)).Methods("POST")

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/guest", http.HandlerFunc(auth.GuestTokenHandler)).Methods("POST")

	apiCreate.Handle("/metrics", http.HandlerFunc(a.metricsHandler)).Methods("GET")

	apiCreate.Handle("/session", api.TimeoutMiddleware(10*time.Second)(http.HandlerFunc(s.CreateSessionHandler))).Methods("POST")
	apiCreate.Handle("/session/{session_id}", http.HandlerFunc(s.SessionByIDHandler)).Methods("GET")
	apiCreate.Handle("/session/{session_id}/files/{filename}", http.HandlerFunc(s.UpdateFileHandler)).Methods("PUT")
	apiCreate.Handle("/session/{session_id}/output", http.HandlerFunc(s.UpdateOutputHandler)).Methods("PUT")
	apiCreate.Handle("/session/{session_id}/participants", http.HandlerFunc(s.ParticipantsHandler)).Methods("GET")

	// websocket endpoint, no timeout middleware: the connection is long-lived
	apiCreate.Handle("/session/{session_id}/stream", http.HandlerFunc(st.StreamHandler)).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("pairpad-api has connected to the database")

	// sweep stale presence records in the background
	a.Scheduler = scheduler.NewScheduler(databases.NewParticipantDatabase(a.dbHelper))
	a.Scheduler.Start()

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func (a *App) metricsHandler(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(map[string]interface{}{
		"summary": a.Metrics.Summary(),
		"routes":  a.Metrics.RouteStats(),
	})
	if err != nil {
		config.ErrorStatus("failed to marshal metrics", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
