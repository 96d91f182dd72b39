package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/pairpad/pairpad-api/config"
	"github.com/pairpad/pairpad-api/databases"
	"github.com/pairpad/pairpad-api/models"
	"github.com/pairpad/pairpad-api/realtime"
)

var validate = validator.New()

// Session exported for testing purposes
type Session struct {
	DB  databases.SessionDatabase
	PDB databases.ParticipantDatabase
}

// CreateSessionHandler creates a new session with the default files and
// returns its identifier. An unreachable store is fatal here, there is no
// fallback at creation time.
func (s Session) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := s.DB.Create(r.Context())
	if err != nil {
		config.ErrorStatus("failed to create session", http.StatusInternalServerError, w, err)
		return
	}
	zap.S().Infow("session created", "sessionId", id)

	b, err := json.Marshal(models.CreateSessionResponse{ID: id})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// SessionByIDHandler returns the normalized snapshot of a session, files
// flattened to filename -> content
func (s Session) SessionByIDHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["session_id"]

	dbResp, err := s.DB.FindOne(r.Context(), sessionID)
	if err != nil {
		config.ErrorStatus("failed to get session by ID", http.StatusNotFound, w, err)
		return
	}

	resp := models.SessionResponse{
		ID:        dbResp.ID,
		CreatedAt: dbResp.CreatedAt,
		Files:     realtime.Flatten(dbResp.Files),
		Output:    dbResp.Output,
	}
	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateFileHandler merges a single filename -> content entry into the
// session's files without touching sibling files. Filenames may contain
// dots; the store treats them as literal key segments.
func (s Session) UpdateFileHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["session_id"]
	filename := vars["filename"]

	var requestBody models.UpdateFileRequest
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(requestBody); err != nil {
		config.ErrorStatus("content is required", http.StatusBadRequest, w, err)
		return
	}

	if err := s.DB.SetFile(r.Context(), sessionID, filename, *requestBody.Content); err != nil {
		if err == mongo.ErrNoDocuments {
			config.ErrorStatus("failed to find session to update", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to update file", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateOutputHandler overwrites the session's last execution output
func (s Session) UpdateOutputHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["session_id"]

	var requestBody models.UpdateOutputRequest
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(requestBody); err != nil {
		config.ErrorStatus("output is required", http.StatusBadRequest, w, err)
		return
	}

	if err := s.DB.SetOutput(r.Context(), sessionID, *requestBody.Output); err != nil {
		if err == mongo.ErrNoDocuments {
			config.ErrorStatus("failed to find session to update", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to update output", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ParticipantsHandler returns the presence records for a session. Readers
// must treat entries as possibly stale, not authoritative liveness.
func (s Session) ParticipantsHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["session_id"]

	dbResp, err := s.PDB.FindBySession(r.Context(), sessionID)
	if err != nil {
		config.ErrorStatus("failed to get participants", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Participant{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
