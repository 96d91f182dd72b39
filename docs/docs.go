// Package docs Pairpad API.
//
// Documentation of the Pairpad session-sync API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
// swagger:meta
package docs

import (
	"github.com/pairpad/pairpad-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route POST /api/v1/session session createSession
// Creates a new session seeded with the default files.
// responses:
//   201: createSessionResponse

// The identifier of the freshly created session.
// swagger:response createSessionResponse
type createSessionResponseWrapper struct {
	// in:body
	Body models.CreateSessionResponse
}

// swagger:route GET /api/v1/session/{session_id} session sessionByID
// Gets a single session by ID, files flattened to filename -> content.
// responses:
//   200: sessionByIDResponse

// The normalized session snapshot.
// swagger:response sessionByIDResponse
type sessionByIDResponseWrapper struct {
	// in:body
	Body models.SessionResponse
}

// swagger:route PUT /api/v1/session/{session_id}/files/{filename} session updateFile
// Merges a single filename -> content entry into the session files.
// responses:
//   204: description:updated

// swagger:route PUT /api/v1/session/{session_id}/output session updateOutput
// Overwrites the session's last execution output.
// responses:
//   204: description:updated

// swagger:route GET /api/v1/session/{session_id}/participants session participantsBySession
// Lists the presence records for a session.
// responses:
//   200: participantsResponse

// The presence records currently known for the session. Entries may be stale
// until the background sweep removes them.
// swagger:response participantsResponse
type participantsResponseWrapper struct {
	// in:body
	Body []models.Participant
}

// swagger:route POST /api/v1/auth/guest auth guestToken
// Mints an anonymous guest identity token.
// responses:
//   200: guestTokenResponse
//   503: description:anonymous auth disabled

// A signed guest token plus its stable identifier.
// swagger:response guestTokenResponse
type guestTokenResponseWrapper struct {
	// in:body
	Body models.GuestTokenResponse
}

// swagger:route POST /api/run run runSnippet
// Proxies a source snippet to the sandboxed-execution API.
// responses:
//   200: runResponse

// The normalized execution result.
// swagger:response runResponse
type runResponseWrapper struct {
	// in:body
	Body models.RunResponse
}
