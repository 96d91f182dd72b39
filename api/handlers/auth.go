package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pairpad/pairpad-api/config"
	"github.com/pairpad/pairpad-api/models"
	"github.com/pairpad/pairpad-api/realtime"
)

// Auth exported for testing purposes
type Auth struct {
	Identity *realtime.IdentityProvider
}

// GuestTokenHandler mints an anonymous managed identity. When anonymous auth
// is disabled server-side, clients fall back to their locally generated
// identifier, so 503 here is advisory rather than fatal.
func (a Auth) GuestTokenHandler(w http.ResponseWriter, r *http.Request) {
	token, uid, err := a.Identity.IssueGuestToken()
	if err != nil {
		if errors.Is(err, realtime.ErrAnonymousAuthDisabled) {
			config.ErrorStatus("anonymous auth is disabled", http.StatusServiceUnavailable, w, err)
			return
		}
		config.ErrorStatus("failed to issue guest token", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.GuestTokenResponse{Token: token, UID: uid})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
