package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/pairpad/pairpad-api/judge0"
	"github.com/pairpad/pairpad-api/models"
)

// Runner abstracts the execution API client for testing
type Runner interface {
	Run(ctx context.Context, sourceCode string, languageID int) (*judge0.Result, error)
}

// Run exported for testing purposes
type Run struct {
	Runner Runner
}

// RunHandler proxies a source snippet to the sandboxed-execution API and
// relays the normalized result. Errors follow the external plain-text
// contract: 400 bad input, 500 missing credential or unexpected failure,
// 502 upstream error with the provider's raw text.
func (h Run) RunHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody models.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if requestBody.SourceCode == "" || requestBody.LanguageID == 0 {
		http.Error(w, "Missing source_code or language_id", http.StatusBadRequest)
		return
	}

	result, err := h.Runner.Run(r.Context(), requestBody.SourceCode, requestBody.LanguageID)
	if err != nil {
		var upstream *judge0.UpstreamError
		switch {
		case errors.Is(err, judge0.ErrMissingKey):
			http.Error(w, judge0.ErrMissingKey.Error(), http.StatusInternalServerError)
		case errors.As(err, &upstream):
			body := upstream.Body
			if body == "" {
				body = "Judge0 error"
			}
			http.Error(w, body, http.StatusBadGateway)
		default:
			zap.S().Errorw("execution proxy failed", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(models.RunResponse{
		Stdout:        result.Stdout,
		Stderr:        result.Stderr,
		CompileOutput: result.CompileOutput,
		Status:        result.Status,
	})
}
