package config

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := New()

	assert.NotEmpty(t, conf)
	assert.Equal(t, "mongodb://127.0.0.1:27017", conf.URL)
	assert.Equal(t, "judge0-ce.p.rapidapi.com", conf.Judge0APIHost)
}

func TestNewRespectsHostOverride(t *testing.T) {
	os.Setenv("JUDGE0_API_HOST", "judge0.example.com")
	defer os.Unsetenv("JUDGE0_API_HOST")

	conf := New()
	assert.Equal(t, "judge0.example.com", conf.Judge0APIHost)
}

func TestErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorStatus("error it borked", http.StatusBadRequest, rr, errors.New("bad request"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "error it borked")
}
