package config

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	URL               string
	DatabaseName      string
	BaseURL           string
	Port              string
	Judge0APIKey      string
	Judge0APIHost     string
	AuthSecret        string
	IdentityStatePath string
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	if err := godotenv.Load(); err != nil {
		zap.S().Debug("no .env file found, using environment as-is")
	}

	return &Config{
		URL:               os.Getenv("DB_URI"),
		DatabaseName:      os.Getenv("DB_NAME"),
		BaseURL:           os.Getenv("BASE_URL"),
		Port:              os.Getenv("PORT"),
		Judge0APIKey:      os.Getenv("JUDGE0_API_KEY"),
		Judge0APIHost:     getEnv("JUDGE0_API_HOST", "judge0-ce.p.rapidapi.com"),
		AuthSecret:        os.Getenv("AUTH_SECRET"),
		IdentityStatePath: getEnv("IDENTITY_STATE_PATH", ".identity"),
	}

}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}
