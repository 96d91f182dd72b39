package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/pairpad/pairpad-api/api/handlers"

	"go.uber.org/zap"

	"github.com/pairpad/pairpad-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil {
		log.Fatal(err)
	}

	port := os.Getenv("PORT")
	baseURL := os.Getenv("BASE_URL")
	zap.S().Infow("pairpad-api is up and running",
		"port", port,
		"url", baseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", port), a.Router))
}
